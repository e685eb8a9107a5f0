package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookstore/services/storefront/internal/app"
	"github.com/bookstore/services/storefront/internal/config"
	grpcserver "github.com/bookstore/services/storefront/internal/grpc"
	"github.com/bookstore/services/storefront/internal/httpapi"
	"github.com/bookstore/services/storefront/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("Storefront service starting")

	ctx := context.Background()
	storefront, err := app.New(ctx, cfg, log, app.Options{Notify: true})
	if err != nil {
		log.Fatal("Failed to initialize storefront", zap.Error(err))
	}
	defer storefront.Close()

	log.Info("Catalog loaded",
		zap.Int("books", len(storefront.Catalog)),
		zap.Int("featured", len(storefront.Carousel.Featured())),
	)

	healthServer := grpcserver.NewHealthServer(storefront.DB, storefront.Storage, storefront.Publisher, log)

	// gRPC carries the health protocol only
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcserver.LoggingInterceptor(log)),
	)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Fatal("Failed to listen on gRPC port", zap.Error(err))
	}

	go func() {
		log.Info("Starting gRPC server", zap.String("address", grpcListener.Addr().String()))
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal("Failed to serve gRPC", zap.Error(err))
		}
	}()

	api := httpapi.NewServer(httpapi.Deps{
		Catalog:         storefront.Catalog,
		Carousel:        storefront.Carousel,
		Cart:            storefront.Cart,
		DefaultPageSize: cfg.DefaultPageSize,
		Health:          healthServer.Probe,
		Log:             log,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      api.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	grpcServer.GracefulStop()

	log.Info("Server stopped")
}
