package grpc

import (
	"context"
	"errors"

	"github.com/bookstore/services/storefront/internal/db"
	"github.com/bookstore/services/storefront/internal/events"
	"github.com/bookstore/services/storefront/internal/storage"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var errPublisherDown = errors.New("rabbitmq connection is closed")

// HealthServer implements the gRPC health checking protocol for the
// storefront: the catalog database, the cart storage and, when connected, the
// cart.updated publisher.
type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	db        *db.DB
	store     storage.Store
	publisher *events.Publisher
	log       *zap.Logger
}

// NewHealthServer creates a new health check server. publisher may be nil.
func NewHealthServer(database *db.DB, store storage.Store, publisher *events.Publisher, log *zap.Logger) *HealthServer {
	return &HealthServer{
		db:        database,
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Probe returns the first failing dependency
func (h *HealthServer) Probe(ctx context.Context) error {
	if err := h.db.Ping(); err != nil {
		h.log.Error("Database health check failed", zap.Error(err))
		return err
	}

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Cart storage health check failed", zap.Error(err))
		return err
	}

	if h.publisher != nil && !h.publisher.IsHealthy() {
		h.log.Error("RabbitMQ health check failed")
		return errPublisherDown
	}

	return nil
}

// Check implements the health check
func (h *HealthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	return &grpc_health_v1.HealthCheckResponse{Status: h.status(ctx)}, nil
}

// Watch sends the current status once and returns
func (h *HealthServer) Watch(req *grpc_health_v1.HealthCheckRequest, server grpc_health_v1.Health_WatchServer) error {
	return server.Send(&grpc_health_v1.HealthCheckResponse{Status: h.status(server.Context())})
}

func (h *HealthServer) status(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if err := h.Probe(ctx); err != nil {
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

// LoggingInterceptor logs all gRPC requests
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)

		if err != nil {
			log.Error("gRPC request failed",
				zap.String("method", info.FullMethod),
				zap.Error(err),
			)
		} else {
			log.Debug("gRPC request completed",
				zap.String("method", info.FullMethod),
			)
		}

		return resp, err
	}
}
