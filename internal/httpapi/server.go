package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bookstore/services/storefront/internal/cart"
	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/bookstore/services/storefront/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HealthFunc reports whether the service dependencies are reachable
type HealthFunc func(ctx context.Context) error

// Deps are the components the HTTP surfaces render from
type Deps struct {
	Catalog         []catalog.Book
	Carousel        *catalog.Carousel
	Cart            *cart.Store
	DefaultPageSize int
	Health          HealthFunc
	Log             *zap.Logger
}

// Server exposes the catalog view, the featured carousel and the cart over
// HTTP. It keeps no cart state; every cart request re-reads the store.
type Server struct {
	engine   *gin.Engine
	catalog  []catalog.Book
	index    catalog.Index
	carousel *catalog.Carousel
	cart     *cart.Store
	pageSize int
	health   HealthFunc
	log      *zap.Logger
}

// NewServer creates the gin engine with middlewares and routes
func NewServer(deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)

	carousel := deps.Carousel
	if carousel == nil {
		carousel = catalog.NewCarousel(deps.Catalog, catalog.FeaturedPageSize)
	}

	s := &Server{
		engine:   gin.New(),
		catalog:  deps.Catalog,
		index:    catalog.NewIndex(deps.Catalog),
		carousel: carousel,
		cart:     deps.Cart,
		pageSize: deps.DefaultPageSize,
		health:   deps.Health,
		log:      deps.Log,
	}
	if s.pageSize <= 0 {
		s.pageSize = catalog.DefaultPageSize
	}

	s.registerMiddlewares()
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerMiddlewares() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/books", s.listBooks)
		api.GET("/books/:id", s.getBook)
		api.GET("/genres", s.listGenres)
		api.GET("/featured", s.featured)

		api.GET("/cart", s.getCart)
		api.GET("/cart/count", s.cartCount)
		api.POST("/cart/items", s.addToCart)
		api.PUT("/cart/items/:id", s.setCartQuantity)
		api.DELETE("/cart/items/:id", s.removeFromCart)
	}
}

// requestLogger logs each request and records prometheus metrics
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		s.log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		)
	}
}

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health(c.Request.Context()); err != nil {
			s.log.Error("Health check failed", zap.Error(err))
			c.String(http.StatusServiceUnavailable, "unhealthy: %v", err)
			return
		}
	}
	c.String(http.StatusOK, "healthy")
}

func errorResponse(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
