// Package app wires configuration into the storefront components shared by
// the server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/bookstore/services/storefront/internal/cart"
	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/bookstore/services/storefront/internal/config"
	"github.com/bookstore/services/storefront/internal/db"
	"github.com/bookstore/services/storefront/internal/events"
	"github.com/bookstore/services/storefront/internal/metrics"
	"github.com/bookstore/services/storefront/internal/repo"
	"github.com/bookstore/services/storefront/internal/seed"
	"github.com/bookstore/services/storefront/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the loaded catalog and the cart store for one process
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	DB        *db.DB
	Repo      *repo.CatalogRepository
	Catalog   []catalog.Book
	Index     catalog.Index
	Carousel  *catalog.Carousel
	Storage   storage.Store
	Cart      *cart.Store
	Publisher *events.Publisher

	redis *redis.Client
}

// Options tune what New connects to
type Options struct {
	// Notify connects the cart.updated publisher when RABBITMQ_URL is set
	Notify bool
}

// New connects the database, loads the catalog and opens cart storage
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	a := &App{Config: cfg, Log: log}

	log.Info("Connecting to database...", zap.String("driver", cfg.DBDriver))
	database, err := db.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = database

	if err := db.RunMigrations(database); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.Repo = repo.NewCatalogRepository(database, log)
	if err := a.seedIfEmpty(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.ReloadCatalog(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Storage, err = a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	storeOpts := []cart.Option{cart.WithKey(cfg.CartKey)}
	if opts.Notify && cfg.RabbitMQURL != "" {
		publisher, err := events.NewPublisher(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, cart notifications disabled", zap.Error(err))
		} else {
			a.Publisher = publisher
			storeOpts = append(storeOpts, cart.WithNotifier(publisher))
		}
	}
	a.Cart = cart.NewStore(a.Storage, log, storeOpts...)

	return a, nil
}

// ReloadCatalog re-reads the catalog from the database
func (a *App) ReloadCatalog(ctx context.Context) error {
	books, err := a.Repo.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	a.Catalog = books
	a.Index = catalog.NewIndex(books)
	a.Carousel = catalog.NewCarousel(books, catalog.FeaturedPageSize)
	metrics.CatalogBooks.Set(float64(len(books)))
	return nil
}

func (a *App) seedIfEmpty(ctx context.Context) error {
	if a.Config.CatalogSeedFile == "" {
		return nil
	}
	total, _, err := a.Repo.GetStats(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	books, err := seed.LoadFile(a.Config.CatalogSeedFile)
	if err != nil {
		return err
	}
	a.Log.Info("Seeding empty catalog", zap.String("file", a.Config.CatalogSeedFile), zap.Int("books", len(books)))
	return a.Repo.ReplaceCatalog(ctx, books)
}

func (a *App) openStorage(ctx context.Context) (storage.Store, error) {
	switch a.Config.CartBackend {
	case storage.BackendRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr: a.Config.RedisAddr,
			DB:   a.Config.RedisDB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Log.Info("Cart storage on redis", zap.String("addr", a.Config.RedisAddr))
		return storage.NewRedisStore(a.redis, a.Config.ServiceName+":", a.Log), nil
	case storage.BackendMemory:
		a.Log.Warn("Cart storage is in memory and will not survive a restart")
		return storage.NewMemoryStore(), nil
	case storage.BackendSQL, "":
		return storage.NewSQLStore(a.DB, a.Log), nil
	default:
		return nil, fmt.Errorf("unsupported cart backend %q", a.Config.CartBackend)
	}
}

// Close releases every connection New opened
func (a *App) Close() {
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Log.Error("Failed to close redis client", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Error("Failed to close database", zap.Error(err))
		}
	}
}
