package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/adapter/cache"
	"github.com/seu-repo/bankbot/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/bankbot/internal/adapter/queue"
	"github.com/seu-repo/bankbot/internal/adapter/storage/cached"
	"github.com/seu-repo/bankbot/internal/adapter/storage/memory"
	"github.com/seu-repo/bankbot/internal/adapter/storage/postgres"
	"github.com/seu-repo/bankbot/internal/adapter/storage/redis"
	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/logging"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
	"github.com/seu-repo/bankbot/internal/ports"
	"github.com/seu-repo/bankbot/internal/service/audit"
	"github.com/seu-repo/bankbot/internal/service/dialog"
	"github.com/seu-repo/bankbot/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Initialize Logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting banking assistant",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("store", cfg.Store.Driver),
		zap.String("queue", cfg.Queue.Driver),
	)

	// 3. Initialize OpenTelemetry
	if cfg.OpenTelemetry.Enabled {
		tp, err := telemetry.InitTracer(
			cfg.OpenTelemetry.ServiceName,
			cfg.App.Version,
			cfg.OpenTelemetry.Jaeger.Endpoint,
			cfg.OpenTelemetry.Jaeger.SamplerParam,
		)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	checks := make(map[string]handlers.Pinger)

	// 4. Initialize Account Store
	backend, redisClient, closeStore, err := openStore(cfg, checks, logger)
	if err != nil {
		logger.Fatal("Failed to initialize account store", zap.Error(err))
	}
	defer closeStore()

	// 5. Display Name Cache
	store, closeCache, err := withCache(cfg, backend, redisClient, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer closeCache()

	// 6. Initialize Message Queue
	mq, err := openQueue(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	if mq != nil {
		defer mq.Close()
		if err := audit.SubscribeTransfers(mq, logger); err != nil {
			logger.Fatal("Failed to start transfer audit subscriber", zap.Error(err))
		}
	}

	// 7. Dialog Router
	router := dialog.NewRouter(store, mq, logger)

	// 8. HTTP Server
	app := newApp(appDeps{
		cfg:    cfg,
		dialog: router,
		store:  store,
		checks: checks,
		log:    logger,
	})

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// openStore builds the configured account backend and registers its
// readiness check.
func openStore(cfg *config.Config, checks map[string]handlers.Pinger, logger *zap.Logger) (ports.AccountStore, *goredis.Client, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := postgres.NewConnection(cfg.Database.URL, postgres.PoolOptions{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			LogQueries:      cfg.Database.LogQueries,
		}, logger)
		if err != nil {
			return nil, nil, noop, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(db); err != nil {
				return nil, nil, noop, err
			}
		}
		repo := postgres.NewAccountRepository(db, logger)
		if cfg.Store.SeedDemo {
			if err := repo.Seed(context.Background(), memory.DemoAccounts()); err != nil {
				return nil, nil, noop, err
			}
		}
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		return repo, nil, func() {
			if err := postgres.Close(db); err != nil {
				logger.Error("Error closing database", zap.Error(err))
			}
		}, nil

	case config.StoreRedis:
		client, err := openRedis(cfg, logger)
		if err != nil {
			return nil, nil, noop, err
		}
		store := redis.NewAccountStore(client, logger)
		if cfg.Store.SeedDemo {
			for _, acc := range memory.DemoAccounts() {
				acc := acc
				if err := store.Put(context.Background(), &acc); err != nil {
					return nil, nil, noop, err
				}
			}
		}
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		return store, client, func() { client.Close() }, nil
	}

	var seed []domain.Account
	if cfg.Store.SeedDemo {
		seed = memory.DemoAccounts()
	}
	return memory.NewAccountStore(seed, logger), nil, noop, nil
}

// withCache wraps store with the configured display name cache. The redis
// cache reuses the store's client when there is one.
func withCache(cfg *config.Config, store ports.AccountStore, client *goredis.Client, logger *zap.Logger) (ports.AccountStore, func(), error) {
	var c ports.Cache
	closeFn := func() {}

	switch cfg.Cache.Driver {
	case config.CacheNone:
		return store, closeFn, nil
	case config.CacheRedis:
		if client == nil {
			var err error
			if client, err = openRedis(cfg, logger); err != nil {
				return nil, closeFn, err
			}
			own := client
			closeFn = func() { own.Close() }
		}
		c = cache.NewRedisCache(client, cfg.Cache.Prefix, logger)
	default:
		local := cache.NewLocalCache(cfg.Cache.SweepInterval, logger)
		closeFn = func() { local.Close() }
		c = local
	}
	return cached.NewAccountStore(store, c, cfg.Cache.TTL, logger), closeFn, nil
}

func openRedis(cfg *config.Config, logger *zap.Logger) (*goredis.Client, error) {
	return redis.NewClient(cfg.Redis.URL, redis.ClientOptions{
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	}, logger)
}

func openQueue(cfg *config.Config, logger *zap.Logger) (queue.MessageQueue, error) {
	switch cfg.Queue.Driver {
	case config.QueueNATS:
		return queue.NewNATSQueue(cfg.NATS.URL, queue.NATSOptions{
			Name:          cfg.App.Name,
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: cfg.NATS.ReconnectWait,
			Timeout:       cfg.NATS.Timeout,
		}, logger)
	case config.QueueRabbitMQ:
		return queue.NewRabbitMQQueue(cfg.RabbitMQ.URL, cfg.RabbitMQ.ReconnectWait, logger)
	}
	return nil, nil
}
