// Command server runs the storefront and admin panel API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"velora/internal/admin"
	adminhandler "velora/internal/admin/handler"
	"velora/internal/audit"
	"velora/internal/catalog"
	cataloghandler "velora/internal/catalog/handler"
	"velora/internal/customer"
	customerhandler "velora/internal/customer/handler"
	httpapi "velora/internal/http"
	"velora/internal/order"
	"velora/internal/order/adapters"
	orderhandler "velora/internal/order/handler"
	"velora/internal/platform/config"
	"velora/internal/platform/httpserver"
	"velora/internal/platform/logger"
	"velora/internal/platform/metrics"
	"velora/internal/platform/postgres"
	platformredis "velora/internal/platform/redis"
	"velora/internal/token"
)

const tokenIssuer = "velora"

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	// Stores: postgres when configured, in-memory for local development.
	var (
		categoryStore catalog.CategoryStore
		productStore  catalog.ProductStore
		userStore     customer.Store
		adminStore    admin.Store
		orderStore    order.Store
	)
	if cfg.DatabaseURL != "" {
		if err := postgres.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
			return err
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		categoryStore = catalog.NewPostgresCategoryStore(pool)
		productStore = catalog.NewPostgresProductStore(pool)
		userStore = customer.NewPostgresStore(pool)
		adminStore = admin.NewPostgresStore(pool)
		orderStore = order.NewPostgresStore(pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		categoryStore = catalog.NewInMemoryCategoryStore()
		productStore = catalog.NewInMemoryProductStore()
		userStore = customer.NewInMemoryStore()
		adminStore = admin.NewInMemoryStore()
		orderStore = order.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit trail: Kafka when brokers are configured, in-process otherwise.
	publisher := audit.NewPublisher(256, log)
	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	} else {
		log.Warn("KAFKA_BROKERS not set, audit events stay in process")
		sink = audit.NewMemorySink()
	}
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	customerTokens := token.NewService(cfg.CustomerVerifySecrets(), tokenIssuer)
	adminTokens := token.NewService(cfg.AdminVerifySecrets(), tokenIssuer)

	catalogOpts := []catalog.Option{catalog.WithMetrics(m)}
	if redisClient != nil {
		catalogOpts = append(catalogOpts,
			catalog.WithCache(catalog.NewCache(redisClient, cfg.CatalogCacheTTL, log)))
	}
	catalogSvc := catalog.NewService(categoryStore, productStore, catalogOpts...)
	customerSvc := customer.NewService(userStore, customerTokens, cfg.CustomerTokenTTL,
		customer.WithBcryptCost(cfg.BcryptCost), customer.WithMetrics(m))
	orderSvc := order.NewService(orderStore,
		order.WithUserDirectory(adapters.NewCustomerDirectory(customerSvc)),
		order.WithMetrics(m))
	adminSvc := admin.NewService(adminStore, adminTokens, cfg.AdminTokenTTL,
		admin.WithBcryptCost(cfg.BcryptCost))

	router := httpapi.NewRouter(httpapi.Config{
		Logger:           log,
		Metrics:          m,
		AllowedOrigins:   cfg.AllowedOrigins,
		CustomerVerifier: customerTokens,
		AdminVerifier:    adminTokens,
		Catalog:          cataloghandler.New(catalogSvc, publisher, log),
		Customers:        customerhandler.New(customerSvc, publisher, cfg.CustomerTokenTTL, cfg.CookieSecure, log),
		Orders:           orderhandler.New(orderSvc, publisher, log),
		Admins:           adminhandler.New(adminSvc, publisher, cfg.AdminTokenTTL, cfg.CookieSecure, log),
		Health: func(r *http.Request) error {
			if redisClient != nil {
				return redisClient.Health(r.Context())
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting velora api", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}
