// Package cmd assembles the application: configuration, logging, the
// persistence layer (MySQL or in-memory), the HTTP server and the outbox
// stats worker.
package cmd

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"foody/api"
	apicart "foody/api/cart"
	"foody/api/health"
	apiorder "foody/api/order"
	apireview "foody/api/review"
	cartapp "foody/application/cart"
	orderapp "foody/application/order"
	reviewapp "foody/application/review"
	"foody/config"
	"foody/domain/cart"
	"foody/domain/catalog"
	"foody/domain/order"
	"foody/domain/review"
	"foody/domain/shared"
	"foody/domain/voucher"
	"foody/infrastructure/persistence/mocks"
	"foody/infrastructure/persistence/mysql"
	"foody/infrastructure/persistence/redis"
	"foody/infrastructure/persistence/retry"
	"foody/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App wires the whole service together.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	worker *mysql.OutboxWorker
}

type repositories struct {
	carts    cart.Repository
	orders   order.Repository
	products catalog.ProductReader
	shops    catalog.ShopReader
	reviews  review.Repository
	vouchers voucher.Validator

	// Browse-path readers. Cached wrappers when redis is enabled; the
	// products/shops fields above always read the store of record.
	browseProducts catalog.ProductReader
	browseShops    catalog.ShopReader

	uowFactory shared.UnitOfWorkFactory
	worker     *mysql.OutboxWorker
	sqlDB      *sql.DB
}

// NewApp builds the application from configuration.
func NewApp(cfg *config.Config) *App {
	var db *gorm.DB
	var repos repositories

	switch cfg.Database.Type {
	case "mysql":
		db, repos = initMySQL(cfg)
	default:
		logger.Info("Using in-memory persistence layer")
		repos = initMocks()
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		enableCatalogCache(&repos, client, cfg.Redis.TTL)
		logger.Info("Catalog cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// The cart service browses: stale catalog reads there cost nothing an
	// order would not re-check. The order service re-validates shops and
	// products inside its transaction, so it keeps the uncached readers.
	cartService := cartapp.NewApplicationService(repos.carts, repos.browseProducts, repos.browseShops, repos.uowFactory)
	orderService := orderapp.NewApplicationService(repos.orders, repos.carts, repos.products, repos.shops, repos.vouchers, repos.uowFactory)
	reviewService := reviewapp.NewApplicationService(repos.reviews, repos.orders, repos.uowFactory)

	router := api.NewRouter(
		cfg,
		health.NewController(cfg, repos.sqlDB),
		apicart.NewController(cartService),
		apiorder.NewController(orderService),
		apireview.NewController(reviewService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
		worker: repos.worker,
	}
}

// enableCatalogCache routes the browse-path catalog reads through redis.
// The store-of-record readers stay untouched so order creation always
// re-validates against committed state.
func enableCatalogCache(repos *repositories, client *goredis.Client, ttl time.Duration) {
	repos.browseProducts = redis.NewCachedProductReader(repos.products, client, ttl)
	repos.browseShops = redis.NewCachedShopReader(repos.shops, client, ttl)
}

func initMySQL(cfg *config.Config) (*gorm.DB, repositories) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := mysql.Connect(mysql.FromAppConfig(cfg))
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}
	logger.Info("Connected to MySQL successfully")

	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}

	reviewRepo := mysql.NewReviewRepository(db)
	outboxRepo := mysql.NewOutboxRepository(db)
	projector := mysql.NewStatsProjector(mysql.NewStatsRepository(db), reviewRepo)
	worker, err := mysql.NewOutboxWorker(
		outboxRepo,
		projector,
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
		cfg.Database.Retry.MaxAttempts,
	)
	if err != nil {
		logger.Fatal("Failed to create outbox worker", zap.Error(err))
	}

	products := mysql.NewCatalogRepository(db)
	shops := mysql.NewShopRepository(db)

	return db, repositories{
		carts:          mysql.NewCartRepository(db),
		orders:         mysql.NewOrderRepository(db),
		products:       products,
		shops:          shops,
		reviews:        reviewRepo,
		vouchers:       mysql.NewVoucherRepository(db),
		browseProducts: products,
		browseShops:    shops,
		uowFactory:     mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg)),
		worker:         worker,
		sqlDB:          sqlDB,
	}
}

func initMocks() repositories {
	catalogRepo := mocks.NewCatalogRepository()
	shopReader := mocks.NewShopReader(catalogRepo)
	carts := mocks.NewCartRepository()
	orders := mocks.NewOrderRepository()
	reviews := mocks.NewReviewRepository()

	return repositories{
		carts:          carts,
		orders:         orders,
		products:       catalogRepo,
		shops:          shopReader,
		reviews:        reviews,
		vouchers:       mocks.NewVoucherValidator(),
		browseProducts: catalogRepo,
		browseShops:    shopReader,
		uowFactory:     mocks.NewUnitOfWorkFactory(carts, orders, reviews),
	}
}

// Run starts the HTTP server and the outbox worker, then blocks until ctx
// is cancelled and shuts both down gracefully.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if a.worker != nil {
		go func() {
			if err := a.worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Outbox worker stopped", zap.Error(err))
			}
		}()
		logger.Info("Outbox stats worker started",
			zap.Duration("poll_interval", a.config.Worker.PollInterval),
			zap.Int("batch_size", a.config.Worker.BatchSize))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("Server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
