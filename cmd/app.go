/*
Package cmd wires the application together: configuration, logging, the
persistence layer (MySQL/GORM or in-memory), the optional redis cache and
kafka relay, application services, controllers and the HTTP server.

The persistence layer is selected by database.type: "mysql" runs GORM with
the transactional outbox worker, anything else runs the in-memory
repositories, which is enough for local development and tests.
*/
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"storefront/api"
	apicart "storefront/api/cart"
	apicatalog "storefront/api/catalog"
	apicoupon "storefront/api/coupon"
	"storefront/api/health"
	apinotification "storefront/api/notification"
	apiorder "storefront/api/order"
	apireview "storefront/api/review"
	cartapp "storefront/application/cart"
	catalogapp "storefront/application/catalog"
	couponapp "storefront/application/coupon"
	notificationapp "storefront/application/notification"
	orderapp "storefront/application/order"
	reviewapp "storefront/application/review"
	"storefront/config"
	cartdomain "storefront/domain/cart"
	catalogdomain "storefront/domain/catalog"
	coupondomain "storefront/domain/coupon"
	notificationdomain "storefront/domain/notification"
	orderdomain "storefront/domain/order"
	reviewdomain "storefront/domain/review"
	"storefront/domain/shared"
	userdomain "storefront/domain/user"
	"storefront/infrastructure/cache"
	"storefront/infrastructure/messaging"
	"storefront/infrastructure/persistence/mocks"
	"storefront/infrastructure/persistence/mysql"
	"storefront/infrastructure/persistence/retry"
	"storefront/pkg/auth"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled application
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	cache  *cache.Cache
	kafka  *messaging.KafkaPublisher
	worker *mysql.OutboxWorker
}

// NewApp builds the application from configuration
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("persistence", cfg.Database.Type))

	app := &App{config: cfg}

	var (
		productRepo      catalogdomain.ProductRepository
		categoryRepo     catalogdomain.CategoryRepository
		brandRepo        catalogdomain.BrandRepository
		typeRepo         catalogdomain.TypeRepository
		countryRepo      catalogdomain.CountryRepository
		cartRepo         cartdomain.Repository
		couponRepo       coupondomain.Repository
		orderRepo        orderdomain.Repository
		reviewRepo       reviewdomain.Repository
		notificationRepo notificationdomain.Repository
		userRepo         userdomain.Repository
		uowFactory       shared.UnitOfWorkFactory
	)

	if cfg.Database.Type == "mysql" {
		db, err := mysql.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		if err := mysql.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		app.db = db

		productRepo = mysql.NewProductRepository(db)
		categoryRepo = mysql.NewCategoryRepository(db)
		brandRepo = mysql.NewBrandRepository(db)
		typeRepo = mysql.NewTypeRepository(db)
		countryRepo = mysql.NewCountryRepository(db)
		cartRepo = mysql.NewCartRepository(db)
		couponRepo = mysql.NewCouponRepository(db)
		orderRepo = mysql.NewOrderRepository(db)
		reviewRepo = mysql.NewReviewRepository(db)
		notificationRepo = mysql.NewNotificationRepository(db)
		userRepo = mysql.NewUserRepository(db)
		uowFactory = mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))
	} else {
		products := mocks.NewProductRepository()
		carts := mocks.NewCartRepository()
		coupons := mocks.NewCouponRepository()
		orders := mocks.NewOrderRepository()
		notifications := mocks.NewNotificationRepository()

		productRepo = products
		categoryRepo = mocks.NewCategoryRepository()
		brandRepo = mocks.NewBrandRepository()
		typeRepo = mocks.NewTypeRepository()
		countryRepo = mocks.NewCountryRepository()
		cartRepo = carts
		couponRepo = coupons
		orderRepo = orders
		reviewRepo = mocks.NewReviewRepository()
		notificationRepo = notifications
		userRepo = mocks.NewUserRepository()
		// Every store a unit of work closure writes to participates in
		// rollback, so a failed checkout leaves no partial state.
		uowFactory = mocks.NewUnitOfWorkFactory(products, carts, coupons, orders, notifications)
	}

	cacheClient, err := cache.New(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.cache = cacheClient

	rules := cartdomain.PricingRules{
		TaxRate:          cfg.Pricing.TaxRate,
		ShippingFlat:     cfg.Pricing.ShippingFlat,
		FreeShippingOver: cfg.Pricing.FreeShippingOver,
	}

	catalogService := catalogapp.NewApplicationService(productRepo, categoryRepo, brandRepo, typeRepo, countryRepo)
	cartService := cartapp.NewApplicationService(cartRepo, productRepo, couponRepo, orderRepo, cacheClient, rules)
	couponService := couponapp.NewApplicationService(couponRepo, orderRepo, cacheClient)
	orderService := orderapp.NewApplicationService(orderRepo, productRepo, cartRepo, couponRepo,
		userRepo, notificationRepo, uowFactory, cacheClient, rules)
	reviewService := reviewapp.NewApplicationService(reviewRepo, productRepo, orderRepo, cfg.Review.AutoApprove)
	notificationService := notificationapp.NewApplicationService(notificationRepo)

	authManager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := api.NewRouter(cfg, authManager, api.Controllers{
		Health:       health.NewController(cfg, app.sqlDB()),
		Catalog:      apicatalog.NewController(catalogService),
		Cart:         apicart.NewController(cartService),
		Coupon:       apicoupon.NewController(couponService),
		Order:        apiorder.NewController(orderService),
		Review:       apireview.NewController(reviewService),
		Notification: apinotification.NewController(notificationService),
	})
	router.SetupRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if app.db != nil && cfg.Worker.Enabled {
		if err := app.buildOutboxWorker(); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func (a *App) buildOutboxWorker() error {
	var publisher mysql.OutboxPublisher = &mysql.LoggingOutboxPublisher{}
	if a.config.Kafka.Enabled() {
		a.kafka = messaging.NewKafkaPublisher(&a.config.Kafka)
		publisher = a.kafka
	}

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(a.db),
		publisher,
		a.config.Worker.PollInterval,
		a.config.Worker.BatchSize,
		a.config.Worker.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}
	a.worker = worker
	return nil
}

func (a *App) sqlDB() *sql.DB {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}

// Run starts the HTTP server and the outbox worker and blocks until a
// shutdown signal arrives
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if a.worker != nil {
		go func() {
			if err := a.worker.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Outbox worker exited", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	a.close()

	logger.Info("Stopped")
	return nil
}

func (a *App) close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			logger.Warn("Kafka close failed", zap.Error(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		logger.Warn("Redis close failed", zap.Error(err))
	}
	if sqlDB := a.sqlDB(); sqlDB != nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Database close failed", zap.Error(err))
		}
	}
	_ = logger.Sync()
}

// GetEngine exposes the gin engine for tests
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
