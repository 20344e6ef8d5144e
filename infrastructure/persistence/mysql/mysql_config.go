package mysql

import (
	"fmt"
	"time"

	"storefront/config"
	"storefront/infrastructure/persistence/mysql/po"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = 10 * time.Minute
)

func parseLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

// Connect opens the database and configures the connection pool
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database

	gormConfig := &gorm.Config{
		Logger: logger.NewGormLoggerAdapter(parseLogLevel(cfg.Log.Level)),
	}

	db, err := gorm.Open(mysql.Open(dbCfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := dbCfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenConns
	}
	maxIdle := dbCfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	lifetime := dbCfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = DefaultConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	logger.Info("Database connected",
		zap.String("host", dbCfg.Host),
		zap.String("database", dbCfg.Database),
		zap.Int("max_open_conns", maxOpen),
		zap.Int("max_idle_conns", maxIdle),
	)

	return db, nil
}

// Migrate creates or updates the schema for every persistence object
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.ProductPO{},
		&po.CategoryPO{},
		&po.BrandPO{},
		&po.ProductTypePO{},
		&po.CountryPO{},
		&po.CartPO{},
		&po.CouponPO{},
		&po.CouponUsagePO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.OrderStatusPO{},
		&po.OrderSequencePO{},
		&po.ReviewPO{},
		&po.NotificationPO{},
		&po.UserPO{},
		&po.OutboxEventPO{},
	)
}
