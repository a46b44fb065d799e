// Package database provides database connection and migration management.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plume/internal/config"
	"plume/internal/middleware"
	"plume/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CustomGormLogger routes GORM logs through the structured logger.
type CustomGormLogger struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// LogMode implements the gorm logger.Interface. Level filtering is delegated
// to slog so the mode is a no-op here.
func (l *CustomGormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

// Info logs informational messages from GORM.
func (l *CustomGormLogger) Info(ctx context.Context, msg string, data ...any) {
	middleware.Logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
}

// Warn logs warning messages from GORM.
func (l *CustomGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	middleware.Logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

// Error logs error messages from GORM.
func (l *CustomGormLogger) Error(ctx context.Context, msg string, data ...any) {
	middleware.Logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

// Trace logs SQL queries with duration and row counts.
func (l *CustomGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && (!l.IgnoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)):
		middleware.Logger.ErrorContext(ctx, "query failed",
			"error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold:
		middleware.Logger.WarnContext(ctx, "slow query",
			"sql", sql, "rows", rows, "elapsed", elapsed)
	default:
		middleware.Logger.DebugContext(ctx, "query",
			"sql", sql, "rows", rows, "elapsed", elapsed)
	}
}

// Connect establishes a database connection using the provided configuration.
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: &CustomGormLogger{
			SlowThreshold:             200 * time.Millisecond,
			IgnoreRecordNotFoundError: true,
		},
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBName)
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// A shared in-memory SQLite database lives as long as one connection
		// stays open, and a single connection avoids table-lock errors.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	isProduction := cfg.Env == "production" || cfg.Env == "prod"
	if !isProduction {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	middleware.Logger.Info("Database connection established", "driver", cfg.DBDriver)
	return db, nil
}

// Migrate runs schema auto-migration for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
