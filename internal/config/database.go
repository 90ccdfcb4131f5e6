package config

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB اتصال به دیتابیس (MySQL یا SQLite) را باز می‌کند
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// تبدیل خطای unique به gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// SQLite فقط یک writer دارد
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// WaitForDB تا زمانی که دیتابیس در دسترس شود هر interval یکبار تلاش می‌کند
func WaitForDB(ctx context.Context, driver, dsn string, interval time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	logger.Info("Waiting for database...")
	for {
		db, err := OpenDB(driver, dsn)
		if err == nil {
			if err = ping(ctx, db); err == nil {
				logger.Info("✅ Database available")
				return db, nil
			}
			CloseDB(db, logger)
		}
		logger.Warn("Database unavailable, retrying", zap.Duration("interval", interval), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database not available: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CloseDB بستن اتصال دیتابیس
func CloseDB(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
