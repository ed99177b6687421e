// Package database contains the concrete implementation of the persistence layer using GORM.
// SQLite, PostgreSQL and MySQL are supported through the configured driver.
package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"agriconnect/config"
	"agriconnect/internal/domain/lifecycle"
	"agriconnect/internal/errors"
	"agriconnect/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database, migrates the schema and ties the pool to the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping database")
			}

			if params.Config.Database.AutoMigrate {
				if err := Migrate(db.WithContext(ctx)); err != nil {
					return err
				}
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the configured driver without touching the schema.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{
		// Explicit transactions go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(logger, cfg),
	}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.Database.SQLite.Path)), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open SQLite database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
		}
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)

	case config.DriverPostgres:
		db, err = pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}
		db = db.Session(&gorm.Session{
			SkipDefaultTransaction: true,
			Logger:                 gormCfg.Logger,
		})
		db.Config.TranslateError = true

	case config.DriverMySQL:
		db, err = gorm.Open(mysql.Open(cfg.Database.MySQL.DSN), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open MySQL database")
		}

	default:
		return nil, errors.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}

	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}

	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Database pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Database pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
