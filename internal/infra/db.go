package infra

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/extra/bunotel"
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
)

// isSQLite reports whether dsn points at a SQLite database and returns the DSN the driver expects.
func isSQLite(dsn string) (string, bool) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return strings.TrimPrefix(dsn, "sqlite:"), true
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return dsn, true
	}
	return dsn, false
}

// OpenDB opens the database described by conf.DatabaseDSN and pings it.
func OpenDB(conf *appconfig.Config) (*bun.DB, error) {
	var db *bun.DB

	if dsn, ok := isSQLite(conf.DatabaseDSN); ok {
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		// a single connection keeps shared in-memory databases alive and serializes writes
		sqldb.SetMaxOpenConns(1)
		sqldb.SetConnMaxLifetime(0)
		sqldb.SetConnMaxIdleTime(0)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	} else {
		pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(conf.DatabaseDSN)))
		pgdb.SetMaxOpenConns(conf.DatabaseMaxOpenConns)
		pgdb.SetMaxIdleConns(conf.DatabaseMaxIdleConns)
		pgdb.SetConnMaxLifetime(conf.DatabaseConnMaxLifeTime)
		pgdb.SetConnMaxIdleTime(conf.DatabaseConnMaxIdleTime)
		db = bun.NewDB(pgdb, pgdialect.New())
	}

	if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(conf.BunDebugVerbose),
		))
	}
	if conf.TracingEnabled {
		db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName("hrbaforms")))
	}

	attempts := conf.DatabasePingAttempts
	if attempts == 0 {
		attempts = 1
	}
	err := retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			return db.PingContext(ctx)
		},
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Err(err).
				Str("evt.name", "infra.database.ping.retry").
				Uint("attempt", n+1).
				Msg("database not reachable yet")
		}),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func Database(lc fx.Lifecycle, conf *appconfig.Config) (*bun.DB, error) {
	db, err := OpenDB(conf)
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "infra.database.open.failed").
			Msg("failed to open database")
		return nil, err
	}

	log.Info().
		Str("evt.name", "infra.database.opened").
		Str("dialect", db.Dialect().Name().String()).
		Msg("database connected")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}
