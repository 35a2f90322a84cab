package config

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const driverName = "postgres"

type pooledDB interface {
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
	SetConnMaxLifetime(d time.Duration)
	SetConnMaxIdleTime(d time.Duration)
	PingContext(ctx context.Context) error
	Close() error
}

// PostgresSQLDB opens and pings a *sql.DB for dsn using lib/pq.
func PostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if err := configurePool(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// PostgresSQLXDB opens and pings a *sqlx.DB for dsn using lib/pq.
func PostgresSQLXDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if err := configurePool(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func configurePool(ctx context.Context, db pooledDB) error {
	const maxOpenConnections = 4
	const maxIdleConnections = 2
	const maxConnLifetime = time.Hour
	const maxConnIdleTime = 5 * time.Minute

	db.SetMaxOpenConns(maxOpenConnections)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxLifetime(maxConnLifetime)
	db.SetConnMaxIdleTime(maxConnIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	return nil
}
