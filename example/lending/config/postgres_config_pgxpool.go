package config

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPGXPoolConfig parses dsn into a pgxpool.Config sized for a small CLI.
func PostgresPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	const maxConnections = int32(4)
	const minConnections = int32(1)
	const maxConnLifetime = time.Hour
	const maxConnIdleTime = 5 * time.Minute
	const healthCheckPeriod = time.Minute
	const connectTimeout = 5 * time.Second

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = maxConnections
	poolConfig.MinConns = minConnections
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	return poolConfig, nil
}
