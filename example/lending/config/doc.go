// Package config creates the PostgreSQL connections of the lending example, one factory per
// supported driver (pgxpool, database/sql with lib/pq, sqlx with lib/pq).
package config
