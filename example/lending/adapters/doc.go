// Package adapters lets the lending catalog run on pgxpool.Pool, sql.DB or sqlx.DB.
//
// Each adapter presents the driver behind the same small DBAdapter interface, which is also the
// seam the catalog tests replace with substitutes.
package adapters
