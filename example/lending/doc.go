// Package lending is a small book-lending service with a PostgreSQL catalog.
//
// It is the worked example of substitute-go: the service is tested against a substitute
// BookCatalog, and the catalog is tested against substitute database adapters, without a
// database.
package lending
