// Command lend lends a book to a reader using the PostgreSQL catalog of the lending example.
//
//	lend -book 6f1c... -reader 0b7e... [-driver pgx|sql|sqlx] [-dsn postgres://...] [-max 5]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/substitute-go/example/lending"
	"github.com/AntonStoeckl/substitute-go/example/lending/adapters"
	"github.com/AntonStoeckl/substitute-go/example/lending/config"
)

const (
	driverPGX  = "pgx"
	driverSQL  = "sql"
	driverSQLX = "sqlx"
)

var errUnknownDriver = errors.New("unknown driver")

type cliConfig struct {
	driver   string
	dsn      string
	bookID   uuid.UUID
	readerID uuid.UUID
	maxBooks int
	branch   string
	verbose  bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("lending failed", "error", err.Error())
		os.Exit(1)
	}
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	var bookID, readerID string

	flags := flag.NewFlagSet("lend", flag.ContinueOnError)
	flags.StringVar(&cfg.driver, "driver", driverPGX, "database driver: pgx, sql or sqlx")
	flags.StringVar(&cfg.dsn, "dsn", config.PostgresDSN(), "PostgreSQL DSN (default from "+config.DSNEnvVar+")")
	flags.StringVar(&bookID, "book", "", "ID of the book to lend")
	flags.StringVar(&readerID, "reader", "", "ID of the reader")
	flags.IntVar(&cfg.maxBooks, "max", 5, "maximum number of books a reader may have lent")
	flags.StringVar(&cfg.branch, "branch", "", "library branch stored with the lending")
	flags.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := flags.Parse(args); err != nil {
		return cliConfig{}, err
	}

	var err error

	if cfg.bookID, err = uuid.Parse(bookID); err != nil {
		return cliConfig{}, fmt.Errorf("invalid -book: %w", err)
	}

	if cfg.readerID, err = uuid.Parse(readerID); err != nil {
		return cliConfig{}, fmt.Errorf("invalid -reader: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, cfg cliConfig, logger *slog.Logger) error {
	db, closeDB, err := openAdapter(ctx, cfg.driver, cfg.dsn)
	if err != nil {
		return err
	}
	defer closeDB()

	catalog, err := lending.NewPostgresCatalog(db, lending.WithCatalogLogger(logger))
	if err != nil {
		return err
	}

	service, err := lending.NewLendingService(
		catalog,
		lending.WithMaxBooksPerReader(cfg.maxBooks),
		lending.WithServiceLogger(logger),
	)
	if err != nil {
		return err
	}

	lentBook, err := service.Lend(ctx, cfg.bookID, cfg.readerID, lending.Metadata{Branch: cfg.branch})
	if err != nil {
		return err
	}

	fmt.Printf("lent %s to %s at %s\n", lentBook.BookID, lentBook.ReaderID, lentBook.LentAt.Format("2006-01-02 15:04:05"))

	return nil
}

func openAdapter(ctx context.Context, driver, dsn string) (adapters.DBAdapter, func(), error) {
	switch driver {
	case driverPGX:
		poolConfig, err := config.PostgresPGXPoolConfig(dsn)
		if err != nil {
			return nil, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, err
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		return adapters.NewPGXAdapter(pool), pool.Close, nil

	case driverSQL:
		db, err := config.PostgresSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		return adapters.NewSQLAdapter(db), func() { _ = db.Close() }, nil

	case driverSQLX:
		db, err := config.PostgresSQLXDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		return adapters.NewSQLXAdapter(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownDriver, driver)
	}
}
