package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ledgerbot/ledger/common/log"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v4/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Querier is any object that can query the database.
type Querier interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

var _ Querier = (*pgxpool.Pool)(nil)
var _ pgxscan.Querier = (*pgxpool.Pool)(nil)

type DB struct {
	*pgxpool.Pool

	aesKey [32]byte
}

// Options configures New.
type Options struct {
	// AESKey is used to encrypt archived messages. It is hashed to get a 32-byte key.
	AESKey string
	// NoMigrate disables running migrations on startup.
	NoMigrate bool
}

func New(ctx context.Context, postgres string, opts Options) (*DB, error) {
	if !opts.NoMigrate {
		n, err := RunMigrations(postgres)
		if err != nil {
			return nil, errors.Wrap(err, "running migrations")
		}
		if n != 0 {
			log.Infof("Performed %v migrations!", n)
		}
	}

	pool, err := pgxpool.Connect(ctx, postgres)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	return &DB{
		Pool:   pool,
		aesKey: sha256.Sum256([]byte(opts.AESKey)),
	}, nil
}

//go:embed migrations
var fs embed.FS

// RunMigrations runs all of the migrations in migrations/, and returns the number of migrations applied.
func RunMigrations(postgres string) (n int, err error) {
	db, err := sql.Open("pgx", postgres)
	if err != nil {
		return 0, errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return 0, errors.Wrap(err, "pinging database")
	}

	// set up migrations from the embedded filesystem
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	migrate.SetTable("migration_history")

	n, err = migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return 0, errors.Wrap(err, "running migrations")
	}
	return n, nil
}

// IsNotFound returns true if err is caused by a query returning no rows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
