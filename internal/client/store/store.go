// Package store opens the ganfan data store and wires its repositories.
//
// Household data lives either in a local SQLite file or in a hosted Postgres
// database. The session slot always lives in a local SQLite file: with the
// SQLite backend it is the same file, with Postgres it is a separate state
// file so that each terminal keeps its own login.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ganfan/internal/client/migrations"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/dinners"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/dishes"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/orders"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/reviews"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/users"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Options selects the backend.
type Options struct {
	Dialect dbx.Dialect
	// DSN of the data store.
	DSN string
	// StateDSN is the local SQLite DSN for the session slot. Ignored for the
	// SQLite backend.
	StateDSN string
}

// Store owns the database handles and the repositories built on them.
type Store struct {
	Dialect  dbx.Dialect
	Users    users.Repository
	Dishes   dishes.Repository
	Dinners  dinners.Repository
	Orders   orders.Repository
	Reviews  reviews.Repository
	Metadata metadata.Repository

	db    *sql.DB
	state *sql.DB
}

// test seam
var sqlOpen = sql.Open

// Open connects, migrates and returns a ready store.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Dialect != dbx.SQLite && opts.StateDSN == "" {
		return nil, errors.New("state dsn is required for a remote store")
	}

	db, err := openMigrated(ctx, opts.Dialect, opts.DSN)
	if err != nil {
		return nil, err
	}

	s := &Store{Dialect: opts.Dialect, db: db, state: db}
	if opts.Dialect != dbx.SQLite {
		state, err := openMigrated(ctx, dbx.SQLite, opts.StateDSN)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		s.state = state
	}

	s.Users = users.NewSQLRepository(s.db, opts.Dialect)
	s.Dishes = dishes.NewSQLRepository(s.db, opts.Dialect)
	s.Dinners = dinners.NewSQLRepository(s.db, opts.Dialect)
	s.Orders = orders.NewSQLRepository(s.db, opts.Dialect)
	s.Reviews = reviews.NewSQLRepository(s.db, opts.Dialect)
	s.Metadata = metadata.NewSQLRepository(s.state, dbx.SQLite)
	return s, nil
}

func openMigrated(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sqlOpen(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dialect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s store: %w", dialect, err)
	}
	if err := migrations.Up(ctx, db, dialect.GooseDialect()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DB is the data store handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases both handles.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.state != s.db {
		err = errors.Join(err, s.state.Close())
	}
	return err
}
