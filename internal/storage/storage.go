package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/warwickallen/allen-app-challenge-2026/internal/config"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/session"
)

// Storage is the persistence gateway. Reads go through the embedded Reader on
// the pooled connection; writes open a Writer bound to one database transaction.
type Storage struct {
	DB *sql.DB
	db bob.DB

	Reader
	Sessions session.ISessionTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return FromDB(db), nil
}

// FromDB wraps an already opened connection pool.
func FromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:       db,
		db:       bobDB,
		Reader:   NewReader(bobDB),
		Sessions: session.NewTable(bobDB),
	}
}

// Write begins a database transaction. The caller must Commit or Rollback the
// returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
