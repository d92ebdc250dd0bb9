// ABOUTME: Database connection management and initialization
// ABOUTME: Opens SQLite with WAL mode and foreign keys, bundles repositories into a Store
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

func OpenDatabase(path string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// WAL for concurrent readers, foreign keys so ON DELETE CASCADE fires
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Configure connection pool for SQLite (avoid database locked errors)
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// DBTX is the query surface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store owns the database handle and the per-entity repositories.
type Store struct {
	DB         *sql.DB
	Customers  *CustomerRepository
	Contacts   *ContactRepository
	Deals      *DealRepository
	Activities *ActivityRepository
	Stats      *StatsRepository
}

// NewStore wraps an already-open database.
func NewStore(database *sql.DB) *Store {
	return &Store{
		DB:         database,
		Customers:  NewCustomerRepository(database),
		Contacts:   NewContactRepository(database),
		Deals:      NewDealRepository(database),
		Activities: NewActivityRepository(database),
		Stats:      NewStatsRepository(database),
	}
}

// Open opens the database at path and returns a ready Store.
func Open(path string) (*Store, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewStore(database), nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// InTx runs fn with repositories bound to one transaction. The transaction
// commits when fn returns nil and rolls back otherwise. The Store passed to
// fn has no DB handle; the pool holds a single connection, so fn must only
// use its repositories.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &Store{
		Customers:  NewCustomerRepository(tx),
		Contacts:   NewContactRepository(tx),
		Deals:      NewDealRepository(tx),
		Activities: NewActivityRepository(tx),
		Stats:      NewStatsRepository(tx),
	}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
