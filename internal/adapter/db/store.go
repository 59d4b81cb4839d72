package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"housetasks/internal/core/ports"
)

// Store opens one SQL transaction per unit of work and hands the callback a
// repository bound to it.
type Store struct {
	db      *sqlx.DB
	dialect dialect
}

var _ ports.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, dialect: dialectFor(db.DriverName())}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) run(ctx context.Context, write bool, fn func(ctx context.Context, tx ports.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repo := &repository{tx: tx, dialect: s.dialect, locking: write}
	if err := fn(ctx, repo); err != nil {
		_ = tx.Rollback()
		return err
	}

	if !write {
		return tx.Rollback()
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
