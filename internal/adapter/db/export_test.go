package db

import "github.com/jmoiron/sqlx"

// NewStoreForDialect builds a store that writes the SQL of driverName while
// talking to db, whatever driver db was opened with.
func NewStoreForDialect(db *sqlx.DB, driverName string) *Store {
	return &Store{db: db, dialect: dialectFor(driverName)}
}
