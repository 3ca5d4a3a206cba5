// Package store opens the SQLite database and creates the schema.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path and ensures the schema exists.
// Use ":memory:" for an in-memory database (tests).
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and lets
	// SQLite serialize writes; this service has no concurrency model
	// that would benefit from more.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// createTables creates the products and inventory_history tables if they
// do not exist. All DDL runs in one transaction so a partial schema is
// never left behind.
func createTables(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	productTable := `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			unit TEXT,
			category TEXT,
			brand TEXT,
			stock INTEGER NOT NULL DEFAULT 0,
			status TEXT,
			image TEXT,
			UNIQUE(name)
		)`
	if _, err := tx.Exec(productTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}

	historyTable := `
		CREATE TABLE IF NOT EXISTS inventory_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER NOT NULL,
			old_quantity INTEGER NOT NULL,
			new_quantity INTEGER NOT NULL,
			change_date TEXT NOT NULL,
			user_info TEXT DEFAULT 'admin',
			FOREIGN KEY(product_id) REFERENCES products(id)
		)`
	if _, err := tx.Exec(historyTable); err != nil {
		return fmt.Errorf("create inventory_history table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}

	return nil
}
