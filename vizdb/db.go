package vizdb

import (
	"database/sql"
	"fmt"
	"log"

	"lebstories.aub.edu.lb/internal/appconf"
)

// createDB creates a new SQLite database with tables for the dashboard datasets
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		log.Fatal("DB is being created in a file.", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	createTables(tx)

	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_hepatitis_cases_year ON hepatitis_cases(year);
		CREATE INDEX IF NOT EXISTS idx_dataset_loads_dataset_id ON dataset_loads(dataset_id);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating indexes: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}

func createTables(tx *sql.Tx) {
	createTable(tx, "debt_service", `
		CREATE TABLE IF NOT EXISTS debt_service (
			year INTEGER PRIMARY KEY,
			amount REAL NOT NULL
		);`)

	createTable(tx, "hepatitis_cases", `
		CREATE TABLE IF NOT EXISTS hepatitis_cases (
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			case_count INTEGER NOT NULL CHECK (case_count >= 0),
			PRIMARY KEY (year, month)
		);`)

	createTable(tx, "dataset_loads", `
		CREATE TABLE IF NOT EXISTS dataset_loads (
			dataset_id TEXT NOT NULL,
			source TEXT NOT NULL,
			status TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			skipped_rows INTEGER NOT NULL,
			loaded_at TIMESTAMP NOT NULL
		);`)
}

// createTable creates a table in the database
func createTable(tx *sql.Tx, tableName string, createStmt string) {
	_, err := tx.Exec(createStmt)
	if err != nil {
		log.Fatalf("Error creating table %s: %v", tableName, err)
	}
}
