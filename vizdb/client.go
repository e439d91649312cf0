// Package vizdb stores the normalized dashboard datasets in SQLite.
package vizdb

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client is the main entry point for the storage layer
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create database: %w", err)
	}

	if config.verbose {
		log.Println("Successfully created tables")
	}

	client := &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
	}
	return client, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// Queries provides read access to the stored datasets
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}
