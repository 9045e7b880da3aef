package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDatabase initializes SQLite database and creates tables
func InitDatabase(dbPath string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=1")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("Database initialized at: %s", dbPath)
	return nil
}

// createTables creates all necessary tables
func createTables() error {
	createAttemptsTable := `
	CREATE TABLE IF NOT EXISTS activity_attempts (
		id TEXT PRIMARY KEY,
		deck_key TEXT NOT NULL,
		slide_id TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		correct_count INTEGER NOT NULL DEFAULT 0,
		total_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := DB.Exec(createAttemptsTable); err != nil {
		return fmt.Errorf("failed to create activity_attempts table: %w", err)
	}

	// Create index on deck_key for per-deck history lookups
	createDeckIndex := `CREATE INDEX IF NOT EXISTS idx_deck_key ON activity_attempts(deck_key);`
	if _, err := DB.Exec(createDeckIndex); err != nil {
		return fmt.Errorf("failed to create deck_key index: %w", err)
	}

	// Create index on created_at for newest-first ordering
	createTimeIndex := `CREATE INDEX IF NOT EXISTS idx_created_at ON activity_attempts(created_at);`
	if _, err := DB.Exec(createTimeIndex); err != nil {
		return fmt.Errorf("failed to create created_at index: %w", err)
	}

	log.Println("Database tables created successfully")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
