package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create members table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS members (
			id VARCHAR(36) PRIMARY KEY,
			member_id VARCHAR(64) UNIQUE NOT NULL,
			name_en VARCHAR(255) NOT NULL,
			name_bn VARCHAR(255) NOT NULL,
			mobile VARCHAR(32) NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			nid_url TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			payment_type VARCHAR(10) NOT NULL,
			fixed_amount BIGINT NOT NULL DEFAULT 0,
			role VARCHAR(12) NOT NULL,
			status VARCHAR(10) NOT NULL,
			password VARCHAR(255) NOT NULL,
			joined_date TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create payments table. seq preserves insertion order, which the balance
	// views rely on for "last payment".
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS payments (
			id VARCHAR(36) PRIMARY KEY,
			seq BIGSERIAL,
			member_id VARCHAR(64) NOT NULL,
			amount BIGINT NOT NULL,
			fine_amount BIGINT NOT NULL DEFAULT 0,
			total_paid BIGINT NOT NULL,
			date TIMESTAMP NOT NULL,
			status VARCHAR(10) NOT NULL,
			type VARCHAR(10) NOT NULL,
			admin_id VARCHAR(36) NOT NULL DEFAULT '',
			remarks TEXT NOT NULL DEFAULT '',
			transaction_id VARCHAR(128) NOT NULL DEFAULT '',
			sender_number VARCHAR(32) NOT NULL DEFAULT '',
			method_name VARCHAR(255) NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	// Create payment methods table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS methods (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			number VARCHAR(64) NOT NULL,
			instructions TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	// Create notices table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS notices (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create settings table (single row keyed by a fixed id)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			id VARCHAR(36) PRIMARY KEY,
			app_name VARCHAR(255) NOT NULL,
			logo_url TEXT NOT NULL DEFAULT '',
			enable_notifications BOOLEAN NOT NULL DEFAULT FALSE,
			telegram_bot_token VARCHAR(255) NOT NULL DEFAULT '',
			telegram_chat_id VARCHAR(64) NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_payments_member_id ON payments(member_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)",
		"CREATE INDEX IF NOT EXISTS idx_notices_created_at ON notices(created_at)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
