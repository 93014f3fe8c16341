package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a global variable to hold the database connection pool.
var DB *pgxpool.Pool

// InitDB sets up the database connection pool.
func InitDB(databaseURL string) {
	var err error
	DB, err = pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	// Optional: Check if the connection is actually working
	err = DB.Ping(context.Background())
	if err != nil {
		log.Fatalf("Database ping failed: %v\n", err)
	}

	log.Println("Successfully connected to the database")
}

// GetDB returns the shared connection pool.
func GetDB() *pgxpool.Pool {
	return DB
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection pool closed")
	}
}

// InitSchema creates the tables the service needs if they do not exist yet.
// The sales table is append-only; forecasts read it, uploads and the add
// endpoints write it.
func InitSchema() {
	ctx := context.Background()
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			invoice_date DATE NOT NULL,
			product_id BIGINT,
			customer_id BIGINT,
			qty BIGINT,
			price DOUBLE PRECISION,
			total DOUBLE PRECISION NOT NULL,
			batch_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_invoice_date ON sales (invoice_date)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales (product_id)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT,
			price DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			address TEXT,
			created_at DATE NOT NULL DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE IF NOT EXISTS upload_batches (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			filename TEXT NOT NULL,
			row_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			log.Fatalf("Schema init failed: %v\n", err)
		}
	}
	log.Println("Database schema ready")
}
