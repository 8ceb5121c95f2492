// Package storage persists assembled Records to Postgres and archives
// their canonical JSON form to object storage.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docextract/docextract/internal/model"
)

// Pool is the global database connection pool. Nil when no database is
// configured — the service runs in extraction-only mode without it.
var Pool *pgxpool.Pool

// Init opens the connection pool from DATABASE_URL, or from the
// individual DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME variables when
// that is unset. Returns an error (not a panic) when no database is
// configured, so the caller can run without persistence.
func Init() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := os.Getenv("DB_HOST")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		if host == "" || user == "" || dbname == "" {
			return fmt.Errorf("no database configuration found")
		}
		databaseURL = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, dbname)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	Pool = pool
	return nil
}

// Close releases the connection pool.
func Close() {
	if Pool != nil {
		Pool.Close()
	}
}

// StoredRecord is a persisted Record plus its generated identifier and
// storage timestamp.
type StoredRecord struct {
	ID        uuid.UUID   `json:"id"`
	Record    model.Record `json:"record"`
	CreatedAt time.Time   `json:"created_at"`
}

// SaveRecord inserts record into the extracted_records table, storing the
// canonical model as JSONB alongside a handful of indexed summary
// columns used for listing without re-parsing the JSON body.
func SaveRecord(ctx context.Context, record model.Record) (uuid.UUID, error) {
	if Pool == nil {
		return uuid.Nil, fmt.Errorf("no database connection configured")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	id := uuid.New()
	const query = `
		INSERT INTO extracted_records (
			id, document_type, supplier_name, grand_total, confidence_score, body
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = Pool.Exec(ctx, query,
		id,
		string(record.Metadata.DocumentType),
		record.Supplier.Name,
		record.Totals.GrandTotal.String(),
		record.Metadata.ConfidenceScore,
		body,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save record: %w", err)
	}
	return id, nil
}

// GetRecord retrieves a previously saved Record by id.
func GetRecord(ctx context.Context, id uuid.UUID) (model.Record, error) {
	var record model.Record
	if Pool == nil {
		return record, fmt.Errorf("no database connection configured")
	}

	var body []byte
	const query = `SELECT body FROM extracted_records WHERE id = $1`
	if err := Pool.QueryRow(ctx, query, id).Scan(&body); err != nil {
		return record, fmt.Errorf("failed to fetch record: %w", err)
	}
	if err := json.Unmarshal(body, &record); err != nil {
		return record, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}

// ListRecords returns the most recent stored records, newest first.
func ListRecords(ctx context.Context, limit int) ([]StoredRecord, error) {
	if Pool == nil {
		return nil, fmt.Errorf("no database connection configured")
	}

	const query = `
		SELECT id, body, created_at
		FROM extracted_records
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var sr StoredRecord
		var body []byte
		if err := rows.Scan(&sr.ID, &body, &sr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal(body, &sr.Record); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		out = append(out, sr)
	}
	return out, nil
}
