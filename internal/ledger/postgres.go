package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/scanstation/receipt-ocr/internal/logger"
	"github.com/scanstation/receipt-ocr/internal/models"
)

// PostgresLedger stores expense entries in a Postgres "expenses" table.
type PostgresLedger struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Open connects to Postgres and verifies the connection. Pool settings are
// sized for running behind PgBouncer.
func Open(ctx context.Context, databaseURL string) (*PostgresLedger, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	l := &PostgresLedger{pool: pool, log: logger.WithComponent("ledger")}
	l.log.Info().Msg("database connection pool initialized")
	return l, nil
}

// Save inserts the entry, filling in its generated ID and timestamp.
func (l *PostgresLedger) Save(ctx context.Context, entry *Entry) error {
	itemsJSON, err := json.Marshal(entry.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO expenses (
			filename, vendor, purchase_date, invoice_number, category,
			total, subtotal, tax, discount, items, raw_text, confidence, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err = l.pool.QueryRow(ctx, query,
		entry.Filename, entry.Vendor, entry.PurchaseDate, entry.InvoiceNumber, entry.Category,
		entry.Total, entry.Subtotal, entry.Tax, entry.Discount, itemsJSON,
		entry.RawText, entry.Confidence, entry.ImageURL,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (l *PostgresLedger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, COALESCE(filename, ''), COALESCE(vendor, ''), COALESCE(purchase_date, ''),
		       COALESCE(invoice_number, ''), COALESCE(category, ''),
		       COALESCE(total, 0), COALESCE(subtotal, 0), COALESCE(tax, 0), COALESCE(discount, 0),
		       COALESCE(items, '[]'), COALESCE(raw_text, ''), COALESCE(confidence, 0),
		       COALESCE(image_url, ''), created_at
		FROM expenses
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := l.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var itemsJSON []byte
		err := rows.Scan(
			&e.ID, &e.Filename, &e.Vendor, &e.PurchaseDate,
			&e.InvoiceNumber, &e.Category,
			&e.Total, &e.Subtotal, &e.Tax, &e.Discount,
			&itemsJSON, &e.RawText, &e.Confidence,
			&e.ImageURL, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &e.Items); err != nil {
			e.Items = []models.Item{}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SummaryByCategory aggregates spending per category, largest first.
func (l *PostgresLedger) SummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	query := `
		SELECT COALESCE(category, ''), COUNT(*), COALESCE(SUM(total), 0)
		FROM expenses
		GROUP BY category
		ORDER BY SUM(total) DESC
	`

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []CategorySummary
	for rows.Next() {
		var s CategorySummary
		if err := rows.Scan(&s.Category, &s.Count, &s.Total); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Close releases the connection pool.
func (l *PostgresLedger) Close() {
	l.pool.Close()
	l.log.Info().Msg("database connection pool closed")
}
