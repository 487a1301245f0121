package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"feedbackanalysis/internal/models"
	"feedbackanalysis/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks database connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevFeedback inserts sample rows for development when the table is empty.
func (d *DB) SeedDevFeedback(ctx context.Context) error {
	var count int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedbacksentimate`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count feedback: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []models.FeedbackRecord{
		{SentimentClass: 4, Clusters: []string{"Service", "Luggage"}},
		{SentimentClass: 0, Clusters: []string{"Luggage"}},
		{SentimentClass: 3, Clusters: []string{"Food"}},
		{SentimentClass: 1, Clusters: []string{"Food"}},
		{SentimentClass: 2, Clusters: []string{models.Uncategorized}},
	}

	for _, s := range samples {
		row := models.ToStored(s)
		if err := d.InsertFeedback(ctx, &row); err != nil {
			return fmt.Errorf("failed to seed feedback %q: %w", row.Area, err)
		}
	}

	return nil
}
