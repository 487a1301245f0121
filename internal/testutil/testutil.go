// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"feedbackanalysis/internal/auth"
	"feedbackanalysis/internal/db"
	"feedbackanalysis/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// The test is skipped unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM feedbacksentimate")
	pool.Exec(ctx, "DELETE FROM users")
}

// CreateTestUser creates a login user with the given password.
func CreateTestUser(t *testing.T, database *db.DB, name, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: name, PasswordHash: hash}
	if err := database.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// InsertTestFeedback stores records through the same mapping the ingester uses.
func InsertTestFeedback(t *testing.T, database *db.DB, records ...models.FeedbackRecord) []models.StoredFeedback {
	t.Helper()

	stored := make([]models.StoredFeedback, 0, len(records))
	for _, rec := range records {
		row := models.ToStored(rec)
		if err := database.InsertFeedback(context.Background(), &row); err != nil {
			t.Fatalf("failed to insert test feedback: %v", err)
		}
		stored = append(stored, row)
	}
	return stored
}
