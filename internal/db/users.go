package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"feedbackanalysis/internal/models"
)

// CreateUser inserts a user. PasswordHash must already be hashed.
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := d.Pool.QueryRow(ctx, query, user.Name, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateUser
	}
	return err
}

// UpdateUserPassword replaces a user's password hash.
func (d *DB) UpdateUserPassword(ctx context.Context, name, passwordHash string) error {
	tag, err := d.Pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE name = $2`, passwordHash, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetUserByName retrieves a user by login name.
func (d *DB) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	query := `
		SELECT id, name, password_hash, created_at
		FROM users WHERE name = $1
	`

	var user models.User
	err := d.Pool.QueryRow(ctx, query, name).Scan(
		&user.ID,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserCount returns the total number of users.
func (d *DB) GetUserCount(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
