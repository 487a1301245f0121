package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can log in to the dashboard API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // argon2id encoded hash, never plaintext
	CreatedAt    time.Time `json:"created_at"`
}
