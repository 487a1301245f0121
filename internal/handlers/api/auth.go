package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v3"

	"feedbackanalysis/internal/auth"
	"feedbackanalysis/internal/db"
	"feedbackanalysis/internal/models"
)

// UserFinder looks up login accounts.
type UserFinder interface {
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}

// AuthHandler checks name/password credentials against stored argon2id hashes.
type AuthHandler struct {
	users UserFinder
}

// NewAuthHandler creates a new API auth handler.
func NewAuthHandler(users UserFinder) *AuthHandler {
	return &AuthHandler{users: users}
}

// Compared against when the user does not exist so both paths do the same work.
var (
	dummyHash     string
	dummyHashOnce sync.Once
)

const dummyPassword = "not-a-real-password"

// unknownUserHash panics if the dummy hash cannot be computed.
func unknownUserHash() string {
	dummyHashOnce.Do(func() {
		hash, err := auth.HashPassword(dummyPassword)
		if err != nil {
			panic("api: failed to hash dummy password: " + err.Error())
		}
		dummyHash = hash
	})
	return dummyHash
}

// Login validates {name, password}. Unexpected failures return a generic
// message rather than the error detail.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Name == "" || body.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "name and password are required")
	}

	user, err := h.users.GetUserByName(c.Context(), body.Name)
	if errors.Is(err, db.ErrUserNotFound) {
		auth.VerifyPassword(unknownUserHash(), body.Password)
		return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if !auth.VerifyPassword(user.PasswordHash, body.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	return jsonMessage(c, "Login successful")
}
