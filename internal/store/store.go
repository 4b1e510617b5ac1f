package store

import (
	"context"
	"errors"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
)

var (
	// ErrNotFound is returned when no session exists for a code.
	ErrNotFound = errors.New("session not found")
	// ErrCodeTaken is returned when a session with the same code already exists.
	ErrCodeTaken = errors.New("session code already taken")
	// ErrVersionConflict is returned when an update lost a compare-and-swap race.
	ErrVersionConflict = errors.New("session version conflict")
)

// Store persists session records keyed by join code. Get returns a private
// copy; Update succeeds only when the caller holds the current version and
// bumps it on success. Sessions are never deleted here, retention is an
// external concern.
type Store interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, code string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
}
