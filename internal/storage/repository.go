package storage

import (
	"errors"
	"time"

	"github.com/ericogr/energy-duel/internal/game"
)

// ErrNotFound is returned when no session matches the requested code.
var ErrNotFound = errors.New("session not found")

type Repository interface {
	CreateSession(s *game.Session) error
	GetSessionByCode(code string) (*game.Session, error)
	UpdateSession(s *game.Session) error
	DeleteSession(code string) error
	// PurgeIdleSessions removes sessions whose last update is at or before
	// cutoff and returns how many were removed.
	PurgeIdleSessions(cutoff time.Time) (int64, error)
}
