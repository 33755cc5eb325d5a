package repository

import (
	"context"

	"signpubliq/internal/wizard"
)

// SessionRepository persists wizard session snapshots between steps.
// A session has a single writer: the token handed out at creation
// must accompany every mutation.
type SessionRepository interface {
	Save(ctx context.Context, s *wizard.Session) error
	Get(ctx context.Context, id string) (*wizard.Session, error)
	Delete(ctx context.Context, id string) error

	// Acquire claims the session for the given writer token. It
	// returns false when another writer already holds the session.
	Acquire(ctx context.Context, id, writer string) (bool, error)
	// Writer returns the token currently holding the session, or ""
	// if the session is unclaimed.
	Writer(ctx context.Context, id string) (string, error)
	// Release drops the claim if held by the given writer.
	Release(ctx context.Context, id, writer string) error
}
