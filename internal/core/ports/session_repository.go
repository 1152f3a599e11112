package ports

import (
	"context"
	"time"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
)

// SessionRepository defines the persistence contract for wizard session
// aggregates. The local store is the optimistic copy of the session; the
// authoritative state lives behind the SessionBackend port.
type SessionRepository interface {
	// Add persists a new session aggregate to storage.
	Add(ctx context.Context, aggregate *wizard.Session) error

	// Update persists changes to an existing session aggregate, guarded by
	// the aggregate version: a concurrent update of the same session fails
	// instead of silently overwriting.
	Update(ctx context.Context, aggregate *wizard.Session) error

	// Get retrieves a session aggregate by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*wizard.Session, error)

	// GetAllActiveUpdatedBefore retrieves active sessions that have not
	// been touched since the cutoff. Used by the session TTL job.
	GetAllActiveUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*wizard.Session, error)
}
