package ports

import (
	"context"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
)

// SessionBackend is the authoritative session service. Every local wizard
// transition is mirrored to it by the synchronization layer; its
// acknowledgements carry the authoritative state the local copy is
// compared against.
//
// Implementations translate domain conditions to the errs sentinels:
// errs.ErrStaleSession for version divergence, errs.ErrSessionExpired for
// a session that no longer exists server-side. Any other error is treated
// as transient and retried by the synchronization layer.
type SessionBackend interface {
	// CreateSession opens a new authoritative session and returns its id.
	CreateSession(ctx context.Context) (kernel.UUID, error)

	// Advance mirrors a stage transition. The version is the local version
	// the transition was computed against.
	Advance(ctx context.Context, sessionID kernel.UUID, version int, stage wizard.Stage) (wizard.RemoteState, error)

	// CommitItem mirrors an item commit.
	CommitItem(ctx context.Context, sessionID kernel.UUID, version int, item wizard.CommittedItem) (wizard.RemoteState, error)

	// GetState fetches the authoritative session state, used when
	// reconciling after a divergence.
	GetState(ctx context.Context, sessionID kernel.UUID) (wizard.RemoteState, error)

	// Cancel abandons the authoritative session.
	Cancel(ctx context.Context, sessionID kernel.UUID) error
}
