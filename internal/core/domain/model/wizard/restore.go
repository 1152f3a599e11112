package wizard

import (
	"errors"
	"fmt"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"
)

// SessionSnapshot is an immutable copy of a session's full state, used by
// repositories to persist and rehydrate the aggregate and by the
// synchronization layer to compare local state against the backend.
type SessionSnapshot struct {
	ID          kernel.UUID
	Version     int
	Stage       Stage
	Status      Status
	ClientID    *kernel.UUID
	BranchID    *kernel.UUID
	Items       []CommittedItem
	Adjustments pricing.Adjustments
	OpenDraft   *itemdraft.Snapshot
}

// Snapshot captures the session's current state.
func (s *Session) Snapshot() SessionSnapshot {
	var openDraft *itemdraft.Snapshot
	if s.openDraft != nil {
		snapshot := s.openDraft.Snapshot()
		openDraft = &snapshot
	}

	return SessionSnapshot{
		ID:          s.id,
		Version:     s.version,
		Stage:       s.stage,
		Status:      s.status,
		ClientID:    copyUUID(s.clientID),
		BranchID:    copyUUID(s.branchID),
		Items:       s.Items(),
		Adjustments: s.adjustments,
		OpenDraft:   openDraft,
	}
}

// RestoreSession rehydrates a session from a snapshot, re-validating the
// restored state including the open-draft invariant: a draft may only be
// open while the stage is ItemCollection.
func RestoreSession(snapshot SessionSnapshot) (*Session, error) {
	if err := snapshot.ID.Validate(); err != nil {
		return nil, err
	}
	if err := snapshot.Stage.Validate(); err != nil {
		return nil, err
	}
	if err := snapshot.Status.Validate(); err != nil {
		return nil, err
	}
	if snapshot.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a valid session version", snapshot.Version))
	}
	if err := snapshot.Adjustments.Validate(); err != nil {
		return nil, err
	}
	for _, item := range snapshot.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if snapshot.OpenDraft != nil && snapshot.Stage != StageItemCollection {
		return nil, errs.NewValueIsInvalidErrorWithCause("openDraft",
			errors.New("an item draft may only be open at the ItemCollection stage"))
	}

	var openDraft *itemdraft.Draft
	if snapshot.OpenDraft != nil {
		draft, err := itemdraft.RestoreDraft(*snapshot.OpenDraft)
		if err != nil {
			return nil, err
		}
		openDraft = draft
	}

	items := make([]CommittedItem, len(snapshot.Items))
	copy(items, snapshot.Items)

	return &Session{
		id:            snapshot.ID,
		version:       snapshot.Version,
		stage:         snapshot.Stage,
		status:        snapshot.Status,
		clientID:      copyUUID(snapshot.ClientID),
		branchID:      copyUUID(snapshot.BranchID),
		items:         items,
		adjustments:   snapshot.Adjustments,
		openDraft:     openDraft,
		isConstructed: true,
	}, nil
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	copied := *id
	return &copied
}
