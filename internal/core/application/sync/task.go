package sync

import (
	"fmt"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/pkg/errs"
)

// TaskKind identifies the remote effect a task mirrors.
type TaskKind int

const (
	// TaskKindUnknown catches uninitialized values.
	TaskKindUnknown TaskKind = iota

	// TaskAdvance mirrors a stage transition, including completion.
	TaskAdvance

	// TaskCommitItem mirrors an item commit.
	TaskCommitItem

	// TaskCancel mirrors abandoning the wizard.
	TaskCancel
)

// String returns the task kind name.
func (k TaskKind) String() string {
	switch k {
	case TaskAdvance:
		return "Advance"
	case TaskCommitItem:
		return "CommitItem"
	case TaskCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Validate checks the kind is one of the defined values.
func (k TaskKind) Validate() error {
	if k != TaskAdvance && k != TaskCommitItem && k != TaskCancel {
		return errs.NewValueIsInvalidErrorWithCause("task kind",
			fmt.Errorf("%d is not a valid task kind", k))
	}
	return nil
}

// Task is one explicit remote effect requested by a local transition. The
// version is the local session version after the mirrored transition; an
// acknowledgement reporting a different authoritative version means the
// copies diverged and triggers reconciliation.
type Task struct {
	Kind      TaskKind
	SessionID kernel.UUID
	Version   int
	Stage     wizard.Stage
	Item      *wizard.CommittedItem
}

// NewAdvanceTask creates a task mirroring a stage transition.
func NewAdvanceTask(sessionID kernel.UUID, version int, stage wizard.Stage) Task {
	return Task{Kind: TaskAdvance, SessionID: sessionID, Version: version, Stage: stage}
}

// NewCommitItemTask creates a task mirroring an item commit.
func NewCommitItemTask(sessionID kernel.UUID, version int, item wizard.CommittedItem) Task {
	return Task{Kind: TaskCommitItem, SessionID: sessionID, Version: version, Item: &item}
}

// NewCancelTask creates a task mirroring a wizard cancellation.
func NewCancelTask(sessionID kernel.UUID, version int) Task {
	return Task{Kind: TaskCancel, SessionID: sessionID, Version: version}
}

// Validate checks the task is well formed for its kind.
func (t Task) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.SessionID.Validate(); err != nil {
		return err
	}
	if t.Version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a valid session version", t.Version))
	}

	switch t.Kind {
	case TaskAdvance:
		if err := t.Stage.Validate(); err != nil {
			return err
		}
	case TaskCommitItem:
		if t.Item == nil {
			return errs.NewValueIsRequiredError("item")
		}
		if err := t.Item.Validate(); err != nil {
			return err
		}
	case TaskCancel, TaskKindUnknown:
	}
	return nil
}
