package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cenkalti/backoff/v4"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/ports"
	"drycleaning/internal/pkg/errs"
)

var (
	// ErrSessionLost is returned for a session whose authoritative copy is
	// gone. The only valid continuation is restarting the wizard.
	ErrSessionLost = errors.New("session is lost, the wizard must be restarted")
)

// RecoverableError wraps a task whose delivery attempts were exhausted.
// The task stays at the head of its session queue: a later Flush retries
// it, so the operator can keep working locally and retry explicitly.
type RecoverableError struct {
	Task  Task
	Cause error
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("synchronization of %s for session %s failed after retries: %s",
		e.Task.Kind, e.Task.SessionID, e.Cause)
}

func (e *RecoverableError) Unwrap() error {
	return e.Cause
}

// sessionQueue holds the pending tasks of one session. generation is
// bumped whenever the queue is reset so that responses of abandoned
// dispatches are discarded instead of being applied to the replacement
// session state.
type sessionQueue struct {
	tasks      []Task
	inFlight   bool
	lost       bool
	generation int
}

// Synchronizer mirrors local wizard transitions to the authoritative
// session backend, one task at a time per session.
//
// Synchronization guarantees:
//   - Tasks of a session are never interleaved: while one is in flight,
//     newly enqueued tasks wait their turn
//   - Duplicate commit tasks for the same item are suppressed
//   - Transient backend failures are retried with exponential backoff up
//     to a bounded number of attempts; exhaustion surfaces a
//     RecoverableError and keeps the task queued
//   - A stale acknowledgement triggers reconciliation: the authoritative
//     state is adopted into the local aggregate, preserving the open item
//     draft where the adopted stage allows one
//   - A session missing server-side becomes lost: its queue is dropped
//     and every further operation returns ErrSessionLost
type Synchronizer struct {
	backend    ports.SessionBackend
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger

	// maxAttempts bounds delivery attempts per task
	maxAttempts uint64

	// onResync, when set, is notified after a reconciliation so the UI
	// can tell the operator the session was refreshed
	onResync func(sessionID kernel.UUID)

	mu     sync.Mutex
	queues map[string]*sessionQueue
}

// NewSynchronizer creates a synchronizer over the given backend and local
// store. maxAttempts bounds delivery attempts per task.
func NewSynchronizer(
	backend ports.SessionBackend,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
	maxAttempts uint64,
) (*Synchronizer, error) {
	if backend == nil {
		return nil, errs.NewValueIsRequiredError("backend")
	}
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if maxAttempts == 0 {
		return nil, errs.NewValueIsRequiredError("maxAttempts")
	}

	return &Synchronizer{
		backend:     backend,
		uowFactory:  uowFactory,
		logger:      logger,
		maxAttempts: maxAttempts,
		queues:      make(map[string]*sessionQueue),
	}, nil
}

// SetResyncNotifier registers a callback invoked after a reconciliation.
func (s *Synchronizer) SetResyncNotifier(notify func(sessionID kernel.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResync = notify
}

// Enqueue queues a task for delivery. Duplicate commit tasks for the same
// item are suppressed. Enqueueing for a lost session fails.
func (s *Synchronizer) Enqueue(task Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queue(task.SessionID)
	if queue.lost {
		return ErrSessionLost
	}

	if task.Kind == TaskCommitItem {
		for _, pending := range queue.tasks {
			if pending.Kind == TaskCommitItem && pending.Item.LocalID().IsEqual(task.Item.LocalID()) {
				s.logger.Debug("duplicate item commit suppressed",
					"session_id", task.SessionID.String(),
					"item_local_id", task.Item.LocalID().String())
				return nil
			}
		}
	}

	queue.tasks = append(queue.tasks, task)
	return nil
}

// PendingCount returns the number of queued tasks for a session.
func (s *Synchronizer) PendingCount(sessionID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue(sessionID).tasks)
}

// IsLost reports whether the session's authoritative copy is gone.
func (s *Synchronizer) IsLost(sessionID kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue(sessionID).lost
}

// Reset drops a session's queue, e.g. when the wizard is restarted. A
// response still in flight for the dropped queue is discarded on arrival.
func (s *Synchronizer) Reset(sessionID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queue(sessionID)
	queue.tasks = nil
	queue.lost = false
	queue.generation++
}

// Flush delivers the session's pending tasks in order, one at a time. If
// another Flush for the same session is already in flight, it returns
// immediately: the running one owns the queue.
func (s *Synchronizer) Flush(ctx context.Context, sessionID kernel.UUID) error {
	s.mu.Lock()
	queue := s.queue(sessionID)
	if queue.inFlight {
		s.mu.Unlock()
		return nil
	}
	if queue.lost {
		s.mu.Unlock()
		return ErrSessionLost
	}
	queue.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		queue.inFlight = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if queue.lost {
			s.mu.Unlock()
			return ErrSessionLost
		}
		if len(queue.tasks) == 0 {
			s.mu.Unlock()
			return nil
		}
		task := queue.tasks[0]
		generation := queue.generation
		s.mu.Unlock()

		remote, err := s.dispatch(ctx, task)

		s.mu.Lock()
		stale := queue.generation != generation
		s.mu.Unlock()
		if stale {
			// The queue was reset while the task was in flight; the
			// response belongs to an abandoned session state.
			s.logger.Debug("stale synchronization response discarded",
				"session_id", task.SessionID.String(), "kind", task.Kind.String())
			return nil
		}

		switch {
		case err == nil:
			s.pop(queue)
			if remote != nil && remote.Version != task.Version {
				if reconcileErr := s.reconcile(ctx, task.SessionID); reconcileErr != nil {
					return reconcileErr
				}
			}
		case errors.Is(err, errs.ErrStaleSession):
			s.pop(queue)
			if reconcileErr := s.reconcile(ctx, task.SessionID); reconcileErr != nil {
				return reconcileErr
			}
		case errors.Is(err, errs.ErrSessionExpired), errors.Is(err, errs.ErrObjectNotFound):
			s.markLost(task.SessionID)
			return ErrSessionLost
		default:
			return &RecoverableError{Task: task, Cause: err}
		}
	}
}

// dispatch sends one task with bounded exponential backoff. Domain
// conditions reported by the backend are permanent; everything else is
// transient and retried.
func (s *Synchronizer) dispatch(ctx context.Context, task Task) (*wizard.RemoteState, error) {
	var remote *wizard.RemoteState

	operation := func() error {
		var err error
		switch task.Kind {
		case TaskAdvance:
			var state wizard.RemoteState
			state, err = s.backend.Advance(ctx, task.SessionID, task.Version, task.Stage)
			remote = &state
		case TaskCommitItem:
			var state wizard.RemoteState
			state, err = s.backend.CommitItem(ctx, task.SessionID, task.Version, *task.Item)
			remote = &state
		case TaskCancel:
			err = s.backend.Cancel(ctx, task.SessionID)
		case TaskKindUnknown:
			err = task.Kind.Validate()
		}

		if err == nil {
			return nil
		}
		if errors.Is(err, errs.ErrStaleSession) ||
			errors.Is(err, errs.ErrSessionExpired) ||
			errors.Is(err, errs.ErrObjectNotFound) {
			return backoff.Permanent(err)
		}

		s.logger.Warn("synchronization attempt failed, will retry",
			"session_id", task.SessionID.String(),
			"kind", task.Kind.String(),
			"error", err)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxAttempts-1), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return remote, nil
}

// reconcile adopts the authoritative state into the local aggregate,
// preserving the open item draft where the adopted stage allows one.
func (s *Synchronizer) reconcile(ctx context.Context, sessionID kernel.UUID) error {
	remote, err := s.backend.GetState(ctx, sessionID)
	if err != nil {
		if errors.Is(err, errs.ErrSessionExpired) || errors.Is(err, errs.ErrObjectNotFound) {
			s.markLost(sessionID)
			return ErrSessionLost
		}
		return err
	}

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()
	session, err := repo.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err = session.Adopt(remote); err != nil {
		return err
	}
	if err = repo.Update(ctx, session); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	s.logger.Info("session reconciled with authoritative state",
		"session_id", sessionID.String(),
		"version", remote.Version,
		"stage", remote.Stage.String())

	s.mu.Lock()
	notify := s.onResync
	s.mu.Unlock()
	if notify != nil {
		notify(sessionID)
	}
	return nil
}

func (s *Synchronizer) queue(sessionID kernel.UUID) *sessionQueue {
	key := sessionID.String()
	queue, ok := s.queues[key]
	if !ok {
		queue = &sessionQueue{}
		s.queues[key] = queue
	}
	return queue
}

func (s *Synchronizer) pop(queue *sessionQueue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(queue.tasks) > 0 {
		queue.tasks = queue.tasks[1:]
	}
}

func (s *Synchronizer) markLost(sessionID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.queue(sessionID)
	queue.lost = true
	queue.tasks = nil
	s.logger.Warn("session lost server-side", "session_id", sessionID.String())
}
