package wizard

import (
	"errors"
	"fmt"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was
	// not created through NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession constructor")

	// ErrNoOpenDraft is returned by item operations that require an item
	// draft to be open.
	ErrNoOpenDraft = errors.New("no open item draft")

	// ErrOpenDraftExists is returned when starting an item draft while
	// another one is still open.
	ErrOpenDraftExists = errors.New("an item draft is already open")
)

// Session is the aggregate root of the order wizard: the outer stage
// machine, the lifecycle status, the committed items with their composed
// prices, the order-level adjustments and the nested open item draft.
//
// Session follows these invariants:
//   - An open draft exists only while the stage is ItemCollection
//   - The stage cannot leave ItemCollection with no committed items or
//     with a draft still open
//   - Items are committed atomically: a draft is either fully saved,
//     price included, or not saved at all
//   - Every accepted transition bumps the version, making the aggregate
//     state comparable against the authoritative backend copy
//   - Completed sessions are immutable; completion is idempotent
type Session struct {
	// id is the session identifier issued by the backend
	id kernel.UUID

	// version counts accepted transitions
	version int

	stage  Stage
	status Status

	// clientID and branchID are set at the ClientAndOrderInfo stage
	clientID *kernel.UUID
	branchID *kernel.UUID

	// items are the committed order items in commit order
	items []CommittedItem

	adjustments pricing.Adjustments

	// openDraft is non-nil only while the stage is ItemCollection
	openDraft *itemdraft.Draft

	// isConstructed ensures the session was created via a constructor
	isConstructed bool
}

// NewSession creates a new wizard session positioned at the first stage
// with neutral adjustments.
func NewSession(id kernel.UUID) (*Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		version:       1,
		stage:         StageClientAndOrderInfo,
		status:        StatusActive,
		adjustments:   pricing.DefaultAdjustments(),
		isConstructed: true,
	}, nil
}

// Validate ensures the Session instance was properly constructed.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// IsEqual compares two sessions by their identifiers.
func (s *Session) IsEqual(other *Session) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID {
	return s.id
}

// Version returns the number of accepted transitions.
func (s *Session) Version() int {
	return s.version
}

// Stage returns the current wizard stage.
func (s *Session) Stage() Stage {
	return s.stage
}

// Status returns the session lifecycle status.
func (s *Session) Status() Status {
	return s.status
}

// ClientID returns the selected client, nil until set.
func (s *Session) ClientID() *kernel.UUID {
	return s.clientID
}

// BranchID returns the receiving branch, nil until set.
func (s *Session) BranchID() *kernel.UUID {
	return s.branchID
}

// Items returns a copy of the committed items in commit order.
func (s *Session) Items() []CommittedItem {
	items := make([]CommittedItem, len(s.items))
	copy(items, s.items)
	return items
}

// Adjustments returns the order-level adjustments.
func (s *Session) Adjustments() pricing.Adjustments {
	return s.adjustments
}

// OpenDraft returns a snapshot of the open item draft and whether one is
// open. The draft itself is mutated only through the session's draft
// operations.
func (s *Session) OpenDraft() (itemdraft.Snapshot, bool) {
	if s.openDraft == nil {
		return itemdraft.Snapshot{}, false
	}
	return s.openDraft.Snapshot(), true
}

// HasOpenDraft reports whether an item draft is open.
func (s *Session) HasOpenDraft() bool {
	return s.openDraft != nil
}

// IsItemCommitted reports whether an item with the given local id has been
// committed. Used to detect duplicate save requests for the same draft.
func (s *Session) IsItemCommitted(localID kernel.UUID) bool {
	_, ok := s.findItem(localID)
	return ok
}

// Item returns the committed item with the given local id.
func (s *Session) Item(localID kernel.UUID) (CommittedItem, bool) {
	return s.findItem(localID)
}

// SetClient records the order client. Allowed at the ClientAndOrderInfo
// stage of an active session.
func (s *Session) SetClient(clientID kernel.UUID) error {
	if err := s.requireActiveAt(StageClientAndOrderInfo); err != nil {
		return err
	}
	if err := clientID.Validate(); err != nil {
		return err
	}

	s.clientID = &clientID
	s.bump()
	return nil
}

// SetBranch records the receiving branch. Allowed at the
// ClientAndOrderInfo stage of an active session.
func (s *Session) SetBranch(branchID kernel.UUID) error {
	if err := s.requireActiveAt(StageClientAndOrderInfo); err != nil {
		return err
	}
	if err := branchID.Validate(); err != nil {
		return err
	}

	s.branchID = &branchID
	s.bump()
	return nil
}

// Advance moves the session to the next stage. The current stage's
// completion predicate must hold. The Confirmation stage is left through
// Complete, never through Advance.
func (s *Session) Advance() error {
	if err := s.requireActive(); err != nil {
		return err
	}
	if err := s.validateStageComplete(); err != nil {
		return err
	}

	next, err := s.stage.Next()
	if err != nil {
		return err
	}

	s.stage = next
	s.bump()
	return nil
}

// Back moves the session to the immediate predecessor stage. Entered data
// is kept. Leaving ItemCollection backwards with an open draft is not
// allowed: the draft must be saved or cancelled first.
func (s *Session) Back() error {
	if err := s.requireActive(); err != nil {
		return err
	}
	if s.openDraft != nil {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			errors.New("open item draft must be saved or cancelled before navigating back"))
	}

	prev, err := s.stage.Prev()
	if err != nil {
		return err
	}

	s.stage = prev
	s.bump()
	return nil
}

// StartNewItemDraft opens a draft for a brand-new item. Allowed at the
// ItemCollection stage when no other draft is open. The local id must not
// collide with an already committed item.
func (s *Session) StartNewItemDraft(localID kernel.UUID) error {
	if err := s.requireActiveAt(StageItemCollection); err != nil {
		return err
	}
	if s.openDraft != nil {
		return ErrOpenDraftExists
	}
	if s.IsItemCommitted(localID) {
		return errs.NewValueIsInvalidErrorWithCause("localID",
			fmt.Errorf("item %s is already committed, edit it instead", localID))
	}

	draft, err := itemdraft.NewDraft(localID)
	if err != nil {
		return err
	}

	s.openDraft = draft
	s.bump()
	return nil
}

// StartItemEdit re-opens a committed item as a draft, prefilled with the
// committed configuration and positioned back at the first substep. Saving
// the draft replaces the committed item; cancelling leaves it untouched.
func (s *Session) StartItemEdit(localID kernel.UUID) error {
	if err := s.requireActiveAt(StageItemCollection); err != nil {
		return err
	}
	if s.openDraft != nil {
		return ErrOpenDraftExists
	}

	item, ok := s.findItem(localID)
	if !ok {
		return errs.NewObjectNotFoundError("item", localID.String())
	}

	snapshot := item.Draft()
	snapshot.Substep = itemdraft.SubstepSelectItem

	draft, err := itemdraft.RestoreDraft(snapshot)
	if err != nil {
		return err
	}

	s.openDraft = draft
	s.bump()
	return nil
}

// SelectDraftItem records the catalog item and quantity on the open draft.
func (s *Session) SelectDraftItem(categoryCode string, itemName string, quantity kernel.Quantity) error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.SelectItem(categoryCode, itemName, quantity)
	})
}

// SetDraftCharacteristics records the item characteristics on the open draft.
func (s *Session) SetDraftCharacteristics(characteristics itemdraft.Characteristics) error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.SetCharacteristics(characteristics)
	})
}

// ConfirmDraftCharacteristics re-confirms characteristics invalidated by a
// category switch.
func (s *Session) ConfirmDraftCharacteristics() error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.ConfirmCharacteristics()
	})
}

// SetDraftDefectsRisks records stains, defects and risk notes on the open
// draft.
func (s *Session) SetDraftDefectsRisks(stains []string, defects []string, riskNotes string) error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.SetDefectsRisks(stains, defects, riskNotes)
	})
}

// SetDraftPhotos records photo references on the open draft.
func (s *Session) SetDraftPhotos(photoRefs []string) error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.SetPhotos(photoRefs)
	})
}

// SelectDraftModifiers records the selected modifier codes on the open
// draft.
func (s *Session) SelectDraftModifiers(codes []string) error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.SelectModifiers(codes)
	})
}

// AdvanceDraft moves the open draft to its next substep.
func (s *Session) AdvanceDraft() error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.Advance()
	})
}

// BackDraft moves the open draft to its previous substep.
func (s *Session) BackDraft() error {
	return s.mutateDraft(func(d *itemdraft.Draft) error {
		return d.Back()
	})
}

// SaveItemDraft commits the open draft with its calculated price. The
// commit is atomic: the whole draft is validated first, then the item is
// appended, or replaces the committed item with the same local id when the
// draft is an edit. The draft is closed on success.
func (s *Session) SaveItemDraft(price pricing.Result) error {
	if err := s.requireActiveAt(StageItemCollection); err != nil {
		return err
	}
	if s.openDraft == nil {
		return ErrNoOpenDraft
	}
	if err := s.openDraft.ValidateReadyToSave(); err != nil {
		return err
	}

	item, err := NewCommittedItem(s.openDraft.Snapshot(), price)
	if err != nil {
		return err
	}

	if index, ok := s.findItemIndex(item.LocalID()); ok {
		s.items[index] = item
	} else {
		s.items = append(s.items, item)
	}

	s.openDraft = nil
	s.bump()
	return nil
}

// CancelItemDraft discards the open draft without side effects: committed
// items, including the original of an edited item, stay untouched.
// Cancelling with no open draft is a no-op.
func (s *Session) CancelItemDraft() error {
	if err := s.requireActive(); err != nil {
		return err
	}
	if s.openDraft == nil {
		return nil
	}

	s.openDraft = nil
	s.bump()
	return nil
}

// SetAdjustments records the order-level adjustments together with the
// recomputed per-item prices. Discount and urgency are folded into every
// item's composition, so changing them invalidates the committed prices;
// the caller recomputes them through the price composer and the session
// replaces adjustments and prices in one transition. The prepayment is
// validated against the new totals: an excessive prepayment is rejected,
// never clamped.
//
// Allowed at the OrderAdjustments stage. repricedResults must carry one
// result per committed item, in commit order.
func (s *Session) SetAdjustments(adjustments pricing.Adjustments, repricedResults []pricing.Result) error {
	if err := s.requireActiveAt(StageOrderAdjustments); err != nil {
		return err
	}
	if err := adjustments.Validate(); err != nil {
		return err
	}
	if len(repricedResults) != len(s.items) {
		return errs.NewValueIsInvalidErrorWithCause("repricedResults",
			fmt.Errorf("%d results given for %d committed items", len(repricedResults), len(s.items)))
	}
	if _, err := pricing.Summarize(repricedResults, adjustments); err != nil {
		return err
	}

	repriced := make([]CommittedItem, len(s.items))
	for i, item := range s.items {
		committed, err := NewCommittedItem(item.Draft(), repricedResults[i])
		if err != nil {
			return err
		}
		repriced[i] = committed
	}

	s.items = repriced
	s.adjustments = adjustments
	s.bump()
	return nil
}

// Totals sums the committed item prices into the order totals under the
// current adjustments.
func (s *Session) Totals() (pricing.OrderTotal, error) {
	if err := s.Validate(); err != nil {
		return pricing.OrderTotal{}, err
	}
	return pricing.Summarize(s.itemResults(), s.adjustments)
}

// Complete places the order: Confirmation stage becomes Completed and the
// session stops accepting transitions. Completing an already completed
// session is a no-op, so a retried completion request cannot fail or
// double-place the order.
func (s *Session) Complete() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == StatusCompleted {
		return nil
	}

	newStage, err := s.stage.Complete()
	if err != nil {
		return err
	}
	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.stage = newStage
	s.status = newStatus
	s.bump()
	return nil
}

// Cancel abandons the wizard from any non-terminal state, discarding the
// open draft. Cancelling an already cancelled session is a no-op.
func (s *Session) Cancel() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == StatusCancelled {
		return nil
	}

	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.openDraft = nil
	s.bump()
	return nil
}

// Expire marks an idle session expired. Called by the session TTL job.
func (s *Session) Expire() error {
	if err := s.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Expire()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.openDraft = nil
	s.bump()
	return nil
}

// RemoteState is the authoritative session state reported by the backend.
type RemoteState struct {
	Version int
	Stage   Stage
	Status  Status
	Items   []CommittedItem
}

// Adopt replaces the local optimistic state with the authoritative remote
// state after a divergence was detected. Locally entered client and branch
// are kept; the open draft is preserved when the adopted stage still
// allows one, otherwise it is discarded.
func (s *Session) Adopt(remote RemoteState) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := remote.Stage.Validate(); err != nil {
		return err
	}
	if err := remote.Status.Validate(); err != nil {
		return err
	}
	if remote.Version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a valid session version", remote.Version))
	}

	s.version = remote.Version
	s.stage = remote.Stage
	s.status = remote.Status
	s.items = make([]CommittedItem, len(remote.Items))
	copy(s.items, remote.Items)

	if s.stage != StageItemCollection {
		s.openDraft = nil
	}
	return nil
}

// bump records one accepted transition.
func (s *Session) bump() {
	s.version++
}

func (s *Session) requireActive() error {
	if err := s.Validate(); err != nil {
		return err
	}
	return s.status.ValidateActive()
}

func (s *Session) requireActiveAt(stage Stage) error {
	if err := s.requireActive(); err != nil {
		return err
	}
	if s.stage != stage {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("operation belongs to the %s stage, session is at %s", stage, s.stage))
	}
	return nil
}

// mutateDraft applies a mutation to the open draft, bumping the version on
// success.
func (s *Session) mutateDraft(mutate func(*itemdraft.Draft) error) error {
	if err := s.requireActiveAt(StageItemCollection); err != nil {
		return err
	}
	if s.openDraft == nil {
		return ErrNoOpenDraft
	}
	if err := mutate(s.openDraft); err != nil {
		return err
	}

	s.bump()
	return nil
}

// validateStageComplete checks the current stage's completion predicate
// for a forward transition.
func (s *Session) validateStageComplete() error {
	switch s.stage {
	case StageClientAndOrderInfo:
		if s.clientID == nil {
			return errs.NewValueIsRequiredError("client")
		}
		if s.branchID == nil {
			return errs.NewValueIsRequiredError("branch")
		}
	case StageItemCollection:
		if len(s.items) == 0 {
			return errs.NewValueIsRequiredError("order items")
		}
		if s.openDraft != nil {
			return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
				errors.New("open item draft must be saved or cancelled before advancing"))
		}
	case StageOrderAdjustments, StageConfirmation, StageCompleted:
	default:
		return s.stage.Validate()
	}
	return nil
}

func (s *Session) findItem(localID kernel.UUID) (CommittedItem, bool) {
	if index, ok := s.findItemIndex(localID); ok {
		return s.items[index], true
	}
	return CommittedItem{}, false
}

func (s *Session) findItemIndex(localID kernel.UUID) (int, bool) {
	for i, item := range s.items {
		if item.LocalID().IsEqual(localID) {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) itemResults() []pricing.Result {
	results := make([]pricing.Result, 0, len(s.items))
	for _, item := range s.items {
		results = append(results, item.Price())
	}
	return results
}
