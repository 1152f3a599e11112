package sessionrepo

import (
	"context"
	"errors"
	"time"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session to the database.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *wizard.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing session, guarded by the aggregate version: the
// row is only written when the stored version is older than the one being
// written, so a concurrent update fails instead of silently overwriting.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *wizard.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ? AND version < ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"version":   dto.Version,
			"stage":     dto.Stage,
			"status":    dto.Status,
			"client_id": dto.ClientID,
			"branch_id": dto.BranchID,
			"payload":   dto.Payload,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current SessionDTO
		if err = r.db.WithContext(ctx).
			Select("version").First(&current, "id = ?", dto.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("session", aggregate.ID().String())
			}
			return err
		}
		return errs.NewStaleSessionError(aggregate.ID().String(), dto.Version, current.Version)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*wizard.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveUpdatedBefore retrieves active sessions not touched since the
// cutoff. The session TTL job expires them.
func (r *GormSessionRepository) GetAllActiveUpdatedBefore(
	ctx context.Context, cutoff time.Time,
) ([]*wizard.Session, error) {
	var dtos []SessionDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND updated_at < ?", int(wizard.StatusActive), cutoff).Error; err != nil {
		return nil, err
	}

	sessions := make([]*wizard.Session, 0, len(dtos))
	for _, dto := range dtos {
		session, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
