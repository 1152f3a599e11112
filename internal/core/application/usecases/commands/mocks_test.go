package commands_test

import (
	"context"
	"time"

	"drycleaning/internal/core/application/sync"
	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *wizard.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *wizard.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*wizard.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Session), args.Error(1)
}

func (m *MockSessionRepository) GetAllActiveUpdatedBefore(
	ctx context.Context, cutoff time.Time,
) ([]*wizard.Session, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wizard.Session), args.Error(1)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ResolveItem(
	ctx context.Context, categoryCode string, itemName string,
) (pricing.PriceListItem, error) {
	args := m.Called(ctx, categoryCode, itemName)
	return args.Get(0).(pricing.PriceListItem), args.Error(1)
}

func (m *MockCatalog) ListModifiers(
	ctx context.Context, category pricing.ServiceCategory,
) ([]pricing.Modifier, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Modifier), args.Error(1)
}

func (m *MockCatalog) ListCategories(ctx context.Context) ([]pricing.ServiceCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.ServiceCategory), args.Error(1)
}

type MockSessionBackend struct{ mock.Mock }

func (m *MockSessionBackend) CreateSession(ctx context.Context) (kernel.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockSessionBackend) Advance(
	ctx context.Context, sessionID kernel.UUID, version int, stage wizard.Stage,
) (wizard.RemoteState, error) {
	args := m.Called(ctx, sessionID, version, stage)
	return args.Get(0).(wizard.RemoteState), args.Error(1)
}

func (m *MockSessionBackend) CommitItem(
	ctx context.Context, sessionID kernel.UUID, version int, item wizard.CommittedItem,
) (wizard.RemoteState, error) {
	args := m.Called(ctx, sessionID, version, item)
	return args.Get(0).(wizard.RemoteState), args.Error(1)
}

func (m *MockSessionBackend) GetState(ctx context.Context, sessionID kernel.UUID) (wizard.RemoteState, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(wizard.RemoteState), args.Error(1)
}

func (m *MockSessionBackend) Cancel(ctx context.Context, sessionID kernel.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockSyncQueue struct{ mock.Mock }

func (m *MockSyncQueue) Enqueue(task sync.Task) error {
	args := m.Called(task)
	return args.Error(0)
}
