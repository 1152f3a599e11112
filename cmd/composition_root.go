package cmd

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"drycleaning/internal/adapters/out/backendhttp"
	"drycleaning/internal/adapters/out/postgres"
	"drycleaning/internal/adapters/out/staticcatalog"
	"drycleaning/internal/core/application/sync"
	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/application/usecases/queries"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/core/ports"
	"drycleaning/internal/pkg/errs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	backend      *backendhttp.Client
	catalog      *staticcatalog.Catalog
	composer     services.PriceComposer
	synchronizer *sync.Synchronizer
	sessionTTL   time.Duration
	logger       *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	backend, err := backendhttp.NewClient(configs.BackendBaseURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	maxAttempts, err := strconv.ParseUint(configs.SyncMaxAttempts, 10, 64)
	if err != nil {
		return CompositionRoot{}, errs.NewValueIsInvalidErrorWithCause("SYNC_MAX_ATTEMPTS", err)
	}
	synchronizer, err := sync.NewSynchronizer(backend, uowFactory, logger, maxAttempts)
	if err != nil {
		return CompositionRoot{}, err
	}

	ttlHours, err := strconv.Atoi(configs.SessionTTLHours)
	if err != nil {
		return CompositionRoot{}, errs.NewValueIsInvalidErrorWithCause("SESSION_TTL_HOURS", err)
	}

	catalog, err := staticcatalog.NewCatalog()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *uowFactory,
		backend:      backend,
		catalog:      catalog,
		composer:     services.NewPriceComposer(),
		synchronizer: synchronizer,
		sessionTTL:   time.Duration(ttlHours) * time.Hour,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) SessionTTL() time.Duration {
	return c.sessionTTL
}

// Synchronizer exposes the sync layer for flushing after mutating requests.
func (c *CompositionRoot) Synchronizer() *sync.Synchronizer {
	return c.synchronizer
}

func (c *CompositionRoot) CreateStartWizardCommandHandler() commands.StartWizardCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartWizardCommandHandler(f, c.backend)
}

func (c *CompositionRoot) CreateSetClientInfoCommandHandler() commands.SetClientInfoCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetClientInfoCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceStageCommandHandler(f, c.synchronizer)
}

func (c *CompositionRoot) CreateGoBackCommandHandler() commands.GoBackCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGoBackCommandHandler(f)
}

func (c *CompositionRoot) CreateStartItemDraftCommandHandler() commands.StartItemDraftCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartItemDraftCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateItemDraftCommandHandler() commands.UpdateItemDraftCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateItemDraftCommandHandler(f)
}

func (c *CompositionRoot) CreateSaveItemCommandHandler() commands.SaveItemCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveItemCommandHandler(f, c.catalog, c.composer, c.synchronizer)
}

func (c *CompositionRoot) CreateCancelItemDraftCommandHandler() commands.CancelItemDraftCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelItemDraftCommandHandler(f)
}

func (c *CompositionRoot) CreateSetOrderAdjustmentsCommandHandler() commands.SetOrderAdjustmentsCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetOrderAdjustmentsCommandHandler(f, c.catalog, c.composer)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.synchronizer)
}

func (c *CompositionRoot) CreateCancelWizardCommandHandler() commands.CancelWizardCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelWizardCommandHandler(f, c.synchronizer)
}

func (c *CompositionRoot) CreateExpireStaleSessionsCommandHandler() commands.ExpireStaleSessionsCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireStaleSessionsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetSessionQueryHandler() queries.GetSessionQueryHandler {
	return queries.NewGetSessionQueryHandler(c.sessionReader())
}

func (c *CompositionRoot) CreatePreviewItemPriceQueryHandler() queries.PreviewItemPriceQueryHandler {
	return queries.NewPreviewItemPriceQueryHandler(c.sessionReader(), c.catalog, c.composer)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) sessionReader() queries.SessionReader {
	return uowSessionReader{uowFactory: &c.uowFactory}
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

// uowSessionReader serves read-only aggregate loads outside an explicit
// transaction: each Get runs on a fresh unit of work that is never begun,
// so the repository falls back to the plain connection.
type uowSessionReader struct {
	uowFactory ports.UnitOfWorkFactory
}

func (r uowSessionReader) Get(ctx context.Context, sessionID kernel.UUID) (*wizard.Session, error) {
	return r.uowFactory.Create().SessionRepository().Get(ctx, sessionID)
}
