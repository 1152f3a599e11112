// Package http exposes the order wizard over an echo HTTP API.
// Handlers translate requests into commands and queries; domain error
// sentinels map onto HTTP statuses (validation 422, not found 404,
// version conflict 409).
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/application/usecases/queries"
	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Flusher delivers pending synchronization tasks for a session.
// Implemented by the synchronizer.
type Flusher interface {
	Flush(ctx context.Context, sessionID kernel.UUID) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	startWizardHandler     commands.StartWizardCommandHandler
	setClientInfoHandler   commands.SetClientInfoCommandHandler
	advanceStageHandler    commands.AdvanceStageCommandHandler
	goBackHandler          commands.GoBackCommandHandler
	startItemDraftHandler  commands.StartItemDraftCommandHandler
	updateItemDraftHandler commands.UpdateItemDraftCommandHandler
	saveItemHandler        commands.SaveItemCommandHandler
	cancelItemDraftHandler commands.CancelItemDraftCommandHandler
	setAdjustmentsHandler  commands.SetOrderAdjustmentsCommandHandler
	completeOrderHandler   commands.CompleteOrderCommandHandler
	cancelWizardHandler    commands.CancelWizardCommandHandler

	getSessionHandler       queries.GetSessionQueryHandler
	previewItemPriceHandler queries.PreviewItemPriceQueryHandler
	getOrderSummaryHandler  queries.GetOrderSummaryQueryHandler

	flusher Flusher
	logger  *slog.Logger
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	startWizardHandler commands.StartWizardCommandHandler,
	setClientInfoHandler commands.SetClientInfoCommandHandler,
	advanceStageHandler commands.AdvanceStageCommandHandler,
	goBackHandler commands.GoBackCommandHandler,
	startItemDraftHandler commands.StartItemDraftCommandHandler,
	updateItemDraftHandler commands.UpdateItemDraftCommandHandler,
	saveItemHandler commands.SaveItemCommandHandler,
	cancelItemDraftHandler commands.CancelItemDraftCommandHandler,
	setAdjustmentsHandler commands.SetOrderAdjustmentsCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelWizardHandler commands.CancelWizardCommandHandler,
	getSessionHandler queries.GetSessionQueryHandler,
	previewItemPriceHandler queries.PreviewItemPriceQueryHandler,
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler,
	flusher Flusher,
	logger *slog.Logger,
) *Server {
	return &Server{
		startWizardHandler:      startWizardHandler,
		setClientInfoHandler:    setClientInfoHandler,
		advanceStageHandler:     advanceStageHandler,
		goBackHandler:           goBackHandler,
		startItemDraftHandler:   startItemDraftHandler,
		updateItemDraftHandler:  updateItemDraftHandler,
		saveItemHandler:         saveItemHandler,
		cancelItemDraftHandler:  cancelItemDraftHandler,
		setAdjustmentsHandler:   setAdjustmentsHandler,
		completeOrderHandler:    completeOrderHandler,
		cancelWizardHandler:     cancelWizardHandler,
		getSessionHandler:       getSessionHandler,
		previewItemPriceHandler: previewItemPriceHandler,
		getOrderSummaryHandler:  getOrderSummaryHandler,
		flusher:                 flusher,
		logger:                  logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches the wizard API to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/wizard", s.StartWizard)
	e.GET("/api/v1/wizard/:sessionID", s.GetSession)
	e.DELETE("/api/v1/wizard/:sessionID", s.CancelWizard)
	e.POST("/api/v1/wizard/:sessionID/client-info", s.SetClientInfo)
	e.POST("/api/v1/wizard/:sessionID/advance", s.AdvanceStage)
	e.POST("/api/v1/wizard/:sessionID/back", s.GoBack)
	e.POST("/api/v1/wizard/:sessionID/items", s.StartItemDraft)
	e.POST("/api/v1/wizard/:sessionID/items/save", s.SaveItem)
	e.DELETE("/api/v1/wizard/:sessionID/items/draft", s.CancelItemDraft)
	e.POST("/api/v1/wizard/:sessionID/items/draft/select-item", s.SelectDraftItem)
	e.POST("/api/v1/wizard/:sessionID/items/draft/characteristics", s.SetDraftCharacteristics)
	e.POST("/api/v1/wizard/:sessionID/items/draft/characteristics/confirm", s.ConfirmDraftCharacteristics)
	e.POST("/api/v1/wizard/:sessionID/items/draft/defects-risks", s.SetDraftDefectsRisks)
	e.POST("/api/v1/wizard/:sessionID/items/draft/photos", s.SetDraftPhotos)
	e.POST("/api/v1/wizard/:sessionID/items/draft/modifiers", s.SelectDraftModifiers)
	e.POST("/api/v1/wizard/:sessionID/items/draft/advance", s.AdvanceDraft)
	e.POST("/api/v1/wizard/:sessionID/items/draft/back", s.BackDraft)
	e.GET("/api/v1/wizard/:sessionID/items/draft/price-preview", s.PreviewItemPrice)
	e.POST("/api/v1/wizard/:sessionID/adjustments", s.SetOrderAdjustments)
	e.POST("/api/v1/wizard/:sessionID/complete", s.CompleteOrder)
	e.GET("/api/v1/orders/summary", s.GetOrderSummary)
}

// StartWizard handles POST /api/v1/wizard - opens a new wizard session.
func (s *Server) StartWizard(ctx echo.Context) error {
	cmd, err := commands.NewStartWizardCommand()
	if err != nil {
		return s.writeError(ctx, err)
	}

	sessionID, err := s.startWizardHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, startWizardResponse{SessionID: sessionID.String()})
}

// GetSession handles GET /api/v1/wizard/:sessionID - loads the session view.
func (s *Server) GetSession(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetSessionQuery(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	session, err := s.getSessionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionToView(session))
}

// SetClientInfo handles POST /api/v1/wizard/:sessionID/client-info.
func (s *Server) SetClientInfo(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request clientInfoRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	clientID, err := kernel.UUIDFromString(request.ClientID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	branchID, err := kernel.UUIDFromString(request.BranchID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSetClientInfoCommand(sessionID, clientID, branchID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.setClientInfoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceStage handles POST /api/v1/wizard/:sessionID/advance.
func (s *Server) AdvanceStage(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceStageCommand(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.advanceStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	s.flush(ctx.Request().Context(), sessionID)
	return ctx.NoContent(http.StatusNoContent)
}

// GoBack handles POST /api/v1/wizard/:sessionID/back.
func (s *Server) GoBack(ctx echo.Context) error {
	return s.handleSessionCommand(ctx, func(sessionID kernel.UUID) error {
		cmd, err := commands.NewGoBackCommand(sessionID)
		if err != nil {
			return err
		}
		return s.goBackHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// StartItemDraft handles POST /api/v1/wizard/:sessionID/items - opens the
// item sub-flow, optionally prefilled from a committed item.
func (s *Server) StartItemDraft(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request startItemDraftRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	localID := kernel.NewUUID()
	edit := false
	if request.EditLocalID != "" {
		if localID, err = kernel.UUIDFromString(request.EditLocalID); err != nil {
			return s.writeError(ctx, err)
		}
		edit = true
	}

	cmd, err := commands.NewStartItemDraftCommand(sessionID, localID, edit)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.startItemDraftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"local_id": localID.String()})
}

// SelectDraftItem handles POST .../items/draft/select-item.
func (s *Server) SelectDraftItem(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request selectItemRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	quantity, err := quantityFromPayload(request.Quantity)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSelectDraftItemCommand(sessionID, request.CategoryCode, request.ItemName, quantity)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// SetDraftCharacteristics handles POST .../items/draft/characteristics.
func (s *Server) SetDraftCharacteristics(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request characteristicsPayload
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	characteristics, err := itemdraft.NewCharacteristics(
		request.Material,
		pricing.ColorType(request.Color),
		request.CustomColor,
		request.HasFiller,
		request.FillerType,
		request.WearDegree,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSetDraftCharacteristicsCommand(sessionID, characteristics)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// ConfirmDraftCharacteristics handles POST .../items/draft/characteristics/confirm.
func (s *Server) ConfirmDraftCharacteristics(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmDraftCharacteristicsCommand(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// SetDraftDefectsRisks handles POST .../items/draft/defects-risks.
func (s *Server) SetDraftDefectsRisks(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request defectsRisksRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	cmd, err := commands.NewSetDraftDefectsRisksCommand(sessionID, request.Stains, request.Defects, request.RiskNotes)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// SetDraftPhotos handles POST .../items/draft/photos.
func (s *Server) SetDraftPhotos(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request photosRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	cmd, err := commands.NewSetDraftPhotosCommand(sessionID, request.PhotoRefs)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// SelectDraftModifiers handles POST .../items/draft/modifiers.
func (s *Server) SelectDraftModifiers(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request modifiersRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	cmd, err := commands.NewSelectDraftModifiersCommand(sessionID, request.ModifierCodes)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// AdvanceDraft handles POST .../items/draft/advance.
func (s *Server) AdvanceDraft(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceDraftCommand(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// BackDraft handles POST .../items/draft/back.
func (s *Server) BackDraft(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewBackDraftCommand(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.handleDraftUpdate(ctx, cmd)
}

// PreviewItemPrice handles GET .../items/draft/price-preview.
func (s *Server) PreviewItemPrice(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewPreviewItemPriceQuery(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	preview, err := s.previewItemPriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pricePreviewView{
		LocalID:      preview.LocalID.String(),
		CategoryCode: preview.CategoryCode,
		ItemName:     preview.ItemName,
		Price:        priceToView(preview.Price),
	})
}

// SaveItem handles POST .../items/save - commits the open draft.
func (s *Server) SaveItem(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request saveItemRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	localID, err := kernel.UUIDFromString(request.LocalID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSaveItemCommand(sessionID, localID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.saveItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	s.flush(ctx.Request().Context(), sessionID)
	return ctx.NoContent(http.StatusNoContent)
}

// CancelItemDraft handles DELETE .../items/draft.
func (s *Server) CancelItemDraft(ctx echo.Context) error {
	return s.handleSessionCommand(ctx, func(sessionID kernel.UUID) error {
		cmd, err := commands.NewCancelItemDraftCommand(sessionID)
		if err != nil {
			return err
		}
		return s.cancelItemDraftHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// SetOrderAdjustments handles POST /api/v1/wizard/:sessionID/adjustments.
func (s *Server) SetOrderAdjustments(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request adjustmentsPayload
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx)
	}

	prepayment, err := kernel.NewMoney(request.Prepayment)
	if err != nil {
		return s.writeError(ctx, err)
	}

	adjustments, err := pricing.NewAdjustments(
		pricing.DiscountType(request.DiscountType),
		request.CustomPercent,
		pricing.UrgencyType(request.UrgencyType),
		pricing.PaymentMethod(request.PaymentMethod),
		prepayment,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSetOrderAdjustmentsCommand(sessionID, adjustments)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.setAdjustmentsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/wizard/:sessionID/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	s.flush(ctx.Request().Context(), sessionID)
	return ctx.NoContent(http.StatusNoContent)
}

// CancelWizard handles DELETE /api/v1/wizard/:sessionID.
func (s *Server) CancelWizard(ctx echo.Context) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCancelWizardCommand(sessionID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.cancelWizardHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	s.flush(ctx.Request().Context(), sessionID)
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderSummary handles GET /api/v1/orders/summary.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	summary, err := s.getOrderSummaryHandler.Handle(
		ctx.Request().Context(), queries.NewGetOrderSummaryQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummaryView{
		ActiveSessions:  summary.ActiveSessions,
		CommittedItems:  summary.CommittedItems,
		ItemsTotal:      summary.ItemsTotal.MinorUnits(),
		PrepaymentTotal: summary.PrepaymentTotal.MinorUnits(),
	})
}

// handleDraftUpdate runs a draft mutation command; every accepted draft
// update returns the same empty body.
func (s *Server) handleDraftUpdate(ctx echo.Context, cmd commands.UpdateItemDraftCommand) error {
	if err := s.updateItemDraftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// handleSessionCommand runs a parameterless session command.
func (s *Server) handleSessionCommand(ctx echo.Context, run func(sessionID kernel.UUID) error) error {
	sessionID, err := s.sessionID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = run(sessionID); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// sessionID extracts and validates the session id path parameter.
func (s *Server) sessionID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("sessionID"))
}

// flush triggers delivery of the session's queued synchronization tasks.
// Delivery failures are retried by subsequent flushes; they never fail
// the request that triggered them.
func (s *Server) flush(ctx context.Context, sessionID kernel.UUID) {
	if s.flusher == nil {
		return
	}
	if err := s.flusher.Flush(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "Synchronization flush failed",
			"session_id", sessionID.String(), "error", err)
	}
}

// badRequest reports an unparseable request body.
func (s *Server) badRequest(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// writeError maps domain error sentinels to HTTP statuses.
func (s *Server) writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrStaleSession):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrSessionExpired):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, pricing.ErrPrepaymentExceedsTotal):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
