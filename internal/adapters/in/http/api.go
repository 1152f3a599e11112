package http

import (
	"drycleaning/internal/core/application/usecases/queries"
	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
)

// Request and response bodies of the wizard API. Money travels in minor
// units, quantities in thousandths.

// Error is the uniform error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type startWizardResponse struct {
	SessionID string `json:"session_id"`
}

type clientInfoRequest struct {
	ClientID string `json:"client_id"`
	BranchID string `json:"branch_id"`
}

type startItemDraftRequest struct {
	// EditLocalID, when set, opens the draft prefilled from the committed
	// item with that local id.
	EditLocalID string `json:"edit_local_id,omitempty"`
}

type quantityPayload struct {
	Thousandths int64 `json:"thousandths"`
	Unit        int   `json:"unit"`
}

type selectItemRequest struct {
	CategoryCode string          `json:"category_code"`
	ItemName     string          `json:"item_name"`
	Quantity     quantityPayload `json:"quantity"`
}

type characteristicsPayload struct {
	Material    string `json:"material"`
	Color       int    `json:"color"`
	CustomColor string `json:"custom_color,omitempty"`
	HasFiller   bool   `json:"has_filler,omitempty"`
	FillerType  string `json:"filler_type,omitempty"`
	WearDegree  int    `json:"wear_degree"`
}

type defectsRisksRequest struct {
	Stains    []string `json:"stains,omitempty"`
	Defects   []string `json:"defects,omitempty"`
	RiskNotes string   `json:"risk_notes,omitempty"`
}

type photosRequest struct {
	PhotoRefs []string `json:"photo_refs,omitempty"`
}

type modifiersRequest struct {
	ModifierCodes []string `json:"modifier_codes,omitempty"`
}

type saveItemRequest struct {
	LocalID string `json:"local_id"`
}

type adjustmentsPayload struct {
	DiscountType  int   `json:"discount_type"`
	CustomPercent int64 `json:"custom_percent,omitempty"`
	UrgencyType   int   `json:"urgency_type"`
	PaymentMethod int   `json:"payment_method"`
	Prepayment    int64 `json:"prepayment"`
}

type breakdownStepView struct {
	Kind         string `json:"kind"`
	Code         string `json:"code"`
	Label        string `json:"label"`
	Delta        int64  `json:"delta"`
	RunningTotal int64  `json:"running_total"`
}

type priceView struct {
	BaseUnitPrice  int64               `json:"base_unit_price"`
	Quantity       quantityPayload     `json:"quantity"`
	BaseTotal      int64               `json:"base_total"`
	Steps          []breakdownStepView `json:"steps"`
	Subtotal       int64               `json:"subtotal"`
	UrgencyAmount  int64               `json:"urgency_amount"`
	DiscountAmount int64               `json:"discount_amount"`
	FinalTotal     int64               `json:"final_total"`
}

type itemView struct {
	LocalID      string          `json:"local_id"`
	CategoryCode string          `json:"category_code"`
	ItemName     string          `json:"item_name"`
	Quantity     quantityPayload `json:"quantity"`
	Price        priceView       `json:"price"`
}

type draftView struct {
	LocalID                  string                  `json:"local_id"`
	Substep                  string                  `json:"substep"`
	CategoryCode             string                  `json:"category_code,omitempty"`
	ItemName                 string                  `json:"item_name,omitempty"`
	Quantity                 *quantityPayload        `json:"quantity,omitempty"`
	Characteristics          *characteristicsPayload `json:"characteristics,omitempty"`
	CharacteristicsConfirmed bool                    `json:"characteristics_confirmed"`
	Stains                   []string                `json:"stains,omitempty"`
	Defects                  []string                `json:"defects,omitempty"`
	RiskNotes                string                  `json:"risk_notes,omitempty"`
	PhotoRefs                []string                `json:"photo_refs,omitempty"`
	ModifierCodes            []string                `json:"modifier_codes,omitempty"`
}

type totalsView struct {
	TotalAmount    int64 `json:"total_amount"`
	DiscountAmount int64 `json:"discount_amount"`
	UrgencyAmount  int64 `json:"urgency_amount"`
	FinalAmount    int64 `json:"final_amount"`
	BalanceAmount  int64 `json:"balance_amount"`
}

type sessionView struct {
	ID          string             `json:"id"`
	Version     int                `json:"version"`
	Stage       string             `json:"stage"`
	Status      string             `json:"status"`
	ClientID    string             `json:"client_id,omitempty"`
	BranchID    string             `json:"branch_id,omitempty"`
	Adjustments adjustmentsPayload `json:"adjustments"`
	Items       []itemView         `json:"items"`
	OpenDraft   *draftView         `json:"open_draft,omitempty"`
	Totals      totalsView         `json:"totals"`
}

type pricePreviewView struct {
	LocalID      string    `json:"local_id"`
	CategoryCode string    `json:"category_code"`
	ItemName     string    `json:"item_name"`
	Price        priceView `json:"price"`
}

type orderSummaryView struct {
	ActiveSessions  int   `json:"active_sessions"`
	CommittedItems  int   `json:"committed_items"`
	ItemsTotal      int64 `json:"items_total"`
	PrepaymentTotal int64 `json:"prepayment_total"`
}

func sessionToView(response queries.GetSessionQueryResponse) sessionView {
	items := make([]itemView, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, itemView{
			LocalID:      item.LocalID.String(),
			CategoryCode: item.CategoryCode,
			ItemName:     item.ItemName,
			Quantity:     quantityToPayload(item.Quantity),
			Price:        priceToView(item.Price),
		})
	}

	var openDraft *draftView
	if response.OpenDraft != nil {
		view := draftToView(*response.OpenDraft)
		openDraft = &view
	}

	var clientID, branchID string
	if response.ClientID != nil {
		clientID = response.ClientID.String()
	}
	if response.BranchID != nil {
		branchID = response.BranchID.String()
	}

	return sessionView{
		ID:       response.ID.String(),
		Version:  response.Version,
		Stage:    response.Stage.String(),
		Status:   response.Status.String(),
		ClientID: clientID,
		BranchID: branchID,
		Adjustments: adjustmentsPayload{
			DiscountType:  int(response.Adjustments.DiscountType()),
			CustomPercent: response.Adjustments.DiscountPercent(),
			UrgencyType:   int(response.Adjustments.UrgencyType()),
			PaymentMethod: int(response.Adjustments.PaymentMethod()),
			Prepayment:    response.Adjustments.Prepayment().MinorUnits(),
		},
		Items:     items,
		OpenDraft: openDraft,
		Totals: totalsView{
			TotalAmount:    response.Totals.TotalAmount.MinorUnits(),
			DiscountAmount: response.Totals.DiscountAmount.MinorUnits(),
			UrgencyAmount:  response.Totals.UrgencyAmount.MinorUnits(),
			FinalAmount:    response.Totals.FinalAmount.MinorUnits(),
			BalanceAmount:  response.Totals.BalanceAmount.MinorUnits(),
		},
	}
}

func draftToView(snapshot itemdraft.Snapshot) draftView {
	var quantity *quantityPayload
	if snapshot.CategoryCode != "" {
		q := quantityToPayload(snapshot.Quantity)
		quantity = &q
	}

	var characteristics *characteristicsPayload
	if snapshot.Characteristics != nil {
		characteristics = &characteristicsPayload{
			Material:    snapshot.Characteristics.Material(),
			Color:       int(snapshot.Characteristics.Color()),
			CustomColor: snapshot.Characteristics.CustomColor(),
			HasFiller:   snapshot.Characteristics.HasFiller(),
			FillerType:  snapshot.Characteristics.FillerType(),
			WearDegree:  snapshot.Characteristics.WearDegree(),
		}
	}

	return draftView{
		LocalID:                  snapshot.LocalID.String(),
		Substep:                  snapshot.Substep.String(),
		CategoryCode:             snapshot.CategoryCode,
		ItemName:                 snapshot.ItemName,
		Quantity:                 quantity,
		Characteristics:          characteristics,
		CharacteristicsConfirmed: snapshot.CharacteristicsConfirmed,
		Stains:                   snapshot.Stains,
		Defects:                  snapshot.Defects,
		RiskNotes:                snapshot.RiskNotes,
		PhotoRefs:                snapshot.PhotoRefs,
		ModifierCodes:            snapshot.ModifierCodes,
	}
}

func priceToView(result pricing.Result) priceView {
	steps := make([]breakdownStepView, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, breakdownStepView{
			Kind:         step.Kind.String(),
			Code:         step.Code,
			Label:        step.Label,
			Delta:        step.Delta,
			RunningTotal: step.RunningTotal.MinorUnits(),
		})
	}

	return priceView{
		BaseUnitPrice:  result.BaseUnitPrice.MinorUnits(),
		Quantity:       quantityToPayload(result.Quantity),
		BaseTotal:      result.BaseTotal.MinorUnits(),
		Steps:          steps,
		Subtotal:       result.Subtotal.MinorUnits(),
		UrgencyAmount:  result.UrgencyAmount.MinorUnits(),
		DiscountAmount: result.DiscountAmount.MinorUnits(),
		FinalTotal:     result.FinalTotal.MinorUnits(),
	}
}

func quantityToPayload(quantity kernel.Quantity) quantityPayload {
	return quantityPayload{
		Thousandths: quantity.Thousandths(),
		Unit:        int(quantity.Unit()),
	}
}

func quantityFromPayload(payload quantityPayload) (kernel.Quantity, error) {
	if kernel.UnitOfMeasure(payload.Unit) == kernel.UnitPiece {
		return kernel.NewPieceQuantity(payload.Thousandths / 1000)
	}
	return kernel.NewWeightQuantity(payload.Thousandths)
}
