// Package sessionrepo provides data transfer objects and mapping functions
// for wizard session persistence. The session aggregate is stored as one
// row per session: scalar state in indexed columns, the nested state (order
// items with their price breakdowns, the open item draft, the order
// adjustments) as a JSONB payload.
package sessionrepo

import (
	"encoding/json"
	"time"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting session
// aggregates. The version column backs optimistic locking on update; stage,
// status and updated_at are indexed for the read side and the TTL job.
type SessionDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Version   int        `gorm:"not null"`
	Stage     int        `gorm:"index"`
	Status    int        `gorm:"index"`
	ClientID  *uuid.UUID `gorm:"type:uuid"`
	BranchID  *uuid.UUID `gorm:"type:uuid"`
	Payload   []byte     `gorm:"type:jsonb"`
	UpdatedAt time.Time  `gorm:"index"`
}

// TableName specifies the database table name for session entities.
func (SessionDTO) TableName() string {
	return "sessions"
}

// payloadDTO is the JSONB document carrying the session's nested state.
type payloadDTO struct {
	Adjustments adjustmentsDTO     `json:"adjustments"`
	Items       []committedItemDTO `json:"items"`
	OpenDraft   *draftDTO          `json:"open_draft,omitempty"`
}

type adjustmentsDTO struct {
	DiscountType  int   `json:"discount_type"`
	CustomPercent int64 `json:"custom_percent,omitempty"`
	UrgencyType   int   `json:"urgency_type"`
	PaymentMethod int   `json:"payment_method"`
	Prepayment    int64 `json:"prepayment"`
}

type committedItemDTO struct {
	Draft draftDTO  `json:"draft"`
	Price resultDTO `json:"price"`
}

type draftDTO struct {
	LocalID                  uuid.UUID           `json:"local_id"`
	Substep                  int                 `json:"substep"`
	CategoryCode             string              `json:"category_code,omitempty"`
	ItemName                 string              `json:"item_name,omitempty"`
	Quantity                 *quantityDTO        `json:"quantity,omitempty"`
	Characteristics          *characteristicsDTO `json:"characteristics,omitempty"`
	CharacteristicsConfirmed bool                `json:"characteristics_confirmed,omitempty"`
	Stains                   []string            `json:"stains,omitempty"`
	Defects                  []string            `json:"defects,omitempty"`
	RiskNotes                string              `json:"risk_notes,omitempty"`
	PhotoRefs                []string            `json:"photo_refs,omitempty"`
	ModifierCodes            []string            `json:"modifier_codes,omitempty"`
}

type quantityDTO struct {
	Thousandths int64 `json:"thousandths"`
	Unit        int   `json:"unit"`
}

type characteristicsDTO struct {
	Material    string `json:"material"`
	Color       int    `json:"color"`
	CustomColor string `json:"custom_color,omitempty"`
	HasFiller   bool   `json:"has_filler,omitempty"`
	FillerType  string `json:"filler_type,omitempty"`
	WearDegree  int    `json:"wear_degree"`
}

type resultDTO struct {
	BaseUnitPrice  int64       `json:"base_unit_price"`
	Quantity       quantityDTO `json:"quantity"`
	BaseTotal      int64       `json:"base_total"`
	Steps          []stepDTO   `json:"steps"`
	Subtotal       int64       `json:"subtotal"`
	UrgencyAmount  int64       `json:"urgency_amount"`
	DiscountAmount int64       `json:"discount_amount"`
	FinalTotal     int64       `json:"final_total"`
}

type stepDTO struct {
	Kind         int    `json:"kind"`
	Code         string `json:"code"`
	Label        string `json:"label"`
	Delta        int64  `json:"delta"`
	RunningTotal int64  `json:"running_total"`
}

// fromDomain converts a session aggregate to its database representation.
func fromDomain(session *wizard.Session) (SessionDTO, error) {
	snapshot := session.Snapshot()

	items := make([]committedItemDTO, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, committedItemDTO{
			Draft: draftToDTO(item.Draft()),
			Price: resultToDTO(item.Price()),
		})
	}

	var openDraft *draftDTO
	if snapshot.OpenDraft != nil {
		dto := draftToDTO(*snapshot.OpenDraft)
		openDraft = &dto
	}

	payload, err := json.Marshal(payloadDTO{
		Adjustments: adjustmentsToDTO(snapshot.Adjustments),
		Items:       items,
		OpenDraft:   openDraft,
	})
	if err != nil {
		return SessionDTO{}, err
	}

	var clientID, branchID *uuid.UUID
	if snapshot.ClientID != nil {
		raw := snapshot.ClientID.Bytes()
		clientID = &raw
	}
	if snapshot.BranchID != nil {
		raw := snapshot.BranchID.Bytes()
		branchID = &raw
	}

	return SessionDTO{
		ID:       snapshot.ID.Bytes(),
		Version:  snapshot.Version,
		Stage:    int(snapshot.Stage),
		Status:   int(snapshot.Status),
		ClientID: clientID,
		BranchID: branchID,
		Payload:  payload,
	}, nil
}

// toDomain converts a database DTO back to a session aggregate, rehydrating
// the nested state through RestoreSession so all invariants are re-checked.
func toDomain(dto SessionDTO) (*wizard.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var payload payloadDTO
	if err = json.Unmarshal(dto.Payload, &payload); err != nil {
		return nil, err
	}

	adjustments, err := adjustmentsFromDTO(payload.Adjustments)
	if err != nil {
		return nil, err
	}

	items := make([]wizard.CommittedItem, 0, len(payload.Items))
	for _, itemDTO := range payload.Items {
		draft, draftErr := draftFromDTO(itemDTO.Draft)
		if draftErr != nil {
			return nil, draftErr
		}
		price, priceErr := resultFromDTO(itemDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := wizard.NewCommittedItem(draft, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var openDraft *itemdraft.Snapshot
	if payload.OpenDraft != nil {
		draft, draftErr := draftFromDTO(*payload.OpenDraft)
		if draftErr != nil {
			return nil, draftErr
		}
		openDraft = &draft
	}

	var clientID, branchID *kernel.UUID
	if dto.ClientID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.ClientID)[:])
		if cErr != nil {
			return nil, cErr
		}
		clientID = &cID
	}
	if dto.BranchID != nil {
		bID, bErr := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if bErr != nil {
			return nil, bErr
		}
		branchID = &bID
	}

	return wizard.RestoreSession(wizard.SessionSnapshot{
		ID:          id,
		Version:     dto.Version,
		Stage:       wizard.Stage(dto.Stage),
		Status:      wizard.Status(dto.Status),
		ClientID:    clientID,
		BranchID:    branchID,
		Items:       items,
		Adjustments: adjustments,
		OpenDraft:   openDraft,
	})
}

func adjustmentsToDTO(adjustments pricing.Adjustments) adjustmentsDTO {
	var customPercent int64
	if adjustments.DiscountType() == pricing.DiscountCustom {
		customPercent = adjustments.DiscountPercent()
	}
	return adjustmentsDTO{
		DiscountType:  int(adjustments.DiscountType()),
		CustomPercent: customPercent,
		UrgencyType:   int(adjustments.UrgencyType()),
		PaymentMethod: int(adjustments.PaymentMethod()),
		Prepayment:    adjustments.Prepayment().MinorUnits(),
	}
}

func adjustmentsFromDTO(dto adjustmentsDTO) (pricing.Adjustments, error) {
	prepayment, err := kernel.NewMoney(dto.Prepayment)
	if err != nil {
		return pricing.Adjustments{}, err
	}
	return pricing.NewAdjustments(
		pricing.DiscountType(dto.DiscountType),
		dto.CustomPercent,
		pricing.UrgencyType(dto.UrgencyType),
		pricing.PaymentMethod(dto.PaymentMethod),
		prepayment,
	)
}

func draftToDTO(snapshot itemdraft.Snapshot) draftDTO {
	var quantity *quantityDTO
	if snapshot.CategoryCode != "" {
		quantity = &quantityDTO{
			Thousandths: snapshot.Quantity.Thousandths(),
			Unit:        int(snapshot.Quantity.Unit()),
		}
	}

	var characteristics *characteristicsDTO
	if snapshot.Characteristics != nil {
		characteristics = &characteristicsDTO{
			Material:    snapshot.Characteristics.Material(),
			Color:       int(snapshot.Characteristics.Color()),
			CustomColor: snapshot.Characteristics.CustomColor(),
			HasFiller:   snapshot.Characteristics.HasFiller(),
			FillerType:  snapshot.Characteristics.FillerType(),
			WearDegree:  snapshot.Characteristics.WearDegree(),
		}
	}

	return draftDTO{
		LocalID:                  snapshot.LocalID.Bytes(),
		Substep:                  int(snapshot.Substep),
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

func draftFromDTO(dto draftDTO) (itemdraft.Snapshot, error) {
	localID, err := kernel.UUIDFromBytes(dto.LocalID[:])
	if err != nil {
		return itemdraft.Snapshot{}, err
	}

	var quantity kernel.Quantity
	if dto.Quantity != nil {
		quantity, err = quantityFromDTO(*dto.Quantity)
		if err != nil {
			return itemdraft.Snapshot{}, err
		}
	}

	var characteristics *itemdraft.Characteristics
	if dto.Characteristics != nil {
		c, cErr := itemdraft.NewCharacteristics(
			dto.Characteristics.Material,
			pricing.ColorType(dto.Characteristics.Color),
			dto.Characteristics.CustomColor,
			dto.Characteristics.HasFiller,
			dto.Characteristics.FillerType,
			dto.Characteristics.WearDegree,
		)
		if cErr != nil {
			return itemdraft.Snapshot{}, cErr
		}
		characteristics = &c
	}

	return itemdraft.Snapshot{
		LocalID:                  localID,
		Substep:                  itemdraft.Substep(dto.Substep),
		CategoryCode:             dto.CategoryCode,
		ItemName:                 dto.ItemName,
		Quantity:                 quantity,
		Characteristics:          characteristics,
		CharacteristicsConfirmed: dto.CharacteristicsConfirmed,
		Stains:                   dto.Stains,
		Defects:                  dto.Defects,
		RiskNotes:                dto.RiskNotes,
		PhotoRefs:                dto.PhotoRefs,
		ModifierCodes:            dto.ModifierCodes,
	}, nil
}

func resultToDTO(result pricing.Result) resultDTO {
	steps := make([]stepDTO, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, stepDTO{
			Kind:         int(step.Kind),
			Code:         step.Code,
			Label:        step.Label,
			Delta:        step.Delta,
			RunningTotal: step.RunningTotal.MinorUnits(),
		})
	}

	return resultDTO{
		BaseUnitPrice: result.BaseUnitPrice.MinorUnits(),
		Quantity: quantityDTO{
			Thousandths: result.Quantity.Thousandths(),
			Unit:        int(result.Quantity.Unit()),
		},
		BaseTotal:      result.BaseTotal.MinorUnits(),
		Steps:          steps,
		Subtotal:       result.Subtotal.MinorUnits(),
		UrgencyAmount:  result.UrgencyAmount.MinorUnits(),
		DiscountAmount: result.DiscountAmount.MinorUnits(),
		FinalTotal:     result.FinalTotal.MinorUnits(),
	}
}

func resultFromDTO(dto resultDTO) (pricing.Result, error) {
	quantity, err := quantityFromDTO(dto.Quantity)
	if err != nil {
		return pricing.Result{}, err
	}

	amounts := make([]kernel.Money, 0, 6)
	for _, minor := range []int64{
		dto.BaseUnitPrice, dto.BaseTotal, dto.Subtotal,
		dto.UrgencyAmount, dto.DiscountAmount, dto.FinalTotal,
	} {
		m, moneyErr := kernel.NewMoney(minor)
		if moneyErr != nil {
			return pricing.Result{}, moneyErr
		}
		amounts = append(amounts, m)
	}

	steps := make([]pricing.BreakdownStep, 0, len(dto.Steps))
	for _, step := range dto.Steps {
		running, stepErr := kernel.NewMoney(step.RunningTotal)
		if stepErr != nil {
			return pricing.Result{}, stepErr
		}
		steps = append(steps, pricing.BreakdownStep{
			Kind:         pricing.StepKind(step.Kind),
			Code:         step.Code,
			Label:        step.Label,
			Delta:        step.Delta,
			RunningTotal: running,
		})
	}

	return pricing.Result{
		BaseUnitPrice:  amounts[0],
		Quantity:       quantity,
		BaseTotal:      amounts[1],
		Steps:          steps,
		Subtotal:       amounts[2],
		UrgencyAmount:  amounts[3],
		DiscountAmount: amounts[4],
		FinalTotal:     amounts[5],
	}, nil
}

func quantityFromDTO(dto quantityDTO) (kernel.Quantity, error) {
	if kernel.UnitOfMeasure(dto.Unit) == kernel.UnitPiece {
		return kernel.NewPieceQuantity(dto.Thousandths / 1000)
	}
	return kernel.NewWeightQuantity(dto.Thousandths)
}
