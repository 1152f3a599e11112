package backendhttp

import (
	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"
)

// Wire representations of the session state exchanged with the backend.
// Money travels in minor units, quantities in thousandths.

type remoteStateWire struct {
	Version int        `json:"version"`
	Stage   int        `json:"stage"`
	Status  int        `json:"status"`
	Items   []itemWire `json:"items"`
}

type itemWire struct {
	Draft draftWire  `json:"draft"`
	Price resultWire `json:"price"`
}

type draftWire struct {
	LocalID                  string               `json:"local_id"`
	Substep                  int                  `json:"substep"`
	CategoryCode             string               `json:"category_code,omitempty"`
	ItemName                 string               `json:"item_name,omitempty"`
	Quantity                 *quantityWire        `json:"quantity,omitempty"`
	Characteristics          *characteristicsWire `json:"characteristics,omitempty"`
	CharacteristicsConfirmed bool                 `json:"characteristics_confirmed,omitempty"`
	Stains                   []string             `json:"stains,omitempty"`
	Defects                  []string             `json:"defects,omitempty"`
	RiskNotes                string               `json:"risk_notes,omitempty"`
	PhotoRefs                []string             `json:"photo_refs,omitempty"`
	ModifierCodes            []string             `json:"modifier_codes,omitempty"`
}

type quantityWire struct {
	Thousandths int64 `json:"thousandths"`
	Unit        int   `json:"unit"`
}

type characteristicsWire struct {
	Material    string `json:"material"`
	Color       int    `json:"color"`
	CustomColor string `json:"custom_color,omitempty"`
	HasFiller   bool   `json:"has_filler,omitempty"`
	FillerType  string `json:"filler_type,omitempty"`
	WearDegree  int    `json:"wear_degree"`
}

type resultWire struct {
	BaseUnitPrice  int64        `json:"base_unit_price"`
	Quantity       quantityWire `json:"quantity"`
	BaseTotal      int64        `json:"base_total"`
	Steps          []stepWire   `json:"steps"`
	Subtotal       int64        `json:"subtotal"`
	UrgencyAmount  int64        `json:"urgency_amount"`
	DiscountAmount int64        `json:"discount_amount"`
	FinalTotal     int64        `json:"final_total"`
}

type stepWire struct {
	Kind         int    `json:"kind"`
	Code         string `json:"code"`
	Label        string `json:"label"`
	Delta        int64  `json:"delta"`
	RunningTotal int64  `json:"running_total"`
}

func remoteStateFromWire(wire remoteStateWire) (wizard.RemoteState, error) {
	items := make([]wizard.CommittedItem, 0, len(wire.Items))
	for _, itemW := range wire.Items {
		draft, err := draftFromWire(itemW.Draft)
		if err != nil {
			return wizard.RemoteState{}, err
		}
		price, err := resultFromWire(itemW.Price)
		if err != nil {
			return wizard.RemoteState{}, err
		}
		item, err := wizard.NewCommittedItem(draft, price)
		if err != nil {
			return wizard.RemoteState{}, err
		}
		items = append(items, item)
	}

	return wizard.RemoteState{
		Version: wire.Version,
		Stage:   wizard.Stage(wire.Stage),
		Status:  wizard.Status(wire.Status),
		Items:   items,
	}, nil
}

func itemToWire(item wizard.CommittedItem) itemWire {
	return itemWire{
		Draft: draftToWire(item.Draft()),
		Price: resultToWire(item.Price()),
	}
}

func draftToWire(snapshot itemdraft.Snapshot) draftWire {
	var quantity *quantityWire
	if snapshot.CategoryCode != "" {
		quantity = &quantityWire{
			Thousandths: snapshot.Quantity.Thousandths(),
			Unit:        int(snapshot.Quantity.Unit()),
		}
	}

	var characteristics *characteristicsWire
	if snapshot.Characteristics != nil {
		characteristics = &characteristicsWire{
			Material:    snapshot.Characteristics.Material(),
			Color:       int(snapshot.Characteristics.Color()),
			CustomColor: snapshot.Characteristics.CustomColor(),
			HasFiller:   snapshot.Characteristics.HasFiller(),
			FillerType:  snapshot.Characteristics.FillerType(),
			WearDegree:  snapshot.Characteristics.WearDegree(),
		}
	}

	return draftWire{
		LocalID:                  snapshot.LocalID.String(),
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

func draftFromWire(wire draftWire) (itemdraft.Snapshot, error) {
	localID, err := kernel.UUIDFromString(wire.LocalID)
	if err != nil {
		return itemdraft.Snapshot{}, err
	}

	var quantity kernel.Quantity
	if wire.Quantity != nil {
		quantity, err = quantityFromWire(*wire.Quantity)
		if err != nil {
			return itemdraft.Snapshot{}, err
		}
	}

	var characteristics *itemdraft.Characteristics
	if wire.Characteristics != nil {
		c, cErr := itemdraft.NewCharacteristics(
			wire.Characteristics.Material,
			pricing.ColorType(wire.Characteristics.Color),
			wire.Characteristics.CustomColor,
			wire.Characteristics.HasFiller,
			wire.Characteristics.FillerType,
			wire.Characteristics.WearDegree,
		)
		if cErr != nil {
			return itemdraft.Snapshot{}, cErr
		}
		characteristics = &c
	}

	return itemdraft.Snapshot{
		LocalID:                  localID,
		Substep:                  itemdraft.Substep(wire.Substep),
		CategoryCode:             wire.CategoryCode,
		ItemName:                 wire.ItemName,
		Quantity:                 quantity,
		Characteristics:          characteristics,
		CharacteristicsConfirmed: wire.CharacteristicsConfirmed,
		Stains:                   wire.Stains,
		Defects:                  wire.Defects,
		RiskNotes:                wire.RiskNotes,
		PhotoRefs:                wire.PhotoRefs,
		ModifierCodes:            wire.ModifierCodes,
	}, nil
}

func resultToWire(result pricing.Result) resultWire {
	steps := make([]stepWire, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, stepWire{
			Kind:         int(step.Kind),
			Code:         step.Code,
			Label:        step.Label,
			Delta:        step.Delta,
			RunningTotal: step.RunningTotal.MinorUnits(),
		})
	}

	return resultWire{
		BaseUnitPrice: result.BaseUnitPrice.MinorUnits(),
		Quantity: quantityWire{
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

func resultFromWire(wire resultWire) (pricing.Result, error) {
	quantity, err := quantityFromWire(wire.Quantity)
	if err != nil {
		return pricing.Result{}, err
	}

	amounts := make([]kernel.Money, 0, 6)
	for _, minor := range []int64{
		wire.BaseUnitPrice, wire.BaseTotal, wire.Subtotal,
		wire.UrgencyAmount, wire.DiscountAmount, wire.FinalTotal,
	} {
		m, moneyErr := kernel.NewMoney(minor)
		if moneyErr != nil {
			return pricing.Result{}, moneyErr
		}
		amounts = append(amounts, m)
	}

	steps := make([]pricing.BreakdownStep, 0, len(wire.Steps))
	for _, step := range wire.Steps {
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

func quantityFromWire(wire quantityWire) (kernel.Quantity, error) {
	if kernel.UnitOfMeasure(wire.Unit) == kernel.UnitPiece {
		return kernel.NewPieceQuantity(wire.Thousandths / 1000)
	}
	return kernel.NewWeightQuantity(wire.Thousandths)
}
