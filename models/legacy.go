package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Legacy import shapes. An earlier build of the product persisted crops with
// Devanagari status/unit labels, a nested landSize object and generic
// "materials" instead of categorized expenses. That shape is not supported
// natively; it is mapped onto the canonical Crop at the import boundary.

type LegacyCrop struct {
	Name       string            `json:"name"`
	CropType   string            `json:"cropType,omitempty"`
	StartDate  time.Time         `json:"startDate"`
	EndDate    *time.Time        `json:"endDate,omitempty"`
	LandSize   LegacyLandSize    `json:"landSize"`
	Status     string            `json:"status"`
	Materials  []LegacyMaterial  `json:"materials,omitempty"`
	Production *LegacyProduction `json:"production,omitempty"`

	// Completion-time snapshots kept by the old build. Ignored for
	// aggregation (totals are live-derived) but used to reconstruct the
	// final sale when no production block is present.
	TotalIncome float64 `json:"totalIncome,omitempty"`
}

type LegacyLandSize struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type LegacyMaterial struct {
	Name     string         `json:"name"`
	Quantity LegacyQuantity `json:"quantity"`
	Price    float64        `json:"price"` // total price, already multiplied out
	Date     time.Time      `json:"date"`
	Notes    string         `json:"notes,omitempty"`
}

type LegacyQuantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type LegacyProduction struct {
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	SellingPrice float64 `json:"sellingPrice"`
}

var legacyLandUnits = map[string]LandUnit{
	"एकड़":     UnitAcre,
	"बीघा":     UnitBigha,
	"गुंठा":    UnitGuntha,
	"हेक्टेयर": UnitHectare,
	"Acre":     UnitAcre,
	"Bigha":    UnitBigha,
	"Guntha":   UnitGuntha,
	"Hectare":  UnitHectare,
}

var legacyWeightUnits = map[string]WeightUnit{
	"किलो":    WeightKg,
	"क्विंटल": WeightQuintal,
	"टन":      WeightTon,
	"kg":      WeightKg,
	"quintal": WeightQuintal,
	"ton":     WeightTon,
}

var legacyStatuses = map[string]CropStatus{
	"चालू":      CropStatusActive,
	"पूर्ण":     CropStatusCompleted,
	"Active":    CropStatusActive,
	"Completed": CropStatusCompleted,
}

// FromLegacy maps an old-shape crop onto the canonical aggregate. Materials
// become Other-category expenses carrying a MaterialDetail; a completed crop
// with production data gets one reconstructed sale so live-derived totals
// match what the old build displayed.
func FromLegacy(ownerID primitive.ObjectID, lc LegacyCrop) (*Crop, error) {
	name := strings.TrimSpace(lc.Name)
	if name == "" {
		name = strings.TrimSpace(lc.CropType)
	}
	if name == "" {
		return nil, fmt.Errorf("legacy crop has no name")
	}
	if lc.StartDate.IsZero() {
		return nil, fmt.Errorf("legacy crop has no start date")
	}
	if lc.LandSize.Value <= 0 {
		return nil, fmt.Errorf("legacy crop land size must be positive")
	}
	unit, ok := legacyLandUnits[strings.TrimSpace(lc.LandSize.Unit)]
	if !ok {
		return nil, fmt.Errorf("unknown legacy land unit %q", lc.LandSize.Unit)
	}
	status, ok := legacyStatuses[strings.TrimSpace(lc.Status)]
	if !ok {
		return nil, fmt.Errorf("unknown legacy status %q", lc.Status)
	}

	now := time.Now().UTC()
	crop := &Crop{
		UserID:    ownerID,
		Name:      name,
		StartDate: lc.StartDate,
		LandArea:  lc.LandSize.Value,
		Unit:      unit,
		Status:    status,
		Expenses:  make([]Expense, 0, len(lc.Materials)),
		Sales:     []Sale{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, m := range lc.Materials {
		exp := Expense{
			ID:       primitive.NewObjectID(),
			Category: CategoryOther,
			Amount:   m.Price,
			Date:     m.Date,
			Notes:    m.Notes,
			Material: &MaterialDetail{
				Item:     m.Name,
				Quantity: m.Quantity.Value,
				Unit:     m.Quantity.Unit,
			},
		}
		if m.Quantity.Value > 0 {
			exp.Material.PricePerUnit = decimal.NewFromFloat(m.Price).
				DivRound(decimal.NewFromFloat(m.Quantity.Value), 2).InexactFloat64()
		}
		crop.Expenses = append(crop.Expenses, exp)
	}

	if status == CropStatusCompleted {
		sale, ok := legacyFinalSale(lc)
		if ok {
			sale.ID = primitive.NewObjectID()
			if sale.Date.IsZero() {
				if lc.EndDate != nil {
					sale.Date = *lc.EndDate
				} else {
					sale.Date = now
				}
			}
			crop.Sales = append(crop.Sales, sale)
		}
	}
	return crop, nil
}

func legacyFinalSale(lc LegacyCrop) (Sale, bool) {
	if lc.Production != nil && lc.Production.Quantity > 0 {
		unit, ok := legacyWeightUnits[strings.TrimSpace(lc.Production.Unit)]
		if !ok {
			unit = WeightQuintal
		}
		amount := lc.TotalIncome
		if amount <= 0 {
			amount = SaleAmount(lc.Production.Quantity, lc.Production.SellingPrice)
		}
		return Sale{
			Weight:      lc.Production.Quantity,
			WeightUnit:  unit,
			RatePerUnit: lc.Production.SellingPrice,
			Amount:      amount,
			Description: "Imported final production",
		}, true
	}
	if lc.TotalIncome > 0 {
		return Sale{Amount: lc.TotalIncome, Description: "Imported income"}, true
	}
	return Sale{}, false
}
