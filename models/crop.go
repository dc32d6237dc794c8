package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CropStatus — lifecycle of one cultivation cycle.
type CropStatus string

const (
	CropStatusActive    CropStatus = "Active"
	CropStatusCompleted CropStatus = "Completed"
)

// LandUnit — unit the farmer measures the plot in.
type LandUnit string

const (
	UnitAcre    LandUnit = "Acre"
	UnitBigha   LandUnit = "Bigha"
	UnitGuntha  LandUnit = "Guntha"
	UnitHectare LandUnit = "Hectare"
)

// ValidLandUnit reports whether u is one of the supported land units.
func ValidLandUnit(u LandUnit) bool {
	switch u {
	case UnitAcre, UnitBigha, UnitGuntha, UnitHectare:
		return true
	}
	return false
}

// ExpenseCategory — closed set of cost event kinds.
type ExpenseCategory string

const (
	CategoryLabour     ExpenseCategory = "Labour"
	CategoryTractor    ExpenseCategory = "Tractor"
	CategoryThreshing  ExpenseCategory = "Threshing"
	CategoryFertilizer ExpenseCategory = "Fertilizer"
	CategorySeeds      ExpenseCategory = "Seeds"
	CategoryIrrigation ExpenseCategory = "Irrigation"
	CategoryOther      ExpenseCategory = "Other"
)

// ValidExpenseCategory reports whether c is a known category.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryLabour, CategoryTractor, CategoryThreshing,
		CategoryFertilizer, CategorySeeds, CategoryIrrigation, CategoryOther:
		return true
	}
	return false
}

// WeightUnit — unit for sale / production weight.
type WeightUnit string

const (
	WeightKg      WeightUnit = "kg"
	WeightQuintal WeightUnit = "quintal"
	WeightTon     WeightUnit = "ton"
)

// ValidWeightUnit reports whether u is a known weight unit.
func ValidWeightUnit(u WeightUnit) bool {
	switch u {
	case WeightKg, WeightQuintal, WeightTon:
		return true
	}
	return false
}

// Crop — top-level aggregate root. One document per cultivation cycle,
// exclusively owned by one user. Expense and sale records are embedded:
// deleting the crop cascades over them implicitly.
type Crop struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId"        json:"userId"`
	Name      string             `bson:"name"          json:"name"`
	StartDate time.Time          `bson:"startDate"     json:"startDate"`
	LandArea  float64            `bson:"landArea"      json:"landArea"`
	Unit      LandUnit           `bson:"unit"          json:"unit"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Notes     string             `bson:"notes,omitempty"    json:"notes,omitempty"`
	Status    CropStatus         `bson:"status"        json:"status"`

	Expenses []Expense `bson:"expenses" json:"expenses"`
	Sales    []Sale    `bson:"sales"    json:"sales"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Injected-only derived aggregates (NOT stored in Mongo). Always
	// recomputed from the embedded collections via Derive before encoding.
	TotalExpense float64 `bson:"-" json:"totalExpense"`
	TotalSales   float64 `bson:"-" json:"totalSales"`
	Profit       float64 `bson:"-" json:"profit"`
	CostPerUnit  float64 `bson:"-" json:"costPerUnit"`
}

// Expense — one cost line item embedded in a Crop. The persisted Amount is
// the single source of truth for aggregation; category detail below records
// how it was arrived at but is never re-derived on read.
//
// Exactly one of Machine/Labour/Material is expected to be set, matching the
// category: Machine for Tractor/Threshing, Labour for Labour, Material for
// the rest. Records imported from older data may carry none.
type Expense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category    ExpenseCategory    `bson:"category"      json:"category"`
	Amount      float64            `bson:"amount"        json:"amount"`
	Date        time.Time          `bson:"date"          json:"date"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Notes       string             `bson:"notes,omitempty"       json:"notes,omitempty"`
	BillImage   string             `bson:"billImage,omitempty"   json:"billImage,omitempty"`

	Machine  *MachineDetail  `bson:"machine,omitempty"  json:"machine,omitempty"`
	Labour   *LabourDetail   `bson:"labour,omitempty"   json:"labour,omitempty"`
	Material *MaterialDetail `bson:"material,omitempty" json:"material,omitempty"`
}

// MachineDetail — hourly machine work (tractor, thresher).
type MachineDetail struct {
	Owner         string  `bson:"owner,omitempty"   json:"owner,omitempty"`
	Hours         float64 `bson:"hours"             json:"hours"`
	Minutes       float64 `bson:"minutes,omitempty" json:"minutes,omitempty"`
	ChargePerHour float64 `bson:"chargePerHour"     json:"chargePerHour"`
}

// LabourDetail — per-person daily labour.
type LabourDetail struct {
	Workers         int     `bson:"workers"                   json:"workers"`
	Days            int     `bson:"days,omitempty"            json:"days,omitempty"`
	ChargePerPerson float64 `bson:"chargePerPerson"           json:"chargePerPerson"`
	LabourType      string  `bson:"labourType,omitempty"      json:"labourType,omitempty"`
	WorkingTime     string  `bson:"workingTime,omitempty"     json:"workingTime,omitempty"` // full | half | custom
	CustomHours     float64 `bson:"customHours,omitempty"     json:"customHours,omitempty"`
}

// MaterialDetail — purchased inputs (seeds, fertilizer, water, other).
type MaterialDetail struct {
	Item         string  `bson:"item,omitempty"     json:"item,omitempty"`
	Quantity     float64 `bson:"quantity"           json:"quantity"`
	Unit         string  `bson:"unit,omitempty"     json:"unit,omitempty"`
	PricePerUnit float64 `bson:"pricePerUnit"       json:"pricePerUnit"`
	Brand        string  `bson:"brand,omitempty"    json:"brand,omitempty"`
	Supplier     string  `bson:"supplier,omitempty" json:"supplier,omitempty"`
}

// Sale — one revenue line item embedded in a Crop.
type Sale struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Weight      float64            `bson:"weight,omitempty"      json:"weight,omitempty"`
	WeightUnit  WeightUnit         `bson:"weightUnit,omitempty"  json:"weightUnit,omitempty"`
	RatePerUnit float64            `bson:"ratePerUnit,omitempty" json:"ratePerUnit,omitempty"`
	Amount      float64            `bson:"amount"                json:"amount"`
	Date        time.Time          `bson:"date"                  json:"date"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// ComputeAmount derives the line amount from the populated category detail,
// matching the client-side form arithmetic:
//
//	machine:  (hours + minutes/60) × chargePerHour
//	labour:   workers × chargePerPerson × days × time-fraction
//	material: quantity × pricePerUnit
//
// Decimal arithmetic is used so the round-trip property holds: the value the
// form previews is the value read back after persistence. Returns 0 when no
// detail is attached.
func (e *Expense) ComputeAmount() float64 {
	switch {
	case e.Machine != nil:
		hours := decimal.NewFromFloat(e.Machine.Hours).
			Add(decimal.NewFromFloat(e.Machine.Minutes).Div(decimal.NewFromInt(60)))
		return hours.Mul(decimal.NewFromFloat(e.Machine.ChargePerHour)).
			Round(2).InexactFloat64()
	case e.Labour != nil:
		return e.Labour.total().Round(2).InexactFloat64()
	case e.Material != nil:
		return decimal.NewFromFloat(e.Material.Quantity).
			Mul(decimal.NewFromFloat(e.Material.PricePerUnit)).
			Round(2).InexactFloat64()
	}
	return 0
}

func (d *LabourDetail) total() decimal.Decimal {
	days := d.Days
	if days <= 0 {
		days = 1
	}
	fraction := decimal.NewFromInt(1)
	switch d.WorkingTime {
	case "half":
		fraction = decimal.NewFromFloat(0.5)
	case "custom":
		if d.CustomHours > 0 {
			fraction = decimal.NewFromFloat(d.CustomHours).Div(decimal.NewFromInt(8))
		} else {
			fraction = decimal.Zero
		}
	}
	return decimal.NewFromInt(int64(d.Workers)).
		Mul(decimal.NewFromFloat(d.ChargePerPerson)).
		Mul(decimal.NewFromInt(int64(days))).
		Mul(fraction)
}

// SaleAmount computes weight × rate for a sale created through the standard
// form. Used when the caller does not supply an explicit amount.
func SaleAmount(weight, ratePerUnit float64) float64 {
	return decimal.NewFromFloat(weight).
		Mul(decimal.NewFromFloat(ratePerUnit)).
		Round(2).InexactFloat64()
}

// FindExpense returns the embedded expense with the given id, or nil.
func (c *Crop) FindExpense(id primitive.ObjectID) *Expense {
	for i := range c.Expenses {
		if c.Expenses[i].ID == id {
			return &c.Expenses[i]
		}
	}
	return nil
}
