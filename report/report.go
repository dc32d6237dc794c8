// Package report assembles a point-in-time snapshot of a completed crop's
// ledger and summary figures, localizes its labels, and renders it to HTML
// for PDF conversion by an external renderer service.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"kisansathi/models"
)

// Report is the assembled, internally-consistent snapshot handed to the
// rendering collaborator. All figures are derived from the crop's embedded
// collections at generation time.
type Report struct {
	Title       string            `json:"title"`
	Labels      map[string]string `json:"labels"`
	Header      Header            `json:"header"`
	Categories  []CategoryGroup   `json:"categories"`
	Sales       []SaleLine        `json:"sales"`
	Summary     Summary           `json:"summary"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Lang        Lang              `json:"lang"`
}

// Header carries crop identity and dates.
type Header struct {
	CropName       string     `json:"cropName"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	DurationMonths int        `json:"durationMonths"`
	LandArea       float64    `json:"landArea"`
	LandUnit       string     `json:"landUnit"`
	Location       string     `json:"location,omitempty"`
	Status         string     `json:"status"`
}

// CategoryGroup is one expense category with its line items and subtotal.
type CategoryGroup struct {
	Category models.ExpenseCategory `json:"category"`
	Label    string                 `json:"label"`
	Lines    []ExpenseLine          `json:"lines"`
	Subtotal float64                `json:"subtotal"`
	// Subtotal divided by land area: what this category cost per unit
	// of land. Zero when land area is not positive.
	PerUnitArea float64 `json:"perUnitArea"`
}

// ExpenseLine is one cost event as it appears in the report.
type ExpenseLine struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	Amount      float64   `json:"amount"`
}

// SaleLine is one revenue event as it appears in the report.
type SaleLine struct {
	Date        time.Time `json:"date"`
	Weight      float64   `json:"weight,omitempty"`
	WeightUnit  string    `json:"weightUnit,omitempty"`
	RatePerUnit float64   `json:"ratePerUnit,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
}

// Summary carries the three headline figures. Loss reports the profit label
// to use (net profit vs net loss).
type Summary struct {
	TotalCost   float64 `json:"totalCost"`
	TotalIncome float64 `json:"totalIncome"`
	NetProfit   float64 `json:"netProfit"`
	Loss        bool    `json:"loss"`
}

// categoryOrder fixes the grouping order in the rendered document.
var categoryOrder = []models.ExpenseCategory{
	models.CategoryLabour,
	models.CategoryTractor,
	models.CategoryThreshing,
	models.CategoryFertilizer,
	models.CategorySeeds,
	models.CategoryIrrigation,
	models.CategoryOther,
}

// Assemble builds the report snapshot for a crop in the given language.
// Callers gate on crop status; Assemble itself does not refuse active crops
// so previews stay possible in tests.
func Assemble(crop *models.Crop, lang Lang) *Report {
	now := time.Now().UTC()
	crop.Derive()

	groups := make([]CategoryGroup, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		var lines []ExpenseLine
		subtotal := decimal.Zero
		for i := range crop.Expenses {
			e := &crop.Expenses[i]
			if e.Category != cat {
				continue
			}
			lines = append(lines, ExpenseLine{
				Date:        e.Date,
				Description: e.Description,
				Detail:      detailText(e),
				Amount:      e.Amount,
			})
			subtotal = subtotal.Add(decimal.NewFromFloat(e.Amount))
		}
		if len(lines) == 0 {
			continue
		}
		group := CategoryGroup{
			Category: cat,
			Label:    CategoryLabel(cat, lang),
			Lines:    lines,
			Subtotal: subtotal.Round(2).InexactFloat64(),
		}
		if crop.LandArea > 0 {
			group.PerUnitArea = subtotal.
				DivRound(decimal.NewFromFloat(crop.LandArea), 2).InexactFloat64()
		}
		groups = append(groups, group)
	}

	sales := make([]SaleLine, 0, len(crop.Sales))
	var endDate *time.Time
	for i := range crop.Sales {
		s := &crop.Sales[i]
		sales = append(sales, SaleLine{
			Date:        s.Date,
			Weight:      s.Weight,
			WeightUnit:  WeightUnitLabel(s.WeightUnit, lang),
			RatePerUnit: s.RatePerUnit,
			Description: s.Description,
			Amount:      s.Amount,
		})
		if endDate == nil || s.Date.After(*endDate) {
			d := s.Date
			endDate = &d
		}
	}

	return &Report{
		Title:  Label("cropReport", lang),
		Labels: LabelSet(lang),
		Header: Header{
			CropName:       crop.Name,
			StartDate:      crop.StartDate,
			EndDate:        endDate,
			DurationMonths: monthsBetween(crop.StartDate, now),
			LandArea:       crop.LandArea,
			LandUnit:       LandUnitLabel(crop.Unit, lang),
			Location:       crop.Location,
			Status:         StatusLabel(crop.Status, lang),
		},
		Categories: groups,
		Sales:      sales,
		Summary: Summary{
			TotalCost:   crop.TotalExpense,
			TotalIncome: crop.TotalSales,
			NetProfit:   crop.Profit,
			Loss:        crop.Profit < 0,
		},
		GeneratedAt: now,
		Lang:        lang,
	}
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := int(to.Month()) - int(from.Month()) + 12*(to.Year()-from.Year())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// detailText renders the category-specific fields as a short display string.
func detailText(e *models.Expense) string {
	switch {
	case e.Machine != nil:
		return fmt.Sprintf("%.0fh %.0fm × ₹%.2f/h",
			e.Machine.Hours, e.Machine.Minutes, e.Machine.ChargePerHour)
	case e.Labour != nil:
		return fmt.Sprintf("%d × ₹%.2f × %dd",
			e.Labour.Workers, e.Labour.ChargePerPerson, maxInt(e.Labour.Days, 1))
	case e.Material != nil:
		if e.Material.Item != "" {
			return fmt.Sprintf("%s: %.2f %s × ₹%.2f",
				e.Material.Item, e.Material.Quantity, e.Material.Unit, e.Material.PricePerUnit)
		}
		return fmt.Sprintf("%.2f %s × ₹%.2f",
			e.Material.Quantity, e.Material.Unit, e.Material.PricePerUnit)
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
