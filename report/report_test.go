package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisansathi/models"
	"kisansathi/report"
)

func completedCrop() *models.Crop {
	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	return &models.Crop{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Name:      "Wheat",
		StartDate: start,
		LandArea:  2,
		Unit:      models.UnitAcre,
		Location:  "Nashik",
		Status:    models.CropStatusCompleted,
		Expenses: []models.Expense{
			{
				ID:       primitive.NewObjectID(),
				Category: models.CategorySeeds,
				Amount:   300,
				Date:     start.AddDate(0, 0, 2),
				Material: &models.MaterialDetail{Item: "Wheat seed", Quantity: 25, Unit: "kg", PricePerUnit: 12},
			},
			{
				ID:       primitive.NewObjectID(),
				Category: models.CategoryFertilizer,
				Amount:   500,
				Date:     start.AddDate(0, 1, 0),
			},
			{
				ID:       primitive.NewObjectID(),
				Category: models.CategoryFertilizer,
				Amount:   200,
				Date:     start.AddDate(0, 2, 0),
			},
		},
		Sales: []models.Sale{
			{
				ID:          primitive.NewObjectID(),
				Weight:      10,
				WeightUnit:  models.WeightQuintal,
				RatePerUnit: 50,
				Amount:      500,
				Date:        start.AddDate(0, 4, 0),
			},
			{
				ID:     primitive.NewObjectID(),
				Amount: 150,
				Date:   start.AddDate(0, 3, 0),
			},
		},
	}
}

func TestAssemble_GroupsAndSubtotals(t *testing.T) {
	rep := report.Assemble(completedCrop(), report.LangEN)

	// Fertilizer comes before Seeds in the fixed category order.
	require.Len(t, rep.Categories, 2)
	fert, seeds := rep.Categories[0], rep.Categories[1]

	assert.Equal(t, models.CategoryFertilizer, fert.Category)
	assert.Len(t, fert.Lines, 2)
	assert.Equal(t, 700.0, fert.Subtotal)
	assert.Equal(t, 350.0, fert.PerUnitArea, "subtotal over 2 units of land")

	assert.Equal(t, models.CategorySeeds, seeds.Category)
	assert.Equal(t, 300.0, seeds.Subtotal)
	require.Len(t, seeds.Lines, 1)
	assert.Contains(t, seeds.Lines[0].Detail, "Wheat seed")
}

func TestAssemble_Summary(t *testing.T) {
	rep := report.Assemble(completedCrop(), report.LangEN)

	assert.Equal(t, 1000.0, rep.Summary.TotalCost)
	assert.Equal(t, 650.0, rep.Summary.TotalIncome)
	assert.Equal(t, -350.0, rep.Summary.NetProfit)
	assert.True(t, rep.Summary.Loss)
}

func TestAssemble_Header(t *testing.T) {
	rep := report.Assemble(completedCrop(), report.LangHI)

	assert.Equal(t, "Wheat", rep.Header.CropName)
	assert.Equal(t, "एकड़", rep.Header.LandUnit)
	assert.Equal(t, "पूर्ण", rep.Header.Status)
	require.NotNil(t, rep.Header.EndDate)
	// End date is the latest sale date, not the last slice element.
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *rep.Header.EndDate)
	assert.GreaterOrEqual(t, rep.Header.DurationMonths, 0)
}

func TestAssemble_EmptyLedger(t *testing.T) {
	crop := completedCrop()
	crop.Expenses = nil
	crop.Sales = nil

	rep := report.Assemble(crop, report.LangEN)

	assert.Empty(t, rep.Categories)
	assert.Empty(t, rep.Sales)
	assert.Nil(t, rep.Header.EndDate)
	assert.Zero(t, rep.Summary.NetProfit)
	assert.False(t, rep.Summary.Loss)
}

func TestAssemble_LocalizedLabels(t *testing.T) {
	rep := report.Assemble(completedCrop(), report.LangMR)

	assert.Equal(t, "पीक अहवाल", rep.Title)
	assert.Equal(t, "आर्थिक सारांश", rep.Labels["financialSummary"])
	assert.Equal(t, "खत", rep.Categories[0].Label)
	assert.Equal(t, "क्विंटल", rep.Sales[0].WeightUnit)
}

func TestLabel_Fallbacks(t *testing.T) {
	assert.Equal(t, "Crop Report", report.Label("cropReport", report.LangEN))
	assert.Equal(t, "Crop Report", report.Label("cropReport", report.Lang("bn")),
		"unknown language falls back to English")
	assert.Equal(t, "someUnknownKey", report.Label("someUnknownKey", report.LangEN),
		"unknown key falls back to the key itself")
}

func TestRenderHTML(t *testing.T) {
	rep := report.Assemble(completedCrop(), report.LangEN)

	html, err := report.RenderHTML(rep)
	require.NoError(t, err)

	assert.True(t, strings.Contains(html, "Crop Report"))
	assert.True(t, strings.Contains(html, "Wheat"))
	assert.True(t, strings.Contains(html, "Fertilizer"))
	assert.True(t, strings.Contains(html, "Net Loss"), "loss label shown for negative profit")
}

func TestRenderHTML_Hindi(t *testing.T) {
	rep := report.Assemble(completedCrop(), report.LangHI)

	html, err := report.RenderHTML(rep)
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "फसल रिपोर्ट"))
}
