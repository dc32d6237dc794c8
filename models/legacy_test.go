package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisansathi/models"
)

func legacyFixture() models.LegacyCrop {
	return models.LegacyCrop{
		Name:      "गेहूं",
		StartDate: time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC),
		LandSize:  models.LegacyLandSize{Value: 2.5, Unit: "एकड़"},
		Status:    "चालू",
		Materials: []models.LegacyMaterial{
			{
				Name:     "डीएपी खाद",
				Quantity: models.LegacyQuantity{Value: 2, Unit: "kg"},
				Price:    2700,
				Date:     time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC),
				Notes:    "पहली खुराक",
			},
		},
	}
}

func TestFromLegacy_ActiveCrop(t *testing.T) {
	owner := primitive.NewObjectID()

	crop, err := models.FromLegacy(owner, legacyFixture())
	require.NoError(t, err)

	assert.Equal(t, owner, crop.UserID)
	assert.Equal(t, "गेहूं", crop.Name)
	assert.Equal(t, models.UnitAcre, crop.Unit)
	assert.Equal(t, 2.5, crop.LandArea)
	assert.Equal(t, models.CropStatusActive, crop.Status)
	assert.Empty(t, crop.Sales)

	require.Len(t, crop.Expenses, 1)
	exp := crop.Expenses[0]
	assert.False(t, exp.ID.IsZero(), "imported expense must get an id")
	assert.Equal(t, models.CategoryOther, exp.Category)
	assert.Equal(t, 2700.0, exp.Amount)
	assert.Equal(t, "पहली खुराक", exp.Notes)
	require.NotNil(t, exp.Material)
	assert.Equal(t, "डीएपी खाद", exp.Material.Item)
	assert.Equal(t, 1350.0, exp.Material.PricePerUnit, "total price split per unit")
}

func TestFromLegacy_CompletedWithProduction(t *testing.T) {
	end := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	lc := legacyFixture()
	lc.Status = "पूर्ण"
	lc.EndDate = &end
	lc.Production = &models.LegacyProduction{Quantity: 18, Unit: "क्विंटल", SellingPrice: 2200}

	crop, err := models.FromLegacy(primitive.NewObjectID(), lc)
	require.NoError(t, err)

	assert.Equal(t, models.CropStatusCompleted, crop.Status)
	require.Len(t, crop.Sales, 1)
	sale := crop.Sales[0]
	assert.Equal(t, 18.0, sale.Weight)
	assert.Equal(t, models.WeightQuintal, sale.WeightUnit)
	assert.Equal(t, 39600.0, sale.Amount, "reconstructed from quantity × sellingPrice")
	assert.Equal(t, end, sale.Date)

	// Live-derived income then matches what the old build snapshotted.
	assert.Equal(t, 39600.0, models.TotalSales(crop))
}

func TestFromLegacy_CompletedIncomeOnly(t *testing.T) {
	lc := legacyFixture()
	lc.Status = "Completed"
	lc.TotalIncome = 12500

	crop, err := models.FromLegacy(primitive.NewObjectID(), lc)
	require.NoError(t, err)

	require.Len(t, crop.Sales, 1)
	assert.Equal(t, 12500.0, crop.Sales[0].Amount)
	assert.Zero(t, crop.Sales[0].Weight)
}

func TestFromLegacy_FallsBackToCropType(t *testing.T) {
	lc := legacyFixture()
	lc.Name = "  "
	lc.CropType = "Soybean"

	crop, err := models.FromLegacy(primitive.NewObjectID(), lc)
	require.NoError(t, err)
	assert.Equal(t, "Soybean", crop.Name)
}

func TestFromLegacy_Rejections(t *testing.T) {
	owner := primitive.NewObjectID()

	tests := []struct {
		name   string
		mutate func(*models.LegacyCrop)
	}{
		{"no name", func(lc *models.LegacyCrop) { lc.Name, lc.CropType = "", "" }},
		{"no start date", func(lc *models.LegacyCrop) { lc.StartDate = time.Time{} }},
		{"zero land size", func(lc *models.LegacyCrop) { lc.LandSize.Value = 0 }},
		{"unknown land unit", func(lc *models.LegacyCrop) { lc.LandSize.Unit = "Katha" }},
		{"unknown status", func(lc *models.LegacyCrop) { lc.Status = "रुका" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := legacyFixture()
			tt.mutate(&lc)
			_, err := models.FromLegacy(owner, lc)
			assert.Error(t, err)
		})
	}
}

func TestFromLegacy_EnglishLabelsAccepted(t *testing.T) {
	lc := legacyFixture()
	lc.LandSize.Unit = "Hectare"
	lc.Status = "Active"

	crop, err := models.FromLegacy(primitive.NewObjectID(), lc)
	require.NoError(t, err)
	assert.Equal(t, models.UnitHectare, crop.Unit)
	assert.Equal(t, models.CropStatusActive, crop.Status)
}
