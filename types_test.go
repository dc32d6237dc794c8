package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisansathi/models"
)

func TestAPIDate_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2026-03-15T10:30:00Z"`, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"bare date", `"2026-03-15"`, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"empty string is zero", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d apiDate
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestAPIDate_Rejects(t *testing.T) {
	for _, input := range []string{`"15/03/2026"`, `"yesterday"`, `12345`} {
		var d apiDate
		assert.Error(t, json.Unmarshal([]byte(input), &d), "input=%s", input)
	}
}

func TestCreateCropReq_Validation(t *testing.T) {
	v := validator.New()
	valid := createCropReq{
		Name:      "Wheat",
		StartDate: apiDate{Time: time.Now()},
		LandArea:  2,
		Unit:      "Acre",
	}
	require.NoError(t, v.Struct(valid))

	bad := valid
	bad.Unit = "Katha"
	assert.Error(t, v.Struct(bad), "unknown land unit")

	bad = valid
	bad.LandArea = 0
	assert.Error(t, v.Struct(bad), "land area must be positive")

	bad = valid
	bad.Name = ""
	assert.Error(t, v.Struct(bad))
}

func TestExpenseReq_Validation(t *testing.T) {
	v := validator.New()
	valid := expenseReq{
		Category: "Fertilizer",
		Date:     apiDate{Time: time.Now()},
	}
	require.NoError(t, v.Struct(valid))

	bad := valid
	bad.Category = "Transport"
	assert.Error(t, v.Struct(bad))
}

func TestCheckDetailMatchesCategory(t *testing.T) {
	machine := &models.MachineDetail{Hours: 2, ChargePerHour: 800}
	labour := &models.LabourDetail{Workers: 2, ChargePerPerson: 400}
	material := &models.MaterialDetail{Quantity: 10, PricePerUnit: 50}

	tests := []struct {
		name    string
		expense models.Expense
		wantErr bool
	}{
		{"tractor with machine", models.Expense{Category: models.CategoryTractor, Machine: machine}, false},
		{"threshing with machine", models.Expense{Category: models.CategoryThreshing, Machine: machine}, false},
		{"labour with labour", models.Expense{Category: models.CategoryLabour, Labour: labour}, false},
		{"seeds with material", models.Expense{Category: models.CategorySeeds, Material: material}, false},
		{"no detail allowed", models.Expense{Category: models.CategoryOther}, false},
		{"tractor with labour detail", models.Expense{Category: models.CategoryTractor, Labour: labour}, true},
		{"labour with material detail", models.Expense{Category: models.CategoryLabour, Material: material}, true},
		{"fertilizer with machine detail", models.Expense{Category: models.CategoryFertilizer, Machine: machine}, true},
		{"two details", models.Expense{Category: models.CategoryLabour, Labour: labour, Machine: machine}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDetailMatchesCategory(&tt.expense)
			if tt.wantErr {
				assert.ErrorIs(t, err, errValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
