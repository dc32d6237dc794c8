package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kisansathi/models"
)

// Request DTOs. Keep them minimal and explicit; validator tags carry the
// field-level constraints, cross-field rules live in the handlers.

type registerReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// apiDate accepts both RFC3339 timestamps and bare "2006-01-02" values,
// which is what the date inputs on the forms submit.
type apiDate struct {
	time.Time
}

func (d *apiDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

type createCropReq struct {
	Name      string  `json:"name"      validate:"required"`
	StartDate apiDate `json:"startDate" validate:"required"`
	LandArea  float64 `json:"landArea"  validate:"required,gt=0"`
	Unit      string  `json:"unit"      validate:"required,oneof=Acre Bigha Guntha Hectare"`
	Location  string  `json:"location,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type updateCropReq struct {
	Name      *string  `json:"name,omitempty"      validate:"omitempty,min=1"`
	StartDate *apiDate `json:"startDate,omitempty"`
	LandArea  *float64 `json:"landArea,omitempty"  validate:"omitempty,gt=0"`
	Unit      *string  `json:"unit,omitempty"      validate:"omitempty,oneof=Acre Bigha Guntha Hectare"`
	Location  *string  `json:"location,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

type expenseReq struct {
	Category    string   `json:"category" validate:"required,oneof=Labour Tractor Threshing Fertilizer Seeds Irrigation Other"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Date        apiDate  `json:"date" validate:"required"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	BillImage   string   `json:"billImage,omitempty"`

	Machine  *models.MachineDetail  `json:"machine,omitempty"`
	Labour   *models.LabourDetail   `json:"labour,omitempty"`
	Material *models.MaterialDetail `json:"material,omitempty"`
}

type expensePatchReq struct {
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=Labour Tractor Threshing Fertilizer Seeds Irrigation Other"`
	Amount      *float64 `json:"amount,omitempty"   validate:"omitempty,gte=0"`
	Date        *apiDate `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	BillImage   *string  `json:"billImage,omitempty"`

	Machine  *models.MachineDetail  `json:"machine,omitempty"`
	Labour   *models.LabourDetail   `json:"labour,omitempty"`
	Material *models.MaterialDetail `json:"material,omitempty"`
}

type saleReq struct {
	Weight      *float64 `json:"weight,omitempty"      validate:"omitempty,gt=0"`
	WeightUnit  string   `json:"weightUnit,omitempty"  validate:"omitempty,oneof=kg quintal ton"`
	RatePerUnit *float64 `json:"ratePerUnit,omitempty" validate:"omitempty,gte=0"`
	Amount      *float64 `json:"amount,omitempty"      validate:"omitempty,gte=0"`
	Date        apiDate  `json:"date" validate:"required"`
	Description string   `json:"description,omitempty"`
}

type completeReq struct {
	Quantity     float64  `json:"quantity"     validate:"required,gt=0"`
	Unit         string   `json:"unit"         validate:"required,oneof=kg quintal ton"`
	SellingPrice float64  `json:"sellingPrice" validate:"required,gt=0"`
	Date         *apiDate `json:"date,omitempty"`
	Description  string   `json:"description,omitempty"`
}
