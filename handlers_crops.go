package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"kisansathi/models"
)

// loadOwnedCrop is the ownership guard: every crop read or mutation goes
// through it. Looks up by id first so a truly absent crop reports not-found
// while someone else's crop reports not-authorized. That existence leak is a
// deliberate policy carried over from the product, not an accident.
func (a *App) loadOwnedCrop(ctx context.Context, userID primitive.ObjectID, idStr string) (*models.Crop, error) {
	oid, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: bad crop id", errValidation)
	}
	var crop models.Crop
	if err := a.crops.FindOne(ctx, bson.M{"_id": oid}).Decode(&crop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: crop", errNotFound)
		}
		return nil, err
	}
	if crop.UserID != userID {
		return nil, errNotOwner
	}
	return &crop, nil
}

// handleListCrops returns the caller's crops, most recently created first,
// each with derived aggregates attached.
func (a *App) handleListCrops(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.crops.Find(ctx, bson.M{"userId": uid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		a.respondError(w, err)
		return
	}
	defer cur.Close(ctx)

	out := []*models.Crop{}
	if err := cur.All(ctx, &out); err != nil {
		a.respondError(w, err)
		return
	}
	for _, c := range out {
		c.Derive()
	}
	writeList(w, out, len(out))
}

// handleCreateCrop validates required attributes and persists a new crop
// with empty expense and sale collections.
func (a *App) handleCreateCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req createCropReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.respondError(w, err)
		return
	}
	if req.StartDate.IsZero() {
		a.respondError(w, fmt.Errorf("%w: start date is required", errValidation))
		return
	}

	now := time.Now().UTC()
	crop := models.Crop{
		UserID:    uid,
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate.Time,
		LandArea:  req.LandArea,
		Unit:      models.LandUnit(req.Unit),
		Location:  strings.TrimSpace(req.Location),
		Notes:     strings.TrimSpace(req.Notes),
		Status:    models.CropStatusActive,
		Expenses:  []models.Expense{},
		Sales:     []models.Sale{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := a.crops.InsertOne(ctx, &crop)
	if err != nil {
		a.respondError(w, err)
		return
	}
	crop.ID = res.InsertedID.(primitive.ObjectID)
	a.log.Info("crop created", zap.String("crop", crop.ID.Hex()), zap.String("user", uid.Hex()))
	writeData(w, http.StatusCreated, crop.Derive())
}

// handleGetCrop returns a single crop by id with derived aggregates.
func (a *App) handleGetCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, crop.Derive())
}

// handleUpdateCrop applies a partial update, re-validating touched
// constrained fields. Status is not patchable here; completion and
// reopening have dedicated endpoints.
func (a *App) handleUpdateCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req updateCropReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.respondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}

	set := bson.M{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			a.respondError(w, fmt.Errorf("%w: name must not be empty", errValidation))
			return
		}
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.StartDate != nil && !req.StartDate.IsZero() {
		set["startDate"] = req.StartDate.Time
	}
	if req.LandArea != nil {
		set["landArea"] = *req.LandArea
	}
	if req.Unit != nil {
		set["unit"] = models.LandUnit(*req.Unit)
	}
	if req.Location != nil {
		set["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		set["notes"] = strings.TrimSpace(*req.Notes)
	}
	if len(set) == 0 {
		a.respondError(w, fmt.Errorf("%w: nothing to update", errValidation))
		return
	}
	set["updatedAt"] = time.Now().UTC()

	res := a.crops.FindOneAndUpdate(
		ctx,
		bson.M{"_id": crop.ID, "userId": uid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.Crop
	if err := res.Decode(&out); err != nil {
		a.respondError(w, fmt.Errorf("%w: crop", errNotFound))
		return
	}
	writeData(w, http.StatusOK, out.Derive())
}

// handleDeleteCrop removes the crop document; embedded expense and sale
// records go with it.
func (a *App) handleDeleteCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	res, err := a.crops.DeleteOne(ctx, bson.M{"_id": crop.ID, "userId": uid})
	if err != nil {
		a.respondError(w, err)
		return
	}
	if res.DeletedCount == 0 {
		a.respondError(w, fmt.Errorf("%w: crop", errNotFound))
		return
	}
	a.log.Info("crop deleted", zap.String("crop", crop.ID.Hex()))
	writeData(w, http.StatusOK, map[string]any{})
}

// handleAddSale appends a sale record. Amount defaults to weight × rate
// when not supplied explicitly.
func (a *App) handleAddSale(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req saleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.respondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}

	sale := models.Sale{
		ID:          primitive.NewObjectID(),
		Date:        req.Date.Time,
		Description: strings.TrimSpace(req.Description),
	}
	if req.Weight != nil {
		sale.Weight = *req.Weight
	}
	if req.WeightUnit != "" {
		sale.WeightUnit = models.WeightUnit(req.WeightUnit)
	} else if req.Weight != nil {
		sale.WeightUnit = models.WeightKg
	}
	if req.RatePerUnit != nil {
		sale.RatePerUnit = *req.RatePerUnit
	}
	switch {
	case req.Amount != nil:
		sale.Amount = *req.Amount
	case req.Weight != nil && req.RatePerUnit != nil:
		sale.Amount = models.SaleAmount(*req.Weight, *req.RatePerUnit)
	default:
		a.respondError(w, fmt.Errorf("%w: amount or weight and ratePerUnit are required", errValidation))
		return
	}
	if sale.Amount <= 0 {
		a.respondError(w, fmt.Errorf("%w: sale amount must be positive", errValidation))
		return
	}

	out, err := a.pushAndReload(ctx, crop.ID, uid, bson.M{"sales": sale})
	if err != nil {
		a.respondError(w, err)
		return
	}
	writeData(w, http.StatusCreated, out.Derive())
}

// handleCompleteCrop records final production data and flips the crop to
// Completed. Totals stay live-derived afterwards; completion stores no
// snapshot, only the resulting sale record.
func (a *App) handleCompleteCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req completeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.respondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	if crop.Status != models.CropStatusActive {
		a.respondError(w, fmt.Errorf("%w: only an active crop can be completed", errState))
		return
	}

	saleDate := time.Now().UTC()
	if req.Date != nil && !req.Date.IsZero() {
		saleDate = req.Date.Time
	}
	sale := models.Sale{
		ID:          primitive.NewObjectID(),
		Weight:      req.Quantity,
		WeightUnit:  models.WeightUnit(req.Unit),
		RatePerUnit: req.SellingPrice,
		Amount:      models.SaleAmount(req.Quantity, req.SellingPrice),
		Date:        saleDate,
		Description: strings.TrimSpace(req.Description),
	}

	// Status guard in the filter so two racing completions cannot both win.
	res := a.crops.FindOneAndUpdate(
		ctx,
		bson.M{"_id": crop.ID, "userId": uid, "status": models.CropStatusActive},
		bson.M{
			"$set":  bson.M{"status": models.CropStatusCompleted, "updatedAt": time.Now().UTC()},
			"$push": bson.M{"sales": sale},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.Crop
	if err := res.Decode(&out); err != nil {
		a.respondError(w, fmt.Errorf("%w: only an active crop can be completed", errState))
		return
	}
	a.log.Info("crop completed", zap.String("crop", crop.ID.Hex()))
	writeData(w, http.StatusOK, out.Derive())
}

// handleReopenCrop flips a completed crop back to Active. The ledger is
// preserved; with live-derived totals there is no snapshot to clear.
func (a *App) handleReopenCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	if crop.Status != models.CropStatusCompleted {
		a.respondError(w, fmt.Errorf("%w: only a completed crop can be reopened", errState))
		return
	}

	res := a.crops.FindOneAndUpdate(
		ctx,
		bson.M{"_id": crop.ID, "userId": uid, "status": models.CropStatusCompleted},
		bson.M{"$set": bson.M{"status": models.CropStatusActive, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.Crop
	if err := res.Decode(&out); err != nil {
		a.respondError(w, fmt.Errorf("%w: only a completed crop can be reopened", errState))
		return
	}
	writeData(w, http.StatusOK, out.Derive())
}

// handleImportCrop accepts a crop in the legacy shape (Devanagari labels,
// landSize object, generic materials) and persists the canonical mapping.
func (a *App) handleImportCrop(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var legacy models.LegacyCrop
	if err := json.NewDecoder(r.Body).Decode(&legacy); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	crop, err := models.FromLegacy(uid, legacy)
	if err != nil {
		a.respondError(w, fmt.Errorf("%w: %v", errValidation, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := a.crops.InsertOne(ctx, crop)
	if err != nil {
		a.respondError(w, err)
		return
	}
	crop.ID = res.InsertedID.(primitive.ObjectID)
	a.log.Info("crop imported", zap.String("crop", crop.ID.Hex()))
	writeData(w, http.StatusCreated, crop.Derive())
}

// pushAndReload appends to an embedded collection with a single atomic
// update and returns the updated document. The per-document write
// serialization of the store means two racing appends both land.
func (a *App) pushAndReload(ctx context.Context, cropID, userID primitive.ObjectID, push bson.M) (*models.Crop, error) {
	res := a.crops.FindOneAndUpdate(
		ctx,
		bson.M{"_id": cropID, "userId": userID},
		bson.M{
			"$push": push,
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.Crop
	if err := res.Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: crop", errNotFound)
		}
		return nil, err
	}
	return &out, nil
}
