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

// handleAddExpense appends a cost record to the crop's expense collection.
// When the caller omits the amount it is derived from the category detail;
// either way the persisted amount is what aggregation reads from then on.
func (a *App) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req expenseReq
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
	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "cropId"))
	if err != nil {
		a.respondError(w, err)
		return
	}

	exp := models.Expense{
		ID:          primitive.NewObjectID(),
		Category:    models.ExpenseCategory(req.Category),
		Date:        req.Date.Time,
		Description: strings.TrimSpace(req.Description),
		Notes:       strings.TrimSpace(req.Notes),
		BillImage:   strings.TrimSpace(req.BillImage),
		Machine:     req.Machine,
		Labour:      req.Labour,
		Material:    req.Material,
	}
	if err := checkDetailMatchesCategory(&exp); err != nil {
		a.respondError(w, err)
		return
	}
	if req.Amount != nil {
		exp.Amount = *req.Amount
	} else {
		exp.Amount = exp.ComputeAmount()
	}
	if exp.Amount <= 0 {
		a.respondError(w, fmt.Errorf("%w: expense amount must be positive", errValidation))
		return
	}

	out, err := a.pushAndReload(ctx, crop.ID, uid, bson.M{"expenses": exp})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.log.Info("expense added",
		zap.String("crop", crop.ID.Hex()),
		zap.String("category", req.Category),
		zap.Float64("amount", exp.Amount),
	)
	writeData(w, http.StatusCreated, out.Derive())
}

// handleUpdateExpense merges the patch onto the stored record in memory,
// re-checks the one-detail-per-category shape, and writes the whole element
// back with a single positional $set, so concurrent edits of sibling
// records cannot clobber each other.
func (a *App) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req expensePatchReq
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
	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "cropId"))
	if err != nil {
		a.respondError(w, err)
		return
	}

	expID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "expenseId"))
	if err != nil {
		a.respondError(w, fmt.Errorf("%w: bad expense id", errValidation))
		return
	}
	stored := crop.FindExpense(expID)
	if stored == nil {
		a.respondError(w, fmt.Errorf("%w: expense", errNotFound))
		return
	}

	merged, err := applyExpensePatch(*stored, &req)
	if err != nil {
		a.respondError(w, err)
		return
	}

	if _, err := a.crops.UpdateOne(
		ctx,
		bson.M{"_id": crop.ID, "userId": uid},
		bson.M{"$set": bson.M{
			"expenses.$[exp]": merged,
			"updatedAt":       time.Now().UTC(),
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"exp._id": expID}},
		}),
	); err != nil {
		a.respondError(w, err)
		return
	}

	out, err := a.reloadCrop(ctx, crop.ID)
	if err != nil {
		a.respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, out.Derive())
}

// applyExpensePatch merges patch fields onto a copy of the stored record.
// A category change with no replacement detail drops the displaced detail
// rather than keeping a mismatched variant; a supplied detail that does not
// fit the resulting category is rejected.
func applyExpensePatch(e models.Expense, req *expensePatchReq) (models.Expense, error) {
	changed := false
	categoryChanged := false
	if req.Category != nil && models.ExpenseCategory(*req.Category) != e.Category {
		e.Category = models.ExpenseCategory(*req.Category)
		changed, categoryChanged = true, true
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return e, fmt.Errorf("%w: expense amount must be positive", errValidation)
		}
		e.Amount = *req.Amount
		changed = true
	}
	if req.Date != nil && !req.Date.IsZero() {
		e.Date = req.Date.Time
		changed = true
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
		changed = true
	}
	if req.Notes != nil {
		e.Notes = strings.TrimSpace(*req.Notes)
		changed = true
	}
	if req.BillImage != nil {
		e.BillImage = strings.TrimSpace(*req.BillImage)
		changed = true
	}

	detailPatched := req.Machine != nil || req.Labour != nil || req.Material != nil
	if detailPatched {
		// A patched detail replaces whatever variant was stored.
		e.Machine, e.Labour, e.Material = req.Machine, req.Labour, req.Material
		changed = true
	} else if categoryChanged {
		switch e.Category {
		case models.CategoryTractor, models.CategoryThreshing:
			e.Labour, e.Material = nil, nil
		case models.CategoryLabour:
			e.Machine, e.Material = nil, nil
		default:
			e.Machine, e.Labour = nil, nil
		}
	}
	if !changed {
		return e, fmt.Errorf("%w: nothing to update", errValidation)
	}
	if err := checkDetailMatchesCategory(&e); err != nil {
		return e, err
	}
	return e, nil
}

// handleDeleteExpense removes the matching record. Deleting the same record
// twice is not a silent success: the second call reports not-found.
func (a *App) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "cropId"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	expID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "expenseId"))
	if err != nil {
		a.respondError(w, fmt.Errorf("%w: bad expense id", errValidation))
		return
	}
	// Existence is checked before the write: the bundled updatedAt $set
	// would report a modification even when the $pull matched nothing.
	if err := ensureExpenseExists(crop, expID); err != nil {
		a.respondError(w, err)
		return
	}

	if _, err := a.crops.UpdateOne(
		ctx,
		bson.M{"_id": crop.ID, "userId": uid},
		bson.M{
			"$pull": bson.M{"expenses": bson.M{"_id": expID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	); err != nil {
		a.respondError(w, err)
		return
	}

	out, err := a.reloadCrop(ctx, crop.ID)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.log.Info("expense deleted", zap.String("crop", crop.ID.Hex()), zap.String("expense", expID.Hex()))
	writeData(w, http.StatusOK, out.Derive())
}

// ensureExpenseExists reports not-found for an expense id absent from the
// loaded crop. Deleting the same record twice is not a silent success; the
// second call lands here.
func ensureExpenseExists(c *models.Crop, id primitive.ObjectID) error {
	if c.FindExpense(id) == nil {
		return fmt.Errorf("%w: expense", errNotFound)
	}
	return nil
}

func (a *App) reloadCrop(ctx context.Context, id primitive.ObjectID) (*models.Crop, error) {
	var out models.Crop
	if err := a.crops.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: crop", errNotFound)
		}
		return nil, err
	}
	return &out, nil
}

// checkDetailMatchesCategory enforces the tagged-variant shape: at most one
// detail block, and the right one for the category.
func checkDetailMatchesCategory(e *models.Expense) error {
	n := 0
	if e.Machine != nil {
		n++
	}
	if e.Labour != nil {
		n++
	}
	if e.Material != nil {
		n++
	}
	if n > 1 {
		return fmt.Errorf("%w: expense carries more than one category detail", errValidation)
	}
	if n == 0 {
		return nil
	}
	switch e.Category {
	case models.CategoryTractor, models.CategoryThreshing:
		if e.Machine == nil {
			return fmt.Errorf("%w: %s expense expects a machine detail", errValidation, e.Category)
		}
	case models.CategoryLabour:
		if e.Labour == nil {
			return fmt.Errorf("%w: Labour expense expects a labour detail", errValidation)
		}
	default:
		if e.Material == nil {
			return fmt.Errorf("%w: %s expense expects a material detail", errValidation, e.Category)
		}
	}
	return nil
}
