package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kisansathi/models"
	"kisansathi/report"
)

// handleGetReport returns the assembled report snapshot for a completed
// crop: header, per-category expense groups with subtotals, sales, and the
// summary figures. Labels are localized via ?lang= or Accept-Language.
func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := a.assembleReport(r)
	if err != nil {
		a.respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, rep)
}

// handleGetReportPDF renders the same snapshot to HTML and hands it to the
// renderer service for PDF conversion.
func (a *App) handleGetReportPDF(w http.ResponseWriter, r *http.Request) {
	rep, err := a.assembleReport(r)
	if err != nil {
		a.respondError(w, err)
		return
	}
	html, err := report.RenderHTML(rep)
	if err != nil {
		a.respondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	pdf, err := a.renderer.RenderPDF(ctx, html)
	if err != nil {
		a.log.Error("pdf render failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "report renderer unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "crop-report-"+chi.URLParam(r, "id")+".pdf"))
	_, _ = w.Write(pdf)
}

func (a *App) assembleReport(r *http.Request) (*report.Report, error) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	crop, err := a.loadOwnedCrop(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	if crop.Status != models.CropStatusCompleted {
		return nil, fmt.Errorf("%w: report requires a completed crop", errState)
	}
	return report.Assemble(crop, report.NegotiateLang(r)), nil
}
