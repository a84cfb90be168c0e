package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/nestfolio/holdings/internal/snapshot"
)

// ValuationHandler provides HTTP endpoints for stored valuation snapshots.
type ValuationHandler struct {
	snapshots *snapshot.Service
	slug      string
}

// NewValuationHandler creates a new valuation handler for one household.
func NewValuationHandler(snapshots *snapshot.Service, slug string) *ValuationHandler {
	return &ValuationHandler{snapshots: snapshots, slug: slug}
}

// GetLatest handles GET /api/v1/valuations/latest.
func (h *ValuationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshots.GetLatest(r.Context(), h.slug)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no valuations found")
			return
		}
		slog.Error("failed to get latest valuation", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetByDate handles GET /api/v1/valuations/{date}.
func (h *ValuationHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.PathValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	s, err := h.snapshots.GetByDate(r.Context(), h.slug, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "valuation not found for date")
			return
		}
		slog.Error("failed to get valuation by date", "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// List handles GET /api/v1/valuations.
func (h *ValuationHandler) List(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 365
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.List(r.Context(), h.slug, limit)
	if err != nil {
		slog.Error("failed to list valuations", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// Generate handles POST /api/v1/valuations/generate.
func (h *ValuationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	report, err := h.snapshots.Generate(r.Context(), h.slug, time.Now().UTC())
	if err != nil {
		slog.Error("failed to generate valuation", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate valuation")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
