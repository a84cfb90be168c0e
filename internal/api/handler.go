package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nestfolio/holdings/internal/domain"
	"github.com/nestfolio/holdings/internal/session"
)

// AccountDirectory supplies the account and member lists the page is built
// from. Holdings are not here: those flow through the session cache.
type AccountDirectory interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	HouseholdMembers(ctx context.Context) ([]domain.Member, error)
}

// SessionHandler provides the HTTP endpoints backing the holdings page.
type SessionHandler struct {
	sessions  *session.Manager
	directory AccountDirectory
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Manager, directory AccountDirectory) *SessionHandler {
	return &SessionHandler{sessions: sessions, directory: directory}
}

// CreateSession handles POST /api/v1/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	slog.Info("session opened", "session", s.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": s.ID})
}

// CloseSession handles DELETE /api/v1/sessions/{id}.
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.sessions.Close(id) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	slog.Info("session closed", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetState handles GET /api/v1/sessions/{id}/state.
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.writeState(w, r, s)
}

// ToggleAccount handles POST /api/v1/sessions/{id}/toggle/{accountId}. The
// first expansion of an account blocks on its holdings fetch, so the state
// returned here already carries the loaded positions.
func (h *SessionHandler) ToggleAccount(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.Toggle(r.Context(), r.PathValue("accountId"))
	h.writeState(w, r, s)
}

// RefreshPrices handles POST /api/v1/sessions/{id}/refresh.
func (h *SessionHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.RefreshNow(r.Context())
	h.writeState(w, r, s)
}

// SetOwnerFilter handles PUT /api/v1/sessions/{id}/owner-filter.
func (h *SessionHandler) SetOwnerFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var body struct {
		Filter string `json:"filter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.SetOwnerFilter(body.Filter)
	h.writeState(w, r, s)
}

func (h *SessionHandler) writeState(w http.ResponseWriter, r *http.Request, s *session.Session) {
	accounts, err := h.directory.Accounts(r.Context())
	if err != nil {
		slog.Error("failed to load accounts", "session", s.ID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load accounts")
		return
	}
	members, err := h.directory.HouseholdMembers(r.Context())
	if err != nil {
		slog.Error("failed to load household members", "session", s.ID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load household members")
		return
	}

	writeJSON(w, http.StatusOK, buildState(s.Snapshot(), accounts, members))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
