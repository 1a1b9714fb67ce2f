package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dayline/internal/models"
	"dayline/internal/service"
)

type QuickActionsHandler struct {
	svc *service.TrackingService
}

func NewQuickActionsHandler(svc *service.TrackingService) *QuickActionsHandler {
	return &QuickActionsHandler{svc: svc}
}

func (h *QuickActionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.QuickActionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.svc.CreateQuickAction(r.Context(), in); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *QuickActionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quick action id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteQuickAction(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type applyQuickActionRequest struct {
	Slug       string  `json:"slug,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	RecordedAt *string `json:"recorded_at,omitempty"`
	Count      int     `json:"count,omitempty"`
}

// maxQuickActionBatch bounds one tap-and-hold application.
const maxQuickActionBatch = 20

// Apply materializes entries from a quick action. A count above one runs as
// that many sequential insertions so every entry remains individually
// editable and deletable.
func (h *QuickActionsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quick action id", http.StatusBadRequest)
		return
	}
	var req applyQuickActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if req.Count > maxQuickActionBatch {
		http.Error(w, "count too large", http.StatusBadRequest)
		return
	}
	recordedAt, err := parseRecordedAt(req.RecordedAt)
	if err != nil {
		http.Error(w, "invalid recorded_at; expected RFC 3339", http.StatusBadRequest)
		return
	}
	opts := service.QuickActionEntryOptions{
		Slug:       req.Slug,
		Notes:      req.Notes,
		RecordedAt: recordedAt,
	}
	entries := make([]models.Entry, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		entry, err := h.svc.AddEntryFromQuickAction(r.Context(), userID, id, opts)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusCreated, entries)
}
