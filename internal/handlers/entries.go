package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dayline/internal/models"
	"dayline/internal/service"
)

type EntriesHandler struct {
	svc *service.TrackingService
}

func NewEntriesHandler(svc *service.TrackingService) *EntriesHandler {
	return &EntriesHandler{svc: svc}
}

type addEntryRequest struct {
	MetricID     int     `json:"metric_id"`
	Value        float64 `json:"value"`
	Notes        *string `json:"notes,omitempty"`
	RecordedAt   *string `json:"recorded_at,omitempty"` // RFC 3339
	DisplayValue *string `json:"display_value,omitempty"`
}

func parseRecordedAt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *EntriesHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	recordedAt, err := parseRecordedAt(req.RecordedAt)
	if err != nil {
		http.Error(w, "invalid recorded_at; expected RFC 3339", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.AddEntry(r.Context(), userID, req.MetricID, req.Value, service.EntryOptions{
		Notes:        req.Notes,
		RecordedAt:   recordedAt,
		DisplayValue: req.DisplayValue,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type updateEntryRequest struct {
	Value float64 `json:"value"`
	Notes *string `json:"notes,omitempty"`
}

func (h *EntriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}
	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.UpdateEntry(r.Context(), id, req.Value, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntriesHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.svc.GetRecentEntries(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
