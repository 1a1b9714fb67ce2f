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

type MacrosHandler struct {
	svc *service.MacroService
}

func NewMacrosHandler(svc *service.MacroService) *MacrosHandler {
	return &MacrosHandler{svc: svc}
}

type macroTargetsRequest struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

type macroTargetsResponse struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Calories int     `json:"calories"`
}

func toMacroTargetsResponse(t models.MacroTarget) macroTargetsResponse {
	return macroTargetsResponse{
		Protein:  t.Protein,
		Carbs:    t.Carbs,
		Fats:     t.Fats,
		Calories: service.CalculateCalories(t.Protein, t.Carbs, t.Fats),
	}
}

func (h *MacrosHandler) GetTargets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	target, err := h.svc.GetTargets(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if target == nil {
		http.Error(w, "no macro targets set", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toMacroTargetsResponse(*target))
}

func (h *MacrosHandler) SetTargets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req macroTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	target, err := h.svc.SetTargets(r.Context(), userID, req.Protein, req.Carbs, req.Fats)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMacroTargetsResponse(target))
}

func (h *MacrosHandler) UpdateTargets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req macroTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	target, err := h.svc.UpdateTargets(r.Context(), userID, req.Protein, req.Carbs, req.Fats)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMacroTargetsResponse(target))
}

type macroEntryRequest struct {
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fats       float64 `json:"fats"`
	Notes      *string `json:"notes,omitempty"`
	RecordedAt *string `json:"recorded_at,omitempty"`
}

func (r macroEntryRequest) toInput() (service.MacroEntryInput, error) {
	in := service.MacroEntryInput{
		Protein: r.Protein,
		Carbs:   r.Carbs,
		Fats:    r.Fats,
		Notes:   r.Notes,
	}
	if r.RecordedAt != nil && *r.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, *r.RecordedAt)
		if err != nil {
			return in, err
		}
		in.RecordedAt = &t
	}
	return in, nil
}

func (h *MacrosHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req macroEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	in, err := req.toInput()
	if err != nil {
		http.Error(w, "invalid recorded_at; expected RFC 3339", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.AddEntry(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *MacrosHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid macro entry id", http.StatusBadRequest)
		return
	}
	var req macroEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	in, err := req.toInput()
	if err != nil {
		http.Error(w, "invalid recorded_at; expected RFC 3339", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.UpdateEntry(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *MacrosHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid macro entry id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MacrosHandler) DayTotals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	totals, err := h.svc.GetDayTotals(r.Context(), userID, chi.URLParam(r, "dayKey"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
