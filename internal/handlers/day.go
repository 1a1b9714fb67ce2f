package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayline/internal/service"
)

type DayHandler struct {
	svc *service.TrackingService
}

func NewDayHandler(svc *service.TrackingService) *DayHandler {
	return &DayHandler{svc: svc}
}

// Get returns the canonical per-day snapshot: every active metric with its
// entries for the day key and the derived aggregate.
func (h *DayHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	day, err := h.svc.GetDayData(r.Context(), userID, chi.URLParam(r, "dayKey"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (h *DayHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	summary, err := h.svc.GetDayDataSummary(r.Context(), userID, chi.URLParam(r, "dayKey"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *DayHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	summary, err := h.svc.GetTodaySummary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
