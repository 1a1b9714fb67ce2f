package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dayline/internal/service"
)

type MetricsHandler struct {
	svc *service.TrackingService
}

func NewMetricsHandler(svc *service.TrackingService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

// List returns the user's active metrics with quick actions, in display order.
func (h *MetricsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	metrics, err := h.svc.GetActiveMetrics(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *MetricsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var in service.CustomMetricInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	metric, err := h.svc.CreateCustomMetric(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, metric)
}

type fromTemplateRequest struct {
	Slug string `json:"slug"`
}

func (h *MetricsHandler) FromTemplate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req fromTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slug == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	metric, err := h.svc.AddMetricFromTemplate(r.Context(), userID, req.Slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, metric)
}

func (h *MetricsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid metric id", http.StatusBadRequest)
		return
	}
	var p service.UpdateMetricParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	metric, err := h.svc.UpdateMetric(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metric)
}

// Delete soft-deletes a metric; its entries are kept and it can be restored.
func (h *MetricsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid metric id", http.StatusBadRequest)
		return
	}
	metric, err := h.svc.DeleteMetric(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metric)
}

func (h *MetricsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid metric id", http.StatusBadRequest)
		return
	}
	metric, err := h.svc.RestoreMetric(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metric)
}

type reorderRequest struct {
	MetricIDs []int `json:"metric_ids"`
}

func (h *MetricsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.svc.ReorderMetrics(r.Context(), userID, req.MetricIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MetricsHandler) Deleted(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	metrics, err := h.svc.ListDeletedMetrics(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// Templates lists catalog templates the user has not materialized yet.
func (h *MetricsHandler) Templates(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	templates, err := h.svc.ListAvailableTemplates(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func windowDays(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		return 7
	}
	return days
}

func (h *MetricsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid metric id", http.StatusBadRequest)
		return
	}
	history, err := h.svc.GetMetricHistory(r.Context(), userID, id, windowDays(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *MetricsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid metric id", http.StatusBadRequest)
		return
	}
	progress, err := h.svc.GetMetricProgress(r.Context(), userID, id, windowDays(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
