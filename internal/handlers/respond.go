package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dayline/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service's typed errors onto HTTP statuses.
// Anything untyped is a storage or programming failure and stays opaque.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validation *service.ValidationError
		notFound   *service.NotFoundError
		conflict   *service.ConflictError
		integrity  *service.ReferentialIntegrityError
	)
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &conflict):
		http.Error(w, conflict.Error(), http.StatusConflict)
	case errors.As(err, &integrity):
		http.Error(w, integrity.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
