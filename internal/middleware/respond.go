package middleware

import (
	"encoding/json"
	"net/http"

	appErrors "elevate-backend/internal/errors"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its status code and public body.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, appErrors.HTTPStatus(err), appErrors.ToResponse(err))
}
