package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the common sentinel errors onto HTTP statuses. Anything
// unrecognized becomes a 500 with a generic body; internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "token expired"})
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrSessionRevoked):
		writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "not found"})
	case errors.Is(err, common.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidEmail),
		errors.Is(err, common.ErrInvalidPassword):
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrTooManyAttempts):
		writeJSON(w, http.StatusTooManyRequests, api.ErrorResponse{Error: "too many attempts"})
	default:
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
