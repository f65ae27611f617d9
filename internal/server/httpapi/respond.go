package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aletheia-net/aletheia/internal/common"
)

// errorResponse is the JSON envelope for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.logger.Error(context.Background(), "response encoding failed", "error", err)
		}
	}
}

// writeError maps sentinel errors onto HTTP status codes. Unknown errors
// are logged and hidden behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, common.ErrorAccountLocked):
		status = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, common.ErrorQuestExpired), errors.Is(err, common.ErrorQuestCompleted):
		status = http.StatusConflict
		msg = err.Error()
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	s.writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrorValidation
	}
	return nil
}
