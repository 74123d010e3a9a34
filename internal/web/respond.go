package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vbonduro/spotshare/internal/domain"
)

// maxBodyBytes bounds JSON request bodies. Spot bodies carry base64 images
// inline, hence the generous limit.
const maxBodyBytes = 16 << 20

const retryMessage = "something went wrong, please retry"

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code. Storage and unexpected failures
// are logged and answered with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := retryMessage

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status, message = http.StatusBadRequest, verr.Error()
	case errors.Is(err, domain.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	if werr := writeJSON(w, status, errorBody{Error: message}); werr != nil {
		s.logger.Error("write error response failed", "error", werr)
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.NewValidationError("", fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		}
		return domain.NewValidationError("", "request body is not valid JSON")
	}
	return nil
}
