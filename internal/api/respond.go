package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"portforyou/internal/apperrors"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes the error shape for failures raised by the transport
// itself.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apperrors.Response{
		Error:  apperrors.ResponseError{Message: message},
		Status: status,
	})
}

// writeError serializes err in the uniform error shape and logs internal
// failures with their cause.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := apperrors.ToResponse(err)
	if resp.Status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"request_id", RequestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, resp.Status, resp)
}

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.Validation("Request body too large")
		}
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("Request body is required")
		}
		return apperrors.Validation("Invalid request payload")
	}
	return nil
}
