package handler

import (
	"encoding/json"
	"net/http"

	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON writes a success envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// respondError maps an error to its status code and writes a failure
// envelope. Internal causes are logged, never serialized.
func respondError(w http.ResponseWriter, err error, log *logger.Logger) {
	appErr := errors.AsAppError(err)
	if appErr.Type == errors.ErrorTypeInternal {
		log.WithError(appErr).Error("Request failed")
	} else {
		log.WithError(appErr).Debug("Request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	if encErr := json.NewEncoder(w).Encode(envelope{Success: false, Error: appErr.Message}); encErr != nil {
		log.WithError(encErr).Error("Failed to encode error response")
	}
}

// decodeBody parses a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("Invalid request body")
	}
	return nil
}
