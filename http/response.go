package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"haus-finance/finance"
	"haus-finance/repository"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	var buf bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&buf).Encode(data); err != nil {
			logger.Error("failed to encode response", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Debug("failed to write response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, msg string) {
	respondJSON(w, logger, status, errorResponse{Error: msg})
}

// respondServiceError maps service errors onto status codes: validation
// failures are 400, unknown records 404, everything else 500.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *finance.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, logger, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, logger, http.StatusNotFound, "not found")
	default:
		logger.Error("request failed", zap.Error(err))
		respondError(w, logger, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return errUnsupportedMediaType
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

var errUnsupportedMediaType = errors.New("content type must be application/json")

// respondDecodeError reports a body that could not be read as 415 or 400.
func respondDecodeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errors.Is(err, errUnsupportedMediaType) {
		respondError(w, logger, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	logger.Debug("rejected request body", zap.Error(err))
	respondError(w, logger, http.StatusBadRequest, "invalid request body")
}

func methodNotAllowed(w http.ResponseWriter, logger *zap.Logger, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	respondError(w, logger, http.StatusMethodNotAllowed, "method not allowed")
}
