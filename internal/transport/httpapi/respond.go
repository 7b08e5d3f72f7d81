package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

type generateResponse struct {
	Response string `json:"response"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out by the time Encode can fail
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures are the client's fault, backend statuses are forwarded
// as-is, unreachable and timed-out backends get their gateway codes,
// and anything else (storage included) is an internal error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := log.FromCtx(ctx)

	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: vErr.Msg})
		return
	}

	var bErr *core.BackendError
	if errors.As(err, &bErr) {
		logger.Error().Int("status", bErr.Status).Str("body", bErr.Body).Msg("backend request failed")
		writeJSON(w, bErr.Status, errorResponse{Detail: "Failed to generate response"})
		return
	}

	if errors.Is(err, core.ErrBackendUnavailable) {
		logger.Error().Err(err).Msg("backend unreachable")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: "Backend service unavailable"})
		return
	}

	if errors.Is(err, core.ErrBackendTimeout) {
		logger.Error().Err(err).Msg("backend timed out")
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Detail: "Processing timed out"})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
}
