package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/observability"
)

// maxBodyBytes caps the inbound relay request body.
const maxBodyBytes = 1 << 20

// errorResponse is the relay error envelope. Details carries the raw upstream body.
type errorResponse struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

// Handler handles HTTP requests.
type Handler struct {
	relay *domain.RelayService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(relay *domain.RelayService) *Handler {
	return &Handler{
		relay: relay,
	}
}

// HandleGemini relays one prompt to Gemini.
func (h *Handler) HandleGemini(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req domain.RelayRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	resp, err := h.relay.Relay(ctx, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, writeErr := w.Write(resp.Body); writeErr != nil {
		logger.Error("failed to write response", observability.Error(writeErr))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.FromContext(r.Context())

	var upstreamErr *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrMissingPrompt):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
	case errors.Is(err, domain.ErrInvalidModel):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidModel.Error()})
	case errors.As(err, &upstreamErr):
		details := upstreamErr.Body
		writeJSON(w, upstreamErr.Status, errorResponse{Error: upstreamErr.Error(), Details: &details})
	default:
		logger.Error("relay failed", observability.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Status is already written; nothing left to report on failure.
	_ = json.NewEncoder(w).Encode(v)
}
