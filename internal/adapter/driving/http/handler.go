// Package httphandler exposes the operational HTTP surface: the generic
// inbound event endpoint the chat transport posts to, and the health probe.
package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/leadbot/internal/application"
	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// Handler serves the API routes.
type Handler struct {
	nav    *application.Navigator
	health *application.HealthService
	logger *slog.Logger
}

// NewHandler creates a Handler with its application dependencies.
func NewHandler(nav *application.Navigator, health *application.HealthService, logger *slog.Logger) *Handler {
	return &Handler{nav: nav, health: health, logger: logger}
}

// RegisterAPIRoutes attaches all API endpoints to the mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.GetHealth)
	mux.HandleFunc("POST /api/v1/events", h.PostEvent)
}

// GetHealth reports process uptime and credential store connectivity.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.health.Check(r.Context())

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:   status.Status,
		Uptime:   status.Uptime.String(),
		Database: status.Database,
	})
}

// PostEvent accepts one inbound user event, a typed command or a button
// press, and returns the rendered screen. The navigator never fails; any
// handler-level problem comes back as a rendered error screen, so the only
// HTTP errors here are malformed requests.
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid event body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Identity == "" {
		writeError(w, http.StatusBadRequest, "identity is required")
		return
	}
	if (req.Command == "") == (req.Action == "") {
		writeError(w, http.StatusBadRequest, "exactly one of command or action is required")
		return
	}

	writeJSON(w, http.StatusOK, toScreenResponse(h.dispatch(r, req)))
}

func (h *Handler) dispatch(r *http.Request, req EventRequest) model.Screen {
	if req.Command != "" {
		return h.nav.HandleCommand(r.Context(), req.Identity, req.Command, req.Args)
	}
	return h.nav.HandleAction(r.Context(), req.Identity, req.Action)
}
