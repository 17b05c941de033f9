package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/enrollment"
)

// RegimenHandler serves the workout catalog.
type RegimenHandler struct {
	svc    *enrollment.Service
	logger *zap.Logger
}

// NewRegimenHandler creates a new handler
func NewRegimenHandler(svc *enrollment.Service, logger *zap.Logger) *RegimenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegimenHandler{svc: svc, logger: logger}
}

// Routes returns the handler routes
func (h *RegimenHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{name}", h.Get)
	return r
}

// RegimenResponse carries a regimen's ordered steps.
type RegimenResponse struct {
	Name  string         `json:"name"`
	Steps []catalog.Step `json:"steps"`
}

// Get handles GET /regimens/{name}. Regimen names contain spaces, so the
// path segment arrives percent-encoded.
func (h *RegimenHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	steps, err := h.svc.RegimenSteps(r.Context(), name)
	if err != nil {
		jsonError(w, "unknown regimen: "+name, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, RegimenResponse{Name: name, Steps: steps})
}
