package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movefitrx/referral-engine/internal/api/middleware"
	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/domain/credential"
	"github.com/movefitrx/referral-engine/internal/enrollment"
)

// ReferralHandler handles the clinician-facing referral endpoints.
type ReferralHandler struct {
	svc    *enrollment.Service
	logger *zap.Logger
}

// NewReferralHandler creates a new handler
func NewReferralHandler(svc *enrollment.Service, logger *zap.Logger) *ReferralHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferralHandler{svc: svc, logger: logger}
}

// Routes returns the handler routes
func (h *ReferralHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Get("/", h.List)
	r.Get("/diagnoses", h.Diagnoses)
	return r
}

// SubmitRequest is the request body for creating a referral
type SubmitRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DiagnosisID string `json:"diagnosis_id"`
}

// Submit handles POST /referrals
func (h *ReferralHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.DiagnosisID == "" {
		jsonError(w, "name, email and diagnosis_id are required", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.SubmitReferral(ctx, req.Name, req.Email, req.DiagnosisID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownDiagnosis):
			jsonError(w, "unknown diagnosis: "+req.DiagnosisID, http.StatusUnprocessableEntity)
		case errors.Is(err, credential.ErrPoolExhausted):
			jsonError(w, "no enrollment credentials remain", http.StatusConflict)
		default:
			h.logger.Error("referral failed",
				zap.Error(err),
				zap.String("request_id", middleware.GetRequestID(ctx)),
			)
			jsonError(w, "failed to create referral", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("referral submitted",
		zap.String("matrix_id", rec.MatrixID()),
		zap.String("request_id", middleware.GetRequestID(ctx)),
	)
	writeJSON(w, http.StatusCreated, newPatientResponse(rec))
}

// ListEntry is one row of the clinician listing.
type ListEntry struct {
	PatientResponse
	AdherencePercent int `json:"adherence_percent"`
}

// ListResponse is the clinician listing, most recent referral first.
type ListResponse struct {
	Patients       []ListEntry `json:"patients"`
	ExpectedEvents int         `json:"expected_events"`
}

// List handles GET /referrals
func (h *ReferralHandler) List(w http.ResponseWriter, r *http.Request) {
	listed := h.svc.ListPatientsWithAdherence(r.Context())

	resp := ListResponse{
		Patients:       make([]ListEntry, len(listed)),
		ExpectedEvents: h.svc.ExpectedEvents(),
	}
	for i, pa := range listed {
		resp.Patients[i] = ListEntry{
			PatientResponse:  newPatientResponse(pa.Record),
			AdherencePercent: pa.Percentage,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Diagnoses handles GET /referrals/diagnoses, serving the referral form menu.
func (h *ReferralHandler) Diagnoses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"diagnoses": catalog.Diagnoses(),
		"clinician": catalog.Clinician(),
	})
}
