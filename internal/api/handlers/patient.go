package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movefitrx/referral-engine/internal/api/middleware"
	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/domain/referral"
	"github.com/movefitrx/referral-engine/internal/enrollment"
)

// PatientHandler handles the patient-facing endpoints: lookup, payment
// completion, and workout event intake from the gym floor.
type PatientHandler struct {
	svc    *enrollment.Service
	logger *zap.Logger
}

// NewPatientHandler creates a new handler
func NewPatientHandler(svc *enrollment.Service, logger *zap.Logger) *PatientHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatientHandler{svc: svc, logger: logger}
}

// Routes returns the handler routes
func (h *PatientHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{matrixID}", h.Get)
	r.Post("/{matrixID}/payment", h.CompletePayment)
	r.Post("/{matrixID}/workouts", h.PushWorkout)
	return r
}

// DetailResponse is the patient welcome view: the record plus the prescribed
// regimen and the gym the access code opens.
type DetailResponse struct {
	Patient  PatientResponse         `json:"patient"`
	Regimen  catalog.Regimen         `json:"regimen"`
	Facility catalog.FacilityProfile `json:"facility"`
}

// Get handles GET /patients/{matrixID}
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	matrixID := chi.URLParam(r, "matrixID")

	rec, err := h.svc.FindPatient(r.Context(), matrixID)
	if err != nil {
		jsonError(w, "patient not found", http.StatusNotFound)
		return
	}

	reg, err := catalog.RegimenByName(rec.RegimenName())
	if err != nil {
		h.logger.Error("record references unknown regimen",
			zap.String("matrix_id", matrixID),
			zap.String("regimen", rec.RegimenName()),
		)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, DetailResponse{
		Patient:  newPatientResponse(rec),
		Regimen:  reg,
		Facility: catalog.Facility(),
	})
}

// CompletePayment handles POST /patients/{matrixID}/payment
func (h *PatientHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	matrixID := chi.URLParam(r, "matrixID")

	rec, err := h.svc.CompletePayment(ctx, matrixID)
	if err != nil {
		jsonError(w, "patient not found", http.StatusNotFound)
		return
	}

	h.logger.Info("payment completion reported",
		zap.String("matrix_id", matrixID),
		zap.String("request_id", middleware.GetRequestID(ctx)),
	)
	writeJSON(w, http.StatusOK, newPatientResponse(rec))
}

// WorkoutRequest is the body pushed by gym equipment on step completion.
type WorkoutRequest struct {
	Machine string `json:"machine"`
}

// PushWorkout handles POST /patients/{matrixID}/workouts
func (h *PatientHandler) PushWorkout(w http.ResponseWriter, r *http.Request) {
	matrixID := chi.URLParam(r, "matrixID")

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Machine == "" {
		jsonError(w, "machine is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.PushWorkoutEvent(r.Context(), matrixID, req.Machine); err != nil {
		switch {
		case errors.Is(err, referral.ErrPatientNotFound):
			jsonError(w, "patient not found", http.StatusNotFound)
		case errors.Is(err, enrollment.ErrMachineNotPrescribed):
			jsonError(w, "machine not in prescribed regimen", http.StatusUnprocessableEntity)
		default:
			jsonError(w, "failed to record workout", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
