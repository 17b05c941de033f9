// Package handlers provides HTTP handlers for the referral API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/movefitrx/referral-engine/internal/domain/referral"
)

// PatientResponse is the wire form of a patient record.
type PatientResponse struct {
	MatrixID    string    `json:"matrix_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DiagnosisID string    `json:"diagnosis_id"`
	RegimenName string    `json:"regimen_name"`
	AccessCode  string    `json:"access_code"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPatientResponse(rec *referral.Record) PatientResponse {
	return PatientResponse{
		MatrixID:    rec.MatrixID(),
		Name:        rec.Name(),
		Email:       rec.Email(),
		DiagnosisID: rec.DiagnosisID(),
		RegimenName: rec.RegimenName(),
		AccessCode:  rec.AccessCode(),
		Status:      string(rec.Status()),
		CreatedAt:   rec.CreatedAt(),
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}
