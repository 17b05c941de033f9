// Package catalog holds the static clinical reference data: the diagnosis
// table and the exercise regimens prescribed for each diagnosis. Entries are
// built once at process start and are read-only thereafter.
package catalog

import "errors"

// ErrUnknownDiagnosis indicates a diagnosis ID absent from the catalog.
var ErrUnknownDiagnosis = errors.New("unknown diagnosis")

// Diagnosis is one referrable condition.
type Diagnosis struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	BillingCode string `json:"billing_code"`
	RegimenName string `json:"regimen_name"`
}

var diagnoses = []Diagnosis{
	{ID: "SMT", DisplayName: "Symptomatic Menopausal Transition", BillingCode: "E89.0", RegimenName: "Hormonal Balance & Strength"},
	{ID: "PHRM", DisplayName: "Postmenopausal Health/Risk Management", BillingCode: "Z00.00", RegimenName: "Cardio Endurance & Insulin Sensitivity"},
	{ID: "OSTP", DisplayName: "Osteopenia", BillingCode: "M85.8", RegimenName: "Bone Density & Balance"},
	{ID: "OSTE", DisplayName: "Osteoporosis", BillingCode: "M81.0", RegimenName: "Bone Density & Balance"},
	{ID: "PCOS", DisplayName: "PCOS", BillingCode: "E28.2", RegimenName: "Cardio Endurance & Insulin Sensitivity"},
	{ID: "HTN", DisplayName: "Hypertension", BillingCode: "I10", RegimenName: "Zone 2 Cardio + Resistance"},
}

// DiagnosisByID resolves a diagnosis identifier against the catalog.
func DiagnosisByID(id string) (Diagnosis, error) {
	for _, d := range diagnoses {
		if d.ID == id {
			return d, nil
		}
	}
	return Diagnosis{}, ErrUnknownDiagnosis
}

// Diagnoses returns the full catalog in referral-form menu order.
func Diagnoses() []Diagnosis {
	out := make([]Diagnosis, len(diagnoses))
	copy(out, diagnoses)
	return out
}
