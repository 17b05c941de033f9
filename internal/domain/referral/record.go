// Package referral owns the patient records created by clinician referrals
// and the payment transition that activates them.
package referral

import "time"

// Status represents a patient record's payment status.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
)

// Record is one referred patient. Fields are unexported; the only mutation a
// record ever sees is the payment transition, applied through the registry.
type Record struct {
	matrixID    string
	name        string
	email       string
	diagnosisID string
	regimenName string
	accessCode  string
	status      Status
	createdAt   time.Time
}

// MatrixID returns the unique credential/patient identifier.
func (r *Record) MatrixID() string { return r.matrixID }

// Name returns the patient name.
func (r *Record) Name() string { return r.name }

// Email returns the patient email.
func (r *Record) Email() string { return r.email }

// DiagnosisID returns the referring diagnosis identifier.
func (r *Record) DiagnosisID() string { return r.diagnosisID }

// RegimenName returns the prescribed regimen name.
func (r *Record) RegimenName() string { return r.regimenName }

// AccessCode returns the gym door access code.
func (r *Record) AccessCode() string { return r.accessCode }

// Status returns the current payment status.
func (r *Record) Status() Status { return r.status }

// CreatedAt returns the referral creation time.
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// markPaid applies the PENDING_PAYMENT -> PAID transition and reports whether
// it ran. A record that is already PAID stays PAID; there is no reverse
// transition.
func (r *Record) markPaid() bool {
	if r.status == StatusPaid {
		return false
	}
	r.status = StatusPaid
	return true
}
