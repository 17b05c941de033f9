package referral

import "errors"

var (
	// ErrPatientNotFound indicates the matrix ID matches no referred patient.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrDuplicateMatrixID indicates a second record keyed by an already-used
	// matrix ID. The credential pool never hands a matrix ID out twice, so
	// hitting this is an invariant violation, not a normal failure.
	ErrDuplicateMatrixID = errors.New("duplicate matrix id")
)
