package referral

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/domain/credential"
)

// Registry owns every patient record, keyed by matrix ID. All state lives in
// process memory; a mutex serializes mutations so the registry can sit behind
// a concurrent HTTP server.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]*Record
	ordered []*Record // insertion order, oldest first
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		byID:   make(map[string]*Record),
		logger: logger,
	}
}

// Create resolves the diagnosis, builds a PENDING_PAYMENT record from the
// allocated credential, and inserts it keyed by the credential's matrix ID.
func (g *Registry) Create(name, email, diagnosisID string, cred credential.Credential) (*Record, error) {
	diag, err := catalog.DiagnosisByID(diagnosisID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.byID[cred.MatrixID]; exists {
		g.logger.Error("matrix id collision on create", zap.String("matrix_id", cred.MatrixID))
		return nil, ErrDuplicateMatrixID
	}

	rec := &Record{
		matrixID:    cred.MatrixID,
		name:        name,
		email:       email,
		diagnosisID: diag.ID,
		regimenName: diag.RegimenName,
		accessCode:  cred.AccessCode,
		status:      StatusPendingPayment,
		createdAt:   time.Now().UTC(),
	}
	g.byID[rec.matrixID] = rec
	g.ordered = append(g.ordered, rec)

	g.logger.Info("referral created",
		zap.String("matrix_id", rec.matrixID),
		zap.String("diagnosis_id", rec.diagnosisID),
		zap.String("regimen", rec.regimenName),
	)
	return rec, nil
}

// Lookup returns the record for a matrix ID.
func (g *Registry) Lookup(matrixID string) (*Record, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rec, ok := g.byID[matrixID]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return rec, nil
}

// List returns all records, most recently created first. The clinician view
// depends on this ordering.
func (g *Registry) List() []*Record {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Record, len(g.ordered))
	for i, rec := range g.ordered {
		out[len(g.ordered)-1-i] = rec
	}
	return out
}

// MarkPaid applies the payment transition to a record. Repeating the call on
// an already-PAID record is a no-op, reported through the second return.
func (g *Registry) MarkPaid(matrixID string) (*Record, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.byID[matrixID]
	if !ok {
		return nil, false, ErrPatientNotFound
	}

	transitioned := rec.markPaid()
	if transitioned {
		g.logger.Info("payment completed", zap.String("matrix_id", matrixID))
	}
	return rec, transitioned, nil
}

// Len returns the number of referred patients.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.ordered)
}
