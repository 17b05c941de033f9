// Package credential manages the fixed pool of gym enrollment credentials.
// A credential is a matrix ID paired with a gym door access code; the pool is
// seeded once at process start and credentials are never returned to it.
package credential

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrPoolExhausted indicates no unallocated credential remains. The condition
// is permanent for the process lifetime: there is no release path.
var ErrPoolExhausted = errors.New("credential pool exhausted")

// Credential is one enrollment credential.
type Credential struct {
	MatrixID   string `json:"matrix_id"`
	AccessCode string `json:"access_code"`
}

type entry struct {
	cred      Credential
	allocated bool
}

// Pool hands out credentials in seed order. Allocation flips a credential's
// allocated flag exactly once; undoing a referral cannot reclaim it.
type Pool struct {
	mu      sync.Mutex
	entries []entry
	logger  *zap.Logger
}

// NewPool creates a pool seeded with the given credentials.
func NewPool(creds []Credential, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries := make([]entry, len(creds))
	for i, c := range creds {
		entries[i] = entry{cred: c}
	}
	return &Pool{entries: entries, logger: logger}
}

// DefaultCredentials returns the demo seed set issued by the partner gym.
func DefaultCredentials() []Credential {
	return []Credential{
		{MatrixID: "MFRX-AB001", AccessCode: "205101"},
		{MatrixID: "MFRX-CD002", AccessCode: "205102"},
		{MatrixID: "MFRX-EF003", AccessCode: "205103"},
		{MatrixID: "MFRX-GH004", AccessCode: "205104"},
		{MatrixID: "MFRX-IJ005", AccessCode: "205105"},
		{MatrixID: "MFRX-KL006", AccessCode: "205106"},
	}
}

// Allocate marks the first unallocated credential as allocated and returns it.
func (p *Pool) Allocate() (Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.entries {
		if p.entries[i].allocated {
			continue
		}
		p.entries[i].allocated = true
		p.logger.Info("credential allocated",
			zap.String("matrix_id", p.entries[i].cred.MatrixID),
			zap.Int("remaining", p.remaining()),
		)
		return p.entries[i].cred, nil
	}
	return Credential{}, ErrPoolExhausted
}

// Remaining reports how many credentials are still unallocated.
func (p *Pool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remaining()
}

func (p *Pool) remaining() int {
	n := 0
	for i := range p.entries {
		if !p.entries[i].allocated {
			n++
		}
	}
	return n
}

// Size returns the total pool size, allocated or not.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
