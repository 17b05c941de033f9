// Package adherence records workout completion events pushed from gym
// equipment and derives the adherence percentage the clinician view shows.
package adherence

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is one completed workout step reported from the field.
type Event struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Machine   string    `json:"machine"`
	Timestamp time.Time `json:"timestamp"`
}

// EventLog is the append-only workout event store. Events are never mutated
// or deleted, and insertion order is chronological order. Record appends
// unconditionally; referral and regimen checks belong to the caller.
type EventLog struct {
	mu     sync.RWMutex
	events []Event
	logger *zap.Logger
}

// NewEventLog creates an empty event log.
func NewEventLog(logger *zap.Logger) *EventLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLog{logger: logger}
}

// Record appends a workout event for the given patient.
func (l *EventLog) Record(patientID, machine string, ts time.Time) Event {
	ev := Event{
		ID:        uuid.New().String(),
		PatientID: patientID,
		Machine:   machine,
		Timestamp: ts,
	}

	l.mu.Lock()
	l.events = append(l.events, ev)
	total := len(l.events)
	l.mu.Unlock()

	l.logger.Info("workout event recorded",
		zap.String("patient_id", patientID),
		zap.String("machine", machine),
		zap.Int("log_size", total),
	)
	return ev
}

// CountFor returns the number of events recorded for a patient.
func (l *EventLog) CountFor(patientID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for i := range l.events {
		if l.events[i].PatientID == patientID {
			n++
		}
	}
	return n
}

// EventsFor returns a patient's events in insertion order.
func (l *EventLog) EventsFor(patientID string) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for i := range l.events {
		if l.events[i].PatientID == patientID {
			out = append(out, l.events[i])
		}
	}
	return out
}

// Len returns the total number of recorded events across all patients.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
