// Package enrollment composes the referral-to-care workflow: credential
// allocation, referral records, payment activation, workout event intake,
// and the derived adherence listing. The presentation layer talks only to
// this package.
package enrollment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/domain/adherence"
	"github.com/movefitrx/referral-engine/internal/domain/credential"
	"github.com/movefitrx/referral-engine/internal/domain/referral"
	"github.com/movefitrx/referral-engine/internal/observability/metrics"
)

// ErrMachineNotPrescribed indicates a workout event for a machine that is not
// part of the patient's prescribed regimen.
var ErrMachineNotPrescribed = errors.New("machine not in prescribed regimen")

// Config holds service configuration.
type Config struct {
	// ExpectedEvents is the workout event count treated as full adherence.
	ExpectedEvents int
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{ExpectedEvents: adherence.DefaultExpectedEvents}
}

// Service is the referral engine facade.
type Service struct {
	pool           *credential.Pool
	registry       *referral.Registry
	events         *adherence.EventLog
	expectedEvents int
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewService wires the domain components together.
func NewService(pool *credential.Pool, registry *referral.Registry, events *adherence.EventLog, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	expected := cfg.ExpectedEvents
	if expected <= 0 {
		expected = adherence.DefaultExpectedEvents
	}
	return &Service{
		pool:           pool,
		registry:       registry,
		events:         events,
		expectedEvents: expected,
		metrics:        m,
		logger:         logger,
	}
}

// SubmitReferral consumes one credential and creates a PENDING_PAYMENT
// record for the patient. The diagnosis is resolved before allocation so a
// caller typo cannot burn a credential.
func (s *Service) SubmitReferral(ctx context.Context, name, email, diagnosisID string) (*referral.Record, error) {
	tracer := otel.Tracer("enrollment")
	_, span := tracer.Start(ctx, "submit_referral")
	defer span.End()
	span.SetAttributes(attribute.String("diagnosis_id", diagnosisID))

	if _, err := catalog.DiagnosisByID(diagnosisID); err != nil {
		s.metrics.ReferralsFailed.Inc()
		return nil, err
	}

	cred, err := s.pool.Allocate()
	if err != nil {
		s.logger.Warn("referral rejected, pool exhausted", zap.String("diagnosis_id", diagnosisID))
		s.metrics.ReferralsFailed.Inc()
		return nil, err
	}
	s.metrics.CredentialsRemaining.Set(float64(s.pool.Remaining()))

	rec, err := s.registry.Create(name, email, diagnosisID, cred)
	if err != nil {
		// The credential is already burned; there is no release path.
		s.logger.Error("referral create failed after allocation",
			zap.String("matrix_id", cred.MatrixID),
			zap.Error(err),
		)
		s.metrics.ReferralsFailed.Inc()
		return nil, err
	}

	span.SetAttributes(attribute.String("matrix_id", rec.MatrixID()))
	s.metrics.ReferralsCreated.Inc()
	return rec, nil
}

// FindPatient returns the record for a matrix ID.
func (s *Service) FindPatient(ctx context.Context, matrixID string) (*referral.Record, error) {
	return s.registry.Lookup(matrixID)
}

// CompletePayment applies the payment transition. Repeated completion is
// idempotent: the record stays PAID and no error is returned.
func (s *Service) CompletePayment(ctx context.Context, matrixID string) (*referral.Record, error) {
	rec, transitioned, err := s.registry.MarkPaid(matrixID)
	if err != nil {
		return nil, err
	}
	if transitioned {
		s.metrics.PaymentsCompleted.Inc()
	}
	return rec, nil
}

// PushWorkoutEvent records a workout completion for a patient. The patient
// must exist and the machine must belong to the prescribed regimen; the raw
// event log stays permissive, so this is the single validation point.
func (s *Service) PushWorkoutEvent(ctx context.Context, matrixID, machine string) error {
	rec, err := s.registry.Lookup(matrixID)
	if err != nil {
		s.metrics.WorkoutEventsRejected.Inc()
		return err
	}

	steps, err := catalog.RegimenSteps(rec.RegimenName())
	if err != nil {
		s.metrics.WorkoutEventsRejected.Inc()
		return err
	}
	if !machinePrescribed(steps, machine) {
		s.logger.Warn("workout event for unprescribed machine",
			zap.String("matrix_id", matrixID),
			zap.String("machine", machine),
			zap.String("regimen", rec.RegimenName()),
		)
		s.metrics.WorkoutEventsRejected.Inc()
		return ErrMachineNotPrescribed
	}

	s.events.Record(matrixID, machine, time.Now().UTC())
	s.metrics.WorkoutEventsRecorded.Inc()
	return nil
}

// PatientAdherence pairs a record with its derived adherence percentage.
type PatientAdherence struct {
	Record     *referral.Record
	Percentage int
}

// ListPatientsWithAdherence returns every patient, most recently referred
// first, with the adherence percentage recomputed from the event log.
func (s *Service) ListPatientsWithAdherence(ctx context.Context) []PatientAdherence {
	tracer := otel.Tracer("enrollment")
	_, span := tracer.Start(ctx, "list_patients_with_adherence")
	defer span.End()

	start := time.Now()
	records := s.registry.List()
	out := make([]PatientAdherence, len(records))
	for i, rec := range records {
		out[i] = PatientAdherence{
			Record:     rec,
			Percentage: adherence.Percentage(s.events.CountFor(rec.MatrixID()), s.expectedEvents),
		}
	}
	s.metrics.AdherenceListDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("patients", len(out)))
	return out
}

// RegimenSteps returns the ordered exercise steps for a regimen.
func (s *Service) RegimenSteps(ctx context.Context, regimenName string) ([]catalog.Step, error) {
	return catalog.RegimenSteps(regimenName)
}

// ExpectedEvents returns the configured full-adherence denominator.
func (s *Service) ExpectedEvents() int { return s.expectedEvents }

func machinePrescribed(steps []catalog.Step, machine string) bool {
	for _, step := range steps {
		if step.Machine == machine {
			return true
		}
	}
	return false
}
