package enrollment

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/domain/adherence"
	"github.com/movefitrx/referral-engine/internal/domain/credential"
	"github.com/movefitrx/referral-engine/internal/domain/referral"
	"github.com/movefitrx/referral-engine/internal/observability/metrics"
)

func newTestService(t *testing.T, poolSize, expectedEvents int) *Service {
	t.Helper()

	creds := make([]credential.Credential, poolSize)
	for i := range creds {
		creds[i] = credential.Credential{
			MatrixID:   fmt.Sprintf("MFRX-SVC%03d", i+1),
			AccessCode: fmt.Sprintf("8000%02d", i+1),
		}
	}

	return NewService(
		credential.NewPool(creds, nil),
		referral.NewRegistry(nil),
		adherence.NewEventLog(nil),
		Config{ExpectedEvents: expectedEvents},
		metrics.New(prometheus.NewRegistry()),
		nil,
	)
}

func TestSubmitReferral(t *testing.T) {
	svc := newTestService(t, 3, 4)
	ctx := context.Background()

	rec, err := svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "HTN")
	require.NoError(t, err)
	assert.Equal(t, "Zone 2 Cardio + Resistance", rec.RegimenName())
	assert.Equal(t, referral.StatusPendingPayment, rec.Status())
	assert.NotEmpty(t, rec.MatrixID())
	assert.NotEmpty(t, rec.AccessCode())
}

func TestSubmitReferralUnknownDiagnosisKeepsCredential(t *testing.T) {
	svc := newTestService(t, 1, 4)
	ctx := context.Background()

	_, err := svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "BOGUS")
	assert.ErrorIs(t, err, catalog.ErrUnknownDiagnosis)

	// The bad diagnosis must not have burned the last credential.
	_, err = svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "HTN")
	assert.NoError(t, err)
}

func TestSubmitReferralPoolExhausted(t *testing.T) {
	svc := newTestService(t, 2, 4)
	ctx := context.Background()

	first, err := svc.SubmitReferral(ctx, "Patient A", "a@x.com", "HTN")
	require.NoError(t, err)
	second, err := svc.SubmitReferral(ctx, "Patient B", "b@x.com", "OSTE")
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessCode(), second.AccessCode())

	_, err = svc.SubmitReferral(ctx, "Patient C", "c@x.com", "PCOS")
	assert.ErrorIs(t, err, credential.ErrPoolExhausted)
}

func TestCompletePaymentIdempotent(t *testing.T) {
	svc := newTestService(t, 1, 4)
	ctx := context.Background()

	rec, err := svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "HTN")
	require.NoError(t, err)

	paid, err := svc.CompletePayment(ctx, rec.MatrixID())
	require.NoError(t, err)
	assert.Equal(t, referral.StatusPaid, paid.Status())

	again, err := svc.CompletePayment(ctx, rec.MatrixID())
	require.NoError(t, err)
	assert.Equal(t, referral.StatusPaid, again.Status())
}

func TestCompletePaymentNotFound(t *testing.T) {
	svc := newTestService(t, 1, 4)

	_, err := svc.CompletePayment(context.Background(), "UNKNOWN-ID")
	assert.ErrorIs(t, err, referral.ErrPatientNotFound)
}

func TestFindPatientNotFound(t *testing.T) {
	svc := newTestService(t, 1, 4)

	_, err := svc.FindPatient(context.Background(), "UNKNOWN-ID")
	assert.ErrorIs(t, err, referral.ErrPatientNotFound)
}

func TestPushWorkoutEventAdherenceSaturates(t *testing.T) {
	svc := newTestService(t, 1, 4)
	ctx := context.Background()

	rec, err := svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "HTN")
	require.NoError(t, err)

	percentage := func() int {
		listed := svc.ListPatientsWithAdherence(ctx)
		require.Len(t, listed, 1)
		return listed[0].Percentage
	}

	prev := 0
	for i := 0; i < 4; i++ {
		require.NoError(t, svc.PushWorkoutEvent(ctx, rec.MatrixID(), "Treadmill"))
		got := percentage()
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 100, percentage())

	// A fifth event keeps the score pinned at 100.
	require.NoError(t, svc.PushWorkoutEvent(ctx, rec.MatrixID(), "Chest Press"))
	assert.Equal(t, 100, percentage())
}

func TestPushWorkoutEventUnknownPatient(t *testing.T) {
	svc := newTestService(t, 1, 4)

	err := svc.PushWorkoutEvent(context.Background(), "UNKNOWN-ID", "Treadmill")
	assert.ErrorIs(t, err, referral.ErrPatientNotFound)
}

func TestPushWorkoutEventMachineNotPrescribed(t *testing.T) {
	svc := newTestService(t, 1, 4)
	ctx := context.Background()

	rec, err := svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "HTN")
	require.NoError(t, err)

	err = svc.PushWorkoutEvent(ctx, rec.MatrixID(), "Ascent Trainer")
	assert.ErrorIs(t, err, ErrMachineNotPrescribed)

	listed := svc.ListPatientsWithAdherence(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, 0, listed[0].Percentage)
}

func TestListPatientsWithAdherenceOrder(t *testing.T) {
	svc := newTestService(t, 2, 4)
	ctx := context.Background()

	a, err := svc.SubmitReferral(ctx, "Patient A", "a@x.com", "HTN")
	require.NoError(t, err)
	b, err := svc.SubmitReferral(ctx, "Patient B", "b@x.com", "OSTE")
	require.NoError(t, err)

	listed := svc.ListPatientsWithAdherence(ctx)
	require.Len(t, listed, 2)
	assert.Equal(t, b.MatrixID(), listed[0].Record.MatrixID())
	assert.Equal(t, a.MatrixID(), listed[1].Record.MatrixID())
}

func TestRegimenSteps(t *testing.T) {
	svc := newTestService(t, 1, 4)

	steps, err := svc.RegimenSteps(context.Background(), "Zone 2 Cardio + Resistance")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "Treadmill", steps[0].Machine)

	_, err = svc.RegimenSteps(context.Background(), "No Such Regimen")
	assert.ErrorIs(t, err, catalog.ErrUnknownRegimen)
}

func TestExpectedEventsConfigurable(t *testing.T) {
	svc := newTestService(t, 1, 6)
	ctx := context.Background()

	rec, err := svc.SubmitReferral(ctx, "Jane Roe", "jane@x.com", "HTN")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.PushWorkoutEvent(ctx, rec.MatrixID(), "Treadmill"))
	}

	listed := svc.ListPatientsWithAdherence(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, 50, listed[0].Percentage)
}

func TestConfigFallsBackToDefault(t *testing.T) {
	svc := newTestService(t, 1, 0)
	assert.Equal(t, adherence.DefaultExpectedEvents, svc.ExpectedEvents())
}
