package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosisByID(t *testing.T) {
	d, err := DiagnosisByID("HTN")
	require.NoError(t, err)
	assert.Equal(t, "Hypertension", d.DisplayName)
	assert.Equal(t, "I10", d.BillingCode)
	assert.Equal(t, "Zone 2 Cardio + Resistance", d.RegimenName)
}

func TestDiagnosisByIDUnknown(t *testing.T) {
	_, err := DiagnosisByID("NOPE")
	assert.ErrorIs(t, err, ErrUnknownDiagnosis)
}

func TestEveryDiagnosisRegimenResolves(t *testing.T) {
	for _, d := range Diagnoses() {
		reg, err := RegimenByName(d.RegimenName)
		require.NoError(t, err, "diagnosis %s references missing regimen %q", d.ID, d.RegimenName)
		assert.NotEmpty(t, reg.Steps, "regimen %q has no steps", d.RegimenName)
	}
}

func TestRegimenStepsOrdered(t *testing.T) {
	steps, err := RegimenSteps("Bone Density & Balance")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "Treadmill", steps[0].Machine)
	assert.Equal(t, "Calf Extension", steps[1].Machine)
	assert.Equal(t, "Hip Adductor", steps[2].Machine)
}

func TestRegimenStepsUnknown(t *testing.T) {
	_, err := RegimenSteps("Couch Potato Deluxe")
	assert.ErrorIs(t, err, ErrUnknownRegimen)
}

func TestRegimenStepsReturnsCopy(t *testing.T) {
	steps, err := RegimenSteps("Zone 2 Cardio + Resistance")
	require.NoError(t, err)
	steps[0].Machine = "mutated"

	again, err := RegimenSteps("Zone 2 Cardio + Resistance")
	require.NoError(t, err)
	assert.Equal(t, "Treadmill", again[0].Machine)
}
