package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movefitrx/referral-engine/internal/catalog"
	"github.com/movefitrx/referral-engine/internal/domain/credential"
)

func testCred(id string) credential.Credential {
	return credential.Credential{MatrixID: id, AccessCode: "20" + id[len(id)-4:]}
}

func TestCreateThenLookup(t *testing.T) {
	reg := NewRegistry(nil)

	created, err := reg.Create("Jane Roe", "jane@x.com", "HTN", testCred("MFRX-AB001"))
	require.NoError(t, err)
	assert.Equal(t, "MFRX-AB001", created.MatrixID())
	assert.Equal(t, "Zone 2 Cardio + Resistance", created.RegimenName())
	assert.Equal(t, StatusPendingPayment, created.Status())
	assert.False(t, created.CreatedAt().IsZero())

	found, err := reg.Lookup("MFRX-AB001")
	require.NoError(t, err)
	assert.Equal(t, created.MatrixID(), found.MatrixID())
	assert.Equal(t, created.Name(), found.Name())
	assert.Equal(t, created.Email(), found.Email())
	assert.Equal(t, created.DiagnosisID(), found.DiagnosisID())
	assert.Equal(t, created.RegimenName(), found.RegimenName())
	assert.Equal(t, created.AccessCode(), found.AccessCode())
	assert.Equal(t, created.Status(), found.Status())
	assert.Equal(t, created.CreatedAt(), found.CreatedAt())
}

func TestCreateUnknownDiagnosis(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Create("Jane Roe", "jane@x.com", "BOGUS", testCred("MFRX-AB001"))
	assert.ErrorIs(t, err, catalog.ErrUnknownDiagnosis)
	assert.Equal(t, 0, reg.Len())
}

func TestCreateDuplicateMatrixID(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Create("Jane Roe", "jane@x.com", "HTN", testCred("MFRX-AB001"))
	require.NoError(t, err)

	_, err = reg.Create("John Doe", "john@x.com", "OSTE", testCred("MFRX-AB001"))
	assert.ErrorIs(t, err, ErrDuplicateMatrixID)
	assert.Equal(t, 1, reg.Len())
}

func TestLookupNotFound(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Lookup("UNKNOWN-ID")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestListReverseCreationOrder(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Create("Patient A", "a@x.com", "HTN", testCred("MFRX-AB001"))
	require.NoError(t, err)
	_, err = reg.Create("Patient B", "b@x.com", "OSTP", testCred("MFRX-CD002"))
	require.NoError(t, err)
	_, err = reg.Create("Patient C", "c@x.com", "PCOS", testCred("MFRX-EF003"))
	require.NoError(t, err)

	listed := reg.List()
	require.Len(t, listed, 3)
	assert.Equal(t, "Patient C", listed[0].Name())
	assert.Equal(t, "Patient B", listed[1].Name())
	assert.Equal(t, "Patient A", listed[2].Name())
}

func TestMarkPaidIdempotent(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Create("Jane Roe", "jane@x.com", "HTN", testCred("MFRX-AB001"))
	require.NoError(t, err)

	rec, transitioned, err := reg.MarkPaid("MFRX-AB001")
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, StatusPaid, rec.Status())

	rec, transitioned, err = reg.MarkPaid("MFRX-AB001")
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.Equal(t, StatusPaid, rec.Status())
}

func TestMarkPaidNotFound(t *testing.T) {
	reg := NewRegistry(nil)

	_, _, err := reg.MarkPaid("UNKNOWN-ID")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
