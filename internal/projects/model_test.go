package projects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	today := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	in := Input{Name: " Casa Ruiz ", ClientName: "Ruiz", Status: "ACTIVE", Typology: "comercial"}
	require.NoError(t, in.Normalize(true, today))
	assert.Equal(t, "Casa Ruiz", in.Name)
	assert.Equal(t, StatusPending, in.Status, "new projects always start pending")
	assert.Equal(t, TypologyComercial, in.Typology)
	assert.Equal(t, "Otros", in.CoverType)
	assert.Equal(t, "2025-05-02", in.StartDate)
	require.NotNil(t, in.EstimatedDays)
	assert.Equal(t, 120, *in.EstimatedDays)

	upd := Input{Name: "x", ClientName: "y", Status: "PAUSED"}
	require.NoError(t, upd.Normalize(false, today))
	assert.Equal(t, StatusPaused, upd.Status)
	assert.Nil(t, upd.EstimatedDays)

	assert.ErrorIs(t, (&Input{Name: "x"}).Normalize(true, today), ErrNameRequired)
	assert.ErrorIs(t, (&Input{Name: "x", ClientName: "y", Status: "DONE"}).Normalize(false, today), ErrInvalidStatus)
	assert.ErrorIs(t, (&Input{Name: "x", ClientName: "y", Typology: "MIXTA"}).Normalize(true, today), ErrInvalidTypology)
	assert.ErrorIs(t, (&Input{Name: "x", ClientName: "y", LandArea: -1}).Normalize(true, today), ErrInvalidArea)
}

func TestWarnings(t *testing.T) {
	assert.Nil(t, (&Input{LandArea: 200, ConstructionArea: 150}).Warnings())
	assert.Equal(t, []string{WarnAreaExceeded}, (&Input{LandArea: 100, ConstructionArea: 150}).Warnings())
}

func TestProgressAt(t *testing.T) {
	now := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	days := 60
	assert.Equal(t, 50, ProgressAt("2025-01-01", &days, now))
	assert.Equal(t, 25, ProgressAt("2025-01-01", nil, now))
	assert.Equal(t, 0, ProgressAt("2025-03-01", &days, now))
	assert.Equal(t, 100, ProgressAt("2024-01-01", &days, now))
	assert.Equal(t, 0, ProgressAt("someday", &days, now))
}
