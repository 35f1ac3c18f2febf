package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConcurrencyCSV(t *testing.T) {
	vals, err := ParseConcurrencyCSV("10, 50 ,100")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 50, 100}, vals)
}

func TestParseConcurrencyCSVRejectsEmpty(t *testing.T) {
	_, err := ParseConcurrencyCSV("")
	assert.Error(t, err)
}

func TestParseConcurrencyCSVRejectsNonPositive(t *testing.T) {
	_, err := ParseConcurrencyCSV("10,-5")
	assert.Error(t, err)
}

func TestParseConcurrencyCSVRejectsGarbage(t *testing.T) {
	_, err := ParseConcurrencyCSV("10,abc")
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangeSuccessRate(t *testing.T) {
	c := Default()
	c.SuccessRate = 1.5
	assert.Error(t, c.Validate())
}

func TestValidateRequiresConcurrencyInManualMode(t *testing.T) {
	c := Default()
	c.Mode = ModeManual
	assert.Error(t, c.Validate())

	c.ManualConcurrency = []int{10, 20}
	assert.NoError(t, c.Validate())
}

func TestDefaultPassesValidation(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestSLODerivesFromThresholds(t *testing.T) {
	c := Default()
	s := c.SLO()
	assert.Equal(t, c.SuccessRate, s.SuccessRateFloor)
	assert.Equal(t, int64(c.P99ThresholdMS), s.P99Ceiling.Milliseconds())
}
