package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo2dp(t *testing.T) {
	t.Run("RoundsHalfUpAtCentBoundary", func(t *testing.T) {
		assert.Equal(t, 10.01, To2dp(10.005))
		assert.Equal(t, 2.68, To2dp(2.675))
		assert.Equal(t, 150.01, To2dp(150.005))
		assert.Equal(t, 1.23, To2dp(1.234))
	})

	t.Run("LeavesTwoDecimalValuesUntouched", func(t *testing.T) {
		assert.Equal(t, 6.0, To2dp(6.0))
		assert.Equal(t, 99.99, To2dp(99.99))
		assert.Equal(t, 0.0, To2dp(0))
	})

	t.Run("Idempotent", func(t *testing.T) {
		for _, v := range []float64{10.005, 2.675, -3.14159, 100000, 0.001, 1234.5678} {
			once := To2dp(v)
			assert.Equal(t, once, To2dp(once), "To2dp must be idempotent for %v", v)
		}
	})

	t.Run("AvoidsFloatDriftAcrossRepeatedArithmetic", func(t *testing.T) {
		total := 0.0
		for i := 0; i < 10; i++ {
			total = To2dp(total + 0.1)
		}
		assert.Equal(t, 1.0, total)
	})
}
