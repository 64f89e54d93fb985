package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepTrend(t *testing.T, params TrendParams, steps int, Ts float64) []float64 {
	t.Helper()
	trend, err := NewTrendAnomaly(params)
	require.NoError(t, err)

	out := make([]float64, steps)
	for i := range out {
		out[i] = trend.stepAnomaly(nil, Ts)
	}
	return out
}

func TestTrendAnomalyRamp(t *testing.T) {
	base := TrendParams{
		Duration:  5.0,
		Magnitude: 10.0,
	}

	tests := []struct {
		name     string
		invert   bool
		reverse  bool
		expected []float64
	}{
		{"ramp up", false, false, []float64{0, 2, 4, 6, 8}},
		{"inverted", true, false, []float64{0, -2, -4, -6, -8}},
		{"reversed", false, true, []float64{10, 8, 6, 4, 2}},
		{"inverted reversed", true, true, []float64{-10, -8, -6, -4, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			params.InvertTrend = tt.invert
			params.ReverseTrend = tt.reverse
			got := stepTrend(t, params, 5, 1.0)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTrendAnomalyStartDelay(t *testing.T) {
	got := stepTrend(t, TrendParams{
		Duration:   5.0,
		Magnitude:  10.0,
		StartDelay: 2.0,
	}, 7, 1.0)

	assert.Equal(t, []float64{0, 0, 0, 2, 4, 6, 8}, got)
}

func TestTrendAnomalyRepeats(t *testing.T) {
	// With one repetition allowed the anomaly switches itself off after the
	// first burst.
	got := stepTrend(t, TrendParams{
		Duration:  5.0,
		Magnitude: 10.0,
		Repeats:   1,
	}, 8, 1.0)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 0, 0, 0}, got)

	// Repeats of zero means the burst restarts forever
	got = stepTrend(t, TrendParams{
		Duration:  5.0,
		Magnitude: 10.0,
	}, 10, 1.0)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 0, 2, 4, 6, 8}, got)
}

func TestTrendAnomalyOff(t *testing.T) {
	got := stepTrend(t, TrendParams{
		Duration:  5.0,
		Magnitude: 10.0,
		Off:       true,
	}, 5, 1.0)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, got)

	// Zero duration also deactivates the anomaly
	trend, err := NewTrendAnomaly(TrendParams{Magnitude: 10.0})
	require.NoError(t, err)
	assert.True(t, trend.Off)
}

func TestTrendAnomalyFlat(t *testing.T) {
	got := stepTrend(t, TrendParams{
		Duration:    3.0,
		Magnitude:   4.5,
		MagFuncName: "flat",
	}, 3, 1.0)
	assert.Equal(t, []float64{4.5, 4.5, 4.5}, got)
}

func TestTrendAnomalyInvalidParams(t *testing.T) {
	_, err := NewTrendAnomaly(TrendParams{Duration: -1.0})
	assert.Error(t, err)

	_, err = NewTrendAnomaly(TrendParams{Duration: 1.0, StartDelay: -0.5})
	assert.Error(t, err)

	_, err = NewTrendAnomaly(TrendParams{Duration: 1.0, Period: -2.0})
	assert.Error(t, err)

	_, err = NewTrendAnomaly(TrendParams{Duration: 1.0, MagFuncName: "no_such_function"})
	assert.Error(t, err)
}

func TestTrendAnomalyDefaults(t *testing.T) {
	trend, err := NewTrendAnomaly(TrendParams{Duration: 2.0})
	require.NoError(t, err)

	assert.Equal(t, "trend", trend.TypeAsString())
	assert.Equal(t, "linear", trend.GetMagFuncName())
	assert.Equal(t, 2.0, trend.GetDuration())
	assert.Equal(t, 0.0, trend.GetStartDelay())
	assert.False(t, trend.GetIsAnomalyActive())
}
