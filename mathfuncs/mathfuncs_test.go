package mathfuncs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicFunctions(t *testing.T) {
	const (
		A = 10.0
		T = 4.0
	)

	tests := []struct {
		name     string
		t        float64
		expected float64
	}{
		{"linear", 0, 0},
		{"linear", 2.0, 5.0},
		{"linear", 4.0, 10.0},
		{"sine", 0, 0},
		{"sine", 1.0, 10.0},
		{"cosine", 0, 10.0},
		{"cosine", 2.0, -10.0},
		{"exponential_decay", 0, 10.0},
		{"exponential_decay", 4.0, 10.0 / math.E},
		{"step", 0.5, 0},
		{"step", 2.5, 10.0},
		{"square", 1.0, 10.0},
		{"square", 3.0, -10.0},
		{"sawtooth", 0, 0},
		{"sawtooth", 1.0, 5.0},
		{"impulse", 0, 10.0},
		{"impulse", 1.0, 0},
		{"flat", 0, 10.0},
		{"flat", 3.7, 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromName(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, f(tt.t, A, T), 1e-9)
		})
	}
}

func TestFromNameUnknown(t *testing.T) {
	_, err := FromName("not_a_function")
	assert.Error(t, err)
}

func TestNamesCoversRegistry(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(functions))
	for _, name := range names {
		f, err := FromName(name)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}
}

func TestRandomNoiseBounds(t *testing.T) {
	f, err := FromName("random_noise")
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		v := f(float64(i), 5.0, 1.0)
		assert.LessOrEqual(t, math.Abs(v), 5.0)
	}
}

func TestGaussianNoiseSpread(t *testing.T) {
	f, err := FromName("gaussian_noise")
	require.NoError(t, err)

	sum := 0.0
	const n = 10000
	for i := 0; i < n; i++ {
		sum += f(0, 1.0, 1.0)
	}
	// Sample mean of standard Gaussian noise stays near zero
	assert.InDelta(t, 0.0, sum/n, 0.1)
}

func TestRandomWalkBounds(t *testing.T) {
	f, err := FromName("random_walk")
	require.NoError(t, err)

	const A = 2.0
	previous := f(0, A, 1.0)
	for i := 1; i < 1000; i++ {
		v := f(float64(i), A, 1.0)
		assert.LessOrEqual(t, math.Abs(v), A)
		// Steps are bounded to a twentieth of the amplitude
		assert.LessOrEqual(t, math.Abs(v-previous), A/20+1e-12)
		previous = v
	}
}
