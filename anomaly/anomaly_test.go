package anomaly

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const containerYAML = `
drift:
  type: trend
  duration: 5.0
  magnitude: 10.0
glitch:
  type: spike
  probability: 0.5
  magnitude: 3.0
  duration: 2.0
`

func TestContainerUnmarshalYAML(t *testing.T) {
	var c Container
	require.NoError(t, yaml.Unmarshal([]byte(containerYAML), &c))
	require.Len(t, c, 2)

	assert.Equal(t, "trend", c["drift"].TypeAsString())
	assert.Equal(t, 5.0, c["drift"].GetDuration())
	assert.Equal(t, "spike", c["glitch"].TypeAsString())
	assert.Equal(t, 2.0, c["glitch"].GetDuration())
}

func TestContainerUnmarshalUnknownType(t *testing.T) {
	var c Container
	err := yaml.Unmarshal([]byte("bad:\n  type: wobble\n"), &c)
	assert.ErrorContains(t, err, "unknown anomaly type")
}

func TestContainerUnmarshalInvalidParams(t *testing.T) {
	var c Container
	err := yaml.Unmarshal([]byte("bad:\n  type: trend\n  duration: -1.0\n"), &c)
	assert.Error(t, err)
}

func TestAddAnomaly(t *testing.T) {
	trend, err := NewTrendAnomaly(TrendParams{Duration: 1.0, Magnitude: 2.0})
	require.NoError(t, err)

	var c Container
	id := c.AddAnomaly(trend)

	require.Len(t, c, 1)
	assert.Equal(t, trend, c[id.String()])
}

func TestStepAllSumsContributions(t *testing.T) {
	var c Container
	for i := 0; i < 2; i++ {
		trend, err := NewTrendAnomaly(TrendParams{
			Duration:    4.0,
			Magnitude:   1.5,
			MagFuncName: "flat",
		})
		require.NoError(t, err)
		c.AddAnomaly(trend)
	}

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 4; i++ {
		assert.Equal(t, 3.0, c.StepAll(r, 1.0))
	}
}

func TestStepAllReproducible(t *testing.T) {
	// Two stochastic anomalies sharing one random source: every run must hand
	// the draws to the anomalies in the same order for equal seeds to give
	// equal traces.
	build := func(t *testing.T) Container {
		t.Helper()
		c := make(Container)
		for key, params := range map[string]SpikeParams{
			"frequent": {Probability: 0.5, Magnitude: 1.0, VaryMagnitude: true},
			"rare":     {Probability: 0.3, Magnitude: 4.0, VaryMagnitude: true},
		} {
			spike, err := NewSpikeAnomaly(params)
			require.NoError(t, err)
			c[key] = spike
		}
		return c
	}

	first := build(t)
	second := build(t)
	r1 := rand.New(rand.NewPCG(42, 0))
	r2 := rand.New(rand.NewPCG(42, 0))
	for i := 0; i < 200; i++ {
		assert.Equal(t, first.StepAll(r1, 0.01), second.StepAll(r2, 0.01), "step %d", i)
	}
}

func TestSpikeAnomalyDeterministicSign(t *testing.T) {
	// Probability 1 fires a spike every timestep and a sign bias of -1 keeps
	// every spike negative.
	spike, err := NewSpikeAnomaly(SpikeParams{
		Probability: 1.0,
		Magnitude:   3.0,
		SpikeSign:   -1.0,
	})
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(11, 0))
	for i := 0; i < 50; i++ {
		assert.Equal(t, -3.0, spike.stepAnomaly(r, 0.01))
	}
}

func TestSpikeAnomalyZeroProbability(t *testing.T) {
	spike, err := NewSpikeAnomaly(SpikeParams{Magnitude: 3.0})
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(11, 0))
	for i := 0; i < 50; i++ {
		assert.Zero(t, spike.stepAnomaly(r, 0.01))
	}
	assert.False(t, spike.GetIsAnomalyActive())
}

func TestSpikeAnomalyVariedMagnitude(t *testing.T) {
	spike, err := NewSpikeAnomaly(SpikeParams{
		Probability:   1.0,
		Magnitude:     2.0,
		VaryMagnitude: true,
	})
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(3, 0))
	varied := false
	for i := 0; i < 100; i++ {
		v := spike.stepAnomaly(r, 0.01)
		if v != 0 && math.Abs(v) != 2.0 {
			varied = true
		}
	}
	assert.True(t, varied)
}

func TestSpikeAnomalyInvalidParams(t *testing.T) {
	_, err := NewSpikeAnomaly(SpikeParams{Probability: -0.1})
	assert.Error(t, err)

	_, err = NewSpikeAnomaly(SpikeParams{SpikeSign: 1.5})
	assert.Error(t, err)

	_, err = NewSpikeAnomaly(SpikeParams{Duration: -2.0})
	assert.Error(t, err)

	// A continuous burst has no defined elapsed time for a magnitude function
	_, err = NewSpikeAnomaly(SpikeParams{MagFuncName: "sine"})
	assert.Error(t, err)
}

func TestDecodeHook(t *testing.T) {
	input := map[string]interface{}{
		"drift": map[string]interface{}{
			"type":      "trend",
			"duration":  5.0,
			"magnitude": 10.0,
		},
		"glitch": map[string]interface{}{
			"type":        "spike",
			"probability": 1.0,
			"magnitude":   3.0,
		},
	}

	var c Container
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: GetDecodeHook(),
		Result:     &c,
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(input))
	require.Len(t, c, 2)

	assert.Equal(t, "trend", c["drift"].TypeAsString())
	assert.Equal(t, "spike", c["glitch"].TypeAsString())
}

func TestDecodeHookErrors(t *testing.T) {
	_, err := createAnomalyFromEntry("not a map")
	assert.Error(t, err)

	_, err = createAnomalyFromEntry(map[string]interface{}{"duration": 1.0})
	assert.ErrorContains(t, err, "type field is missing")

	_, err = createAnomalyFromEntry(map[string]interface{}{"type": "wobble"})
	assert.ErrorContains(t, err, "unknown anomaly type")
}
