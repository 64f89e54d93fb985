package traceplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxtrace/generator"
)

func testTrace(phase float64) generator.Trace {
	tr := make(generator.Trace, 200)
	for i := range tr {
		t := float64(i) / 200
		tr[i] = generator.Sample{T: t, V: math.Sin(2*math.Pi*t + phase)}
	}
	return tr
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.png")
	require.NoError(t, WritePNG(path, "Induced Voltage", "Voltage", testTrace(0)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteComparisonPNG(t *testing.T) {
	traces := map[string]generator.Trace{
		"a": testTrace(0),
		"b": testTrace(-2 * math.Pi / 3),
		"c": testTrace(2 * math.Pi / 3),
	}

	path := filepath.Join(t.TempDir(), "comparison.png")
	require.NoError(t, WriteComparisonPNG(path, "Induced Voltage", "Voltage", traces))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePNGBadPath(t *testing.T) {
	err := WritePNG(filepath.Join(t.TempDir(), "missing", "trace.png"),
		"Induced Voltage", "Voltage", testTrace(0))
	assert.Error(t, err)
}
