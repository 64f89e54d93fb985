package generator

import (
	"fmt"
	"math"
)

// A Sample is one point of a computed trace.
type Sample struct {
	T float64 // time in seconds
	V float64 // flux or voltage, depending on the producing operation
}

// Trace is an ordered sequence of time/value samples for one coil.
type Trace []Sample

// Times returns the time axis of the trace.
func (tr Trace) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

// Values returns the values of the trace.
func (tr Trace) Values() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.V
	}
	return out
}

// RMS returns the root mean square of the trace values.
func (tr Trace) RMS() float64 {
	if len(tr) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range tr {
		sum += s.V * s.V
	}
	return math.Sqrt(sum / float64(len(tr)))
}

// AbsMax returns the largest absolute value in the trace, used by consumers
// to scale graph axes.
func (tr Trace) AbsMax() float64 {
	max := 0.0
	for _, s := range tr {
		if a := math.Abs(s.V); a > max {
			max = a
		}
	}
	return max
}

// Smooth returns a copy of the trace with a Gaussian filter of standard
// deviation sigma (in samples) applied to the values. Edges are handled by
// reflection. sigma <= 0 returns an unfiltered copy.
func (tr Trace) Smooth(sigma float64) Trace {
	out := make(Trace, len(tr))
	copy(out, tr)
	if sigma <= 0 || len(tr) < 2 {
		return out
	}

	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	n := len(tr)
	for i := range out {
		v := 0.0
		for k, w := range kernel {
			v += w * tr[reflectIndex(i+k-radius, n)].V
		}
		out[i].V = v
	}
	return out
}

// reflectIndex maps an out of range index back into [0, n) by mirroring at
// the edges.
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// SumTraces returns the pointwise sum of the given traces. All traces must
// share the same time axis. Three balanced phases sum to zero at every
// instant; this is how the verification layer checks phase symmetry.
func SumTraces(traces ...Trace) (Trace, error) {
	base, err := sharedTimeAxis(traces)
	if err != nil {
		return nil, err
	}
	out := make(Trace, len(base))
	copy(out, base)
	for _, tr := range traces[1:] {
		for i, s := range tr {
			out[i].V += s.V
		}
	}
	return out, nil
}

// RectifiedMax returns the full-wave rectified combination of the given
// traces: the pointwise maximum of their absolute values. With one input it
// is plain full-wave rectification; with two or three phase traces it is the
// rectifier bus voltage.
func RectifiedMax(traces ...Trace) (Trace, error) {
	base, err := sharedTimeAxis(traces)
	if err != nil {
		return nil, err
	}
	out := make(Trace, len(base))
	for i, s := range base {
		out[i] = Sample{T: s.T, V: math.Abs(s.V)}
	}
	for _, tr := range traces[1:] {
		for i, s := range tr {
			if a := math.Abs(s.V); a > out[i].V {
				out[i].V = a
			}
		}
	}
	return out, nil
}

func sharedTimeAxis(traces []Trace) (Trace, error) {
	if len(traces) == 0 {
		return nil, fmt.Errorf("%w: no traces given", ErrTimeDomain)
	}
	base := traces[0]
	for _, tr := range traces[1:] {
		if len(tr) != len(base) {
			return nil, fmt.Errorf("%w: traces must share a time axis", ErrTimeDomain)
		}
		for i, s := range tr {
			if s.T != base[i].T {
				return nil, fmt.Errorf("%w: traces must share a time axis", ErrTimeDomain)
			}
		}
	}
	return base, nil
}
