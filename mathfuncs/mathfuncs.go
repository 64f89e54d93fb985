// Package mathfuncs holds a registry of named mathematical functions used to
// shape anomaly magnitudes and probabilities over time.
package mathfuncs

import (
	"errors"
	"math"
	"math/rand/v2"
)

// A Function y=f(t,A,T) takes amplitude A and period (or duration) T and
// returns the value of the function at time t.
type Function func(t, A, T float64) float64

var functions = map[string]Function{
	"linear":            linearRamp,
	"sine":              sineWave,
	"cosine":            cosineWave,
	"exponential_decay": exponentialDecay,
	"step":              stepFunction,
	"square":            squareWave,
	"sawtooth":          sawtoothWave,
	"impulse":           impulseTrain,
	"random_noise":      randomNoise,
	"gaussian_noise":    gaussianNoise,
	"random_walk":       randomWalk,
	"flat":              flat,
}

// Names returns the registered function names.
func Names() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	return names
}

// FromName returns the named function.
func FromName(name string) (Function, error) {
	f, ok := functions[name]
	if !ok {
		return nil, errors.New("function not found")
	}

	return f, nil
}

// Returns a linear ramp y=(A/T)*t where A is the magnitude of the ramp, T is
// its duration, and t is elapsed time.
func linearRamp(t, A, T float64) float64 {
	m := A / T // slope of the ramp
	return m * t
}

// Returns a sine wave y=A*sin(2*pi*t/T) where A is the amplitude, T is the
// period, and t is elapsed time.
func sineWave(t, A, T float64) float64 {
	return A * math.Sin(2*math.Pi*t/T)
}

// Returns a cosine wave y=A*cos(2*pi*t/T) where A is the amplitude, T is the
// period, and t is elapsed time.
func cosineWave(t, A, T float64) float64 {
	return A * math.Cos(2*math.Pi*t/T)
}

// Returns an exponential decay y=A*exp(-t/T) where A is the amplitude, T is
// the time constant, and t is elapsed time.
func exponentialDecay(t, A, T float64) float64 {
	return A * math.Exp(-t/T)
}

// Returns a step function of amplitude A every period T.
func stepFunction(t, A, T float64) float64 {
	if math.Mod(t, T) < T/2 {
		return 0
	}
	return A
}

// Returns a square wave y=A if sin(2*pi*t/T) >= 0, else -A, where A is the
// amplitude, T is the period, and t is elapsed time.
func squareWave(t, A, T float64) float64 {
	if math.Sin(2*math.Pi*t/T) >= 0 {
		return A
	}
	return -A
}

// Returns a sawtooth wave y=(2*A/pi)*atan(tan(pi*t/T)), where A is the
// amplitude, T is the period, and t is elapsed time.
func sawtoothWave(t, A, T float64) float64 {
	return (2 * A / math.Pi) * math.Atan(math.Tan(math.Pi*t/T))
}

// Returns a spike of amplitude A every period T. Each spike is 1 microsecond
// wide.
func impulseTrain(t, A, T float64) float64 {
	const spikeWidth = 1e-6
	if math.Mod(t, T) < spikeWidth {
		return A
	}
	return 0
}

// Returns uniform random noise between -A and A.
func randomNoise(_, A, _ float64) float64 {
	return A * (rand.Float64()*2 - 1)
}

// Returns Gaussian noise of standard deviation A.
func gaussianNoise(_, A, _ float64) float64 {
	return rand.NormFloat64() * A
}

// flat returns a constant value equal to A, independent of time t or
// period T.
func flat(_, A, _ float64) float64 {
	return A
}

// Returns a random walk bounded to within +/- A, with steps of maximum size
// A/20. The returned function is stateful: it remembers the previous value.
var randomWalk = func() func(float64, float64, float64) float64 {
	const stepFactor = 20.0
	previousValue := 0.0
	return func(t, A, T float64) float64 {
		if t != 0 {
			step := A / stepFactor * (rand.Float64()*2 - 1)
			proposedValue := previousValue + step

			// Hold the value within the bounds of +/- A
			previousValue = math.Min(math.Max(proposedValue, -A), A)
		}
		return previousValue
	}
}()
