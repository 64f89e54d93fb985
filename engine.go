package generator

import (
	"fmt"
	"math"
)

// Engine computes flux and induced voltage traces for stationary coils around
// a rotor. It holds no state beyond its inputs: every call re-reads the
// configuration, so live parameter changes only require calling again.
type Engine struct {
	Rotor     RotorConfig
	Amplitude float64   // peak flux linked by one aligned magnet, 0 defaults to 1.0
	Model     FluxModel // nil defaults to the window model
}

// NewEngine returns an engine for the given rotor, rejecting invalid geometry.
func NewEngine(rotor RotorConfig) (*Engine, error) {
	if err := rotor.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Rotor: rotor}, nil
}

func (e *Engine) amplitude() float64 {
	if e.Amplitude == 0 {
		return 1.0
	}
	return e.Amplitude
}

func (e *Engine) model() FluxModel {
	if e.Model == nil {
		return WindowModel{}
	}
	return e.Model
}

// Flux returns the total instantaneous flux linking the coil at time t: the
// signed sum of every magnet's contribution. Magnets outside the influence
// window contribute exactly zero; overlapping windows superpose additively.
func (e *Engine) Flux(coil Coil, t float64) (float64, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}
	if t < 0 {
		return 0, fmt.Errorf("%w: negative time %g", ErrTimeDomain, t)
	}
	return e.fluxAt(coil.Angle(), t), nil
}

func (e *Engine) fluxAt(coilAngle, t float64) float64 {
	total := 0.0
	for i := 0; i < e.Rotor.NumMagnets; i++ {
		delta := angularDistance(coilAngle, e.Rotor.MagnetAngle(i, t))
		total += e.Rotor.MagnetPolarity(i).Sign() * e.model().Contribution(delta, e.Rotor, e.amplitude())
	}
	return total
}

// FluxTrace samples the flux linking the coil over the given time axis.
func (e *Engine) FluxTrace(coil Coil, times []float64) (Trace, error) {
	if err := e.checkTraceInputs(times); err != nil {
		return nil, err
	}
	trace := make(Trace, len(times))
	for i, t := range times {
		trace[i] = Sample{T: t, V: e.fluxAt(coil.Angle(), t)}
	}
	return trace, nil
}

// VoltageTrace returns the induced voltage over the given time axis as the
// discrete Lenz's law derivative v = -(flux2 - flux1)/(t2 - t1). The first
// sample is zero. A North pole entering the influence window drives the
// voltage negative; a South pole drives it positive. Wherever no magnet is
// within the influence window across a sampling interval, the voltage is
// exactly zero.
func (e *Engine) VoltageTrace(coil Coil, times []float64) (Trace, error) {
	if err := e.checkTraceInputs(times); err != nil {
		return nil, err
	}
	trace := make(Trace, len(times))
	prev := 0.0
	for i, t := range times {
		flux := e.fluxAt(coil.Angle(), t)
		if i == 0 {
			trace[i] = Sample{T: t}
		} else {
			trace[i] = Sample{T: t, V: -(flux - prev) / (t - times[i-1])}
		}
		prev = flux
	}
	return trace, nil
}

// SineVoltageTrace returns the induced voltage using the direct localized
// sinusoidal model: each magnet pass produces one single-signed cosine lobe,
// negative for North and positive for South, zero at and beyond the window
// boundary. The animation layer uses this form when it needs exactly one
// excursion per pass rather than the two-lobed derivative.
func (e *Engine) SineVoltageTrace(coil Coil, times []float64) (Trace, error) {
	if err := e.checkTraceInputs(times); err != nil {
		return nil, err
	}
	width := e.Rotor.InfluenceWidth()
	trace := make(Trace, len(times))
	for i, t := range times {
		v := 0.0
		for m := 0; m < e.Rotor.NumMagnets; m++ {
			delta := angularDistance(coil.Angle(), e.Rotor.MagnetAngle(m, t))
			if math.Abs(delta) >= width {
				continue
			}
			v -= e.Rotor.MagnetPolarity(m).Sign() * e.amplitude() * math.Cos(math.Pi/2*delta/width)
		}
		trace[i] = Sample{T: t, V: v}
	}
	return trace, nil
}

// validate re-checks the configuration, including fields set after
// construction.
func (e *Engine) validate() error {
	if err := e.Rotor.Validate(); err != nil {
		return err
	}
	if e.Amplitude < 0 {
		return fmt.Errorf("%w: amplitude must not be negative, got %g", ErrConfig, e.Amplitude)
	}
	return nil
}

func (e *Engine) checkTraceInputs(times []float64) error {
	if err := e.validate(); err != nil {
		return err
	}
	return validateTimes(times)
}

// validateTimes rejects empty, negative or non-increasing time axes. Out of
// range samples are surfaced, never clamped: clamping would silently falsify
// the physics.
func validateTimes(times []float64) error {
	if len(times) == 0 {
		return fmt.Errorf("%w: empty time axis", ErrTimeDomain)
	}
	prev := math.Inf(-1)
	for _, t := range times {
		if t < 0 {
			return fmt.Errorf("%w: negative time %g", ErrTimeDomain, t)
		}
		if t <= prev {
			return fmt.Errorf("%w: time axis must be strictly increasing", ErrTimeDomain)
		}
		prev = t
	}
	return nil
}
