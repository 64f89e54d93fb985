package generator

import (
	"fmt"
	"math"
)

// LinearMagnet is one magnet in a translating stream.
type LinearMagnet struct {
	Offset   float64 // initial x of the magnet centre, relative to the coil centre
	Polarity Polarity
}

// LinearRig emulates a stream of disc magnets moving at constant speed past a
// stationary rectangular coil centred on x=0. Flux is the field strength
// times the area of each magnet disc currently inside the coil span, computed
// from circle segment areas.
type LinearRig struct {
	MagnetRadius  float64
	CoilWidth     float64
	FieldStrength float64 // flux density, 0 defaults to 1.0
	Speed         float64 // units/s in +x
	Magnets       []LinearMagnet
}

func (l LinearRig) Validate() error {
	if l.MagnetRadius <= 0 {
		return fmt.Errorf("%w: magnet radius must be positive, got %g", ErrConfig, l.MagnetRadius)
	}
	if l.CoilWidth <= 0 {
		return fmt.Errorf("%w: coil width must be positive, got %g", ErrConfig, l.CoilWidth)
	}
	if len(l.Magnets) == 0 {
		return fmt.Errorf("%w: at least one magnet required", ErrConfig)
	}
	for i, m := range l.Magnets {
		if m.Polarity != North && m.Polarity != South {
			return fmt.Errorf("%w: polarity of magnet %d is neither North nor South", ErrConfig, i)
		}
	}
	return nil
}

func (l LinearRig) fieldStrength() float64 {
	if l.FieldStrength == 0 {
		return 1.0
	}
	return l.FieldStrength
}

// Flux returns the total signed flux through the coil at time t.
func (l LinearRig) Flux(t float64) (float64, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}
	if t < 0 {
		return 0, fmt.Errorf("%w: negative time %g", ErrTimeDomain, t)
	}
	return l.flux(t), nil
}

func (l LinearRig) flux(t float64) float64 {
	left := -l.CoilWidth / 2
	right := l.CoilWidth / 2
	cutoff := l.CoilWidth/2 + l.MagnetRadius

	total := 0.0
	for _, m := range l.Magnets {
		cx := m.Offset + l.Speed*t
		if math.Abs(cx) > cutoff {
			continue
		}
		area := circleSegmentArea(l.MagnetRadius, right-cx) - circleSegmentArea(l.MagnetRadius, left-cx)
		total += m.Polarity.Sign() * l.fieldStrength() * area
	}
	return total
}

// FluxTrace samples the coil flux over the given time axis.
func (l LinearRig) FluxTrace(times []float64) (Trace, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := validateTimes(times); err != nil {
		return nil, err
	}
	trace := make(Trace, len(times))
	for i, t := range times {
		trace[i] = Sample{T: t, V: l.flux(t)}
	}
	return trace, nil
}

// VoltageTrace returns the induced voltage v = -dFlux/dt over the given time
// axis, using a central difference around each sample.
func (l LinearRig) VoltageTrace(times []float64) (Trace, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := validateTimes(times); err != nil {
		return nil, err
	}
	const dt = 1e-3
	trace := make(Trace, len(times))
	for i, t := range times {
		trace[i] = Sample{T: t, V: -(l.flux(t+dt) - l.flux(t-dt)) / (2 * dt)}
	}
	return trace, nil
}

// circleSegmentArea returns the area of a disc of radius r to the left of the
// vertical line at x, where x is measured from the disc centre.
func circleSegmentArea(r, x float64) float64 {
	if x <= -r {
		return 0
	}
	if x >= r {
		return math.Pi * r * r
	}
	d := math.Abs(x)
	cap := r*r*math.Acos(d/r) - d*math.Sqrt(r*r-d*d)
	if x > 0 {
		return math.Pi*r*r - cap
	}
	return cap
}
