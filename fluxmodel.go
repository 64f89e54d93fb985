package generator

import (
	"fmt"
	"math"
	"sort"
)

// A FluxModel maps the angular separation between one magnet and a coil to
// the unsigned flux linked by the coil. Contributions must be continuous in
// the separation, maximal at zero separation and zero at and beyond the
// model's width, so that summed traces never show discontinuous voltage
// spikes.
type FluxModel interface {
	// Name is the registry key the model is looked up by.
	Name() string
	// Width returns the half-angle (radians) outside which Contribution is zero.
	Width(rotor RotorConfig) float64
	// Contribution returns the flux linked at signed angular separation delta.
	Contribution(delta float64, rotor RotorConfig, amplitude float64) float64
}

// WindowModel is the localized sinusoidal flux model: a raised cosine taper
// inside the influence window, zero outside. The taper has zero slope at the
// window boundary, so the derived voltage is continuous there.
type WindowModel struct{}

func (WindowModel) Name() string { return "window" }

func (WindowModel) Width(rotor RotorConfig) float64 {
	return rotor.InfluenceWidth()
}

func (m WindowModel) Contribution(delta float64, rotor RotorConfig, amplitude float64) float64 {
	width := m.Width(rotor)
	if math.Abs(delta) >= width {
		return 0
	}
	return amplitude * 0.5 * (1 + math.Cos(math.Pi*delta/width))
}

// OverlapModel derives flux from the geometric intersection of the magnet
// disc with a coil disc of the same radius centred on the magnet path. The
// contribution is the intersection area normalized by the full disc area,
// so a perfectly aligned magnet links exactly the configured amplitude.
type OverlapModel struct{}

func (OverlapModel) Name() string { return "overlap" }

// Width is where the chord distance 2*R*sin(delta/2) reaches one magnet
// diameter, slightly wider than the raised-cosine window for the same rotor.
// Unlike the window width it is not bounded away from pi by validation: at
// MagnetRadius == PathRadius it reaches exactly pi, which is still safe
// because separations are normalized to [-pi, pi).
func (OverlapModel) Width(rotor RotorConfig) float64 {
	return 2 * math.Asin(rotor.MagnetRadius/rotor.PathRadius)
}

func (m OverlapModel) Contribution(delta float64, rotor RotorConfig, amplitude float64) float64 {
	r := rotor.MagnetRadius
	d := 2 * rotor.PathRadius * math.Sin(math.Abs(delta)/2)
	return amplitude * overlapArea(d, r) / (math.Pi * r * r)
}

// overlapArea returns the intersection area of two discs of radius r whose
// centres are distance d apart.
func overlapArea(d, r float64) float64 {
	if d >= 2*r {
		return 0
	}
	if d == 0 {
		return math.Pi * r * r
	}
	return 2*r*r*math.Acos(d/(2*r)) - 0.5*d*math.Sqrt(4*r*r-d*d)
}

var fluxModels = map[string]FluxModel{
	"window":  WindowModel{},
	"overlap": OverlapModel{},
}

// FluxModelNames returns the registered model names, sorted.
func FluxModelNames() []string {
	names := make([]string, 0, len(fluxModels))
	for name := range fluxModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFluxModelFromName returns the named flux model. An empty name selects
// the window model.
func GetFluxModelFromName(name string) (FluxModel, error) {
	if name == "" {
		return WindowModel{}, nil
	}
	model, ok := fluxModels[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown flux model %q", ErrConfig, name)
	}
	return model, nil
}
