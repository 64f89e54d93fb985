package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/fluxtrace/generator/anomaly"
)

// ScenarioCoil positions one pickup coil by its offset in degrees, measured
// clockwise from 12 o'clock. Its anomaly container, if any, is applied to the
// coil's voltage trace sample by sample.
type ScenarioCoil struct {
	Name          string            `yaml:"name"`
	OffsetDegrees float64           `yaml:"offset_degrees"`
	Anomalies     anomaly.Container `yaml:"anomalies,omitempty"`
}

// Coil returns the coil in engine terms, offset converted to radians.
func (c ScenarioCoil) Coil() Coil {
	return Coil{Name: c.Name, Offset: c.OffsetDegrees * math.Pi / 180}
}

// Scenario is a complete simulation request, usually loaded from a YAML
// file: rotor geometry, flux model, coil positions, a time axis, and
// optional anomaly injection per coil.
type Scenario struct {
	Rotor     RotorConfig    `yaml:"rotor"`
	Amplitude float64        `yaml:"amplitude,omitempty"` // 0 defaults to 1.0
	Model     string         `yaml:"model,omitempty"`     // flux model name, empty selects "window"
	Duration  float64        `yaml:"duration"`            // seconds
	Steps     int            `yaml:"steps"`               // samples across the duration
	Seed      uint64         `yaml:"seed,omitempty"`      // anomaly random source seed
	Coils     []ScenarioCoil `yaml:"coils"`
}

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario unmarshals and validates a scenario from YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if err := s.Rotor.Validate(); err != nil {
		return err
	}
	if _, err := GetFluxModelFromName(s.Model); err != nil {
		return err
	}
	if s.Amplitude < 0 {
		return fmt.Errorf("%w: amplitude must not be negative, got %g", ErrConfig, s.Amplitude)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrConfig, s.Duration)
	}
	if s.Steps < 2 {
		return fmt.Errorf("%w: at least 2 steps required, got %d", ErrConfig, s.Steps)
	}
	if len(s.Coils) == 0 {
		return fmt.Errorf("%w: at least one coil required", ErrConfig)
	}
	seen := make(map[string]bool, len(s.Coils))
	for i, c := range s.Coils {
		if c.Name == "" {
			return fmt.Errorf("%w: coil %d has no name", ErrConfig, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate coil name %q", ErrConfig, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Engine returns an engine configured per the scenario.
func (s *Scenario) Engine() (*Engine, error) {
	model, err := GetFluxModelFromName(s.Model)
	if err != nil {
		return nil, err
	}
	eng, err := NewEngine(s.Rotor)
	if err != nil {
		return nil, err
	}
	eng.Amplitude = s.Amplitude
	eng.Model = model
	return eng, nil
}

// TimeAxis returns the scenario's sampling times: Steps samples spaced
// Duration/Steps apart, starting at zero.
func (s *Scenario) TimeAxis() []float64 {
	dt := s.Duration / float64(s.Steps)
	times := make([]float64, s.Steps)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return times
}

// SamplingPeriod returns the spacing of the time axis in seconds.
func (s *Scenario) SamplingPeriod() float64 {
	return s.Duration / float64(s.Steps)
}

// FluxTraces computes the flux trace for every coil, keyed by coil name.
func (s *Scenario) FluxTraces() (map[string]Trace, error) {
	eng, err := s.Engine()
	if err != nil {
		return nil, err
	}
	times := s.TimeAxis()
	out := make(map[string]Trace, len(s.Coils))
	for _, c := range s.Coils {
		tr, err := eng.FluxTrace(c.Coil(), times)
		if err != nil {
			return nil, err
		}
		out[c.Name] = tr
	}
	return out, nil
}

// VoltageTraces computes the voltage trace for every coil and applies each
// coil's anomalies sample by sample, keyed by coil name. The anomaly random
// source is seeded from the scenario so runs are reproducible.
func (s *Scenario) VoltageTraces() (map[string]Trace, error) {
	eng, err := s.Engine()
	if err != nil {
		return nil, err
	}
	times := s.TimeAxis()
	Ts := s.SamplingPeriod()
	r := rand.New(rand.NewPCG(s.Seed, 0))

	out := make(map[string]Trace, len(s.Coils))
	for _, c := range s.Coils {
		tr, err := eng.VoltageTrace(c.Coil(), times)
		if err != nil {
			return nil, err
		}
		if len(c.Anomalies) > 0 {
			for i := range tr {
				tr[i].V += c.Anomalies.StepAll(r, Ts)
			}
		}
		out[c.Name] = tr
	}
	return out, nil
}
