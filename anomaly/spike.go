package anomaly

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/fluxtrace/generator/mathfuncs"
)

// spikeAnomaly produces spikes in a trace, triggered each timestep by a
// probability factor.
type spikeAnomaly struct {
	AnomalyBase

	Magnitude     float64 // magnitude of spikes, default 0
	magFuncName   string  // name of the function varying spike magnitude over a burst, empty for none
	VaryMagnitude bool    // whether to apply Gaussian variation to spike magnitude, default false
	spikeSign     float64 // bias towards positive (>0) or negative (<0) spikes; 0 means equally likely

	probability  float64 // probability of a spike each timestep, default 0
	probFuncName string  // name of the function varying the probability over a burst, empty for constant

	// internal state
	magFunction  mathfuncs.Function // set from magFuncName
	probFunction mathfuncs.Function // set from probFuncName
}

// SpikeParams requests a spike anomaly. Fields map onto spikeAnomaly.
type SpikeParams struct {
	Repeats    uint64  `yaml:"repeats" mapstructure:"repeats"`
	Off        bool    `yaml:"off" mapstructure:"off"`
	StartDelay float64 `yaml:"start_delay" mapstructure:"start_delay"`
	Duration   float64 `yaml:"duration" mapstructure:"duration"` // seconds per burst of spikes, 0 for continuous

	Magnitude     float64 `yaml:"magnitude" mapstructure:"magnitude"`
	MagFuncName   string  `yaml:"mag_func" mapstructure:"mag_func"`
	VaryMagnitude bool    `yaml:"vary_magnitude" mapstructure:"vary_magnitude"`
	SpikeSign     float64 `yaml:"sign" mapstructure:"sign"`

	Probability  float64 `yaml:"probability" mapstructure:"probability"`
	ProbFuncName string  `yaml:"prob_func" mapstructure:"prob_func"`
}

// UnmarshalYAML builds the spike anomaly through NewSpikeAnomaly so invalid
// values are rejected during decoding.
func (s *spikeAnomaly) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var params SpikeParams
	if err := unmarshal(&params); err != nil {
		return err
	}

	spike, err := NewSpikeAnomaly(params)
	if err != nil {
		return err
	}

	*s = *spike
	return nil
}

// NewSpikeAnomaly returns a spike anomaly with the requested parameters,
// checking for invalid values.
func NewSpikeAnomaly(params SpikeParams) (*spikeAnomaly, error) {
	s := &spikeAnomaly{}

	if err := s.SetStartDelay(params.StartDelay); err != nil {
		return nil, err
	}
	if err := s.SetProbability(params.Probability); err != nil {
		return nil, err
	}
	if err := s.SetMagFunctionByName(params.MagFuncName); err != nil {
		return nil, err
	}
	if err := s.SetProbFunctionByName(params.ProbFuncName); err != nil {
		return nil, err
	}
	if err := s.SetSpikeSign(params.SpikeSign); err != nil {
		return nil, err
	}
	if err := s.SetDuration(params.Duration); err != nil {
		return nil, err
	}

	s.typeName = "spike"
	s.Magnitude = params.Magnitude
	s.VaryMagnitude = params.VaryMagnitude
	s.Repeats = params.Repeats
	s.Off = params.Off

	return s, nil
}

// stepAnomaly returns the change in signal caused by the spike anomaly this
// timestep.
func (s *spikeAnomaly) stepAnomaly(r *rand.Rand, Ts float64) float64 {
	if s.Off {
		return 0.0
	}

	s.isAnomalyActive = s.CheckAnomalyActive(Ts)
	if !s.isAnomalyActive {
		s.startDelayIndex += 1
		return 0.0
	}

	s.elapsedActivatedTime = float64(s.elapsedActivatedIndex) * Ts
	s.elapsedActivatedIndex += 1

	// No spike if the probability is not met
	if r.Float64() > s.fetchProbability() {
		s.isAnomalyActive = false
		return 0.0
	}
	s.isAnomalyActive = true

	delta := s.Magnitude
	if s.magFunction != nil {
		delta = s.magFunction(s.elapsedActivatedTime, s.Magnitude, s.duration)
	}
	delta *= s.getSign(r)
	if s.VaryMagnitude {
		delta *= r.NormFloat64()
	}

	// Burst complete: reset indices and count the repeat
	if s.elapsedActivatedIndex >= int(s.duration/Ts)-1 {
		s.elapsedActivatedIndex = 0
		s.startDelayIndex = 0
		s.countRepeats += 1
	}

	return delta
}

// fetchProbability returns the spike probability for this timestep, from the
// probability function if one is set. Relies on elapsedActivatedTime being up
// to date.
func (s *spikeAnomaly) fetchProbability() float64 {
	if s.probFunction == nil {
		return s.probability
	}

	// Take positive values only
	return math.Abs(s.probFunction(s.elapsedActivatedTime, s.probability, s.duration))
}

// getSign returns -1.0 or +1.0 with a bias set by spikeSign. At spikeSign = 0
// both are equally likely.
func (s *spikeAnomaly) getSign(r *rand.Rand) float64 {
	if r.Float64()*2-1 > s.spikeSign {
		return -1.0
	}
	return 1.0
}

// SetDuration sets the duration of each spike burst in seconds. duration = 0
// means a continuous burst, which is incompatible with a magnitude function.
func (s *spikeAnomaly) SetDuration(duration float64) error {
	if duration < 0 {
		return errors.New("duration must be positive value")
	}
	if duration == 0 {
		if s.magFunction != nil {
			return errors.New("duration must be greater than 0 when using a magnitude function")
		}
		duration = -1.0 // continuous burst
	}
	s.duration = duration
	return nil
}

// SetProbability sets the per-timestep spike probability if probability >= 0.
func (s *spikeAnomaly) SetProbability(probability float64) error {
	if probability < 0 {
		return errors.New("probability must be greater than or equal to 0")
	}

	s.probability = probability
	return nil
}

// SetSpikeSign sets the sign bias, between -1 and 1.
func (s *spikeAnomaly) SetSpikeSign(spikeSign float64) error {
	if spikeSign < -1.0 || spikeSign > 1.0 {
		return errors.New("spike sign must be between -1 and 1")
	}
	s.spikeSign = spikeSign
	return nil
}

// SetMagFunctionByName selects the magnitude shaping function.
func (s *spikeAnomaly) SetMagFunctionByName(name string) error {
	return s.setFunctionByName(name, &s.magFuncName, &s.magFunction)
}

// SetProbFunctionByName selects the probability shaping function.
func (s *spikeAnomaly) SetProbFunctionByName(name string) error {
	return s.setFunctionByName(name, &s.probFuncName, &s.probFunction)
}

func (s *spikeAnomaly) TypeAsString() string {
	return s.typeName
}

func (s *spikeAnomaly) GetProbability() float64 {
	return s.probability
}

func (s *spikeAnomaly) GetSpikeSign() float64 {
	return s.spikeSign
}
