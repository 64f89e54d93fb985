package anomaly

import (
	"errors"
	"math/rand/v2"

	"github.com/fluxtrace/generator/mathfuncs"
)

// trendAnomaly modulates a trace with a repeated continuous function: a slow
// drift, an oscillation, or any other named mathfuncs shape.
type trendAnomaly struct {
	AnomalyBase

	Magnitude    float64 // magnitude of the trend, default 0
	magFuncName  string  // name of the function that shapes the trend, empty defaults to "linear"
	InvertTrend  bool    // true multiplies the trend by -1.0
	ReverseTrend bool    // true subtracts the trend from Magnitude, mirroring it along the time axis

	// internal state
	magFunction    mathfuncs.Function // set from magFuncName
	periodDuration float64            // period of the shaping function within each burst; 0 defers to duration
}

// TrendParams requests a trend anomaly. Fields map onto trendAnomaly.
type TrendParams struct {
	Repeats    uint64  `yaml:"repeats" mapstructure:"repeats"`
	Off        bool    `yaml:"off" mapstructure:"off"`
	StartDelay float64 `yaml:"start_delay" mapstructure:"start_delay"`
	Duration   float64 `yaml:"duration" mapstructure:"duration"` // seconds per burst, 0 deactivates the anomaly
	Period     float64 `yaml:"period" mapstructure:"period"`     // seconds per function period within a burst, 0 defers to duration

	Magnitude    float64 `yaml:"magnitude" mapstructure:"magnitude"`
	MagFuncName  string  `yaml:"mag_func" mapstructure:"mag_func"`
	InvertTrend  bool    `yaml:"invert" mapstructure:"invert"`
	ReverseTrend bool    `yaml:"reverse" mapstructure:"reverse"`
}

// UnmarshalYAML builds the trend anomaly through NewTrendAnomaly so invalid
// values are rejected during decoding.
func (t *trendAnomaly) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var params TrendParams
	if err := unmarshal(&params); err != nil {
		return err
	}

	trend, err := NewTrendAnomaly(params)
	if err != nil {
		return err
	}

	*t = *trend
	return nil
}

// NewTrendAnomaly returns a trend anomaly with the requested parameters,
// checking for invalid values.
func NewTrendAnomaly(params TrendParams) (*trendAnomaly, error) {
	t := &trendAnomaly{}

	// Fields that can never be invalid are set directly
	t.typeName = "trend"
	t.Magnitude = params.Magnitude
	t.Repeats = params.Repeats
	t.InvertTrend = params.InvertTrend
	t.ReverseTrend = params.ReverseTrend
	t.Off = params.Off // may be overridden by SetDuration below

	if err := t.SetDuration(params.Duration); err != nil {
		return nil, err
	}
	if err := t.SetStartDelay(params.StartDelay); err != nil {
		return nil, err
	}
	if err := t.SetMagFunctionByName(params.MagFuncName); err != nil {
		return nil, err
	}
	if err := t.SetPeriod(params.Period); err != nil {
		return nil, err
	}

	return t, nil
}

// stepAnomaly returns the change in signal caused by the trend this timestep,
// tracking burst progress and the delay between bursts. Ts is the sampling
// period of the trace.
func (t *trendAnomaly) stepAnomaly(_ *rand.Rand, Ts float64) float64 {
	if t.Off {
		return 0.0
	}

	t.isAnomalyActive = t.CheckAnomalyActive(Ts)
	if !t.isAnomalyActive {
		t.startDelayIndex += 1
		return 0.0
	}

	// Log the current time before advancing the index
	t.elapsedActivatedTime = float64(t.elapsedActivatedIndex) * Ts
	t.elapsedActivatedIndex += 1

	magnitude := t.magFunction(t.elapsedActivatedTime, t.Magnitude, t.periodDuration)

	var delta float64
	switch {
	case t.ReverseTrend && t.InvertTrend:
		delta = -(t.Magnitude - magnitude)
	case t.ReverseTrend:
		delta = t.Magnitude - magnitude
	case t.InvertTrend:
		delta = -magnitude
	default:
		delta = magnitude
	}

	// Burst complete: reset indices and count the repeat
	if t.elapsedActivatedIndex == int(t.duration/Ts) {
		t.elapsedActivatedIndex = 0
		t.startDelayIndex = 0
		t.countRepeats += 1
	}

	return delta
}

// SetDuration sets the duration of each burst in seconds if duration > 0.
// duration = 0 deactivates the anomaly.
func (t *trendAnomaly) SetDuration(duration float64) error {
	if duration < 0 {
		return errors.New("duration must be positive value")
	}
	if duration == 0 {
		t.Off = true
	}
	t.duration = duration
	if t.periodDuration == 0 {
		t.periodDuration = duration
	}
	return nil
}

// SetPeriod sets the period of the shaping function within a burst if
// period >= 0. period = 0 defers to the burst duration.
func (t *trendAnomaly) SetPeriod(period float64) error {
	if period < 0 {
		return errors.New("period must be positive value")
	}
	if period == 0 {
		t.periodDuration = t.duration
		return nil
	}
	t.periodDuration = period
	return nil
}

// SetMagFunctionByName selects the shaping function. An empty name defaults
// to a linear ramp.
func (t *trendAnomaly) SetMagFunctionByName(name string) error {
	if name == "" {
		name = "linear"
	}
	return t.setFunctionByName(name, &t.magFuncName, &t.magFunction)
}

func (t *trendAnomaly) TypeAsString() string {
	return t.typeName
}

func (t *trendAnomaly) GetMagFuncName() string {
	return t.magFuncName
}
