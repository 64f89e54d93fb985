package anomaly

import (
	"errors"

	"github.com/fluxtrace/generator/mathfuncs"
)

// AnomalyBase carries the scheduling state shared by all anomaly types:
// a start delay, a burst duration, and a repeat count.
type AnomalyBase struct {
	// Private fields below have setters for invalid value checking
	typeName   string  // the type of anomaly
	startDelay float64 // seconds before the anomaly bursts begin (and between repeats)
	duration   float64 // duration of each burst in seconds
	Repeats    uint64  // number of times bursts repeat, 0 for infinite
	Off        bool    // true: anomaly deactivated, false: activated

	// internal state
	isAnomalyActive       bool    // whether the anomaly is modulating the trace this timestep
	startDelayIndex       int     // startDelay converted to time steps, tracks the delay between repeats
	elapsedActivatedIndex int     // time steps since the start of the active burst
	elapsedActivatedTime  float64 // seconds since the start of the active burst
	countRepeats          uint64  // number of completed bursts
}

// Returns the type of anomaly as a string.
func (a *AnomalyBase) GetTypeAsString() string {
	return a.typeName
}

// Returns the start delay of anomaly bursts in seconds.
func (a *AnomalyBase) GetStartDelay() float64 {
	return a.startDelay
}

// Returns the duration of each anomaly burst in seconds.
func (a *AnomalyBase) GetDuration() float64 {
	return a.duration
}

// Returns whether the anomaly is actively modulating the trace this timestep.
func (a *AnomalyBase) GetIsAnomalyActive() bool {
	return a.isAnomalyActive
}

// Returns the number of completed bursts so far.
func (a *AnomalyBase) GetCountRepeats() uint64 {
	return a.countRepeats
}

// Sets the start time of anomaly bursts in seconds if delay >= 0.
func (a *AnomalyBase) SetStartDelay(startDelay float64) error {
	if startDelay < 0 {
		return errors.New("startDelay must be greater than or equal to 0")
	}

	a.startDelay = startDelay
	return nil
}

// CheckAnomalyActive returns whether the anomaly should be active this
// timestep. This is true if enough time has elapsed for the burst to start
// and the anomaly has not yet completed all repetitions.
func (a *AnomalyBase) CheckAnomalyActive(Ts float64) bool {
	moreRepeatsAllowed := a.countRepeats < a.Repeats || a.Repeats == 0 // 0 means infinite
	if !moreRepeatsAllowed {
		a.Off = true // all repetitions done, save future computation
		return false
	}

	return a.startDelayIndex >= int(a.startDelay/Ts)-1
}

// setFunctionByName resolves a mathfuncs function name and stores both the
// name and the function through the given pointers. An empty name clears both.
func (a *AnomalyBase) setFunctionByName(name string, funcName *string, funcVar *mathfuncs.Function) error {
	if name == "" {
		*funcName = name
		*funcVar = nil
		return nil
	}

	f, err := mathfuncs.FromName(name)
	if err != nil {
		return err
	}
	*funcVar = f
	*funcName = name
	return nil
}
