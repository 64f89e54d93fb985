// Package anomaly injects deliberate artifacts into computed traces. The
// rendering QA layer uses traces with known spikes and drifts to confirm that
// the visual cross-check actually catches a mismatch between animation and
// physics. Anomalies are stepped once per trace sample and return the change
// in signal they cause at that step.
package anomaly

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// Container is a collection of named anomalies.
type Container map[string]AnomalyInterface

// AnomalyInterface is implemented by all anomaly types (trend, spike).
type AnomalyInterface interface {
	UnmarshalYAML(unmarshal func(interface{}) error) error // decodes an entry into the concrete type
	TypeAsString() string                                  // the anomaly type name
	GetIsAnomalyActive() bool                              // whether the anomaly is active this timestep
	GetDuration() float64                                  // duration of each anomaly burst in seconds
	GetStartDelay() float64                                // delay before anomalies begin in seconds
	stepAnomaly(r *rand.Rand, Ts float64) float64          // advances internal state, returns the signal delta
}

// newAnomalyOfType returns an empty anomaly of the named type.
func newAnomalyOfType(typeName string) (AnomalyInterface, error) {
	switch typeName {
	case "trend":
		return &trendAnomaly{}, nil
	case "spike":
		return &spikeAnomaly{}, nil
	default:
		return nil, fmt.Errorf("unknown anomaly type: %s", typeName)
	}
}

// UnmarshalYAML decodes each container entry into the concrete anomaly type
// selected by its type field.
func (c *Container) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if *c == nil {
		*c = make(Container, len(raw))
	}
	for key, value := range raw {
		typeName, _ := value["type"].(string)
		entry, err := newAnomalyOfType(typeName)
		if err != nil {
			return err
		}

		// Round-trip the entry through YAML so the concrete type's own
		// unmarshalling and validation run.
		valueYAML, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(valueYAML, entry); err != nil {
			return err
		}

		(*c)[key] = entry
	}

	return nil
}

// StepAll steps every anomaly in the container and returns the sum of their
// effects this timestep. Anomalies are stepped in sorted key order so they
// consume draws from a shared random source in a fixed sequence, keeping
// seeded runs reproducible. Ts is the sampling period of the trace in seconds.
func (c Container) StepAll(r *rand.Rand, Ts float64) float64 {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	value := 0.0
	for _, key := range keys {
		value += c[key].stepAnomaly(r, Ts)
	}
	return value
}

// AddAnomaly adds an anomaly to the container under a fresh UUID key and
// returns the UUID.
func (c *Container) AddAnomaly(anomaly AnomalyInterface) uuid.UUID {
	id := uuid.New()
	if *c == nil {
		*c = make(Container)
	}
	(*c)[id.String()] = anomaly
	return id
}
