package anomaly

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// GetDecodeHook returns a decode hook that unmarshals anomalies through
// mapstructure. This supports configuration stacks like spf13/viper that use
// mapstructure under the hood.
func GetDecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, entry interface{}) (interface{}, error) {
		if t == reflect.TypeOf((*AnomalyInterface)(nil)).Elem() {
			return createAnomalyFromEntry(entry)
		}
		return entry, nil
	}
}

// createAnomalyFromEntry builds a concrete anomaly from a decoded map based
// on its "type" (or "Type") field.
func createAnomalyFromEntry(entry interface{}) (AnomalyInterface, error) {
	m, ok := entry.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("anomaly entry cannot be parsed to map[string]interface{}: %v", entry)
	}

	// Some config stacks lowercase keys and some do not
	typeStr, ok := m["type"].(string)
	if !ok {
		typeStr, ok = m["Type"].(string)
		if !ok {
			return nil, errors.New("anomaly type field is missing or not a string")
		}
	}

	switch typeStr {
	case "trend":
		var params TrendParams
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		return NewTrendAnomaly(params)
	case "spike":
		var params SpikeParams
		if err := decodeParams(&params, m); err != nil {
			return nil, err
		}
		return NewSpikeAnomaly(params)
	default:
		return nil, fmt.Errorf("unknown anomaly type: %s", typeStr)
	}
}

// decodeParams decodes a map into an anomaly params struct with mapstructure.
func decodeParams[T any](params *T, m map[string]interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.TextUnmarshallerHookFunc(),
		Result:     params,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(m)
}
