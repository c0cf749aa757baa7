package typecheck

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// toList accepts slices and arrays at every level. Below the strict level it
// also reads flow sequences such as "[1, 2]"; level 0 reads any YAML
// sequence.
func toList(v any, level StrictLevel, _ params) (any, error) {
	if s, ok := v.(string); ok {
		if level >= strict {
			return nil, conversionError(v, List, level)
		}
		trimmed := strings.TrimSpace(s)
		if level > StrictMin && !strings.HasPrefix(trimmed, "[") {
			return nil, conversionError(v, List, level)
		}
		var out []any
		if err := yaml.Unmarshal([]byte(trimmed), &out); err != nil || out == nil {
			return nil, conversionError(v, List, level)
		}
		return out, nil
	}
	if isNil(v) {
		return nil, conversionError(v, List, level)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		if out, ok := v.([]any); ok {
			return out, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, conversionError(v, List, level)
}

// toDictionary accepts maps at every level. Below the strict level it also
// reads flow mappings such as "{a: 1}"; level 0 reads any YAML mapping.
func toDictionary(v any, level StrictLevel, _ params) (any, error) {
	if s, ok := v.(string); ok {
		if level >= strict {
			return nil, conversionError(v, Dictionary, level)
		}
		trimmed := strings.TrimSpace(s)
		if level > StrictMin && !strings.HasPrefix(trimmed, "{") {
			return nil, conversionError(v, Dictionary, level)
		}
		var out map[string]any
		if err := yaml.Unmarshal([]byte(trimmed), &out); err != nil || out == nil {
			return nil, conversionError(v, Dictionary, level)
		}
		return out, nil
	}
	if isNil(v) {
		return nil, conversionError(v, Dictionary, level)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, conversionError(v, Dictionary, level)
	}
	if out, ok := v.(map[string]any); ok {
		return out, nil
	}
	if rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, nil
}
