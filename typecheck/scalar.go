package typecheck

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func toBool(v any, level StrictLevel, _ params) (any, error) {
	switch x := normalize(v).(type) {
	case bool:
		return x, nil
	case string:
		if level >= strict {
			break
		}
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	case int64:
		if level > StrictMin {
			break
		}
		switch x {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return nil, conversionError(v, Bool, level)
}

// toNullString accepts the empty string; level 0 also accepts strings made
// only of white space.
func toNullString(v any, level StrictLevel, _ params) (any, error) {
	if s, ok := v.(string); ok {
		if s == "" || (level == StrictMin && strings.TrimSpace(s) == "") {
			return "", nil
		}
	}
	return nil, conversionError(v, NullString, level)
}

// toString accepts strings at every level. Level 1 adds valid UTF-8 byte
// slices and fmt.Stringer; level 0 accepts any non-nil value through its
// default formatting.
func toString(v any, level StrictLevel, _ params) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		if level < strict && utf8.Valid(x) {
			return string(x), nil
		}
	case fmt.Stringer:
		if level < strict && !isNil(v) {
			return x.String(), nil
		}
	}
	if level == StrictMin && !isNil(v) {
		return fmt.Sprint(v), nil
	}
	return nil, conversionError(v, String, level)
}
