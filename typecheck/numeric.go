package typecheck

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// toInteger accepts native integers at every level, unsigned ones above
// MaxInt64 included. Level 1 also accepts
// integral floats and integer strings; level 0 truncates any finite number
// or numeric string.
func toInteger(v any, level StrictLevel, _ params) (any, error) {
	switch x := normalize(v).(type) {
	case int64:
		return x, nil
	case uint64:
		return x, nil
	case float64:
		if level >= strict || math.IsNaN(x) || math.IsInf(x, 0) {
			break
		}
		if level >= 1 && x != math.Trunc(x) {
			break
		}
		if x < math.MinInt64 || x >= math.MaxInt64 {
			break
		}
		return int64(x), nil
	case decimal.Decimal:
		if level >= strict || (level >= 1 && !x.IsInteger()) {
			break
		}
		if i := x.Truncate(0).BigInt(); i.IsInt64() {
			return i.Int64(), nil
		}
	case string:
		if level >= strict {
			break
		}
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, nil
		}
		if level >= 1 {
			break
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			break
		}
		if i := d.Truncate(0).BigInt(); i.IsInt64() {
			return i.Int64(), nil
		}
	}
	return nil, conversionError(v, Integer, level)
}

// toRealNumber accepts finite floats and decimals at every level. Level 1
// also accepts numeric strings that are not integers; level 0 accepts any
// finite number or numeric string.
func toRealNumber(v any, level StrictLevel, p params) (any, error) {
	switch x := normalize(v).(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			break
		}
		if p.floatType == Decimal {
			return decimal.NewFromFloat(x), nil
		}
		return x, nil
	case decimal.Decimal:
		if p.floatType == Decimal {
			return x, nil
		}
		return x.InexactFloat64(), nil
	case int64:
		if level >= 1 {
			break
		}
		if p.floatType == Decimal {
			return decimal.NewFromInt(x), nil
		}
		return float64(x), nil
	case uint64:
		if level >= 1 {
			break
		}
		if p.floatType == Decimal {
			return decimal.RequireFromString(strconv.FormatUint(x, 10)), nil
		}
		return float64(x), nil
	case string:
		if level >= strict {
			break
		}
		s := strings.TrimSpace(x)
		if level >= 1 {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				break
			}
			if _, err := strconv.ParseUint(s, 10, 64); err == nil {
				break
			}
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			break
		}
		if p.floatType == Decimal {
			return d, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			break
		}
		return f, nil
	}
	return nil, conversionError(v, RealNumber, level)
}

var infinityWords = map[string]float64{
	"inf":       math.Inf(1),
	"+inf":      math.Inf(1),
	"infinity":  math.Inf(1),
	"+infinity": math.Inf(1),
	"-inf":      math.Inf(-1),
	"-infinity": math.Inf(-1),
}

func toInfinity(v any, level StrictLevel, _ params) (any, error) {
	switch x := normalize(v).(type) {
	case float64:
		if math.IsInf(x, 0) {
			return x, nil
		}
	case string:
		if level >= 1 {
			break
		}
		if f, ok := infinityWords[strings.ToLower(strings.TrimSpace(x))]; ok {
			return f, nil
		}
	}
	return nil, conversionError(v, Infinity, level)
}

func toNaN(v any, level StrictLevel, _ params) (any, error) {
	switch x := normalize(v).(type) {
	case float64:
		if math.IsNaN(x) {
			return x, nil
		}
	case string:
		if level >= 1 {
			break
		}
		if strings.EqualFold(strings.TrimSpace(x), "nan") {
			return math.NaN(), nil
		}
	}
	return nil, conversionError(v, NaN, level)
}
