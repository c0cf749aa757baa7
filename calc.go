package dataproperty

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

var ansiEscape = regexp.MustCompile(`(\x{9b}|\x1b\[)[0-?]*[ -/]*[@-~]`)

// StripANSIEscape removes ANSI CSI escape sequences from s.
func StripANSIEscape(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

var (
	narrowAmbiguous = newCondition(false)
	wideAmbiguous   = newCondition(true)
)

func newCondition(eastAsian bool) *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = eastAsian
	return c
}

func widthCondition(eaaw int) (*runewidth.Condition, error) {
	switch eaaw {
	case 1:
		return narrowAmbiguous, nil
	case 2:
		return wideAmbiguous, nil
	}
	return nil, invalidConfig("east asian ambiguous width must be 1 or 2, got %d", eaaw)
}

// CalcASCIICharWidth returns the number of terminal columns s occupies.
// Full-width and wide characters count 2, ambiguous characters count eaaw,
// which must be 1 or 2, and every other character counts 1.
func CalcASCIICharWidth(s string, eaaw int) (int, error) {
	cond, err := widthCondition(eaaw)
	if err != nil {
		return 0, err
	}
	return runeColumns(s, cond), nil
}

func runeColumns(s string, cond *runewidth.Condition) int {
	n := 0
	for _, r := range s {
		if w := cond.RuneWidth(r); w > 0 {
			n += w
		} else {
			n++
		}
	}
	return n
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return floatDecimal(x)
	case float32:
		return floatDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int8:
		return decimal.NewFromInt(int64(x)), nil
	case int16:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(x)), nil
	case uint16:
		return decimal.NewFromInt(int64(x)), nil
	case uint32:
		return decimal.NewFromInt(int64(x)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, x)
		}
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %v (%T)", ErrNotANumber, v, v)
}

func floatDecimal(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNotANumber, f)
	}
	return decimal.NewFromFloat(f), nil
}

// IntegerDigits returns the number of digits in the integer part of v.
// Zero, and any value whose magnitude is below one, has one digit.
func IntegerDigits(v any) (int, error) {
	d, err := toDecimal(v)
	if err != nil {
		return 0, err
	}
	abs := d.Abs().Truncate(0)
	if abs.IsZero() {
		return 1, nil
	}
	return len(abs.BigInt().String()), nil
}

// decimalPlaceThresholds caps the decimal places of small magnitudes: the
// first entry with |v| < 10^exp bounds the result to digits.
var decimalPlaceThresholds = []struct {
	exp    int
	digits int
}{
	{-2, 6},
	{-1, 5},
	{0, 4},
	{1, 3},
	{2, 2},
	{3, 1},
}

// DecimalPlaces returns the number of fractional digits of v in positional
// notation. Integers have zero. Reals below 1000 in magnitude are capped by
// a threshold ladder and floored at one, so 5.0 has one place. Larger reals
// report their raw fractional digits, so 1500.0 has none.
func DecimalPlaces(v any) (int, error) {
	if isIntegerKind(v) {
		return 0, nil
	}
	var (
		raw int
		abs float64
	)
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%w: %v", ErrNotANumber, x)
		}
		abs = math.Abs(x)
		raw = fractionalDigits(strconv.FormatFloat(abs, 'f', -1, 64))
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return 0, fmt.Errorf("%w: %v", ErrNotANumber, x)
		}
		abs = math.Abs(float64(x))
		raw = fractionalDigits(strconv.FormatFloat(abs, 'f', -1, 32))
	default:
		d, err := toDecimal(v)
		if err != nil {
			return 0, err
		}
		abs = d.Abs().InexactFloat64()
		if exp := d.Exponent(); exp < 0 {
			raw = int(-exp)
		}
	}
	for _, th := range decimalPlaceThresholds {
		if abs < math.Pow10(th.exp) {
			return max(1, min(th.digits, raw)), nil
		}
	}
	return raw, nil
}

func fractionalDigits(s string) int {
	_, frac, ok := strings.Cut(s, ".")
	if !ok {
		return 0
	}
	return len(frac)
}

func isIntegerKind(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}
