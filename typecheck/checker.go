package typecheck

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/netip"
	"reflect"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrTypeConversion  = errors.New("type conversion failed")
	ErrUnknownTypecode = errors.New("unknown typecode")
)

// FloatType selects the Go representation of real numbers.
type FloatType int

const (
	Float64 FloatType = iota // float64
	Decimal                  // github.com/shopspring/decimal.Decimal
)

var floatTypeNames = map[FloatType]string{Float64: "float64", Decimal: "decimal"}

// String returns the float type name.
func (ft FloatType) String() string {
	if name, ok := floatTypeNames[ft]; ok {
		return name
	}
	return fmt.Sprintf("FloatType(%d)", int(ft))
}

// MarshalText implements encoding.TextMarshaler.
func (ft FloatType) MarshalText() ([]byte, error) { return []byte(ft.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (ft *FloatType) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, name := range floatTypeNames {
		if name == s {
			*ft = k
			return nil
		}
	}
	return fmt.Errorf("unknown float type %q", string(text))
}

// Option configures a Checker.
type Option func(*params)

type params struct {
	floatType FloatType
}

// WithFloatType sets the representation produced for real numbers.
func WithFloatType(ft FloatType) Option {
	return func(p *params) { p.floatType = ft }
}

type rule func(v any, level StrictLevel, p params) (any, error)

var rules = map[Typecode]rule{
	None:       toNone,
	Integer:    toInteger,
	RealNumber: toRealNumber,
	String:     toString,
	NullString: toNullString,
	DateTime:   toDateTime,
	Infinity:   toInfinity,
	NaN:        toNaN,
	Bool:       toBool,
	IPAddress:  toIPAddress,
	List:       toList,
	Dictionary: toDictionary,
}

// Checker tests whether one value is of one type at a given strictness and
// converts it.
type Checker struct {
	typecode Typecode
	value    any
	level    StrictLevel
	params   params
}

// New returns a Checker for value against typecode tc.
func New(tc Typecode, value any, level StrictLevel, opts ...Option) Checker {
	c := Checker{typecode: tc, value: value, level: level}
	for _, opt := range opts {
		opt(&c.params)
	}
	return c
}

// Typecode returns the type the checker tests for.
func (c Checker) Typecode() Typecode { return c.typecode }

// Convert returns the value converted to the checker's type. It fails with
// ErrTypeConversion when the value is not of that type at the strict level.
func (c Checker) Convert() (any, error) {
	r, ok := rules[c.typecode]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %d", ErrTypeConversion, ErrUnknownTypecode, uint16(c.typecode))
	}
	return r(c.value, c.level, c.params)
}

// IsType reports whether Convert succeeds.
func (c Checker) IsType() bool {
	_, err := c.Convert()
	return err == nil
}

// TryConvert returns the converted value, or nil when conversion fails.
func (c Checker) TryConvert() any {
	v, err := c.Convert()
	if err != nil {
		return nil
	}
	return v
}

func conversionError(v any, tc Typecode, level StrictLevel) error {
	return fmt.Errorf("%w: %v (%T) is not %s at strict level %d", ErrTypeConversion, v, v, tc, level)
}

// normalize maps the many Go spellings of a kind onto one: integers become
// int64 (or uint64 above MaxInt64), float32 becomes float64, net.IP becomes
// netip.Addr.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x)
	case net.IP:
		if addr, ok := netip.AddrFromSlice(x); ok {
			return addr.Unmap()
		}
		return x
	}
	return v
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return u
	}
	return int64(u)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func toNone(v any, level StrictLevel, _ params) (any, error) {
	if isNil(v) {
		return nil, nil
	}
	return nil, conversionError(v, None, level)
}
