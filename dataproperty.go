package dataproperty

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/bjaus/dataproperty/mbstr"
	"github.com/bjaus/dataproperty/typecheck"
)

// StrictLevelMap sets the strict level each type is inferred at. Types
// missing from the map use the level in DefaultStrictLevelMap.
type StrictLevelMap map[typecheck.Typecode]typecheck.StrictLevel

var defaultStrictLevels = StrictLevelMap{
	typecheck.None:       typecheck.StrictMax,
	typecheck.Bool:       typecheck.StrictMax,
	typecheck.DateTime:   typecheck.StrictMax,
	typecheck.Dictionary: typecheck.StrictMax,
	typecheck.IPAddress:  typecheck.StrictMax,
	typecheck.List:       typecheck.StrictMax,
	typecheck.Integer:    1,
	typecheck.RealNumber: 1,
	typecheck.Infinity:   typecheck.StrictMin,
	typecheck.NaN:        typecheck.StrictMin,
	typecheck.NullString: typecheck.StrictMin,
	typecheck.String:     typecheck.StrictMin,
}

// DefaultStrictLevelMap returns the levels used when none are configured:
// numbers accept numeric strings, structured types accept native values
// only.
func DefaultStrictLevelMap() StrictLevelMap {
	return maps.Clone(defaultStrictLevels)
}

func uniformStrictLevelMap(level typecheck.StrictLevel) StrictLevelMap {
	m := make(StrictLevelMap, len(defaultStrictLevels))
	for _, tc := range typecheck.Typecodes() {
		m[tc] = level
	}
	return m
}

// Level returns the strict level for tc.
func (m StrictLevelMap) Level(tc typecheck.Typecode) typecheck.StrictLevel {
	if l, ok := m[tc]; ok {
		return l
	}
	if l, ok := defaultStrictLevels[tc]; ok {
		return l
	}
	return typecheck.StrictMax
}

func (m StrictLevelMap) resolved() StrictLevelMap {
	out := DefaultStrictLevelMap()
	maps.Copy(out, m)
	return out
}

// inferenceOrder is the order types are tried in when no hint is given.
var inferenceOrder = []typecheck.Typecode{
	typecheck.None,
	typecheck.Integer,
	typecheck.Infinity,
	typecheck.NaN,
	typecheck.IPAddress,
	typecheck.RealNumber,
	typecheck.Bool,
	typecheck.List,
	typecheck.Dictionary,
	typecheck.DateTime,
	typecheck.NullString,
	typecheck.String,
}

// CellConfig controls how a DataProperty is built.
type CellConfig struct {
	// TypeHint forces a type when the value converts to it. None means no
	// hint.
	TypeHint       typecheck.Typecode
	StrictLevelMap StrictLevelMap
	FloatType      typecheck.FloatType
	DatetimeFormat string
	FormatFlags    FormatFlag
	// DisableFloatFormatting renders real numbers with %v.
	DisableFloatFormatting bool
	Preprocessor           Preprocessor
	// EastAsianAmbiguousWidth is 1 or 2. Zero means 1.
	EastAsianAmbiguousWidth int
}

func (c CellConfig) formatter() Formatter {
	return Formatter{
		FormatFlags:            c.FormatFlags,
		DatetimeFormat:         c.DatetimeFormat,
		DisableFloatFormatting: c.DisableFloatFormatting,
	}
}

func (c CellConfig) checkerOptions() []typecheck.Option {
	return []typecheck.Option{typecheck.WithFloatType(c.FloatType)}
}

// DataProperty describes one cell: its inferred type, converted value and
// display metrics. It is immutable.
type DataProperty struct {
	data                any
	typecode            typecheck.Typecode
	integerDigits       int
	decimalPlaces       int
	additionalFormatLen int
	length              int
	asciiCharWidth      int
	format              Format
	noANSI              *DataProperty
}

// NewDataProperty preprocesses data, infers its type and computes its
// metrics. It fails with ErrTypeInferenceFailed when no type accepts the
// value and with ErrInvalidConfiguration for a bad hint or width policy.
func NewDataProperty(data any, cfg CellConfig) (*DataProperty, error) {
	if cfg.EastAsianAmbiguousWidth == 0 {
		cfg.EastAsianAmbiguousWidth = 1
	}
	if _, err := widthCondition(cfg.EastAsianAmbiguousWidth); err != nil {
		return nil, err
	}
	if err := validateTypeHint(cfg.TypeHint); err != nil {
		return nil, err
	}

	processed, noANSI, isStr := cfg.Preprocessor.Preprocess(data)
	dp, err := newDataProperty(processed, cfg)
	if err != nil {
		return nil, err
	}
	if isStr && noANSI != processed {
		shadowCfg := cfg
		shadowCfg.Preprocessor = Preprocessor{}
		shadow, err := newDataProperty(noANSI, shadowCfg)
		if err != nil {
			return nil, err
		}
		dp.noANSI = shadow
		dp.asciiCharWidth = shadow.asciiCharWidth
	}
	return dp, nil
}

func newDataProperty(v any, cfg CellConfig) (*DataProperty, error) {
	tc, data, err := resolveType(v, cfg)
	if err != nil {
		return nil, err
	}
	dp := &DataProperty{
		data:          data,
		typecode:      tc,
		integerDigits: -1,
		decimalPlaces: -1,
		length:        -1,
	}
	if tc == typecheck.Integer || tc == typecheck.RealNumber {
		if n, err := IntegerDigits(data); err == nil {
			dp.integerDigits = n
		}
		if n, err := DecimalPlaces(data); err == nil {
			dp.decimalPlaces = n
		}
	}
	if isNegative(data) {
		dp.additionalFormatLen = 1
	}
	dp.length = lengthOf(tc, data)
	dp.format = cfg.formatter().MakeFormat(tc, dp.decimalPlaces)
	dp.asciiCharWidth = dp.calcWidth(cfg.EastAsianAmbiguousWidth)
	return dp, nil
}

func resolveType(v any, cfg CellConfig) (typecheck.Typecode, any, error) {
	opts := cfg.checkerOptions()
	if cfg.TypeHint != typecheck.None {
		conv, err := typecheck.New(cfg.TypeHint, v, typecheck.StrictMin, opts...).Convert()
		if err == nil && typecheck.New(cfg.TypeHint, conv, typecheck.StrictMax, opts...).IsType() {
			return cfg.TypeHint, conv, nil
		}
	}
	for _, tc := range inferenceOrder {
		conv, err := typecheck.New(tc, v, cfg.StrictLevelMap.Level(tc), opts...).Convert()
		if err == nil {
			return tc, conv, nil
		}
	}
	return typecheck.None, nil, &InferenceError{Value: v, StrictLevelMap: cfg.StrictLevelMap.resolved()}
}

func isNegative(v any) bool {
	switch x := v.(type) {
	case int64:
		return x < 0
	case uint64:
		return false
	case float64:
		return x < 0
	case decimal.Decimal:
		return x.IsNegative()
	}
	return false
}

func lengthOf(tc typecheck.Typecode, v any) int {
	switch tc {
	case typecheck.String:
		if s, ok := v.(string); ok {
			return utf8.RuneCountInString(StripANSIEscape(s))
		}
	case typecheck.List, typecheck.Dictionary:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len()
		}
	}
	return -1
}

func (dp *DataProperty) calcWidth(eaaw int) int {
	switch dp.typecode {
	case typecheck.Integer:
		if dp.integerDigits >= 0 {
			return dp.integerDigits + dp.additionalFormatLen
		}
	case typecheck.RealNumber:
		if dp.integerDigits >= 0 && dp.decimalPlaces >= 0 {
			w := dp.integerDigits + dp.additionalFormatLen
			if dp.decimalPlaces > 0 {
				w += 1 + dp.decimalPlaces
			}
			return w
		}
	}
	cond, _ := widthCondition(eaaw)
	return runeColumns(StripANSIEscape(dp.String()), cond)
}

// Data returns the converted value.
func (dp *DataProperty) Data() any { return dp.data }

// Typecode returns the inferred type.
func (dp *DataProperty) Typecode() typecheck.Typecode { return dp.typecode }

// Align returns the default alignment of the inferred type.
func (dp *DataProperty) Align() Alignment { return AlignOf(dp.typecode) }

// IntegerDigits returns the digits before the decimal point. It is defined
// for INTEGER and REAL_NUMBER cells only.
func (dp *DataProperty) IntegerDigits() (int, bool) {
	return dp.integerDigits, dp.integerDigits >= 0
}

// DecimalPlaces returns the digits after the decimal point. It is defined
// for INTEGER and REAL_NUMBER cells only.
func (dp *DataProperty) DecimalPlaces() (int, bool) {
	return dp.decimalPlaces, dp.decimalPlaces >= 0
}

// AdditionalFormatLen returns the characters rendering adds beyond the
// digits: 1 for a negative number, else 0.
func (dp *DataProperty) AdditionalFormatLen() int { return dp.additionalFormatLen }

// Length returns the character count of a STRING or the element count of
// a LIST or DICTIONARY.
func (dp *DataProperty) Length() (int, bool) { return dp.length, dp.length >= 0 }

// ASCIICharWidth returns the display width, ignoring ANSI escapes.
func (dp *DataProperty) ASCIICharWidth() int { return dp.asciiCharWidth }

// Format returns the rendering template of the cell's own type.
func (dp *DataProperty) Format() Format { return dp.format }

// HasANSIEscape reports whether the value contained ANSI escapes.
func (dp *DataProperty) HasANSIEscape() bool { return dp.noANSI != nil }

// NoANSIEscapeDP returns the property of the value with ANSI escapes
// removed, or nil when it had none.
func (dp *DataProperty) NoANSIEscapeDP() *DataProperty { return dp.noANSI }

// String renders the value with the cell's own template.
func (dp *DataProperty) String() string {
	s, err := dp.format.Render(dp.data)
	if err != nil {
		return mbstr.String(dp.data)
	}
	return s
}

// GoString returns a debug representation of every property.
func (dp *DataProperty) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data=%s, type=%s, align=%s, ascii_width=%d",
		dp.String(), dp.typecode, dp.Align(), dp.asciiCharWidth)
	if n, ok := dp.IntegerDigits(); ok {
		fmt.Fprintf(&b, ", int_digits=%d", n)
	}
	if n, ok := dp.DecimalPlaces(); ok {
		fmt.Fprintf(&b, ", decimal_places=%d", n)
	}
	if dp.additionalFormatLen > 0 {
		fmt.Fprintf(&b, ", extra_len=%d", dp.additionalFormatLen)
	}
	if n, ok := dp.Length(); ok {
		fmt.Fprintf(&b, ", length=%d", n)
	}
	return b.String()
}

// Equal reports whether both cells have the same type and value. NaN cells
// are equal to each other.
func (dp *DataProperty) Equal(other *DataProperty) bool {
	if dp == nil || other == nil {
		return dp == other
	}
	if dp.typecode != other.typecode {
		return false
	}
	if dp.typecode == typecheck.NaN {
		return true
	}
	return valuesEqual(dp.data, other.data)
}

func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || math.IsNaN(x) && math.IsNaN(y))
	}
	return reflect.DeepEqual(a, b)
}
