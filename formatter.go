package dataproperty

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bjaus/dataproperty/mbstr"
	"github.com/bjaus/dataproperty/typecheck"
)

// DefaultDatetimeFormat is the time layout used for DATETIME cells when none
// is configured.
const DefaultDatetimeFormat = "2006-01-02T15:04:05-0700"

// FormatFlag modifies how numbers are rendered.
type FormatFlag int

// Format flags. Flags combine with bitwise OR.
const (
	FormatFlagNone              FormatFlag = 0
	FormatFlagThousandSeparator FormatFlag = 1 << 0
)

var formatFlagNames = map[FormatFlag]string{
	FormatFlagNone:              "none",
	FormatFlagThousandSeparator: "thousand_separator",
}

func (f FormatFlag) String() string {
	if name, ok := formatFlagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FormatFlag(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f FormatFlag) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FormatFlag) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, name := range formatFlagNames {
		if name == s {
			*f = k
			return nil
		}
	}
	return invalidConfig("unknown format flag %q", string(text))
}

var errFormatMismatch = errors.New("format does not apply to value")

// Format is a rendering template for one kind of value.
type Format struct {
	verb      byte // 'v', 'd', 'f', 's', or 0 for a time layout
	precision int  // digits after the point for 'f'; negative means default
	layout    string
	thousands bool
}

const defaultFloatPrecision = 6

// String returns the template in printf notation, or the time layout.
// A thousand separator shows as the ' flag.
func (f Format) String() string {
	if f.verb == 0 {
		return f.layout
	}
	var b strings.Builder
	b.WriteByte('%')
	if f.thousands {
		b.WriteByte('\'')
	}
	if f.verb == 'f' && f.precision >= 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(f.precision))
	}
	b.WriteByte(f.verb)
	return b.String()
}

// Render formats v with the template. It fails when the template does not
// apply to the kind of v.
func (f Format) Render(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if x, ok := v.(float64); ok && f.verb != 's' && f.verb != 0 {
		if s, special := renderSpecialFloat(x); special {
			return s, nil
		}
	}
	switch f.verb {
	case 'v':
		return renderValue(v), nil
	case 'd':
		return f.renderInteger(v)
	case 'f':
		return f.renderFloat(v)
	case 's':
		switch x := v.(type) {
		case string:
			return x, nil
		case []byte, fmt.Stringer:
			return mbstr.String(x), nil
		}
	case 0:
		switch x := v.(type) {
		case time.Time:
			return x.Format(f.layout), nil
		case *time.Time:
			if x != nil {
				return x.Format(f.layout), nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s with %T", errFormatMismatch, f, v)
}

func renderSpecialFloat(x float64) (string, bool) {
	switch {
	case math.IsNaN(x):
		return "NaN", true
	case math.IsInf(x, 1):
		return "Infinity", true
	case math.IsInf(x, -1):
		return "-Infinity", true
	}
	return "", false
}

func renderValue(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(DefaultDatetimeFormat)
	}
	return mbstr.String(v)
}

func (f Format) renderInteger(v any) (string, error) {
	switch x := v.(type) {
	case int64:
		if f.thousands {
			return message.NewPrinter(language.English).Sprintf("%d", x), nil
		}
		return strconv.FormatInt(x, 10), nil
	case uint64:
		if f.thousands {
			return message.NewPrinter(language.English).Sprintf("%d", x), nil
		}
		return strconv.FormatUint(x, 10), nil
	case decimal.Decimal:
		if x.IsInteger() {
			return f.group(x.String()), nil
		}
	}
	return "", fmt.Errorf("%w: %s with %T", errFormatMismatch, f, v)
}

func (f Format) renderFloat(v any) (string, error) {
	prec := f.precision
	if prec < 0 {
		prec = defaultFloatPrecision
	}
	switch x := v.(type) {
	case float64:
		if f.thousands {
			return message.NewPrinter(language.English).Sprintf("%."+strconv.Itoa(prec)+"f", x), nil
		}
		return strconv.FormatFloat(x, 'f', prec, 64), nil
	case decimal.Decimal:
		return f.group(x.StringFixed(int32(prec))), nil
	case int64:
		return f.group(decimal.NewFromInt(x).StringFixed(int32(prec))), nil
	}
	return "", fmt.Errorf("%w: %s with %T", errFormatMismatch, f, v)
}

func (f Format) group(s string) string {
	if !f.thousands {
		return s
	}
	return groupThousands(s)
}

// groupThousands inserts commas every three digits in the integer part of a
// plain decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Formatter builds per-type Formats for one column.
type Formatter struct {
	FormatFlags    FormatFlag
	DatetimeFormat string
	// DisableFloatFormatting renders real numbers with %v instead of a
	// fixed number of decimal places.
	DisableFloatFormatting bool
}

// MakeFormat returns the template for values of type tc. decimalPlaces
// applies to real numbers; a negative value means unknown.
func (f Formatter) MakeFormat(tc typecheck.Typecode, decimalPlaces int) Format {
	thousands := f.FormatFlags&FormatFlagThousandSeparator != 0
	switch tc {
	case typecheck.Integer:
		return Format{verb: 'd', precision: -1, thousands: thousands}
	case typecheck.RealNumber, typecheck.Infinity, typecheck.NaN:
		if f.DisableFloatFormatting {
			return Format{verb: 'v', precision: -1}
		}
		return Format{verb: 'f', precision: decimalPlaces, thousands: thousands}
	case typecheck.DateTime:
		layout := f.DatetimeFormat
		if layout == "" {
			layout = DefaultDatetimeFormat
		}
		return Format{layout: layout, precision: -1}
	case typecheck.String, typecheck.NullString:
		return Format{verb: 's', precision: -1}
	}
	return Format{verb: 'v', precision: -1}
}

// MakeFormatMap returns the template of every typecode.
func (f Formatter) MakeFormatMap(decimalPlaces int) map[typecheck.Typecode]Format {
	m := make(map[typecheck.Typecode]Format, len(typecheck.Typecodes()))
	for _, tc := range typecheck.Typecodes() {
		m[tc] = f.MakeFormat(tc, decimalPlaces)
	}
	return m
}
