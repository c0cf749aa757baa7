package dataproperty

import (
	"html"
	"strings"
	"time"

	"github.com/bjaus/dataproperty/typecheck"
)

// TransFunc transforms a raw value before type inference.
type TransFunc func(any) any

// converter applies value substitution, datetime formatting, quoting and
// HTML escaping to an inferred cell.
type converter struct {
	typeValueMap      map[typecheck.Typecode]any
	quotingFlags      map[typecheck.Typecode]bool
	datetimeFormatter func(time.Time) string
	escapeHTML        bool
	cell              CellConfig
}

func (cv converter) convert(dp *DataProperty) (*DataProperty, error) {
	if v, ok := cv.substitute(dp); ok {
		return cv.recreate(v)
	}
	s := dp.String()
	if cv.quotingFlags[dp.Typecode()] {
		return cv.recreate(quote(s))
	}
	if cv.escapeHTML && !isText(dp.Typecode()) {
		if escaped := html.EscapeString(s); escaped != s {
			return cv.recreate(escaped)
		}
	}
	return dp, nil
}

// substitute returns the replacement for dp from the type value map, or
// the formatted time for DATETIME cells when a formatter is set.
func (cv converter) substitute(dp *DataProperty) (any, bool) {
	tc := dp.Typecode()
	if v, ok := cv.typeValueMap[tc]; ok {
		if s, isStr := v.(string); isStr && cv.quotingFlags[tc] {
			return quote(s), true
		}
		return v, true
	}
	if tc == typecheck.DateTime && cv.datetimeFormatter != nil {
		if t, ok := dp.Data().(time.Time); ok {
			s := cv.datetimeFormatter(t)
			if cv.quotingFlags[tc] {
				s = quote(s)
			}
			return s, true
		}
	}
	return nil, false
}

func (cv converter) recreate(v any) (*DataProperty, error) {
	cfg := cv.cell
	cfg.TypeHint = typecheck.None
	cfg.Preprocessor = Preprocessor{}
	return NewDataProperty(v, cfg)
}

// isText reports whether cells of tc were strings the preprocessor already
// escaped.
func isText(tc typecheck.Typecode) bool {
	return tc == typecheck.String || tc == typecheck.NullString
}

func quote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}
