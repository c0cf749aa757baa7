// Package typecheck implements the primitive type predicates and converters
// used for cell type inference.
//
// Each [Typecode] has one conversion rule. A [Checker] binds a rule to a value
// and a [StrictLevel]; lower levels accept look-alike inputs (the string "1"
// as an Integer), [StrictMax] accepts only values already of the native kind.
package typecheck

import (
	"fmt"
	"strings"
)

// Typecode identifies the kind of a value. Every non-zero code is a distinct
// power of two so that observed codes can be OR-ed into a bitmap.
type Typecode uint16

const (
	None       Typecode = 0
	Integer    Typecode = 1 << 0
	RealNumber Typecode = 1 << 1
	String     Typecode = 1 << 2
	NullString Typecode = 1 << 3
	DateTime   Typecode = 1 << 4
	Infinity   Typecode = 1 << 5
	NaN        Typecode = 1 << 6
	Bool       Typecode = 1 << 7
	IPAddress  Typecode = 1 << 8
	List       Typecode = 1 << 9
	Dictionary Typecode = 1 << 10
)

var typecodeNames = map[Typecode]string{
	None:       "NONE",
	Integer:    "INTEGER",
	RealNumber: "REAL_NUMBER",
	String:     "STRING",
	NullString: "NULL_STRING",
	DateTime:   "DATETIME",
	Infinity:   "INFINITY",
	NaN:        "NAN",
	Bool:       "BOOL",
	IPAddress:  "IP_ADDRESS",
	List:       "LIST",
	Dictionary: "DICTIONARY",
}

var typecodes = []Typecode{
	None, Integer, RealNumber, String, NullString, DateTime,
	Infinity, NaN, Bool, IPAddress, List, Dictionary,
}

// Typecodes returns all twelve typecodes in bit order.
func Typecodes() []Typecode {
	out := make([]Typecode, len(typecodes))
	copy(out, typecodes)
	return out
}

// IsValid reports whether tc is one of the twelve typecodes.
func (tc Typecode) IsValid() bool {
	_, ok := typecodeNames[tc]
	return ok
}

// String returns the upper-case name of the typecode.
func (tc Typecode) String() string {
	if name, ok := typecodeNames[tc]; ok {
		return name
	}
	return fmt.Sprintf("Typecode(%d)", uint16(tc))
}

// ParseTypecode parses a typecode name, case-insensitively.
func ParseTypecode(s string) (Typecode, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, tc := range typecodes {
		if typecodeNames[tc] == want {
			return tc, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownTypecode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (tc Typecode) MarshalText() ([]byte, error) {
	if !tc.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTypecode, uint16(tc))
	}
	return []byte(tc.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (tc *Typecode) UnmarshalText(text []byte) error {
	parsed, err := ParseTypecode(string(text))
	if err != nil {
		return err
	}
	*tc = parsed
	return nil
}
