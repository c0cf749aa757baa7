package dataproperty

import (
	"fmt"
	"strings"

	"github.com/bjaus/dataproperty/typecheck"
)

// Alignment controls the horizontal placement of a rendered value.
type Alignment int

// Alignment values.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignAuto
)

var alignmentNames = map[Alignment]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
	AlignAuto:   "auto",
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// alignTable maps typecodes to their default alignment. Unlisted codes are
// left aligned.
var alignTable = map[typecheck.Typecode]Alignment{
	typecheck.Integer:    AlignRight,
	typecheck.RealNumber: AlignRight,
}

// AlignOf returns the default alignment for values of type tc.
func AlignOf(tc typecheck.Typecode) Alignment {
	if a, ok := alignTable[tc]; ok {
		return a
	}
	return AlignLeft
}

// Pad fills s with spaces up to width terminal columns. AlignAuto pads like
// AlignLeft. Strings already at least width wide are returned unchanged.
func (a Alignment) Pad(s string, width, eaaw int) (string, error) {
	w, err := CalcASCIICharWidth(StripANSIEscape(s), eaaw)
	if err != nil {
		return "", err
	}
	pad := width - w
	if pad <= 0 {
		return s, nil
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", pad) + s, nil
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right), nil
	default:
		return s + strings.Repeat(" ", pad), nil
	}
}
