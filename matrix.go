package dataproperty

import (
	"fmt"
	"strings"
)

// MatrixFormatting resolves rows of differing lengths.
type MatrixFormatting int

const (
	MatrixTrim          MatrixFormatting = iota // truncate every row to the shortest
	MatrixException                             // fail with ErrNonUniformMatrix
	MatrixFillNone                              // pad every row with nil to the longest row or header
	MatrixHeaderAligned                         // trim or pad every row to the header length
)

var matrixFormattingNames = map[MatrixFormatting]string{
	MatrixTrim:          "trim",
	MatrixException:     "exception",
	MatrixFillNone:      "fill_none",
	MatrixHeaderAligned: "header_aligned",
}

func (m MatrixFormatting) String() string {
	if name, ok := matrixFormattingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MatrixFormatting(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MatrixFormatting) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MatrixFormatting) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, name := range matrixFormattingNames {
		if name == s {
			*m = k
			return nil
		}
	}
	return invalidConfig("unknown matrix formatting %q", string(text))
}

func (m MatrixFormatting) validate() error {
	if _, ok := matrixFormattingNames[m]; !ok {
		return invalidConfig("unknown matrix formatting %d", int(m))
	}
	return nil
}

// StripMatrix returns a copy of matrix whose rows all have the same
// length, chosen by mf. headerLen is the number of headers, zero when
// there are none. The input is not modified.
func StripMatrix(matrix [][]any, headerLen int, mf MatrixFormatting) ([][]any, error) {
	if err := mf.validate(); err != nil {
		return nil, err
	}
	if len(matrix) == 0 {
		return [][]any{}, nil
	}

	minLen, maxLen := len(matrix[0]), len(matrix[0])
	for _, row := range matrix[1:] {
		minLen = min(minLen, len(row))
		maxLen = max(maxLen, len(row))
	}

	var width int
	switch mf {
	case MatrixException:
		if minLen != maxLen {
			return nil, fmt.Errorf("%w: row lengths range from %d to %d", ErrNonUniformMatrix, minLen, maxLen)
		}
		width = minLen
	case MatrixTrim:
		width = minLen
	case MatrixFillNone:
		width = max(headerLen, maxLen)
	case MatrixHeaderAligned:
		width = maxLen
		if headerLen > 0 {
			width = headerLen
		}
	}
	if minLen != maxLen || width != maxLen {
		log().Debug("normalizing matrix", "formatting", mf, "min", minLen, "max", maxLen, "width", width)
	}

	out := make([][]any, len(matrix))
	for i, row := range matrix {
		out[i] = make([]any, width)
		copy(out[i], row)
	}
	return out, nil
}
