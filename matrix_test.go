package dataproperty_test

import (
	"testing"

	"github.com/bjaus/dataproperty"
	"github.com/bjaus/dataproperty/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripMatrix(t *testing.T) {
	t.Parallel()
	matrix := [][]any{{1, 2, 3}, {4}, {5, 6}}
	tests := map[string]struct {
		mf        dataproperty.MatrixFormatting
		headerLen int
		want      [][]any
	}{
		"trim": {
			mf:   dataproperty.MatrixTrim,
			want: [][]any{{1}, {4}, {5}},
		},
		"fill none": {
			mf:   dataproperty.MatrixFillNone,
			want: [][]any{{1, 2, 3}, {4, nil, nil}, {5, 6, nil}},
		},
		"fill none to header": {
			mf:        dataproperty.MatrixFillNone,
			headerLen: 4,
			want:      [][]any{{1, 2, 3, nil}, {4, nil, nil, nil}, {5, 6, nil, nil}},
		},
		"header aligned": {
			mf:        dataproperty.MatrixHeaderAligned,
			headerLen: 2,
			want:      [][]any{{1, 2}, {4, nil}, {5, 6}},
		},
		"header aligned without header": {
			mf:   dataproperty.MatrixHeaderAligned,
			want: [][]any{{1, 2, 3}, {4, nil, nil}, {5, 6, nil}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := dataproperty.StripMatrix(matrix, tt.headerLen, tt.mf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripMatrixDoesNotModifyInput(t *testing.T) {
	t.Parallel()
	matrix := [][]any{{1, 2}, {3}}
	_, err := dataproperty.StripMatrix(matrix, 0, dataproperty.MatrixFillNone)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{1, 2}, {3}}, matrix)
}

func TestStripMatrixException(t *testing.T) {
	t.Parallel()
	_, err := dataproperty.StripMatrix([][]any{{1, 2}, {3}}, 0, dataproperty.MatrixException)
	assert.ErrorIs(t, err, dataproperty.ErrNonUniformMatrix)

	got, err := dataproperty.StripMatrix([][]any{{1, 2}, {3, 4}}, 5, dataproperty.MatrixException)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{1, 2}, {3, 4}}, got)
}

func TestStripMatrixInvalidFormatting(t *testing.T) {
	t.Parallel()
	_, err := dataproperty.StripMatrix(nil, 0, dataproperty.MatrixFormatting(7))
	assert.ErrorIs(t, err, dataproperty.ErrInvalidConfiguration)
}

func TestMatrixFormattingText(t *testing.T) {
	t.Parallel()
	var mf dataproperty.MatrixFormatting
	require.NoError(t, mf.UnmarshalText([]byte("HEADER_ALIGNED")))
	assert.Equal(t, dataproperty.MatrixHeaderAligned, mf)
	assert.Equal(t, "fill_none", dataproperty.MatrixFillNone.String())
}

func TestAlignmentPad(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		align dataproperty.Alignment
		in    string
		width int
		eaaw  int
		want  string
	}{
		"left":          {align: dataproperty.AlignLeft, in: "ab", width: 4, eaaw: 1, want: "ab  "},
		"right":         {align: dataproperty.AlignRight, in: "ab", width: 4, eaaw: 1, want: "  ab"},
		"center":        {align: dataproperty.AlignCenter, in: "ab", width: 5, eaaw: 1, want: " ab  "},
		"auto":          {align: dataproperty.AlignAuto, in: "ab", width: 3, eaaw: 1, want: "ab "},
		"already wide":  {align: dataproperty.AlignRight, in: "abcdef", width: 3, eaaw: 1, want: "abcdef"},
		"wide chars":    {align: dataproperty.AlignRight, in: "猫", width: 4, eaaw: 1, want: "  猫"},
		"ambiguous":     {align: dataproperty.AlignLeft, in: "α", width: 3, eaaw: 2, want: "α "},
		"ansi excluded": {align: dataproperty.AlignLeft, in: "\x1b[1mab\x1b[0m", width: 3, eaaw: 1, want: "\x1b[1mab\x1b[0m "},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.align.Pad(tt.in, tt.width, tt.eaaw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlignOf(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name  string
		align dataproperty.Alignment
	}{
		{"INTEGER", dataproperty.AlignRight},
		{"REAL_NUMBER", dataproperty.AlignRight},
		{"STRING", dataproperty.AlignLeft},
		{"NONE", dataproperty.AlignLeft},
		{"BOOL", dataproperty.AlignLeft},
		{"DATETIME", dataproperty.AlignLeft},
		{"LIST", dataproperty.AlignLeft},
		{"DICTIONARY", dataproperty.AlignLeft},
		{"IP_ADDRESS", dataproperty.AlignLeft},
		{"NULL_STRING", dataproperty.AlignLeft},
		{"INFINITY", dataproperty.AlignLeft},
		{"NAN", dataproperty.AlignLeft},
	} {
		code, err := typecheck.ParseTypecode(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.align, dataproperty.AlignOf(code), tc.name)
	}
}
