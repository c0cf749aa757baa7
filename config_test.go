package dataproperty_test

import (
	"strings"
	"testing"

	"github.com/bjaus/dataproperty"
	"github.com/bjaus/dataproperty/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := dataproperty.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, dataproperty.MatrixTrim, cfg.MatrixFormatting)
	assert.Equal(t, 1, cfg.EastAsianAmbiguousWidth)
	assert.Equal(t, dataproperty.DefaultDatetimeFormat, cfg.DatetimeFormat)
	assert.Equal(t, dataproperty.DefaultTabLength, cfg.Preprocessor.TabLength)
	assert.Equal(t, typecheck.StrictMax, cfg.StrictLevelMap[typecheck.DateTime])
	assert.Equal(t, typecheck.StrictLevel(1), cfg.StrictLevelMap[typecheck.Integer])
	assert.Equal(t, typecheck.StrictMin, cfg.StrictLevelMap[typecheck.String])
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	doc := `
headers: [id, price, note]
default_type_hint: none
column_type_hints: [none, real_number]
strict_level_map:
  BOOL: 0
float_type: decimal
datetime_format: "2006-01-02"
preprocessor:
  strip_str: " "
  replace_tabs_with_spaces: true
  tab_length: 4
  line_break_handling: replace
  line_break_repl: " / "
  escape_formula_injection: true
strip_str_header: "*"
min_column_width: 3
format_flags_list: [none, thousand_separator]
east_asian_ambiguous_width: 2
type_value_map:
  NONE: "null"
quoting_flags:
  STRING: true
matrix_formatting: fill_none
max_workers: 2
max_precision: 4
disable_float_formatting: true
`
	cfg, err := dataproperty.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "price", "note"}, cfg.Headers)
	assert.Equal(t, []typecheck.Typecode{typecheck.None, typecheck.RealNumber}, cfg.ColumnTypeHints)
	assert.Equal(t, typecheck.StrictMin, cfg.StrictLevelMap[typecheck.Bool])
	assert.Equal(t, typecheck.StrictMax, cfg.StrictLevelMap[typecheck.DateTime])
	assert.Equal(t, typecheck.Decimal, cfg.FloatType)
	assert.Equal(t, "2006-01-02", cfg.DatetimeFormat)
	assert.Equal(t, " ", cfg.Preprocessor.StripStr)
	assert.True(t, cfg.Preprocessor.ReplaceTabsWithSpaces)
	assert.Equal(t, 4, cfg.Preprocessor.TabLength)
	assert.Equal(t, dataproperty.LineBreakReplace, cfg.Preprocessor.LineBreakHandling)
	assert.Equal(t, " / ", cfg.Preprocessor.LineBreakRepl)
	assert.True(t, cfg.Preprocessor.EscapeFormulaInjection)
	assert.Equal(t, "*", cfg.StripStrHeader)
	assert.Equal(t, 3, cfg.MinColumnWidth)
	assert.Equal(t, []dataproperty.FormatFlag{dataproperty.FormatFlagNone, dataproperty.FormatFlagThousandSeparator}, cfg.FormatFlagsList)
	assert.Equal(t, 2, cfg.EastAsianAmbiguousWidth)
	assert.Equal(t, "null", cfg.TypeValueMap[typecheck.None])
	assert.True(t, cfg.QuotingFlags[typecheck.String])
	assert.Equal(t, dataproperty.MatrixFillNone, cfg.MatrixFormatting)
	assert.Equal(t, 2, cfg.MaxWorkers)
	require.NotNil(t, cfg.MaxPrecision)
	assert.Equal(t, 4, *cfg.MaxPrecision)
	assert.True(t, cfg.DisableFloatFormatting)

	_, err = dataproperty.NewExtractor(cfg)
	assert.NoError(t, err)
}

func TestLoadConfigEmpty(t *testing.T) {
	t.Parallel()
	cfg, err := dataproperty.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, dataproperty.DefaultConfig().Preprocessor, cfg.Preprocessor)
	assert.Equal(t, dataproperty.MatrixTrim, cfg.MatrixFormatting)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"unknown key":        "colour: red\n",
		"unknown typecode":   "default_type_hint: float\n",
		"unknown formatting": "matrix_formatting: pad\n",
		"bad width":          "east_asian_ambiguous_width: 3\n",
		"bad tab length":     "preprocessor:\n  replace_tabs_with_spaces: true\n  tab_length: 0\n",
		"bad strict level":   "strict_level_map:\n  INTEGER: 101\n",
		"not yaml":           "headers: [a, b\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := dataproperty.LoadConfig(strings.NewReader(doc))
			assert.ErrorIs(t, err, dataproperty.ErrInvalidConfiguration)
		})
	}
}
