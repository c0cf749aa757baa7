package dataproperty

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/dataproperty/typecheck"
)

// Config is the extractor configuration. The zero value is usable; fields
// left zero take the defaults documented on each field.
type Config struct {
	Headers []string `yaml:"headers"`
	// DefaultTypeHint applies to columns without an entry in
	// ColumnTypeHints. None means infer.
	DefaultTypeHint   typecheck.Typecode     `yaml:"default_type_hint"`
	ColumnTypeHints   []typecheck.Typecode   `yaml:"column_type_hints"`
	StrictLevelMap    StrictLevelMap         `yaml:"strict_level_map"`
	FloatType         typecheck.FloatType    `yaml:"float_type"`
	DatetimeFormat    string                 `yaml:"datetime_format"`
	DatetimeFormatter func(time.Time) string `yaml:"-"`
	Preprocessor      Preprocessor           `yaml:"preprocessor"`
	StripStrHeader    string                 `yaml:"strip_str_header"`
	MinColumnWidth    int                    `yaml:"min_column_width"`
	// FormatFlagsList sets per-column flags; columns past its end use
	// DefaultFormatFlags.
	FormatFlagsList    []FormatFlag `yaml:"format_flags_list"`
	DefaultFormatFlags FormatFlag   `yaml:"default_format_flags"`
	// EastAsianAmbiguousWidth is 1 or 2. Zero means 1.
	EastAsianAmbiguousWidth int `yaml:"east_asian_ambiguous_width"`
	// TypeValueMap replaces cells of a type (typically NONE, INFINITY or
	// NAN) with a literal that is inferred in their place.
	TypeValueMap map[typecheck.Typecode]any  `yaml:"type_value_map"`
	QuotingFlags map[typecheck.Typecode]bool `yaml:"quoting_flags"`
	// TransFuncs run in order on every raw body value before inference.
	TransFuncs       []TransFunc      `yaml:"-"`
	MatrixFormatting MatrixFormatting `yaml:"matrix_formatting"`
	// MaxWorkers bounds concurrent column conversion. Zero or less means
	// the number of CPUs.
	MaxWorkers             int  `yaml:"max_workers"`
	MaxPrecision           *int `yaml:"max_precision"`
	DisableFloatFormatting bool `yaml:"disable_float_formatting"`
}

// DefaultConfig returns the configuration an extractor uses when nothing
// is set.
func DefaultConfig() Config {
	return Config{
		StrictLevelMap:          DefaultStrictLevelMap(),
		DatetimeFormat:          DefaultDatetimeFormat,
		Preprocessor:            NewPreprocessor(),
		EastAsianAmbiguousWidth: 1,
		MatrixFormatting:        MatrixTrim,
	}
}

// LoadConfig reads a YAML configuration over DefaultConfig. Unknown keys
// are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be applied.
func (c Config) Validate() error {
	switch c.EastAsianAmbiguousWidth {
	case 0, 1, 2:
	default:
		return invalidConfig("east asian ambiguous width must be 1 or 2, got %d", c.EastAsianAmbiguousWidth)
	}
	if err := validateTypeHint(c.DefaultTypeHint); err != nil {
		return err
	}
	for i, tc := range c.ColumnTypeHints {
		if err := validateTypeHint(tc); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	for tc, level := range c.StrictLevelMap {
		if !tc.IsValid() {
			return invalidConfig("strict level for unknown type %s", tc)
		}
		if level < typecheck.StrictMin || level > typecheck.StrictMax {
			return invalidConfig("strict level for %s out of range: %d", tc, level)
		}
	}
	if c.MinColumnWidth < 0 {
		return invalidConfig("min column width must not be negative, got %d", c.MinColumnWidth)
	}
	if c.MaxPrecision != nil && *c.MaxPrecision < 0 {
		return invalidConfig("max precision must not be negative, got %d", *c.MaxPrecision)
	}
	if err := c.MatrixFormatting.validate(); err != nil {
		return err
	}
	return c.Preprocessor.Validate()
}

// clone copies the reference fields so that the result shares no mutable
// state with c.
func (c Config) clone() Config {
	c.Headers = slices.Clone(c.Headers)
	c.ColumnTypeHints = slices.Clone(c.ColumnTypeHints)
	c.StrictLevelMap = maps.Clone(c.StrictLevelMap)
	c.FormatFlagsList = slices.Clone(c.FormatFlagsList)
	c.TypeValueMap = maps.Clone(c.TypeValueMap)
	c.QuotingFlags = maps.Clone(c.QuotingFlags)
	c.TransFuncs = slices.Clone(c.TransFuncs)
	if c.MaxPrecision != nil {
		p := *c.MaxPrecision
		c.MaxPrecision = &p
	}
	return c
}

func (c Config) eaaw() int {
	if c.EastAsianAmbiguousWidth == 0 {
		return 1
	}
	return c.EastAsianAmbiguousWidth
}

func (c Config) columnTypeHint(col int) typecheck.Typecode {
	if col < len(c.ColumnTypeHints) && c.ColumnTypeHints[col] != typecheck.None {
		return c.ColumnTypeHints[col]
	}
	return c.DefaultTypeHint
}

func (c Config) formatFlags(col int) FormatFlag {
	if col < len(c.FormatFlagsList) {
		return c.FormatFlagsList[col]
	}
	return c.DefaultFormatFlags
}
