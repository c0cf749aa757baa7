package dataproperty

import (
	"fmt"
	"maps"
	"math"
	"math/bits"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bjaus/dataproperty/typecheck"
)

// ColumnConfig controls how a ColumnDataProperty aggregates and renders
// its cells.
type ColumnConfig struct {
	ColumnIndex    int
	FloatType      typecheck.FloatType
	MinWidth       int
	FormatFlags    FormatFlag
	DatetimeFormat string
	// MaxPrecision caps the reconciled decimal places when set.
	MaxPrecision           *int
	DisableFloatFormatting bool
	// EastAsianAmbiguousWidth is 1 or 2. Zero means 1.
	EastAsianAmbiguousWidth int
}

// ColumnDataProperty aggregates the cells of one column into a unified
// type, width and rendering template.
//
// Derived values are current after every UpdateBody unless a batch is open:
// between BeginUpdate and EndUpdate they are recomputed only by EndUpdate.
type ColumnDataProperty struct {
	cfg       ColumnConfig
	cond      *runewidth.Condition
	formatter Formatter

	bitmap              typecheck.Typecode
	integerDigits       *MinMaxContainer[int]
	decimalPlaces       *ListContainer[int]
	additionalFormatLen *MinMaxContainer[int]
	headerWidth         int
	bodyWidth           int
	dpList              []*DataProperty
	calculating         bool

	typecode         typecheck.Typecode
	reconciledPlaces int
	formatMap        map[typecheck.Typecode]Format
}

// NewColumnDataProperty returns an empty column.
func NewColumnDataProperty(cfg ColumnConfig) (*ColumnDataProperty, error) {
	if cfg.EastAsianAmbiguousWidth == 0 {
		cfg.EastAsianAmbiguousWidth = 1
	}
	cond, err := widthCondition(cfg.EastAsianAmbiguousWidth)
	if err != nil {
		return nil, err
	}
	if cfg.MinWidth < 0 {
		return nil, invalidConfig("min column width must not be negative, got %d", cfg.MinWidth)
	}
	if cfg.MaxPrecision != nil && *cfg.MaxPrecision < 0 {
		return nil, invalidConfig("max precision must not be negative, got %d", *cfg.MaxPrecision)
	}
	c := &ColumnDataProperty{
		cfg:  cfg,
		cond: cond,
		formatter: Formatter{
			FormatFlags:            cfg.FormatFlags,
			DatetimeFormat:         cfg.DatetimeFormat,
			DisableFloatFormatting: cfg.DisableFloatFormatting,
		},
		integerDigits:       NewMinMaxContainer[int](),
		decimalPlaces:       NewListContainer[int](),
		additionalFormatLen: NewMinMaxContainer[int](),
		bodyWidth:           cfg.MinWidth,
	}
	c.recompute()
	return c, nil
}

// ColumnIndex returns the position of the column.
func (c *ColumnDataProperty) ColumnIndex() int { return c.cfg.ColumnIndex }

// Typecode returns the unified type of the column.
func (c *ColumnDataProperty) Typecode() typecheck.Typecode { return c.typecode }

// TypecodeBitmap returns the OR of every observed cell typecode.
func (c *ColumnDataProperty) TypecodeBitmap() typecheck.Typecode { return c.bitmap }

// Align returns the alignment of the unified type.
func (c *ColumnDataProperty) Align() Alignment { return AlignOf(c.typecode) }

// DecimalPlaces returns the decimal places real numbers are rendered with.
// It is undefined when the column holds no numbers.
func (c *ColumnDataProperty) DecimalPlaces() (int, bool) {
	return c.reconciledPlaces, c.reconciledPlaces >= 0
}

// ASCIICharWidth returns the display width of the column.
func (c *ColumnDataProperty) ASCIICharWidth() int { return max(c.headerWidth, c.bodyWidth) }

// HeaderASCIICharWidth returns the display width of the header.
func (c *ColumnDataProperty) HeaderASCIICharWidth() int { return c.headerWidth }

// BodyASCIICharWidth returns the widest rendered body cell, at least the
// configured minimum.
func (c *ColumnDataProperty) BodyASCIICharWidth() int { return c.bodyWidth }

// MinMaxIntegerDigits returns the range of integer digits of numeric cells.
func (c *ColumnDataProperty) MinMaxIntegerDigits() *MinMaxContainer[int] { return c.integerDigits }

// MinMaxDecimalPlaces returns the decimal places of every numeric cell.
func (c *ColumnDataProperty) MinMaxDecimalPlaces() *ListContainer[int] { return c.decimalPlaces }

// MinMaxAdditionalFormatLen returns the range of additional format lengths.
func (c *ColumnDataProperty) MinMaxAdditionalFormatLen() *MinMaxContainer[int] {
	return c.additionalFormatLen
}

// Format returns the template of the unified type.
func (c *ColumnDataProperty) Format() Format { return c.formatMap[c.typecode] }

// FormatMap returns the template of every typecode under the column's
// decimal places.
func (c *ColumnDataProperty) FormatMap() map[typecheck.Typecode]Format {
	return maps.Clone(c.formatMap)
}

// DPList returns the body cells in update order.
func (c *ColumnDataProperty) DPList() []*DataProperty {
	return append([]*DataProperty(nil), c.dpList...)
}

// BitLength returns the largest bit length of the values of an INTEGER
// column.
func (c *ColumnDataProperty) BitLength() (int, bool) {
	if c.typecode != typecheck.Integer {
		return 0, false
	}
	n, ok := 0, false
	for _, dp := range c.dpList {
		switch x := dp.Data().(type) {
		case int64:
			u := uint64(x)
			if x < 0 {
				u = ^u + 1
			}
			n, ok = max(n, bits.Len64(u)), true
		case uint64:
			n, ok = max(n, bits.Len64(x)), true
		}
	}
	return n, ok
}

// BeginUpdate opens a batch: derived values are not recomputed until
// EndUpdate.
func (c *ColumnDataProperty) BeginUpdate() { c.calculating = true }

// EndUpdate closes a batch and recomputes every derived value.
func (c *ColumnDataProperty) EndUpdate() {
	c.calculating = false
	c.recompute()
}

// UpdateHeader sets the header width from dp.
func (c *ColumnDataProperty) UpdateHeader(dp *DataProperty) {
	c.headerWidth = dp.ASCIICharWidth()
}

// UpdateBody folds one body cell into the column. Cells with ANSI escapes
// are measured without them.
func (c *ColumnDataProperty) UpdateBody(dp *DataProperty) {
	metric := dp
	if dp.HasANSIEscape() {
		metric = dp.NoANSIEscapeDP()
	}
	c.bitmap |= metric.Typecode()
	switch metric.Typecode() {
	case typecheck.Integer, typecheck.RealNumber:
		if n, ok := metric.IntegerDigits(); ok {
			c.integerDigits.Update(n)
		}
		if n, ok := metric.DecimalPlaces(); ok {
			c.decimalPlaces.Update(n)
		}
	}
	c.additionalFormatLen.Update(metric.AdditionalFormatLen())
	c.dpList = append(c.dpList, dp)
	c.bodyWidth = max(c.bodyWidth, metric.ASCIICharWidth())
	if !c.calculating {
		c.recompute()
	}
}

// Merge folds the observations of other into the column.
func (c *ColumnDataProperty) Merge(other *ColumnDataProperty) {
	if other == nil {
		return
	}
	c.bitmap |= other.bitmap
	c.integerDigits.Merge(other.integerDigits)
	c.decimalPlaces.Merge(other.decimalPlaces)
	c.additionalFormatLen.Merge(other.additionalFormatLen)
	c.headerWidth = max(c.headerWidth, other.headerWidth)
	c.bodyWidth = max(c.bodyWidth, other.bodyWidth)
	c.dpList = append(c.dpList, other.dpList...)
	if !c.calculating {
		c.recompute()
	}
}

// ExtendWidth widens both the header and the body by n.
func (c *ColumnDataProperty) ExtendWidth(n int) {
	c.ExtendHeaderWidth(n)
	c.ExtendBodyWidth(n)
}

// ExtendHeaderWidth widens the header by n.
func (c *ColumnDataProperty) ExtendHeaderWidth(n int) { c.headerWidth += max(n, 0) }

// ExtendBodyWidth widens the body by n.
func (c *ColumnDataProperty) ExtendBodyWidth(n int) { c.bodyWidth += max(n, 0) }

// DPToStr renders dp with the column's template. The value is first
// converted to the column type so that every cell shares one format.
// A cell that does not convert renders on its own. A cell with ANSI
// escapes renders its escape-free value and keeps the escapes around it.
func (c *ColumnDataProperty) DPToStr(dp *DataProperty) string {
	if dp.Typecode() == typecheck.String {
		if shadow := dp.NoANSIEscapeDP(); shadow != nil && shadow.Typecode() != typecheck.String {
			return c.ansiStr(dp, shadow)
		}
		return dp.String()
	}
	value := dp.Data()
	if c.needsConversion(dp.Typecode()) {
		conv, err := typecheck.New(c.typecode, value, typecheck.StrictMin,
			typecheck.WithFloatType(c.cfg.FloatType)).Convert()
		if err != nil {
			return dp.String()
		}
		value = conv
	}
	tc := c.typecode
	if tc == typecheck.String {
		tc = dp.Typecode()
	}
	if s, err := c.formatMap[tc].Render(value); err == nil {
		return s
	}
	if s, err := (Format{verb: 's'}).Render(value); err == nil {
		return s
	}
	log().Debug("render fallback", "column", c.cfg.ColumnIndex, "type", tc, "value", value)
	return dp.String()
}

// ansiStr swaps the visible text of dp for the column rendering of its
// shadow. Escapes interleaved with the text leave dp as it is.
func (c *ColumnDataProperty) ansiStr(dp, shadow *DataProperty) string {
	s := dp.String()
	plain := StripANSIEscape(s)
	if plain == "" || !strings.Contains(s, plain) {
		return s
	}
	return strings.Replace(s, plain, c.DPToStr(shadow), 1)
}

func (c *ColumnDataProperty) needsConversion(tc typecheck.Typecode) bool {
	switch c.typecode {
	case tc, typecheck.String, typecheck.Bool, typecheck.DateTime:
		return false
	}
	return true
}

// AlignedStr renders dp and pads it to the column width with the column
// alignment.
func (c *ColumnDataProperty) AlignedStr(dp *DataProperty) (string, error) {
	return c.Align().Pad(c.DPToStr(dp), c.ASCIICharWidth(), c.cfg.EastAsianAmbiguousWidth)
}

func (c *ColumnDataProperty) recompute() {
	c.typecode = unifiedTypecode(c.bitmap)
	c.reconciledPlaces = c.calcDecimalPlaces()
	c.formatMap = c.formatter.MakeFormatMap(c.reconciledPlaces)
	c.calcBodyWidth()
}

// calcDecimalPlaces returns min(ceil(mean+1), max) of the observed decimal
// places, or -1 when there are none.
func (c *ColumnDataProperty) calcDecimalPlaces() int {
	hi, ok := c.decimalPlaces.Max()
	if !ok {
		return -1
	}
	dp := min(int(math.Ceil(c.decimalPlaces.Mean()+1)), hi)
	if c.cfg.MaxPrecision != nil {
		dp = min(dp, *c.cfg.MaxPrecision)
	}
	return dp
}

func (c *ColumnDataProperty) calcBodyWidth() {
	if c.bitmap&(typecheck.Integer|typecheck.RealNumber) == 0 {
		return
	}
	for _, dp := range c.dpList {
		switch dp.Typecode() {
		case typecheck.Infinity, typecheck.NaN:
			continue
		}
		w := runeColumns(StripANSIEscape(c.DPToStr(dp)), c.cond)
		c.bodyWidth = max(c.bodyWidth, w)
	}
}

func (c *ColumnDataProperty) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "column=%d, type=%s, align=%s, ascii_width=%d",
		c.cfg.ColumnIndex, c.typecode, c.Align(), c.ASCIICharWidth())
	if n, ok := c.BitLength(); ok {
		fmt.Fprintf(&b, ", bit_len=%d", n)
	}
	if c.integerDigits.HasValue() {
		fmt.Fprintf(&b, ", int_digits=(%s)", c.integerDigits)
	}
	if n, ok := c.DecimalPlaces(); ok {
		fmt.Fprintf(&b, ", decimal_places=%d", n)
	}
	if !c.additionalFormatLen.IsZero() {
		fmt.Fprintf(&b, ", extra_len=(%s)", c.additionalFormatLen)
	}
	return b.String()
}
