package dataproperty

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bjaus/dataproperty/typecheck"
)

// Extractor turns raw values, rows and headers into cell and column
// properties. Its configuration is read-only during an extraction; an
// Extractor must not be used by concurrent callers while a setter runs.
type Extractor struct {
	cfg Config
}

// NewExtractor returns an extractor for cfg.
func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg.clone()}, nil
}

// Config returns a copy of the current configuration.
func (e *Extractor) Config() Config { return e.cfg.clone() }

func (e *Extractor) update(fn func(*Config)) error {
	next := e.cfg.clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	e.cfg = next
	return nil
}

// SetHeaders sets the header row.
func (e *Extractor) SetHeaders(headers []string) {
	e.cfg.Headers = slices.Clone(headers)
}

// SetDefaultTypeHint forces a type on every column without its own hint.
func (e *Extractor) SetDefaultTypeHint(tc typecheck.Typecode) error {
	return e.update(func(c *Config) { c.DefaultTypeHint = tc })
}

// SetColumnTypeHints forces a type per column. None entries infer.
func (e *Extractor) SetColumnTypeHints(hints []typecheck.Typecode) error {
	return e.update(func(c *Config) { c.ColumnTypeHints = slices.Clone(hints) })
}

// SetStrictLevelMap overlays m on the default strict levels.
func (e *Extractor) SetStrictLevelMap(m StrictLevelMap) error {
	return e.update(func(c *Config) { c.StrictLevelMap = m.resolved() })
}

// SetFloatType sets the representation of real numbers.
func (e *Extractor) SetFloatType(ft typecheck.FloatType) { e.cfg.FloatType = ft }

// SetDatetimeFormat sets the time layout of DATETIME cells.
func (e *Extractor) SetDatetimeFormat(layout string) { e.cfg.DatetimeFormat = layout }

// SetDatetimeFormatter replaces DATETIME cells with the string fn returns.
func (e *Extractor) SetDatetimeFormatter(fn func(time.Time) string) { e.cfg.DatetimeFormatter = fn }

// SetPreprocessor replaces the body preprocessor.
func (e *Extractor) SetPreprocessor(p Preprocessor) error {
	return e.update(func(c *Config) { c.Preprocessor = p })
}

// UpdatePreprocessor applies opts to the body preprocessor.
func (e *Extractor) UpdatePreprocessor(opts ...PreprocessorOption) error {
	return e.update(func(c *Config) {
		for _, opt := range opts {
			opt(&c.Preprocessor)
		}
	})
}

// SetStripStrHeader sets the characters trimmed from headers.
func (e *Extractor) SetStripStrHeader(chars string) { e.cfg.StripStrHeader = chars }

// SetMinColumnWidth sets the minimum body width of every column.
func (e *Extractor) SetMinColumnWidth(n int) error {
	return e.update(func(c *Config) { c.MinColumnWidth = n })
}

// SetFormatFlagsList sets format flags per column.
func (e *Extractor) SetFormatFlagsList(flags []FormatFlag) {
	e.cfg.FormatFlagsList = slices.Clone(flags)
}

// SetDefaultFormatFlags sets the flags of columns without their own.
func (e *Extractor) SetDefaultFormatFlags(flags FormatFlag) { e.cfg.DefaultFormatFlags = flags }

// SetEastAsianAmbiguousWidth sets the width of ambiguous characters.
func (e *Extractor) SetEastAsianAmbiguousWidth(eaaw int) error {
	return e.update(func(c *Config) { c.EastAsianAmbiguousWidth = eaaw })
}

// SetTypeValueMap sets the literals that replace cells of a type.
func (e *Extractor) SetTypeValueMap(m map[typecheck.Typecode]any) {
	e.cfg.TypeValueMap = maps.Clone(m)
}

// SetQuotingFlags sets the types whose rendered values are double quoted.
func (e *Extractor) SetQuotingFlags(m map[typecheck.Typecode]bool) {
	e.cfg.QuotingFlags = maps.Clone(m)
}

// SetMatrixFormatting sets how rows of differing lengths are resolved.
func (e *Extractor) SetMatrixFormatting(mf MatrixFormatting) error {
	return e.update(func(c *Config) { c.MatrixFormatting = mf })
}

// SetMaxWorkers bounds concurrent column conversion. Zero or less means
// the number of CPUs.
func (e *Extractor) SetMaxWorkers(n int) { e.cfg.MaxWorkers = n }

// SetMaxPrecision caps column decimal places. Nil removes the cap.
func (e *Extractor) SetMaxPrecision(p *int) error {
	return e.update(func(c *Config) { c.MaxPrecision = p })
}

// SetDisableFloatFormatting renders real numbers with %v when disabled is
// true.
func (e *Extractor) SetDisableFloatFormatting(disabled bool) {
	e.cfg.DisableFloatFormatting = disabled
}

// RegisterTransFunc adds fn to the front of the transformation chain, so
// the most recently registered function runs first.
func (e *Extractor) RegisterTransFunc(fn TransFunc) {
	e.cfg.TransFuncs = slices.Insert(slices.Clone(e.cfg.TransFuncs), 0, fn)
}

func (e *Extractor) maxWorkers() int {
	if e.cfg.MaxWorkers <= 0 {
		return runtime.NumCPU()
	}
	return e.cfg.MaxWorkers
}

// task converts values for one extraction call. Tasks are not shared
// between goroutines.
type task struct {
	cell       CellConfig
	conv       converter
	transFuncs []TransFunc
	cache      map[any]*DataProperty
}

func (e *Extractor) newTask(hint typecheck.Typecode, p Preprocessor, levels StrictLevelMap, transFuncs []TransFunc) *task {
	cell := CellConfig{
		TypeHint:                hint,
		StrictLevelMap:          levels,
		FloatType:               e.cfg.FloatType,
		DatetimeFormat:          e.cfg.DatetimeFormat,
		DisableFloatFormatting:  e.cfg.DisableFloatFormatting,
		Preprocessor:            p,
		EastAsianAmbiguousWidth: e.cfg.eaaw(),
	}
	return &task{
		cell: cell,
		conv: converter{
			typeValueMap:      e.cfg.TypeValueMap,
			quotingFlags:      e.cfg.QuotingFlags,
			datetimeFormatter: e.cfg.DatetimeFormatter,
			escapeHTML:        p.EscapeHTMLTag,
			cell:              cell,
		},
		transFuncs: transFuncs,
		cache:      make(map[any]*DataProperty),
	}
}

func (e *Extractor) bodyTask(hint typecheck.Typecode) *task {
	return e.newTask(hint, e.cfg.Preprocessor, e.cfg.StrictLevelMap, e.cfg.TransFuncs)
}

func (t *task) toDP(v any) (*DataProperty, error) {
	for _, fn := range t.transFuncs {
		v = fn(v)
	}
	if t.cell.TypeHint != typecheck.None {
		return t.toDPRaw(v)
	}
	key, cacheable := cacheKey(v)
	if cacheable {
		if dp, ok := t.cache[key]; ok {
			return dp, nil
		}
	}
	dp, err := t.toDPRaw(v)
	if err != nil {
		return nil, err
	}
	if cacheable {
		t.cache[key] = dp
	}
	return dp, nil
}

func (t *task) toDPRaw(v any) (*DataProperty, error) {
	dp, err := NewDataProperty(v, t.cell)
	if err != nil {
		return nil, err
	}
	return t.conv.convert(dp)
}

type nilKey struct{}

// cacheKey returns the cache key of the common values nil, true, false, 0,
// 1 and "".
func cacheKey(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nilKey{}, true
	case bool:
		return x, true
	case string:
		return x, x == ""
	}
	if isIntegerKind(v) {
		switch fmt.Sprint(v) {
		case "0":
			return int64(0), true
		case "1":
			return int64(1), true
		}
	}
	return nil, false
}

// ToDP returns the property of one value under the default type hint.
func (e *Extractor) ToDP(v any) (*DataProperty, error) {
	return e.bodyTask(e.cfg.DefaultTypeHint).toDP(v)
}

// ToDPList returns the properties of values under the default type hint.
func (e *Extractor) ToDPList(values []any) ([]*DataProperty, error) {
	t := e.bodyTask(e.cfg.DefaultTypeHint)
	out := make([]*DataProperty, len(values))
	for i, v := range values {
		dp, err := t.toDP(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = dp
	}
	return out, nil
}

// ToHeaderDPList returns the properties of the headers. Headers are always
// strings.
func (e *Extractor) ToHeaderDPList() ([]*DataProperty, error) {
	t := e.newTask(typecheck.String, Preprocessor{StripStr: e.cfg.StripStrHeader},
		uniformStrictLevelMap(typecheck.StrictMin), nil)
	t.conv = converter{cell: t.cell}
	out := make([]*DataProperty, len(e.cfg.Headers))
	for i, h := range e.cfg.Headers {
		dp, err := t.toDP(h)
		if err != nil {
			return nil, fmt.Errorf("header %d: %w", i, err)
		}
		out[i] = dp
	}
	return out, nil
}

// ToDPMatrix normalizes the row lengths of matrix and returns the property
// of every cell. Columns convert concurrently, at most MaxWorkers at a
// time; the result keeps the input order.
func (e *Extractor) ToDPMatrix(ctx context.Context, matrix [][]any) ([][]*DataProperty, error) {
	rows, err := StripMatrix(matrix, len(e.cfg.Headers), e.cfg.MatrixFormatting)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return [][]*DataProperty{}, nil
	}
	ncols := len(rows[0])
	workers := e.maxWorkers()
	log().Debug("converting matrix", "rows", len(rows), "columns", ncols, "workers", workers)

	columns := make([][]*DataProperty, ncols)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for col := range ncols {
		t := e.bodyTask(e.cfg.columnTypeHint(col))
		g.Go(func() error {
			out := make([]*DataProperty, len(rows))
			for r, row := range rows {
				if err := ctx.Err(); err != nil {
					return err
				}
				dp, err := t.toDP(row[col])
				if err != nil {
					return fmt.Errorf("row %d column %d: %w", r, col, err)
				}
				out[r] = dp
			}
			columns[col] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([][]*DataProperty, len(rows))
	for r := range rows {
		out[r] = make([]*DataProperty, ncols)
		for col := range ncols {
			out[r][col] = columns[col][r]
		}
	}
	return out, nil
}

func (e *Extractor) columnConfig(col int) ColumnConfig {
	return ColumnConfig{
		ColumnIndex:             col,
		FloatType:               e.cfg.FloatType,
		MinWidth:                e.cfg.MinColumnWidth,
		FormatFlags:             e.cfg.formatFlags(col),
		DatetimeFormat:          e.cfg.DatetimeFormat,
		MaxPrecision:            e.cfg.MaxPrecision,
		DisableFloatFormatting:  e.cfg.DisableFloatFormatting,
		EastAsianAmbiguousWidth: e.cfg.eaaw(),
	}
}

// ToColumnDPList aggregates dpMatrix into one property per column. When
// prev is given, each column starts from the matching entry of prev, which
// lets a caller fold a matrix in chunks.
func (e *Extractor) ToColumnDPList(dpMatrix [][]*DataProperty, prev []*ColumnDataProperty) ([]*ColumnDataProperty, error) {
	headers, err := e.ToHeaderDPList()
	if err != nil {
		return nil, err
	}

	// Every header gets a column even when the rows are narrower.
	var width int
	if len(dpMatrix) > 0 {
		width = len(dpMatrix[0])
		for _, row := range dpMatrix[1:] {
			width = min(width, len(row))
		}
	}
	ncols := max(len(headers), width)

	out := make([]*ColumnDataProperty, ncols)
	for col := range ncols {
		c, err := NewColumnDataProperty(e.columnConfig(col))
		if err != nil {
			return nil, err
		}
		if col < len(headers) {
			c.UpdateHeader(headers[col])
		}
		c.BeginUpdate()
		if col < len(prev) {
			c.Merge(prev[col])
		}
		if col < width {
			for _, row := range dpMatrix {
				c.UpdateBody(row[col])
			}
		}
		c.EndUpdate()
		out[col] = c
	}
	return out, nil
}
