// Package dataproperty infers the type and display metrics of tabular
// values and unifies them per column.
//
// A [DataProperty] describes one cell: the inferred [typecheck.Typecode],
// the converted value, integer digits, decimal places, display width and a
// rendering [Format]. A [ColumnDataProperty] aggregates the cells of one
// column into a unified type, reconciled decimal places and a width wide
// enough for every cell rendered with the column template.
//
// The central entry point is [Extractor], configured by a [Config]:
//
//	ext, err := dataproperty.NewExtractor(dataproperty.Config{
//		Headers: []string{"id", "price"},
//	})
//	dpm, err := ext.ToDPMatrix(ctx, rows)
//	cols, err := ext.ToColumnDPList(dpm, nil)
//	for _, row := range dpm {
//		for i, dp := range row {
//			s, _ := cols[i].AlignedStr(dp)
//			fmt.Print(s, " ")
//		}
//	}
//
// # Type Inference
//
// Without a type hint, each type is tried in a fixed order (NONE, INTEGER,
// INFINITY, NAN, IP_ADDRESS, REAL_NUMBER, BOOL, LIST, DICTIONARY, DATETIME,
// NULL_STRING, STRING) at the strict level from the [StrictLevelMap]. The
// first type that accepts the value wins. A hinted type is tried at
// [typecheck.StrictMin] first and kept when the converted value passes at
// [typecheck.StrictMax].
//
// # Preprocessing
//
// String values pass through a [Preprocessor] before inference: strip, tab
// expansion, HTML escape, line break handling and formula injection escape,
// in that order. Widths are measured with ANSI escapes removed.
//
// # Column Types
//
// A column records the OR of its cell typecodes. Mixed numbers (and empty
// strings among numbers) promote to REAL_NUMBER; BOOL or DATETIME mixed with
// anything else becomes STRING; otherwise the highest priority observed type
// wins.
//
// # Width
//
// Widths are terminal columns as measured by go-runewidth. East Asian
// ambiguous characters count 1 or 2 depending on EastAsianAmbiguousWidth.
//
// # Configuration
//
// Use [LoadConfig] to read a [Config] from YAML:
//
//	cfg, err := dataproperty.LoadConfig(f)
//	ext, err := dataproperty.NewExtractor(cfg)
//
// # Streaming
//
// [Extractor.ToColumnDPListSeq] and [Extractor.ToColumnDPListChan] fold rows
// from an iterator or channel into column properties chunk by chunk.
//
// # Errors
//
// All errors wrap one of the sentinel errors ([ErrTypeInferenceFailed],
// [ErrInvalidConfiguration], [ErrNonUniformMatrix], [ErrNotANumber] or
// [typecheck.ErrTypeConversion]) for use with [errors.Is].
package dataproperty
