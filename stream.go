package dataproperty

import (
	"context"
	"iter"
)

// DefaultChunkSize is the number of rows ToColumnDPListSeq converts at a
// time when no chunk size is given.
const DefaultChunkSize = 1000

// ToColumnDPListSeq aggregates rows from an iterator into column
// properties without holding the whole matrix of raw values. Rows are
// converted chunkSize at a time and each chunk is folded into the columns
// of the previous ones. With no rows it returns the header-only columns.
func (e *Extractor) ToColumnDPListSeq(ctx context.Context, seq iter.Seq[[]any], chunkSize int) ([]*ColumnDataProperty, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	var (
		columns []*ColumnDataProperty
		chunk   = make([][]any, 0, chunkSize)
		folded  bool
		err     error
	)
	flush := func() bool {
		var dpm [][]*DataProperty
		if dpm, err = e.ToDPMatrix(ctx, chunk); err != nil {
			return false
		}
		if columns, err = e.ToColumnDPList(dpm, columns); err != nil {
			return false
		}
		folded = true
		chunk = chunk[:0]
		return true
	}
	seq(func(row []any) bool {
		if ctx.Err() != nil {
			err = ctx.Err()
			return false
		}
		chunk = append(chunk, row)
		if len(chunk) < chunkSize {
			return true
		}
		return flush()
	})
	if err != nil {
		return nil, err
	}
	if len(chunk) > 0 || !folded {
		if !flush() {
			return nil, err
		}
	}
	return columns, nil
}

// ToColumnDPListChan aggregates rows received from ch until it is closed.
// It is a thin wrapper around [Extractor.ToColumnDPListSeq].
func (e *Extractor) ToColumnDPListChan(ctx context.Context, ch <-chan []any, chunkSize int) ([]*ColumnDataProperty, error) {
	return e.ToColumnDPListSeq(ctx, chanToIter(ch), chunkSize)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
