package dataproperty_test

import (
	"context"
	"slices"
	"testing"

	"github.com/bjaus/dataproperty"
	"github.com/bjaus/dataproperty/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamRows() [][]any {
	return [][]any{
		{1, "a", 0.5},
		{2, "bb", 1.25},
		{3, "ccc", -10.125},
		{4, "dddd", 3},
		{5, "eeeee", nil},
	}
}

func TestToColumnDPListSeqMatchesBatch(t *testing.T) {
	t.Parallel()
	rows := streamRows()
	ext := newExtractor(t, dataproperty.Config{Headers: []string{"n", "s", "f"}})

	_, batch := extractColumns(t, ext, rows)
	for _, chunk := range []int{1, 2, 5, 100} {
		streamed, err := ext.ToColumnDPListSeq(context.Background(), slices.Values(rows), chunk)
		require.NoError(t, err)
		require.Len(t, streamed, len(batch))
		for i := range batch {
			assert.Equal(t, batch[i].Typecode(), streamed[i].Typecode(), "chunk %d column %d", chunk, i)
			assert.Equal(t, batch[i].ASCIICharWidth(), streamed[i].ASCIICharWidth(), "chunk %d column %d", chunk, i)
			bp, _ := batch[i].DecimalPlaces()
			sp, _ := streamed[i].DecimalPlaces()
			assert.Equal(t, bp, sp, "chunk %d column %d", chunk, i)
			assert.Len(t, streamed[i].DPList(), len(rows))
		}
	}
}

func TestToColumnDPListChan(t *testing.T) {
	t.Parallel()
	ch := make(chan []any)
	go func() {
		defer close(ch)
		for _, row := range streamRows() {
			ch <- row
		}
	}()

	ext := newExtractor(t, dataproperty.Config{})
	cols, err := ext.ToColumnDPListChan(context.Background(), ch, 2)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, typecheck.Integer, cols[0].Typecode())
	assert.Equal(t, typecheck.String, cols[1].Typecode())
	assert.Equal(t, typecheck.RealNumber, cols[2].Typecode())
	assert.Equal(t, 5, cols[1].ASCIICharWidth())
}

func TestToColumnDPListSeqEmpty(t *testing.T) {
	t.Parallel()
	ext := newExtractor(t, dataproperty.Config{Headers: []string{"only"}})
	cols, err := ext.ToColumnDPListSeq(context.Background(), slices.Values([][]any(nil)), 0)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, 4, cols[0].ASCIICharWidth())
}

func TestToColumnDPListSeqCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ext := newExtractor(t, dataproperty.Config{})
	_, err := ext.ToColumnDPListSeq(ctx, slices.Values(streamRows()), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
