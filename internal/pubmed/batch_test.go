// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = strconv.Itoa(1000000 + i)
	}
	return ids
}

// --- Chunk ---

func TestChunk(t *testing.T) {
	tests := []struct {
		name       string
		n, size    int
		wantChunks int
		wantLast   int
	}{
		{"empty", 0, 10000, 0, 0},
		{"one short chunk", 3, 10000, 1, 3},
		{"exact multiple", 20000, 10000, 2, 10000},
		{"one over", 10001, 10000, 2, 1},
		{"default size", 25001, 0, 3, 5001},
		{"small size", 7, 2, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := makeIDs(tt.n)
			chunks := Chunk(ids, tt.size)
			require.Len(t, chunks, tt.wantChunks)

			var joined []string
			for _, c := range chunks {
				joined = append(joined, c...)
			}
			assert.Equal(t, len(ids), len(joined))
			if tt.n > 0 {
				assert.Equal(t, ids, joined, "concatenated chunks equal the input")
				assert.Len(t, chunks[len(chunks)-1], tt.wantLast)
			}
		})
	}
}

func TestChunkDoesNotAlias(t *testing.T) {
	ids := makeIDs(5)
	chunks := Chunk(ids, 2)
	chunks[0] = append(chunks[0], "x")
	assert.Equal(t, makeIDs(5), ids, "appending to a chunk must not overwrite the next one")
}

// --- FetchAll ---

func TestFetchAllCallsPerBatch(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantCalls int
	}{
		{"no ids", 0, 0},
		{"single batch", 3, 1},
		{"exactly one full batch", 10000, 1},
		{"three batches", 25001, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEutils{}
			c := testClient(t, f, types.EntrezConfig{})
			ids := makeIDs(tt.n)

			var reports []Progress
			records, err := c.FetchAll(context.Background(), ids, func(p Progress) { reports = append(reports, p) })
			require.NoError(t, err)

			calls := f.fetches()
			assert.Len(t, calls, tt.wantCalls)
			assert.Len(t, reports, tt.wantCalls)

			var sent []string
			for _, call := range calls {
				assert.LessOrEqual(t, len(call), DefaultBatchSize)
				sent = append(sent, call...)
			}
			if tt.n > 0 {
				assert.Equal(t, ids, sent)
			}

			require.Len(t, records, tt.n)
			pubs := ExtractAll(records)
			for i := range pubs {
				if pubs[i].PMID != ids[i] {
					t.Fatalf("row %d PMID = %s, want %s", i, pubs[i].PMID, ids[i])
				}
			}
			if tt.wantCalls > 0 {
				last := reports[len(reports)-1]
				assert.Equal(t, Progress{Batch: tt.wantCalls, Batches: tt.wantCalls, Records: tt.n}, last)
			}
		})
	}
}

func TestFetchAllSmallBatchSize(t *testing.T) {
	f := &fakeEutils{}
	c := testClient(t, f, types.EntrezConfig{BatchSize: 2})

	records, err := c.FetchAll(context.Background(), []string{"a", "b", "c", "d", "e"}, nil)
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, f.fetches())
}

func TestFetchAllAbortsOnBatchFailure(t *testing.T) {
	f := &fakeEutils{failBatch: 2}
	c := testClient(t, f, types.EntrezConfig{BatchSize: 2})

	records, err := c.FetchAll(context.Background(), []string{"a", "b", "c", "d", "e"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching batch 2/3")
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Nil(t, records, "earlier batches are discarded")
	assert.Len(t, f.fetches(), 2, "no batch is attempted after a failure")
}

func TestFetchAllContextCancelled(t *testing.T) {
	f := &fakeEutils{}
	c := testClient(t, f, types.EntrezConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchAll(ctx, []string{"1"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
