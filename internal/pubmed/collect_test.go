// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// --- mock source ---

type stubSource struct {
	search    SearchResult
	searchErr error
	fetchErr  error
	fetched   [][]string
}

func (s *stubSource) Search(_ context.Context, _ string) (SearchResult, error) {
	return s.search, s.searchErr
}

func (s *stubSource) FetchAll(_ context.Context, ids []string, _ ProgressFunc) ([]*Node, error) {
	s.fetched = append(s.fetched, ids)
	return nil, s.fetchErr
}

// --- Collect ---

func TestCollectCRISPRScenario(t *testing.T) {
	f := &fakeEutils{
		ids:        []string{"1", "2", "3"},
		count:      3,
		noAbstract: map[string]bool{"2": true},
	}
	c := testClient(t, f, types.EntrezConfig{Email: "me@example.org"})

	col, err := Collect(context.Background(), c, "CRISPR", nil)
	require.NoError(t, err)

	assert.Equal(t, "CRISPR", col.Keyword)
	assert.Equal(t, 3, col.Total)
	assert.Equal(t, []string{"1", "2", "3"}, col.IDs)
	require.Len(t, col.Publications, 3)
	assert.Equal(t, "Abstract of 1.", col.Publications[0].Abstract)
	assert.Equal(t, types.NoData, col.Publications[1].Abstract)
	assert.Equal(t, "Title 2", col.Publications[1].Title, "other fields of row 2 are intact")
	assert.Equal(t, "Abstract of 3.", col.Publications[2].Abstract)
}

func TestCollectEmptyResult(t *testing.T) {
	f := &fakeEutils{}
	c := testClient(t, f, types.EntrezConfig{})

	col, err := Collect(context.Background(), c, "nothing matches this", nil)
	require.NoError(t, err)
	assert.Empty(t, col.IDs)
	assert.Empty(t, col.Publications)
	assert.Empty(t, f.fetches())
}

func TestCollectErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("search failure", func(t *testing.T) {
		src := &stubSource{searchErr: boom}
		_, err := Collect(context.Background(), src, "x", nil)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), `searching "x"`)
		assert.Empty(t, src.fetched, "fetch is not attempted")
	})

	t.Run("fetch failure", func(t *testing.T) {
		src := &stubSource{search: SearchResult{IDs: []string{"1"}}, fetchErr: boom}
		col, err := Collect(context.Background(), src, "x", nil)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, col.Publications)
	})
}
