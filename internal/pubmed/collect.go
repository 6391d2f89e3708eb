// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// Source is the part of Client the pipeline depends on.
type Source interface {
	Search(ctx context.Context, term string) (SearchResult, error)
	FetchAll(ctx context.Context, ids []string, progress ProgressFunc) ([]*Node, error)
}

// Collection is the output of one keyword run.
type Collection struct {
	Keyword      string
	Total        int
	IDs          []string
	Publications []types.Publication
}

// Collect runs search, batched fetch and extraction for keyword. Any
// remote failure aborts the whole run.
func Collect(ctx context.Context, src Source, keyword string, progress ProgressFunc) (Collection, error) {
	res, err := src.Search(ctx, keyword)
	if err != nil {
		return Collection{}, fmt.Errorf("searching %q: %w", keyword, err)
	}

	records, err := src.FetchAll(ctx, res.IDs, progress)
	if err != nil {
		return Collection{}, fmt.Errorf("fetching records for %q: %w", keyword, err)
	}

	return Collection{
		Keyword:      keyword,
		Total:        res.Count,
		IDs:          res.IDs,
		Publications: ExtractAll(records),
	}, nil
}
