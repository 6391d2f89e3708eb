// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Progress reports how far a FetchAll run has come.
type Progress struct {
	Batch   int `json:"batch"`
	Batches int `json:"batches"`
	Records int `json:"records"`
}

// ProgressFunc receives a Progress after every completed batch.
type ProgressFunc func(Progress)

// Chunk splits ids into contiguous slices of at most size elements,
// preserving order. A size of zero or less uses DefaultBatchSize.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end:end])
	}
	return chunks
}

// FetchAll fetches ids batch by batch and concatenates the records in
// batch order. A failing batch aborts the run and nothing is returned.
func (c *Client) FetchAll(ctx context.Context, ids []string, progress ProgressFunc) ([]*Node, error) {
	chunks := Chunk(ids, c.cfg.BatchSize)

	var records []*Node
	for i, chunk := range chunks {
		start := time.Now()
		nodes, err := c.Fetch(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("fetching batch %d/%d: %w", i+1, len(chunks), err)
		}
		records = append(records, nodes...)

		c.logger.Debug("efetch batch complete",
			zap.Int("batch", i+1),
			zap.Int("batches", len(chunks)),
			zap.Int("ids", len(chunk)),
			zap.Int("records", len(nodes)),
			zap.Duration("elapsed", time.Since(start)),
		)
		if progress != nil {
			progress(Progress{Batch: i + 1, Batches: len(chunks), Records: len(records)})
		}
	}
	return records, nil
}
