// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// WriteCSV writes a header row of types.Columns followed by one row per
// publication. Fields are quoted as needed; embedded newlines and commas
// survive a round trip through ReadCSV.
func WriteCSV(w io.Writer, rows []types.Publication) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, p := range rows {
		if err := cw.Write(p.Values()); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// ReadCSV parses a file produced by WriteCSV.
func ReadCSV(r io.Reader) ([]types.Publication, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(types.Columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("reading CSV: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if !slices.Equal(header, types.Columns) {
		return nil, fmt.Errorf("unexpected CSV header %v", header)
	}

	var rows []types.Publication
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, types.PublicationFromValues(rec))
	}
	return rows, nil
}
