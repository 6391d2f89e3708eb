// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// SheetName is the worksheet that holds exported publications.
const SheetName = "Publications"

// ErrCellTooLong is returned when a value exceeds the characters one
// worksheet cell can hold.
var ErrCellTooLong = fmt.Errorf("value exceeds %d characters allowed in an Excel cell", excelize.TotalCellChars)

// WriteXLSX writes rows to a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, rows []types.Publication) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("opening sheet writer: %w", err)
	}

	if err := sw.SetRow("A1", cells(types.Columns)); err != nil {
		return fmt.Errorf("writing XLSX header: %w", err)
	}
	for i, p := range rows {
		values := p.Values()
		if err := checkCellLengths(values); err != nil {
			return fmt.Errorf("row %d (PMID %s): %w", i+1, p.PMID, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(values)); err != nil {
			return fmt.Errorf("writing XLSX row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ReadXLSX parses a workbook produced by WriteXLSX.
func ReadXLSX(r io.Reader) ([]types.Publication, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	all, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", SheetName, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", SheetName)
	}

	// GetRows trims empty trailing cells; restore them as empty values.
	var rows []types.Publication
	for _, rec := range all[1:] {
		for len(rec) < len(types.Columns) {
			rec = append(rec, "")
		}
		rows = append(rows, types.PublicationFromValues(rec))
	}
	return rows, nil
}

// checkCellLengths rejects values excelize would silently truncate.
func checkCellLengths(values []string) error {
	for i, v := range values {
		if utf8.RuneCountInString(v) > excelize.TotalCellChars {
			return fmt.Errorf("column %s: %w", types.Columns[i], ErrCellTooLong)
		}
	}
	return nil
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
