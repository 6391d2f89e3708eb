// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes publication tables to downloadable files. CSV is
// the primary format; XLSX, JSON and YAML are offered from the dashboard
// and SQLite is available to the command line only.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// Format names an export encoding.
type Format string

// Supported formats.
const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

var (
	// ErrUnknownFormat is returned for a format name outside the supported set.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrNotStreamable is returned when a file-only format is written to a stream.
	ErrNotStreamable = errors.New("format can only be written to a file")
)

// Formats lists every supported format; StreamFormats the subset Write accepts.
var (
	Formats       = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatYAML, FormatSQLite}
	StreamFormats = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatYAML}
)

// ParseFormat maps a case-insensitive name to a Format. "yml" is accepted
// for YAML and "db" for SQLite.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return "db"
	}
	return string(f)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatSQLite:
		return "application/vnd.sqlite3"
	}
	return "application/octet-stream"
}

// Filename returns the download name for a keyword, e.g.
// "CRISPR_pubmed_literature.csv".
func Filename(keyword string, f Format) string {
	return keyword + "_pubmed_literature." + f.Extension()
}

// Write encodes rows to w in format f. Rows are written in order with a
// header of types.Columns where the format has one.
func Write(w io.Writer, f Format, rows []types.Publication) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	case FormatSQLite:
		return ErrNotStreamable
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile writes rows to path in format f, replacing any existing file.
func WriteFile(ctx context.Context, path string, f Format, rows []types.Publication) error {
	if f == FormatSQLite {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		return WriteSQLite(ctx, path, rows)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(out, f, rows); err != nil {
		out.Close()
		_ = os.Remove(path)
		return err
	}
	return out.Close()
}

func writeJSON(w io.Writer, rows []types.Publication) error {
	if rows == nil {
		rows = []types.Publication{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, rows []types.Publication) error {
	if rows == nil {
		rows = []types.Publication{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
