// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS publications (
	position  INTEGER PRIMARY KEY,
	title     TEXT NOT NULL,
	abstract  TEXT NOT NULL,
	journal   TEXT NOT NULL,
	pmid      TEXT NOT NULL,
	publisher TEXT NOT NULL,
	language  TEXT NOT NULL,
	year      TEXT NOT NULL,
	month     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year);
CREATE INDEX IF NOT EXISTS idx_publications_journal ON publications(journal);
`

// WriteSQLite stores rows in the publications table of the database at
// path, replacing its previous contents. Position preserves row order.
func WriteSQLite(ctx context.Context, path string, rows []types.Publication) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM publications`); err != nil {
		return fmt.Errorf("clearing publications: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (position, title, abstract, journal, pmid, publisher, language, year, month)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range rows {
		_, err := stmt.ExecContext(ctx,
			i, p.Title, p.Abstract, p.Journal, p.PMID,
			p.Country, p.Language, p.Year, p.Month,
		)
		if err != nil {
			return fmt.Errorf("inserting publication %s: %w", p.PMID, err)
		}
	}

	return tx.Commit()
}

// ReadSQLite loads the publications table written by WriteSQLite in
// position order.
func ReadSQLite(ctx context.Context, path string) ([]types.Publication, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx,
		`SELECT title, abstract, journal, pmid, publisher, language, year, month
		 FROM publications ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rs.Close()

	var rows []types.Publication
	for rs.Next() {
		var p types.Publication
		if err := rs.Scan(&p.Title, &p.Abstract, &p.Journal, &p.PMID,
			&p.Country, &p.Language, &p.Year, &p.Month); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		rows = append(rows, p)
	}
	return rows, rs.Err()
}
