// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabulate holds the publication table and derives the grouped
// counts that feed the dashboard charts.
package tabulate

import (
	"sort"
	"strings"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// TopJournalLimit is the number of journals kept by TopJournals by default.
const TopJournalLimit = 20

// Count is one group of a grouped count.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Table is an ordered, immutable list of publications.
type Table struct {
	rows []types.Publication
}

// New returns a Table over rows in the given order.
func New(rows []types.Publication) *Table {
	return &Table{rows: append([]types.Publication(nil), rows...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []types.Publication {
	if t == nil {
		return nil
	}
	return append([]types.Publication(nil), t.rows...)
}

// Page returns the rows of 1-based page n with size rows per page and the
// total number of pages. Out-of-range pages are clamped.
func (t *Table) Page(n, size int) ([]types.Publication, int) {
	if size <= 0 {
		size = 100
	}
	total := t.Len()
	pages := (total + size - 1) / size
	if pages == 0 {
		return nil, 0
	}
	n = max(1, min(n, pages))
	start := (n - 1) * size
	end := min(start+size, total)
	return t.rows[start:end:end], pages
}

// countBy groups rows by key. Groups appear in first-encounter order so a
// stable sort afterwards breaks ties by that order.
func (t *Table) countBy(key func(types.Publication) string) []Count {
	if t == nil {
		return nil
	}
	index := make(map[string]int)
	var counts []Count
	for _, r := range t.rows {
		k := key(r)
		if i, ok := index[k]; ok {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count{Label: k, Count: 1})
	}
	return counts
}

func byCountDesc(c []Count) {
	sort.SliceStable(c, func(i, j int) bool { return c[i].Count > c[j].Count })
}

func byCountAsc(c []Count) {
	sort.SliceStable(c, func(i, j int) bool { return c[i].Count < c[j].Count })
}

// YearCounts returns publications per year sorted by year label ascending.
// Labels sort as strings, so NoData follows the numeric years.
func (t *Table) YearCounts() []Count {
	c := t.countBy(func(p types.Publication) string { return p.Year })
	sort.SliceStable(c, func(i, j int) bool { return c[i].Label < c[j].Label })
	return c
}

// PeakYear returns the year with the most publications. On a tie the year
// encountered first wins. ok is false for an empty table.
func (t *Table) PeakYear() (peak Count, ok bool) {
	c := t.countBy(func(p types.Publication) string { return p.Year })
	if len(c) == 0 {
		return Count{}, false
	}
	byCountDesc(c)
	return c[0], true
}

// TopJournals returns the n journals with the most publications in
// descending order. n <= 0 selects TopJournalLimit.
func (t *Table) TopJournals(n int) []Count {
	if n <= 0 {
		n = TopJournalLimit
	}
	c := t.countBy(func(p types.Publication) string { return p.Journal })
	byCountDesc(c)
	if len(c) > n {
		c = c[:n:n]
	}
	return c
}

// LanguageCounts returns publications per language in ascending count order.
func (t *Table) LanguageCounts() []Count {
	c := t.countBy(func(p types.Publication) string { return p.Language })
	byCountAsc(c)
	return c
}

// CountryCounts returns publications per journal country in descending count order.
func (t *Table) CountryCounts() []Count {
	c := t.countBy(func(p types.Publication) string { return p.Country })
	byCountDesc(c)
	return c
}

// AbstractCorpus joins all abstracts with a single space in table order.
func (t *Table) AbstractCorpus() string {
	if t == nil {
		return ""
	}
	abstracts := make([]string, len(t.rows))
	for i, r := range t.rows {
		abstracts[i] = r.Abstract
	}
	return strings.Join(abstracts, " ")
}

// Aggregates bundles every grouped view of a table.
type Aggregates struct {
	Rows      int     `json:"rows" yaml:"rows"`
	Years     []Count `json:"years" yaml:"years"`
	PeakYear  *Count  `json:"peak_year,omitempty" yaml:"peak_year,omitempty"`
	Journals  []Count `json:"journals" yaml:"journals"`
	Languages []Count `json:"languages" yaml:"languages"`
	Countries []Count `json:"countries" yaml:"countries"`
}

// Aggregate computes all grouped views. Empty tables produce empty slices
// and a nil PeakYear.
func (t *Table) Aggregate() Aggregates {
	a := Aggregates{
		Rows:      t.Len(),
		Years:     nonNil(t.YearCounts()),
		Journals:  nonNil(t.TopJournals(TopJournalLimit)),
		Languages: nonNil(t.LanguageCounts()),
		Countries: nonNil(t.CountryCounts()),
	}
	if peak, ok := t.PeakYear(); ok {
		a.PeakYear = &peak
	}
	return a
}

func nonNil(c []Count) []Count {
	if c == nil {
		return []Count{}
	}
	return c
}
