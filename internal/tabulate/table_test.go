// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabulate

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/literature-analyzer/pkg/types"
)

func pub(year, journal, lang, country, abstract string) types.Publication {
	return types.Publication{
		Title:    "t",
		Abstract: abstract,
		Journal:  journal,
		PMID:     "1",
		Country:  country,
		Language: lang,
		Year:     year,
		Month:    "Jan",
	}
}

func sampleTable() *Table {
	return New([]types.Publication{
		pub("2021", "Cell", "eng", "United States", "alpha"),
		pub("2019", "Nature", "eng", "England", "beta"),
		pub("2021", "Nature", "chi", "China", "gamma"),
		pub(types.NoData, "Science", "eng", "United States", types.NoData),
		pub("2020", "Cell", "eng", "United States", "delta"),
		pub("2019", "Nature", "ger", "Germany", "epsilon"),
	})
}

// --- Table ---

func TestNewCopiesRows(t *testing.T) {
	rows := []types.Publication{pub("2020", "Cell", "eng", "England", "a")}
	tbl := New(rows)
	rows[0].Year = "1999"
	assert.Equal(t, "2020", tbl.Rows()[0].Year)
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.Rows())
	assert.Empty(t, tbl.YearCounts())
	assert.Equal(t, "", tbl.AbstractCorpus())
	_, ok := tbl.PeakYear()
	assert.False(t, ok)
}

func TestPage(t *testing.T) {
	var rows []types.Publication
	for i := 0; i < 25; i++ {
		rows = append(rows, pub(fmt.Sprint(2000+i), "J", "eng", "X", "a"))
	}
	tbl := New(rows)

	tests := []struct {
		name      string
		page      int
		size      int
		wantLen   int
		wantFirst string
		wantPages int
	}{
		{"first page", 1, 10, 10, "2000", 3},
		{"last partial page", 3, 10, 5, "2020", 3},
		{"clamped high", 9, 10, 5, "2020", 3},
		{"clamped low", 0, 10, 10, "2000", 3},
		{"default size", 1, 0, 25, "2000", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pages := tbl.Page(tt.page, tt.size)
			assert.Equal(t, tt.wantPages, pages)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0].Year)
		})
	}

	empty, pages := New(nil).Page(1, 10)
	assert.Empty(t, empty)
	assert.Equal(t, 0, pages)
}

// --- Aggregates ---

func TestYearCounts(t *testing.T) {
	got := sampleTable().YearCounts()
	assert.Equal(t, []Count{
		{"2019", 2},
		{"2020", 1},
		{"2021", 2},
		{types.NoData, 1},
	}, got)
}

func TestPeakYear(t *testing.T) {
	peak, ok := sampleTable().PeakYear()
	require.True(t, ok)
	// 2021 and 2019 both have two rows; 2021 is encountered first.
	assert.Equal(t, Count{"2021", 2}, peak)

	_, ok = New(nil).PeakYear()
	assert.False(t, ok)
}

func TestTopJournals(t *testing.T) {
	got := sampleTable().TopJournals(0)
	assert.Equal(t, []Count{
		{"Nature", 3},
		{"Cell", 2},
		{"Science", 1},
	}, got)

	assert.Equal(t, []Count{{"Nature", 3}}, sampleTable().TopJournals(1))
}

func TestTopJournalsTruncatesAndIsStable(t *testing.T) {
	var rows []types.Publication
	// 30 journals; journal i appears (i % 3) + 1 times, interleaved.
	for round := 0; round < 3; round++ {
		for i := 0; i < 30; i++ {
			if i%3 >= round {
				rows = append(rows, pub("2020", fmt.Sprintf("J%02d", i), "eng", "X", "a"))
			}
		}
	}
	got := New(rows).TopJournals(TopJournalLimit)
	require.Len(t, got, TopJournalLimit)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count, "descending count")
	}
	// The ten journals with 3 rows come first in encounter order.
	assert.Equal(t, Count{"J02", 3}, got[0])
	assert.Equal(t, Count{"J05", 3}, got[1])
	assert.Equal(t, Count{"J29", 3}, got[9])
	assert.Equal(t, Count{"J01", 2}, got[10])

	// Repeated calls give identical results.
	assert.Equal(t, got, New(rows).TopJournals(TopJournalLimit))
}

func TestLanguageCounts(t *testing.T) {
	got := sampleTable().LanguageCounts()
	assert.Equal(t, []Count{
		{"chi", 1},
		{"ger", 1},
		{"eng", 4},
	}, got)
}

func TestCountryCounts(t *testing.T) {
	got := sampleTable().CountryCounts()
	assert.Equal(t, []Count{
		{"United States", 3},
		{"England", 1},
		{"China", 1},
		{"Germany", 1},
	}, got)
}

func TestAbstractCorpus(t *testing.T) {
	assert.Equal(t, "alpha beta gamma No Data delta epsilon", sampleTable().AbstractCorpus())
	assert.Equal(t, "", New(nil).AbstractCorpus())
}

func TestAggregate(t *testing.T) {
	a := sampleTable().Aggregate()
	assert.Equal(t, 6, a.Rows)
	require.NotNil(t, a.PeakYear)
	assert.Equal(t, "2021", a.PeakYear.Label)
	assert.Len(t, a.Journals, 3)
	assert.Len(t, a.Countries, 4)
}

func TestAggregateEmptyTable(t *testing.T) {
	a := New(nil).Aggregate()
	assert.Equal(t, 0, a.Rows)
	assert.Nil(t, a.PeakYear)
	assert.NotNil(t, a.Years)
	assert.Empty(t, a.Years)
	assert.Empty(t, a.Journals)
	assert.Empty(t, a.Languages)
	assert.Empty(t, a.Countries)
}

// --- FormatSummary ---

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatSummary("CRISPR", sampleTable(), &buf)
	out := buf.String()

	assert.Contains(t, out, `6 publications for "CRISPR"`)
	assert.Contains(t, out, "Most publications in year: 2021 (2)")
	lines := strings.Split(out, "\n")
	var nature string
	for _, l := range lines {
		if strings.HasPrefix(l, "1 ") {
			nature = l
		}
	}
	assert.Contains(t, nature, "Nature")
}

func TestFormatSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatSummary("zzz", New(nil), &buf)
	assert.Equal(t, "No publications found for \"zzz\".\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
