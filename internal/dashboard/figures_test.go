// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/literature-analyzer/internal/tabulate"
)

func marshal(t *testing.T, f Figure) string {
	t.Helper()
	b, err := json.Marshal(f)
	require.NoError(t, err)
	return string(b)
}

func TestTrendFigure(t *testing.T) {
	f := TrendFigure([]tabulate.Count{{"2019", 2}, {"2021", 5}, {"No Data", 1}})
	require.Len(t, f.Data, 1)
	assert.Equal(t, "scatter", f.Data[0].Type)
	assert.Equal(t, "lines", f.Data[0].Mode)
	assert.Equal(t, []string{"2019", "2021", "No Data"}, f.Data[0].X)
	assert.Equal(t, []int{2, 5, 1}, f.Data[0].Y)
	assert.Equal(t, 3, f.Layout.XAxis.NTicks, "one tick per year")
	assert.Equal(t, "category", f.Layout.XAxis.Type)
}

func TestJournalFigure(t *testing.T) {
	f := JournalFigure([]tabulate.Count{{"Nature", 3}, {"Cell", 1}})
	tr := f.Data[0]
	assert.Equal(t, "treemap", tr.Type)
	assert.Equal(t, []string{"Nature", "Cell"}, tr.Labels)
	assert.Equal(t, []string{"", ""}, tr.Parents)
	assert.Equal(t, []int{3, 1}, tr.Values)
	assert.Equal(t, "Top 20 Publication Journal", f.Layout.Title.Text)
}

func TestLanguageFigure(t *testing.T) {
	in := []tabulate.Count{{"ger", 1}, {"eng", 4}}
	f := LanguageFigure(in)
	tr := f.Data[0]
	assert.Equal(t, "bar", tr.Type)
	assert.Equal(t, []string{"GER", "ENG"}, tr.X)
	assert.Equal(t, []string{"1", "4"}, tr.Text)
	assert.Equal(t, "outside", tr.TextPosition)
	assert.Equal(t, "ger", in[0].Label, "input is not modified")

	out := marshal(t, f)
	assert.Contains(t, out, `"tickangle":0`)
}

func TestCountryFigure(t *testing.T) {
	f := CountryFigure([]tabulate.Count{{"United States", 3}, {"England", 1}})
	tr := f.Data[0]
	assert.Equal(t, "choropleth", tr.Type)
	assert.Equal(t, "country names", tr.LocationMode)
	assert.Equal(t, []string{"United States", "England"}, tr.Locations)
	assert.Equal(t, []int{3, 1}, tr.Z)
	assert.Equal(t, "Blues", tr.ColorScale)

	out := marshal(t, f)
	assert.Contains(t, out, `"showcoastlines":true`)
	assert.Contains(t, out, `"projection":{"type":"equirectangular"}`)
}

func TestEmptyFigureOmitsData(t *testing.T) {
	out := marshal(t, TrendFigure(nil))
	assert.NotContains(t, out, `"x"`)
}
