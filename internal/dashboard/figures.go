// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"strconv"
	"strings"

	"github.com/pdiddy/literature-analyzer/internal/tabulate"
)

// Figure is a Plotly figure as accepted by Plotly.newPlot. Only the
// attributes the dashboard sets are modelled.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Which fields apply depends on Type.
type Trace struct {
	Type string `json:"type"`
	Mode string `json:"mode,omitempty"`

	X []string `json:"x,omitempty"`
	Y []int    `json:"y,omitempty"`

	// treemap
	Labels  []string `json:"labels,omitempty"`
	Parents []string `json:"parents,omitempty"`
	Values  []int    `json:"values,omitempty"`

	// choropleth
	Locations    []string  `json:"locations,omitempty"`
	LocationMode string    `json:"locationmode,omitempty"`
	Z            []int     `json:"z,omitempty"`
	ColorScale   string    `json:"colorscale,omitempty"`
	ReverseScale bool      `json:"reversescale,omitempty"`
	ColorBar     *ColorBar `json:"colorbar,omitempty"`

	Text         []string `json:"text,omitempty"`
	TextTemplate string   `json:"texttemplate,omitempty"`
	TextPosition string   `json:"textposition,omitempty"`
	Marker       *Marker  `json:"marker,omitempty"`
}

// Marker styles trace markers.
type Marker struct {
	Line *Line `json:"line,omitempty"`
}

// Line styles a marker outline.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// ColorBar labels a continuous color scale.
type ColorBar struct {
	Title Title `json:"title"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Layout is the figure layout.
type Layout struct {
	Title  *Title `json:"title,omitempty"`
	Height int    `json:"height,omitempty"`
	XAxis  *Axis  `json:"xaxis,omitempty"`
	YAxis  *Axis  `json:"yaxis,omitempty"`
	Geo    *Geo   `json:"geo,omitempty"`
}

// Axis configures a cartesian axis. TickAngle is a pointer so that an
// explicit zero is sent.
type Axis struct {
	Title     *Title `json:"title,omitempty"`
	Type      string `json:"type,omitempty"`
	NTicks    int    `json:"nticks,omitempty"`
	TickAngle *int   `json:"tickangle,omitempty"`
}

// Geo configures the map of a choropleth.
type Geo struct {
	ShowCoastlines bool        `json:"showcoastlines"`
	Projection     *Projection `json:"projection,omitempty"`
}

// Projection selects a map projection.
type Projection struct {
	Type string `json:"type"`
}

func split(counts []tabulate.Count) ([]string, []int) {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		values[i] = c.Count
	}
	return labels, values
}

// TrendFigure plots publications per year with one tick per year.
func TrendFigure(years []tabulate.Count) Figure {
	x, y := split(years)
	return Figure{
		Data: []Trace{{Type: "scatter", Mode: "lines", X: x, Y: y}},
		Layout: Layout{
			Title:  &Title{Text: "Number of Publications Over the Years"},
			Height: 600,
			XAxis:  &Axis{Title: &Title{Text: "Year"}, Type: "category", NTicks: len(x)},
			YAxis:  &Axis{Title: &Title{Text: "Number of Publications"}},
		},
	}
}

// JournalFigure draws the top journals as a treemap.
func JournalFigure(journals []tabulate.Count) Figure {
	labels, values := split(journals)
	return Figure{
		Data: []Trace{{
			Type:    "treemap",
			Labels:  labels,
			Parents: make([]string, len(labels)),
			Values:  values,
		}},
		Layout: Layout{
			Title:  &Title{Text: "Top 20 Publication Journal"},
			Height: 800,
		},
	}
}

// LanguageFigure draws a bar per language code, upper-cased, with the
// count printed above each bar.
func LanguageFigure(languages []tabulate.Count) Figure {
	x, y := split(languages)
	text := make([]string, len(y))
	for i := range x {
		x[i] = strings.ToUpper(x[i])
		text[i] = strconv.Itoa(y[i])
	}
	flat := 0
	return Figure{
		Data: []Trace{{
			Type:         "bar",
			X:            x,
			Y:            y,
			Text:         text,
			TextTemplate: "%{text}",
			TextPosition: "outside",
		}},
		Layout: Layout{
			Height: 500,
			XAxis:  &Axis{Title: &Title{Text: "Language"}, Type: "category", TickAngle: &flat},
			YAxis:  &Axis{Title: &Title{Text: "Number of Publications"}},
		},
	}
}

// CountryFigure shades countries by publication count.
func CountryFigure(countries []tabulate.Count) Figure {
	locations, z := split(countries)
	return Figure{
		Data: []Trace{{
			Type:         "choropleth",
			Locations:    locations,
			LocationMode: "country names",
			Z:            z,
			Text:         locations,
			ColorScale:   "Blues",
			// plotly.js orders Blues dark to light; reversed, high counts are dark.
			ReverseScale: true,
			ColorBar:     &ColorBar{Title: Title{Text: "Count"}},
			Marker:       &Marker{Line: &Line{Color: "darkgray", Width: 0.5}},
		}},
		Layout: Layout{
			Height: 600,
			Geo: &Geo{
				ShowCoastlines: true,
				Projection:     &Projection{Type: "equirectangular"},
			},
		},
	}
}
