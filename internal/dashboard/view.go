// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"html/template"
	"strings"
	"time"

	"github.com/pdiddy/literature-analyzer/internal/export"
	"github.com/pdiddy/literature-analyzer/internal/pubmed"
	"github.com/pdiddy/literature-analyzer/internal/session"
	"github.com/pdiddy/literature-analyzer/internal/tabulate"
	"github.com/pdiddy/literature-analyzer/internal/wordcloud"
	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// Panel ids of the chart containers; a figure is only present when its
// aggregate has data.
const (
	panelTrend     = "trend"
	panelJournals  = "journals"
	panelLanguages = "languages"
	panelCountries = "countries"
)

// pageView is the data the index template renders.
type pageView struct {
	State        string
	Keyword      string
	KeywordUpper string
	RunID        string
	Error        string
	Notice       string
	Total        int
	Rows         int
	Duration     string
	Progress     pubmed.Progress

	PeakYear *tabulate.Count
	Figures  map[string]Figure
	Words    []wordcloud.Term

	Columns  []string
	Page     []types.Publication
	PageNum  int
	Pages    int
	Exports  []export.Format
	Filename string
}

// Ready reports whether results are available.
func (v pageView) Ready() bool { return v.State == session.Ready.String() }

// Fetching reports whether a run is in progress.
func (v pageView) Fetching() bool { return v.State == session.Fetching.String() }

// HasFigure reports whether the panel has a chart to draw.
func (v pageView) HasFigure(panel string) bool {
	_, ok := v.Figures[panel]
	return ok
}

func (s *Server) buildView(snap session.Snapshot, page int, notice string) pageView {
	v := pageView{
		State:        snap.State.String(),
		Keyword:      snap.Keyword,
		KeywordUpper: strings.ToUpper(snap.Keyword),
		RunID:        snap.RunID,
		Notice:       notice,
		Total:        snap.Total,
		Progress:     snap.Progress,
		Columns:      types.Columns,
		Figures:      map[string]Figure{},
	}
	if snap.Err != nil {
		v.Error = snap.Err.Error()
	}
	if snap.State != session.Ready {
		return v
	}

	v.Duration = snap.Duration.Round(time.Millisecond).String()
	v.Exports = export.StreamFormats
	v.Filename = export.Filename(snap.Keyword, export.FormatCSV)

	agg := snap.Table.Aggregate()
	v.Rows = agg.Rows
	v.PeakYear = agg.PeakYear
	if len(agg.Years) > 0 {
		v.Figures[panelTrend] = TrendFigure(agg.Years)
	}
	if len(agg.Journals) > 0 {
		v.Figures[panelJournals] = JournalFigure(agg.Journals)
	}
	if len(agg.Languages) > 0 {
		v.Figures[panelLanguages] = LanguageFigure(agg.Languages)
	}
	if len(agg.Countries) > 0 {
		v.Figures[panelCountries] = CountryFigure(agg.Countries)
	}
	v.Words = wordcloud.Generate(snap.Table.AbstractCorpus(), wordcloud.Options{MaxWords: s.config.MaxWords})

	v.Page, v.Pages = snap.Table.Page(page, s.config.PageSize)
	v.PageNum = max(1, min(page, v.Pages))
	return v
}

// plasma approximates the plasma colormap in ten steps.
var plasma = []string{
	"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
	"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
}

var templateFuncs = template.FuncMap{
	"wordColor": func(i int) string { return plasma[i%len(plasma)] },
	"add":       func(a, b int) int { return a + b },
	"sub":       func(a, b int) int { return a - b },
}
