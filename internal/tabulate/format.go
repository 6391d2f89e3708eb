// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabulate

import (
	"fmt"
	"io"
	"strings"
)

// FormatSummary writes a human-readable overview of a table to w: row
// count, peak year and the top journals.
func FormatSummary(keyword string, t *Table, w io.Writer) {
	if t.Len() == 0 {
		fmt.Fprintf(w, "No publications found for %q.\n", keyword)
		return
	}

	fmt.Fprintf(w, "%d publications for %q\n", t.Len(), keyword)
	if peak, ok := t.PeakYear(); ok {
		fmt.Fprintf(w, "Most publications in year: %s (%d)\n", peak.Label, peak.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-4s  %-60s  %s\n", "Rank", "Journal", "Count")
	fmt.Fprintln(w, strings.Repeat("-", 74))
	for i, c := range t.TopJournals(10) {
		fmt.Fprintf(w, "%-4d  %-60s  %d\n", i+1, truncate(c.Label, 60), c.Count)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
