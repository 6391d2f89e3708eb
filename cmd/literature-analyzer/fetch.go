// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/export"
	"github.com/pdiddy/literature-analyzer/internal/pubmed"
	"github.com/pdiddy/literature-analyzer/internal/tabulate"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all PubMed records for a keyword and export them",
	Long: `Fetch searches PubMed for a keyword, retrieves every matching record in
batches of up to 10,000, flattens them into a table and writes the table to a
file. A short summary (row count, peak year, top journals) is printed to
stdout. Any failed request aborts the run without writing a file.

Formats: csv (default), xlsx, json, yaml, sqlite.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("keyword", "", "search keyword (required)")
	fetchCmd.Flags().String("format", string(export.FormatCSV), "output format: csv, xlsx, json, yaml or sqlite")
	fetchCmd.Flags().String("out", "", "output path (default: {keyword}_pubmed_literature.{ext})")
	_ = fetchCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	keyword, _ := cmd.Flags().GetString("keyword")
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return fmt.Errorf("--keyword must not be empty")
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = export.Filename(keyword, format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fetchAndExport(ctx, newPubmedClient(), keyword, format, out, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// fetchAndExport runs the pipeline for keyword, writes the table to out
// and prints a summary to w. Progress lines go to progress.
func fetchAndExport(ctx context.Context, src pubmed.Source, keyword string, format export.Format, out string, w, progress io.Writer) error {
	start := time.Now()
	fmt.Fprintf(progress, "Searching PubMed for %q...\n", keyword)

	coll, err := pubmed.Collect(ctx, src, keyword, func(p pubmed.Progress) {
		fmt.Fprintf(progress, "  fetched batch %d/%d (%d records)\n", p.Batch, p.Batches, p.Records)
	})
	if err != nil {
		return err
	}
	logger.Info("fetch completed",
		zap.String("keyword", keyword),
		zap.Int("total", coll.Total),
		zap.Int("rows", len(coll.Publications)),
		zap.Duration("duration", time.Since(start)),
	)

	if err := export.WriteFile(ctx, out, format, coll.Publications); err != nil {
		return err
	}

	fmt.Fprintf(progress, "%d of %d matching records retrieved in %s\n",
		len(coll.Publications), coll.Total, time.Since(start).Round(time.Millisecond))
	tabulate.FormatSummary(keyword, tabulate.New(coll.Publications), w)
	fmt.Fprintf(w, "\nWrote %d rows to %s\n", len(coll.Publications), out)
	return nil
}
