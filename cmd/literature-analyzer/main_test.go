// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/literature-analyzer/internal/export"
	"github.com/pdiddy/literature-analyzer/internal/pubmed"
	"github.com/pdiddy/literature-analyzer/internal/secrets"
)

// --- config ---

func setViper(t *testing.T, key string, value any) {
	t.Helper()
	prev := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, prev) })
}

func setSecrets(t *testing.T, s secrets.Secrets) {
	t.Helper()
	prev := loadedSecrets
	loadedSecrets = s
	t.Cleanup(func() { loadedSecrets = prev })
}

func TestEntrezConfigDefaults(t *testing.T) {
	setSecrets(t, nil)
	t.Setenv("EMAIL", "")
	t.Setenv("email", "")

	cfg := entrezConfig()
	assert.Equal(t, pubmed.DefaultTool, cfg.Tool)
	assert.Equal(t, pubmed.DefaultMaxResults, cfg.MaxResults)
	assert.Equal(t, pubmed.DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.Email)
}

func TestEntrezConfigEmailPrecedence(t *testing.T) {
	t.Setenv("EMAIL", "env@example.org")

	setSecrets(t, nil)
	assert.Equal(t, "env@example.org", entrezConfig().Email, "plain EMAIL is the last fallback")

	setSecrets(t, secrets.Secrets{secrets.EntrezEmail: "secret@example.org", secrets.NCBIAPIKey: "k123"})
	cfg := entrezConfig()
	assert.Equal(t, "secret@example.org", cfg.Email)
	assert.Equal(t, "k123", cfg.APIKey)

	setViper(t, "entrez.email", "flag@example.org")
	assert.Equal(t, "flag@example.org", entrezConfig().Email)
}

func TestDashboardConfig(t *testing.T) {
	setViper(t, "dashboard.port", 9000)
	setViper(t, "dashboard.max_words", 50)
	cfg := dashboardConfig()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 50, cfg.MaxWords)
}

// --- fetch ---

type stubSource struct {
	ids []string
	err error
}

func (s stubSource) Search(_ context.Context, _ string) (pubmed.SearchResult, error) {
	if s.err != nil {
		return pubmed.SearchResult{}, s.err
	}
	return pubmed.SearchResult{Count: len(s.ids), IDs: s.ids}, nil
}

func (s stubSource) FetchAll(_ context.Context, ids []string, progress pubmed.ProgressFunc) ([]*pubmed.Node, error) {
	var nodes []*pubmed.Node
	for _, id := range ids {
		raw := fmt.Sprintf(`<PubmedArticle><MedlineCitation><PMID>%s</PMID><Article>
<Journal><Title>Nature</Title><JournalIssue><PubDate><Year>2021</Year></PubDate></JournalIssue></Journal>
<ArticleTitle>Title %s</ArticleTitle></Article></MedlineCitation></PubmedArticle>`, id, id)
		var n pubmed.Node
		if err := xml.Unmarshal([]byte(raw), &n); err != nil {
			return nil, err
		}
		nodes = append(nodes, &n)
	}
	progress(pubmed.Progress{Batch: 1, Batches: 1, Records: len(nodes)})
	return nodes, nil
}

func TestFetchAndExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "CRISPR_pubmed_literature.csv")
	var stdout, stderr bytes.Buffer

	err := fetchAndExport(context.Background(), stubSource{ids: []string{"1", "2", "3"}},
		"CRISPR", export.FormatCSV, out, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "fetched batch 1/1 (3 records)")
	assert.Contains(t, stdout.String(), `3 publications for "CRISPR"`)
	assert.Contains(t, stdout.String(), "Most publications in year: 2021 (3)")
	assert.Contains(t, stdout.String(), "Wrote 3 rows to "+out)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := export.ReadCSV(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Title 1", rows[0].Title)
	assert.Equal(t, "No Data", rows[0].Abstract)
}

func TestFetchAndExportFailureWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	var stdout, stderr bytes.Buffer

	err := fetchAndExport(context.Background(), stubSource{err: errors.New("ESearch returned HTTP 503")},
		"CRISPR", export.FormatCSV, out, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, stdout.String())
}

// --- version ---

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "literature-analyzer dev\n", buf.String())
}
