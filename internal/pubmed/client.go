// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed searches PubMed through NCBI E-utilities, fetches full
// records in batches, and flattens them into Publication rows.
package pubmed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/httputil"
	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// eutilsBase is the public E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	// DefaultMaxResults is the retmax sent with every search.
	DefaultMaxResults = 250000

	// DefaultBatchSize is the EFetch limit on identifiers per request.
	DefaultBatchSize = 10000

	// DefaultTool is the tool name reported to NCBI.
	DefaultTool = "literature-analyzer"

	defaultUserAgent = "literature-analyzer/0.1"
	intervalNoKey    = 340 * time.Millisecond
	intervalWithKey  = 100 * time.Millisecond
)

// ErrEmptyQuery is returned when the search term is blank.
var ErrEmptyQuery = errors.New("query is empty: provide a keyword")

// SearchResult holds the identifiers returned by ESearch.
type SearchResult struct {
	// Count is the total number of matching records reported by PubMed,
	// which may exceed len(IDs) when the retmax cap applies.
	Count int `json:"count" yaml:"count"`

	// IDs are PMIDs in relevance order.
	IDs []string `json:"ids" yaml:"ids"`

	QueryTranslation string `json:"query_translation,omitempty" yaml:"query_translation,omitempty"`
}

// Client talks to the ESearch and EFetch endpoints. Requests are spaced
// by a limiter and never retried.
type Client struct {
	http    *http.Client
	cfg     types.EntrezConfig
	limiter *httputil.Limiter
	logger  *zap.Logger
}

// NewClient returns a Client with defaults applied to cfg. A nil
// httpClient gets one built from cfg.Timeout; a nil logger is a no-op.
func NewClient(httpClient *http.Client, cfg types.EntrezConfig, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = eutilsBase
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > DefaultBatchSize {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RequestInterval == 0 {
		cfg.RequestInterval = intervalNoKey
		if cfg.APIKey != "" {
			cfg.RequestInterval = intervalWithKey
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    httpClient,
		cfg:     cfg,
		limiter: httputil.NewLimiter(cfg.RequestInterval),
		logger:  logger,
	}
}

// Config returns the effective configuration after defaults.
func (c *Client) Config() types.EntrezConfig { return c.cfg }

// params returns the parameters every E-utilities call carries.
func (c *Client) params() url.Values {
	v := url.Values{
		"db":   {"pubmed"},
		"tool": {c.cfg.Tool},
	}
	if c.cfg.Email != "" {
		v.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		v.Set("api_key", c.cfg.APIKey)
	}
	return v
}

// Search runs ESearch for term with relevance ordering and returns the
// identifier list.
func (c *Client) Search(ctx context.Context, term string) (SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchResult{}, ErrEmptyQuery
	}

	params := c.params()
	params.Set("term", term)
	params.Set("sort", "relevance")
	params.Set("retmax", strconv.Itoa(c.cfg.MaxResults))
	params.Set("retmode", "xml")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/esearch.fcgi?"+params.Encode(), nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.limiter.Do(ctx, c.http, req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("ESearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SearchResult{}, fmt.Errorf("ESearch returned HTTP %d", resp.StatusCode)
	}

	var esr eSearchResult
	if err := xml.NewDecoder(resp.Body).Decode(&esr); err != nil {
		return SearchResult{}, fmt.Errorf("parsing ESearch response: %w", err)
	}
	if esr.Error != "" {
		return SearchResult{}, fmt.Errorf("ESearch error: %s", strings.TrimSpace(esr.Error))
	}

	out := SearchResult{
		IDs:              esr.IDs,
		QueryTranslation: esr.QueryTranslation,
	}
	if esr.Count != "" {
		n, err := strconv.Atoi(strings.TrimSpace(esr.Count))
		if err != nil {
			return SearchResult{}, fmt.Errorf("parsing ESearch count %q: %w", esr.Count, err)
		}
		out.Count = n
	}

	c.logger.Debug("esearch complete",
		zap.String("term", term),
		zap.Int("count", out.Count),
		zap.Int("ids", len(out.IDs)),
	)
	return out, nil
}

// Fetch runs one EFetch call for ids and returns the PubmedArticle records
// in response order. ids must not exceed the configured batch size.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]*Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > c.cfg.BatchSize {
		return nil, fmt.Errorf("batch of %d ids exceeds limit of %d", len(ids), c.cfg.BatchSize)
	}

	form := c.params()
	form.Set("id", strings.Join(ids, ","))
	form.Set("retmode", "xml")

	// POST keeps 10,000 comma-joined ids out of the URL.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/efetch.fcgi", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.limiter.Do(ctx, c.http, req)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EFetch returned HTTP %d", resp.StatusCode)
	}

	records, err := parseArticleSet(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}
	return records, nil
}

// parseArticleSet streams a PubmedArticleSet document and returns one Node
// per PubmedArticle. Book records are skipped.
func parseArticleSet(r io.Reader) ([]*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	var records []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "PubmedArticle":
			n := &Node{}
			if err := dec.DecodeElement(n, &se); err != nil {
				return nil, err
			}
			records = append(records, n)
		case "PubmedBookArticle", "DeleteCitation":
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case "ERROR":
			var msg string
			if err := dec.DecodeElement(&msg, &se); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("EFetch error: %s", strings.TrimSpace(msg))
		}
	}
}

// E-utilities XML structures.
type eSearchResult struct {
	XMLName          xml.Name `xml:"eSearchResult"`
	Count            string   `xml:"Count"`
	IDs              []string `xml:"IdList>Id"`
	QueryTranslation string   `xml:"QueryTranslation"`
	Error            string   `xml:"ERROR"`
}
