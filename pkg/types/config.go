// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "literature-analyzer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the NCBI E-utilities client.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities root (esearch.fcgi and efetch.fcgi live below it).
	// Empty means the public NCBI endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Email identifies the caller to NCBI. Required by the E-utilities usage
	// policy; requests without it may be rejected.
	Email string `json:"email" yaml:"email"`

	// APIKey is an optional NCBI API key that raises the request rate limit.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Tool is the application name sent with every request.
	Tool string `json:"tool" yaml:"tool"`

	// MaxResults caps the number of identifiers returned by a search (default 250000).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// BatchSize is the number of identifiers per fetch request (default 10000).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// RequestInterval is the minimum spacing between requests. Zero selects
	// 340ms without an API key and 100ms with one; a negative value disables spacing.
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// DashboardConfig holds settings for the web dashboard.
type DashboardConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	// PageSize is the number of rows per page of the data table (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// RequestTimeout bounds every request except keyword submission, which
	// runs for as long as the fetch takes (default 60s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// MaxWords caps the word cloud (default 200).
	MaxWords int `json:"max_words" yaml:"max_words"`
}
