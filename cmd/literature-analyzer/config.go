// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/pubmed"
	"github.com/pdiddy/literature-analyzer/internal/secrets"
	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// defaultTimeout bounds a single E-utilities request. EFetch responses for
// a full batch run to tens of megabytes.
const defaultTimeout = 5 * time.Minute

func init() {
	rootCmd.PersistentFlags().String("email", "", "contact email sent to NCBI (or .secrets/entrez-email, or $EMAIL)")
	rootCmd.PersistentFlags().String("api-key", "", "NCBI API key (or .secrets/ncbi-api-key)")
	_ = viper.BindPFlag("entrez.email", rootCmd.PersistentFlags().Lookup("email"))
	_ = viper.BindPFlag("entrez.api_key", rootCmd.PersistentFlags().Lookup("api-key"))

	viper.SetDefault("entrez.tool", pubmed.DefaultTool)
	viper.SetDefault("entrez.max_results", pubmed.DefaultMaxResults)
	viper.SetDefault("entrez.batch_size", pubmed.DefaultBatchSize)
	viper.SetDefault("entrez.timeout", defaultTimeout)
}

// entrezConfig assembles the E-utilities settings. Flags, environment and
// config file (through viper) take precedence over .secrets/ files, which
// take precedence over a plain EMAIL environment variable.
func entrezConfig() types.EntrezConfig {
	cfg := types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("entrez.timeout"),
			UserAgent: viper.GetString("entrez.user_agent"),
		},
		BaseURL:         viper.GetString("entrez.base_url"),
		Email:           loadedSecrets.Get(secrets.EntrezEmail, viper.GetString("entrez.email")),
		APIKey:          loadedSecrets.Get(secrets.NCBIAPIKey, viper.GetString("entrez.api_key")),
		Tool:            viper.GetString("entrez.tool"),
		MaxResults:      viper.GetInt("entrez.max_results"),
		BatchSize:       viper.GetInt("entrez.batch_size"),
		RequestInterval: viper.GetDuration("entrez.request_interval"),
	}
	if cfg.Email == "" {
		cfg.Email = firstEnv("EMAIL", "email")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

// newPubmedClient builds the E-utilities client from configuration and
// warns when no contact email is set.
func newPubmedClient() *pubmed.Client {
	cfg := entrezConfig()
	if cfg.Email == "" {
		logger.Warn("no contact email configured; NCBI asks every E-utilities caller to provide one",
			zap.String("hint", "set --email, LITERATURE_ANALYZER_ENTREZ_EMAIL, .secrets/entrez-email or EMAIL"))
	}
	return pubmed.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
}

// dashboardConfig reads the dashboard settings.
func dashboardConfig() types.DashboardConfig {
	return types.DashboardConfig{
		Host:           viper.GetString("dashboard.host"),
		Port:           viper.GetInt("dashboard.port"),
		PageSize:       viper.GetInt("dashboard.page_size"),
		RequestTimeout: viper.GetDuration("dashboard.request_timeout"),
		MaxWords:       viper.GetInt("dashboard.max_words"),
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
