// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the literature-analyzer CLI. The
// serve subcommand runs the web dashboard; fetch runs one keyword through
// the pipeline and writes the table to a file.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is created in PersistentPreRunE once --debug is known.
var logger = zap.NewNop()

// rootCmd is the base command for the literature-analyzer CLI.
var rootCmd = &cobra.Command{
	Use:   "literature-analyzer",
	Short: "Explore PubMed publication trends for a research keyword",
	Long: `literature-analyzer retrieves every PubMed record matching a keyword through
the NCBI E-utilities, flattens the records into a table and summarizes it:
publications per year, top journals, languages, publishing countries and the
most frequent abstract terms.

Use serve for the interactive dashboard or fetch for a one-shot export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		debug := viper.GetBool("debug")
		l, err := newLogger(debug)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l

		dir := viper.GetString("secrets-dir")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Info("loaded secrets", zap.String("dir", dir), zap.Strings("keys", s.Keys()))
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./literature-analyzer.yaml or ~/.config/literature-analyzer/literature-analyzer.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable development logging")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory holding entrez-email and ncbi-api-key files")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("secrets-dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("literature-analyzer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "literature-analyzer"))
		}
	}

	viper.SetEnvPrefix("LITERATURE_ANALYZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// newLogger returns a zap logger. Debug selects the development config
// (console encoding, debug level); otherwise the production config is used.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
