// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/dashboard"
	"github.com/pdiddy/literature-analyzer/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Long: `Serve starts the dashboard. Enter a keyword in the sidebar to fetch every
matching PubMed record; the charts, word cloud and data table are drawn from
the cached result until a new keyword is entered or Refresh is pressed.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", dashboard.DefaultHost, "listen host")
	serveCmd.Flags().Int("port", dashboard.DefaultPort, "listen port")
	serveCmd.Flags().Int("page-size", dashboard.DefaultPageSize, "rows per page of the data table")
	_ = viper.BindPFlag("dashboard.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("dashboard.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("dashboard.page_size", serveCmd.Flags().Lookup("page-size"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	sess := session.New(newPubmedClient(), logger)
	srv, err := dashboard.NewServer(sess, dashboardConfig(), logger)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("dashboard server: %w", err)
		}
		return nil
	case <-sigChan:
	}

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	return nil
}
