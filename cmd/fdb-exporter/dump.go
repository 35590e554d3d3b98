package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cuemby/fdbexporter/pkg/config"
	"github.com/cuemby/fdbexporter/pkg/metrics"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Scrape once and print the metrics in text exposition format",
	Long: `Fetch a single status document, convert it and write the resulting
FoundationDB metrics to stdout. Useful for checking a status file or a
cluster connection without starting the HTTP server.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return dump(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

// dump runs a single tick and writes every gathered family to w
func dump(ctx context.Context, cfg *config.Config, w io.Writer) error {
	reg := metrics.NewRegistry()
	collector := metrics.NewCollector(newFetcher(cfg), metrics.NewExporter(reg), cfg.Delay)
	if err := collector.Collect(ctx); err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	families, err := reg.Gatherer().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
