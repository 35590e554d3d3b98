package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/fdbexporter/pkg/api"
	"github.com/cuemby/fdbexporter/pkg/config"
	"github.com/cuemby/fdbexporter/pkg/fetcher"
	"github.com/cuemby/fdbexporter/pkg/log"
	"github.com/cuemby/fdbexporter/pkg/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fdb-exporter",
	Short: "Prometheus exporter for FoundationDB cluster status",
	Long: `fdb-exporter periodically runs "status json" through fdbcli, decodes
the document and publishes it as Prometheus metrics on /metrics.

Every setting can also be given as an environment variable prefixed with
FDB_EXPORTER_, e.g. FDB_EXPORTER_PORT=9090.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runExporter(ctx, cfg)
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"fdb-exporter version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().AddFlagSet(config.Flags())

	rootCmd.AddCommand(dumpCmd)
}

// loadConfig resolves flags, environment and config file, then sets up
// logging
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	log.Init(log.Config{
		Level:      cfg.LogLevel,
		JSONOutput: cfg.LogJSON,
	})
	return cfg, nil
}

// newFetcher picks the status source: a fixed file when one is configured,
// fdbcli otherwise
func newFetcher(cfg *config.Config) fetcher.Fetcher {
	if cfg.StatusFile != "" {
		return fetcher.NewFile(cfg.StatusFile)
	}
	return fetcher.NewFDBCLI(cfg.ClusterFile).
		WithBinary(cfg.FDBCLI).
		WithTimeout(cfg.FetchTimeout)
}

// runExporter runs the collector and the HTTP server until ctx ends or one
// of them fails. A clean shutdown returns nil.
func runExporter(ctx context.Context, cfg *config.Config) error {
	logger := log.WithComponent("main")

	reg := metrics.NewRegistry()
	reg.RegisterRuntimeCollectors()
	exporter := metrics.NewExporter(reg)
	collector := metrics.NewCollector(newFetcher(cfg), exporter, cfg.Delay)
	server := api.NewServer(reg.Handler(), collector, Version)

	logger.Info().
		Str("version", Version).
		Str("listen", cfg.ListenAddr()).
		Str("cluster_file", cfg.ClusterFile).
		Str("status_file", cfg.StatusFile).
		Msg("Starting exporter")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() { errCh <- collector.Run(ctx) }()
	go func() { errCh <- server.Run(ctx, cfg.ListenAddr()) }()

	err := <-errCh
	cancel()
	<-errCh

	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("Shutdown complete")
		return nil
	}
	return err
}
