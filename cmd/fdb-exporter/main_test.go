package main

import (
	"bytes"
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuemby/fdbexporter/pkg/config"
	"github.com/cuemby/fdbexporter/pkg/fetcher"
	"github.com/cuemby/fdbexporter/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:         0,
		Addr:         netip.MustParseAddr("127.0.0.1"),
		Delay:        time.Second,
		FDBCLI:       "fdbcli",
		FetchTimeout: time.Second,
		LogLevel:     log.ErrorLevel,
	}
}

func TestNewFetcher(t *testing.T) {
	cfg := testConfig()
	cfg.ClusterFile = "/etc/foundationdb/fdb.cluster"

	cli, ok := newFetcher(cfg).(*fetcher.FDBCLI)
	require.True(t, ok)
	assert.Equal(t, "fdbcli", cli.Binary)
	assert.Equal(t, "/etc/foundationdb/fdb.cluster", cli.ClusterFile)
	assert.Equal(t, time.Second, cli.Timeout)

	cfg.StatusFile = "/tmp/status.json"
	file, ok := newFetcher(cfg).(*fetcher.File)
	require.True(t, ok)
	assert.Equal(t, "/tmp/status.json", file.Path)
}

// TestDump tests the one-shot exposition from a status file
func TestDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	doc := `{"cluster":{"data":{"total_kv_size_bytes":42,"state":{"healthy":true,"name":"healthy"}}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := testConfig()
	cfg.StatusFile = path

	var out bytes.Buffer
	require.NoError(t, dump(context.Background(), cfg, &out))

	text := out.String()
	assert.Contains(t, text, "# TYPE fdb_cluster_total_kv_size_bytes gauge")
	assert.Contains(t, text, "fdb_cluster_total_kv_size_bytes 42\n")
	assert.Contains(t, text, "fdb_cluster_healthy 1\n")
	assert.Contains(t, text, "fdb_exporter_last_scrape_error 0\n")
	assert.Contains(t, text, `fdb_exporter_fetch_duration_seconds_count{source="file"} 1`)
	assert.NotContains(t, text, "fdb_cluster_partition_count")
	assert.NotContains(t, text, "fdb_cluster_generation")
	assert.NotContains(t, text, "fdb_client_database_available")
	assert.NotContains(t, text, "fdb_backup_paused")
}

func TestDumpMissingFile(t *testing.T) {
	cfg := testConfig()
	cfg.StatusFile = filepath.Join(t.TempDir(), "missing.json")

	var out bytes.Buffer
	err := dump(context.Background(), cfg, &out)
	assert.ErrorIs(t, err, fetcher.ErrStatusNotFound)
	assert.Zero(t, out.Len())
}

// TestRunExporterBindingFailure tests that a missing cluster file stops the
// exporter with an error
func TestRunExporterBindingFailure(t *testing.T) {
	cfg := testConfig()
	cfg.ClusterFile = filepath.Join(t.TempDir(), "missing.cluster")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := runExporter(ctx, cfg)
	assert.ErrorIs(t, err, fetcher.ErrBindingFailure)
}

// TestRunExporterShutdown tests that cancellation is a clean exit
func TestRunExporterShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cluster":{}}`), 0o644))

	cfg := testConfig()
	cfg.StatusFile = path

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runExporter(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runExporter did not return after cancel")
	}
}
