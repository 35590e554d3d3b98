package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single fdbcli invocation
const DefaultTimeout = 10 * time.Second

// FDBCLI reads the status document by running
// fdbcli --exec "status json"
type FDBCLI struct {
	// Binary is the fdbcli executable, looked up in PATH when not absolute
	Binary string

	// ClusterFile is passed with -C. Empty lets fdbcli pick its default.
	ClusterFile string

	// Timeout is handed to fdbcli as --timeout and also bounds the process
	Timeout time.Duration
}

// NewFDBCLI creates a fetcher for the given cluster file
func NewFDBCLI(clusterFile string) *FDBCLI {
	return &FDBCLI{
		Binary:      "fdbcli",
		ClusterFile: clusterFile,
		Timeout:     DefaultTimeout,
	}
}

// WithBinary sets the fdbcli executable
func (f *FDBCLI) WithBinary(binary string) *FDBCLI {
	f.Binary = binary
	return f
}

// WithTimeout sets the per-invocation timeout
func (f *FDBCLI) WithTimeout(timeout time.Duration) *FDBCLI {
	f.Timeout = timeout
	return f
}

// Args returns the fdbcli arguments
func (f *FDBCLI) Args() []string {
	var args []string
	if f.ClusterFile != "" {
		args = append(args, "-C", f.ClusterFile)
	}
	secs := int(f.Timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return append(args, "--exec", "status json", "--timeout", strconv.Itoa(secs))
}

// Fetch runs fdbcli once
func (f *FDBCLI) Fetch(ctx context.Context) ([]byte, error) {
	if f.ClusterFile != "" {
		if _, err := os.Stat(f.ClusterFile); err != nil {
			return nil, fmt.Errorf("%w: cluster file: %w", ErrBindingFailure, err)
		}
	}
	bin, err := exec.LookPath(f.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBindingFailure, err)
	}

	// Leave fdbcli a moment to report its own timeout before killing it
	execCtx, cancel := context.WithTimeout(ctx, f.Timeout+time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, bin, f.Args()...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %w: %s", ErrSourceUnavailable, err, msg)
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: fdbcli printed nothing", ErrStatusNotFound)
	}
	return out, nil
}
