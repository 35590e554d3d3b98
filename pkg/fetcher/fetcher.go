package fetcher

import (
	"context"
	"errors"

	"github.com/cuemby/fdbexporter/pkg/status"
)

var (
	// ErrSourceUnavailable means the cluster could not be asked for its
	// status this time. The next tick tries again.
	ErrSourceUnavailable = errors.New("status source unavailable")

	// ErrStatusNotFound means the source answered without a status document
	ErrStatusNotFound = errors.New("status document not found")

	// ErrBindingFailure means the client side is unusable: the cluster file
	// or the fdbcli binary is missing. Retrying cannot fix it.
	ErrBindingFailure = errors.New("fdb client binding failure")
)

// Fetcher returns the raw status document
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Func adapts a function to the Fetcher interface
type Func func(ctx context.Context) ([]byte, error)

// Fetch calls f(ctx)
func (f Func) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Source names the kind of f for metric labels and logs: "fdbcli", "file"
// or "custom"
func Source(f Fetcher) string {
	switch f.(type) {
	case *FDBCLI:
		return "fdbcli"
	case *File:
		return "file"
	default:
		return "custom"
	}
}

// FetchStatus fetches and decodes one status document. Decode failures are
// returned as *status.DecodeError.
func FetchStatus(ctx context.Context, f Fetcher) (*status.Status, error) {
	raw, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return status.Decode(raw)
}
