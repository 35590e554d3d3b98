// Package fetcher obtains the raw status document, either from fdbcli or
// from a file, and classifies failures into ErrBindingFailure,
// ErrSourceUnavailable and ErrStatusNotFound.
package fetcher
