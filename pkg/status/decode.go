package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DecodeError reports a status document that could not be decoded. Path is
// the dotted path of the offending field when it is known.
type DecodeError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode status at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decode status at %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a raw status document. Missing keys leave the matching
// fields nil; any syntax error, mistyped value or malformed endpoint fails
// the whole document with a *DecodeError.
func Decode(data []byte) (*Status, error) {
	var s Status
	err := json.Unmarshal(data, &s)
	if err == nil {
		return &s, nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var parseErr *ParseError
	switch {
	case errors.As(err, &syntaxErr):
		return nil, &DecodeError{Offset: syntaxErr.Offset, Err: err}
	case errors.As(err, &typeErr):
		return nil, &DecodeError{Path: typeErr.Field, Offset: typeErr.Offset, Err: err}
	case errors.As(err, &parseErr):
		// encoding/json does not attach a field path to errors returned by
		// custom unmarshalers, so look the endpoint up again.
		if derr := locateEndpointError(data); derr != nil {
			return nil, derr
		}
		return nil, &DecodeError{Err: err}
	default:
		return nil, &DecodeError{Err: err}
	}
}

// endpointProbe mirrors the places in the document that hold endpoints
type endpointProbe struct {
	Client *struct {
		Coordinators *struct {
			Coordinators []struct {
				Address *string `json:"address"`
			} `json:"coordinators"`
		} `json:"coordinators"`
	} `json:"client"`
	Cluster *struct {
		Processes map[string]struct {
			Address *string `json:"address"`
		} `json:"processes"`
	} `json:"cluster"`
}

// locateEndpointError returns the first malformed endpoint in data, in
// document order for lists and sorted key order for maps.
func locateEndpointError(data []byte) *DecodeError {
	var probe endpointProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}

	if c := probe.Client; c != nil && c.Coordinators != nil {
		for i, coord := range c.Coordinators.Coordinators {
			if coord.Address == nil {
				continue
			}
			if _, err := ParseEndpoint(*coord.Address); err != nil {
				return &DecodeError{
					Path: fmt.Sprintf("client.coordinators.coordinators[%d].address", i),
					Err:  err,
				}
			}
		}
	}

	if c := probe.Cluster; c != nil {
		ids := make([]string, 0, len(c.Processes))
		for id := range c.Processes {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			addr := c.Processes[id].Address
			if addr == nil {
				continue
			}
			if _, err := ParseEndpoint(*addr); err != nil {
				return &DecodeError{
					Path: strings.Join([]string{"cluster", "processes", id, "address"}, "."),
					Err:  err,
				}
			}
		}
	}

	return nil
}
