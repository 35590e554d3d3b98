package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// TLSSuffix marks an endpoint that FoundationDB reaches over TLS.
const TLSSuffix = ":tls"

// EndpointKind identifies which shape an Endpoint holds
type EndpointKind uint8

const (
	EndpointIPv4 EndpointKind = iota + 1
	EndpointIPv6
	EndpointDNS
)

func (k EndpointKind) String() string {
	switch k {
	case EndpointIPv4:
		return "ipv4"
	case EndpointIPv6:
		return "ipv6"
	case EndpointDNS:
		return "dns"
	default:
		return "invalid"
	}
}

var (
	// ErrMissingPort is returned when the text has no colon at all
	ErrMissingPort = errors.New("missing port")
	// ErrParsingHost is returned when the host part is empty
	ErrParsingHost = errors.New("invalid host")
	// ErrParsingPort is returned when the port is not an unsigned 16-bit integer
	ErrParsingPort = errors.New("invalid port")
)

// ParseError describes an endpoint text that could not be parsed
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid network address %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Endpoint is a process or coordinator address as written in the status
// document: an IPv4 or IPv6 socket address, or a hostname with a port, each
// optionally followed by TLSSuffix.
//
// The zero value is not a valid endpoint; use ParseEndpoint.
type Endpoint struct {
	kind     EndpointKind
	addrPort netip.AddrPort
	host     string
	port     uint16
	tls      bool
	// text is host:port exactly as accepted, without the TLS suffix
	text string
}

// ParseEndpoint parses "10.0.0.1:4500", "[::1]:4500" or "host.example:4500",
// each optionally suffixed with ":tls".
func ParseEndpoint(s string) (Endpoint, error) {
	text, tls := strings.CutSuffix(s, TLSSuffix)

	if ap, err := netip.ParseAddrPort(text); err == nil {
		ep := Endpoint{addrPort: ap, tls: tls, text: text}
		if ap.Addr().Is4() {
			ep.kind = EndpointIPv4
		} else {
			ep.kind = EndpointIPv6
		}
		return ep, nil
	}

	// Not an IP socket address; the last colon separates hostname and port.
	i := strings.LastIndexByte(text, ':')
	if i < 0 {
		return Endpoint{}, &ParseError{Input: s, Err: ErrMissingPort}
	}
	host, portText := text[:i], text[i+1:]

	if host == "" {
		return Endpoint{}, &ParseError{Input: s, Err: ErrParsingHost}
	}

	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return Endpoint{}, &ParseError{Input: s, Err: ErrParsingPort}
	}

	return Endpoint{
		kind: EndpointDNS,
		host: host,
		port: uint16(port),
		tls:  tls,
		text: text,
	}, nil
}

// Kind reports which shape the endpoint holds
func (e Endpoint) Kind() EndpointKind { return e.kind }

// TLS reports whether the endpoint carried the TLS suffix
func (e Endpoint) TLS() bool { return e.tls }

// AddrPort returns the socket address of an IPv4 or IPv6 endpoint
func (e Endpoint) AddrPort() (netip.AddrPort, bool) {
	if e.kind == EndpointIPv4 || e.kind == EndpointIPv6 {
		return e.addrPort, true
	}
	return netip.AddrPort{}, false
}

// Host returns the host part: the IP for socket addresses, the name for DNS
func (e Endpoint) Host() string {
	switch e.kind {
	case EndpointIPv4, EndpointIPv6:
		return e.addrPort.Addr().String()
	default:
		return e.host
	}
}

// Port returns the port number
func (e Endpoint) Port() uint16 {
	switch e.kind {
	case EndpointIPv4, EndpointIPv6:
		return e.addrPort.Port()
	default:
		return e.port
	}
}

// IsValid reports whether e was produced by a successful parse
func (e Endpoint) IsValid() bool { return e.kind != 0 }

// String renders the endpoint exactly as it was parsed
func (e Endpoint) String() string {
	if !e.IsValid() {
		return ""
	}
	if e.tls {
		return e.text + TLSSuffix
	}
	return e.text
}

// MarshalText implements encoding.TextMarshaler
func (e Endpoint) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Endpoint) UnmarshalText(b []byte) error {
	ep, err := ParseEndpoint(string(b))
	if err != nil {
		return err
	}
	*e = ep
	return nil
}

// UnmarshalJSON accepts a JSON string holding an endpoint
func (e *Endpoint) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return e.UnmarshalText([]byte(s))
}
