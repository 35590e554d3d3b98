/*
Package status models the FoundationDB cluster status document.

The document is the JSON value stored under the special key
\xff\xff/status/json, the same one printed by `fdbcli --exec "status json"`.
Most of it is optional: FoundationDB leaves out whole subtrees that do not
apply at the moment (no moving_data while nothing is being relocated, no
storage_wiggler when the perpetual wiggle is disabled, no processes while the
cluster controller is unreachable).

# Absence

Every field below the root is a pointer, a map or a slice. nil means the
field was not in the document, which is different from a present zero:

	s, err := status.Decode(raw)
	if d := s.Cluster; d != nil && d.Data != nil && d.Data.TotalKVSizeBytes != nil {
		// present, possibly 0
	}

Consumers must not treat nil as zero. The metrics package only writes a gauge
when the matching field is present, so a gauge keeps its last value across
scrapes where the field is missing.

# Endpoints

Process and coordinator addresses come in several shapes:

	10.0.0.1:4500
	10.0.0.1:4500:tls
	[2001:db8::1]:4500
	[::1]:4500:tls
	fdb-log-1.fdb.svc.cluster.local:4501
	fdb-log-1.fdb.svc.cluster.local:4501:tls

ParseEndpoint classifies them into IPv4, IPv6 and DNS endpoints. String
returns the exact text that was parsed so the value can be used as a stable
metric label.

# Data state

DataState.Phase returns a StateName whose ordinal is exported as a gauge.
Unknown names, including names added by newer FoundationDB releases, decode
to StateUnknown instead of failing the document. So does a state without a
name.

# Errors

Decode fails the whole document on malformed JSON, on a value of the wrong
type and on a malformed endpoint. The returned *DecodeError carries the path
of the offending field:

	decode status at cluster.data.total_kv_size_bytes: json: cannot unmarshal string ...
	decode status at cluster.processes.7f3a.address: invalid network address "host": missing port
*/
package status
