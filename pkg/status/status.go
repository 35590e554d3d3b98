package status

// Status is the root of the document stored under \xff\xff/status/json
type Status struct {
	Client  *Client  `json:"client,omitempty"`
	Cluster *Cluster `json:"cluster,omitempty"`
}

// Client is the view of the cluster from the client that produced the document.
// jq: .client
type Client struct {
	ClusterFile    *ClusterFile    `json:"cluster_file,omitempty"`
	Coordinators   *Coordinators   `json:"coordinators,omitempty"`
	DatabaseStatus *DatabaseStatus `json:"database_status,omitempty"`
	Messages       []Message       `json:"messages,omitempty"`
	Timestamp      *int64          `json:"timestamp,omitempty"`
}

// ClusterFile describes the cluster file used by the client.
// jq: .client.cluster_file
type ClusterFile struct {
	Path     *string `json:"path,omitempty"`
	UpToDate *bool   `json:"up_to_date,omitempty"`
}

// Coordinators lists the coordination servers known to the client.
// jq: .client.coordinators
type Coordinators struct {
	Coordinators    []Coordinator `json:"coordinators,omitempty"`
	QuorumReachable *bool         `json:"quorum_reachable,omitempty"`
}

// Coordinator is a single coordination server.
// jq: .client.coordinators.coordinators[]
type Coordinator struct {
	Address   *Endpoint `json:"address,omitempty"`
	Reachable *bool     `json:"reachable,omitempty"`
	Protocol  *string   `json:"protocol,omitempty"`
}

// DatabaseStatus tells whether the database can serve requests.
// jq: .client.database_status
type DatabaseStatus struct {
	Available *bool `json:"available,omitempty"`
	Healthy   *bool `json:"healthy,omitempty"`
}

// Message is an informational or error message attached to a node
type Message struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Rate is the counter/hz pair FoundationDB reports for throughput values
type Rate struct {
	Counter   *int64   `json:"counter,omitempty"`
	Hz        *float64 `json:"hz,omitempty"`
	Roughness *float64 `json:"roughness,omitempty"`
}

// Lag is a delay measured both in seconds and in versions
type Lag struct {
	Seconds  *float64 `json:"seconds,omitempty"`
	Versions *int64   `json:"versions,omitempty"`
}
