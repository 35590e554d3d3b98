/*
Package api serves the exporter's HTTP endpoints.

	GET /metrics   Prometheus text exposition of the exporter registry
	GET /health    200 while the process is serving
	GET /ready     200 once a scrape has succeeded, 503 before

/health and /ready answer with JSON:

	{"status":"ready","timestamp":"...","checks":{"collector":"ok"},"last_success":"..."}

Run blocks until its context is cancelled and then shuts the server down,
giving in-flight requests five seconds to finish.
*/
package api
