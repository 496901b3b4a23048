// Package server exposes the render pipeline over HTTP.
//
// # Routes
//
//	POST /render/{format}  payload in the body, artifact in the response
//	POST /preview          SVG of the interactive view, fitted to a viewport
//	GET  /healthz          liveness and build version
//	GET  /metrics          Prometheus exposition
//
// Render options come from query parameters: theme, base_path, cycles,
// detailed and scale. A YAML payload is recognized by its Content-Type
// (application/yaml, application/x-yaml or text/yaml).
//
// Errors are answered as JSON with the coded error's code and user message:
//
//	{"error": {"code": "INVALID_PAYLOAD", "message": "graph payload is empty"}}
//
// Every response carries an X-Request-ID header. Clients may supply their own.
package server
