// Package api exposes the visualization pipeline over HTTP and defines the
// wire types shared by the server and the CLI.
//
// # Endpoints
//
// POST /api/visualize: runs the full pipeline. Input errors map to 400, caller
// timeouts to 504; model and parse failures still answer 200 with a fallback
// document so the front end always has something to render.
//
// POST /api/classify: static analysis only, no model call.
//
// GET /api/health: a trivial model round trip, 503 when it fails.
//
// # Middleware
//
// Every route passes through request-id, request logging, CORS and bearer
// auth in that order. Preflight requests are answered before auth so browsers
// can discover the allowed headers.
//
// # Design Notes
//
// Error bodies are always {"error": "..."}. Status codes come from
// services.HTTPStatus so the CLI and the server agree on classification.
package api
