// Package daemon runs the long-lived algoviz API process.
//
// It ties the HTTP server to a flock-based single-instance lock in the data
// directory and, when the response cache is enabled, prunes expired entries
// on start and then hourly. Request handling lives in internal/api; this
// package only owns startup, shutdown and status.
package daemon
