// Package server runs the storefront transports.
//
// It binds the HTTP API and, when configured, the gRPC health endpoint, then
// stops both gracefully once the process is signalled.
package server
