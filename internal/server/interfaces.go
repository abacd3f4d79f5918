package server

import "context"

// Server defines the lifecycle contract of the storefront servers.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts every enabled
	// transport down gracefully. It returns the first transport failure.
	Run(ctx context.Context) error
}

// transport is one listening server: HTTP or gRPC.
type transport interface {
	name() string
	listen() error
	addr() string
	closeListener() error
	serve(ctx context.Context) error
	shutdown(ctx context.Context) error
}
