package http

import "context"

// Invoker defines the request entry point.
// This interface allows for mocking and alternative implementations.
type Invoker interface {
	// Invoke performs one request and decodes the response.
	Invoke(ctx context.Context, opts RequestOptions) (*Response, error)
}

// Ensure Client implements Invoker interface.
var _ Invoker = (*Client)(nil)
