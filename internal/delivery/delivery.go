// Package delivery defines the contract every transport entry point
// implements, so main can start HTTP servers and workers uniformly.
package delivery

import "context"

// Delivery is a long-running transport endpoint. Serve blocks until the
// endpoint stops; shutdown is driven by fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
