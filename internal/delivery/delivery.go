// Package delivery holds the outer surfaces that expose the navigation use
// case.
package delivery

import "context"

// Delivery is a long-running surface started by the application root.
// Serve blocks until the surface is shut down.
type Delivery interface {
	Serve(ctx context.Context) error
}
