package delivery

import "context"

// Delivery is an inbound adapter started by the application lifecycle.
// Serve blocks until ctx is cancelled or the delivery fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
