// Package delivery defines the contract for inbound transports.
package delivery

import "context"

// Delivery is a long-running inbound server (HTTP today) started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
