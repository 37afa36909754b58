// Package delivery defines the long-running delivery surfaces of the
// service.
package delivery

import "context"

// Delivery is a long-running delivery mechanism, started by the composition
// root and stopped through its fx lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
