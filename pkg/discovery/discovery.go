package discovery

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no service addresses are found.
var ErrNotFound = errors.New("no service addresses found")

// Registry defines a source of service addresses.
type Registry interface {
	// ServiceAddresses returns the list of addresses of
	// active instances of the given service.
	ServiceAddresses(ctx context.Context, serviceName string) ([]string, error)
}
