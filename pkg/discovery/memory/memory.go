package memory

import (
	"context"
	"netstream/pkg/discovery"
	"slices"
	"sync"
)

// Registry defines an in-memory service registry seeded with static addresses.
type Registry struct {
	sync.RWMutex
	serviceAddrs map[string][]string
}

// NewRegistry creates a new in-memory service registry instance.
func NewRegistry() *Registry {
	return &Registry{serviceAddrs: make(map[string][]string)}
}

// Register adds host:port addresses for a service. Duplicates are ignored.
func (r *Registry) Register(serviceName string, hostPorts ...string) {
	r.Lock()
	defer r.Unlock()
	for _, hp := range hostPorts {
		if !slices.Contains(r.serviceAddrs[serviceName], hp) {
			r.serviceAddrs[serviceName] = append(r.serviceAddrs[serviceName], hp)
		}
	}
}

// Deregister removes an address of a service.
func (r *Registry) Deregister(serviceName string, hostPort string) {
	r.Lock()
	defer r.Unlock()
	r.serviceAddrs[serviceName] = slices.DeleteFunc(r.serviceAddrs[serviceName], func(s string) bool {
		return s == hostPort
	})
}

// ServiceAddresses returns the registered addresses of the given service.
func (r *Registry) ServiceAddresses(_ context.Context, serviceName string) ([]string, error) {
	r.RLock()
	defer r.RUnlock()
	if len(r.serviceAddrs[serviceName]) == 0 {
		return nil, discovery.ErrNotFound
	}
	return slices.Clone(r.serviceAddrs[serviceName]), nil
}
