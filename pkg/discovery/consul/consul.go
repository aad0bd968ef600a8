package consul

import (
	"context"
	"fmt"
	"netstream/pkg/discovery"
	"netstream/pkg/logging"

	consul "github.com/hashicorp/consul/api"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerId = "discovery-consul"

// Registry defines a Consul-based service registry.
type Registry struct {
	client *consul.Client
	logger *zap.Logger
}

// NewRegistry creates a new Consul-based service registry instance.
func NewRegistry(addr string, logger *zap.Logger) (*Registry, error) {
	logger = logger.With(
		zap.String(logging.FieldComponent, "discovery"),
		zap.String(logging.FieldType, "consul"),
	)
	config := consul.DefaultConfig()
	config.Address = addr
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &Registry{client, logger}, nil
}

// ServiceAddresses returns the list of addresses of healthy instances of the given service.
func (r *Registry) ServiceAddresses(ctx context.Context, serviceName string) ([]string, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "ServiceAddresses")
	defer span.End()
	opts := (&consul.QueryOptions{}).WithContext(ctx)
	entries, _, err := r.client.Health().Service(serviceName, "", true, opts)
	if err != nil {
		r.logger.Warn("Failed to query healthy instances", zap.String("serviceName", serviceName), zap.Error(err))
		return nil, err
	} else if len(entries) == 0 {
		return nil, discovery.ErrNotFound
	}
	var res []string
	for _, e := range entries {
		addr := e.Service.Address
		if addr == "" {
			addr = e.Node.Address
		}
		res = append(res, fmt.Sprintf("%s:%d", addr, e.Service.Port))
	}
	return res, nil
}
