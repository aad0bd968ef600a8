package memory

import (
	"context"
	"netstream/pkg/discovery"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	_, err := r.ServiceAddresses(ctx, "catalog")
	assert.ErrorIs(t, err, discovery.ErrNotFound)

	r.Register("catalog", "localhost:8000", "localhost:8001", "localhost:8000")
	addrs, err := r.ServiceAddresses(ctx, "catalog")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:8000", "localhost:8001"}, addrs)

	r.Deregister("catalog", "localhost:8000")
	addrs, err = r.ServiceAddresses(ctx, "catalog")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:8001"}, addrs)

	r.Deregister("catalog", "localhost:8001")
	_, err = r.ServiceAddresses(ctx, "catalog")
	assert.ErrorIs(t, err, discovery.ErrNotFound)
}
