package consul

import (
	"context"
	"net/http"
	"net/http/httptest"
	"netstream/pkg/discovery"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServiceAddresses(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr error
	}{
		{
			name: "service and node addresses",
			body: `[
				{"Node": {"Address": "10.0.0.1"}, "Service": {"Address": "catalog-1", "Port": 8000}},
				{"Node": {"Address": "10.0.0.2"}, "Service": {"Address": "", "Port": 8001}}
			]`,
			want: []string{"catalog-1:8000", "10.0.0.2:8001"},
		},
		{
			name:    "no healthy instances",
			body:    `[]`,
			wantErr: discovery.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/health/service/catalog", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r, err := NewRegistry(strings.TrimPrefix(srv.URL, "http://"), zap.NewNop())
			require.NoError(t, err)
			got, err := r.ServiceAddresses(context.Background(), "catalog")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
