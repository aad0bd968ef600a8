package metrics

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uber-go/tally/v6"
	"github.com/uber-go/tally/v6/prometheus"
	"go.uber.org/zap"
)

// NewMetricsReporter creates a root metrics scope. When metricsPort is
// positive the scope is exported for Prometheus on /metrics at that port,
// otherwise a no-op scope is returned.
func NewMetricsReporter(logger *zap.Logger, serviceName string, metricsPort int) (scope tally.Scope, closer io.Closer) {
	if metricsPort <= 0 {
		return tally.NoopScope, io.NopCloser(nil)
	}
	reporter := prometheus.NewReporter(prometheus.Options{})
	scope, closer = tally.NewRootScope(tally.ScopeOptions{
		Tags:            map[string]string{"service": serviceName},
		CachedReporter:  reporter,
		SanitizeOptions: &prometheus.DefaultSanitizerOpts,
	}, 10*time.Second)
	mux := http.NewServeMux()
	mux.Handle("/metrics", reporter.HTTPHandler())
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), mux); err != nil {
			logger.Error("Failed to start metrics handler", zap.Error(err))
		}
	}()

	counter := scope.Counter("service_started")
	counter.Inc(1)
	return scope, closer
}

// GatewayMetrics defines metrics of one outbound gateway endpoint.
type GatewayMetrics struct {
	Calls           tally.Counter
	NotFoundErrors  tally.Counter
	TransportErrors tally.Counter
	UpstreamErrors  tally.Counter
	Successes       tally.Counter
	Latency         tally.Timer
}

// NewGatewayMetrics creates metrics for a gateway endpoint.
func NewGatewayMetrics(scope tally.Scope, endpoint string) *GatewayMetrics {
	scope = scope.Tagged(map[string]string{
		"component": "gateway",
		"endpoint":  endpoint,
	})
	return &GatewayMetrics{
		Calls: scope.Counter("calls"),
		NotFoundErrors: scope.Tagged(map[string]string{
			"error": "not_found",
		}).Counter("error"),
		TransportErrors: scope.Tagged(map[string]string{
			"error": "transport",
		}).Counter("error"),
		UpstreamErrors: scope.Tagged(map[string]string{
			"error": "upstream",
		}).Counter("error"),
		Successes: scope.Counter("success"),
		Latency:   scope.Timer("latency"),
	}
}
