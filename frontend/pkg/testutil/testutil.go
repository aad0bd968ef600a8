package testutil

import (
	"netstream/frontend/internal/app"
	cataloggateway "netstream/frontend/internal/gateway/catalog/http"
	"netstream/frontend/pkg/model"
	"netstream/pkg/discovery"
	"netstream/pkg/limiter"
	"netstream/pkg/logging"
	"time"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

// CatalogServiceName is the registry name the test catalog service is expected under.
const CatalogServiceName = "catalog"

// NewTestApp creates an App for userID talking to the catalog service
// resolved through registry over HTTP.
func NewTestApp(registry discovery.Registry, userID model.UserID, confirmDelay time.Duration, logger *zap.Logger) *app.App {
	logger = logger.With(zap.String(logging.FieldService, "frontend"))
	gw := cataloggateway.New(registry, limiter.New(logger, 0, 0), tally.NoopScope, cataloggateway.Config{
		ServiceName: CatalogServiceName,
		Scheme:      "http",
		Timeout:     5 * time.Second,
	}, logger)
	return app.New(gw, app.Config{DemoUserID: userID, ConfirmDelay: confirmDelay}, logger)
}
