package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Common structured log field keys.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldType      = "type"
	FieldPort      = "port"
	FieldSignal    = "signal"
	FieldRoute     = "route"
	FieldUserID    = "userId"
	FieldMovieID   = "movieId"
	FieldEndpoint  = "endpoint"
)

// New builds a production zap logger at the given level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}
