package main

import (
	"context"
	"flag"
	"netstream/frontend/configs"
	"netstream/frontend/internal/app"
	cataloggateway "netstream/frontend/internal/gateway/catalog/http"
	shellhandler "netstream/frontend/internal/handler/shell"
	"netstream/frontend/pkg/model"
	"netstream/pkg/discovery"
	"netstream/pkg/discovery/consul"
	"netstream/pkg/discovery/memory"
	"netstream/pkg/limiter"
	"netstream/pkg/logging"
	"netstream/pkg/metrics"
	"netstream/pkg/tracing"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const serviceName = "frontend"

func main() {
	configPath := flag.String("config", "defaults.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := configs.Load(*configPath)
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	log = log.With(zap.String(logging.FieldService, serviceName))
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Tracing.URL != "" {
		tp, err := tracing.NewProvider(ctx, cfg.Tracing.URL, serviceName)
		if err != nil {
			log.Fatal("Failed to initialize tracing provider", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("Failed to shutdown tracing provider", zap.Error(err))
			}
		}()
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	var registry discovery.Registry
	if addr := cfg.ServiceDiscovery.Consul.Address; addr != "" {
		registry, err = consul.NewRegistry(addr, log)
		if err != nil {
			log.Fatal("Failed to create consul registry", zap.Error(err))
		}
	} else {
		r := memory.NewRegistry()
		r.Register(cfg.API.ServiceName, cfg.API.Address)
		registry = r
	}

	scope, closer := metrics.NewMetricsReporter(log, serviceName, cfg.Prometheus.MetricsPort)
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn("Failed to close Prometheus reporter scope", zap.Error(err))
		}
	}()

	l := limiter.New(log, cfg.Limiter.Rate, cfg.Limiter.Burst)
	gw := cataloggateway.New(registry, l, scope, cataloggateway.Config{
		ServiceName:         cfg.API.ServiceName,
		Scheme:              cfg.API.Scheme,
		Timeout:             cfg.API.Timeout,
		RecommendationLimit: cfg.API.RecommendationLimit,
	}, log)
	a := app.New(gw, app.Config{
		DemoUserID:   model.UserID(cfg.Session.DemoUserID),
		ConfirmDelay: cfg.RatingForm.ConfirmDelay,
	}, log)
	h := shellhandler.New(a, log)

	log.Info("Starting the frontend", zap.String("api", cfg.API.Address))
	done := make(chan error, 1)
	go func() {
		done <- h.Serve(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case <-ctx.Done():
		log.Info("Got signal, shutting down")
	case err := <-done:
		if err != nil {
			log.Warn("Shell stopped with error", zap.Error(err))
		}
	}
}
