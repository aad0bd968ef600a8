package configs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServiceConfig defines the frontend configuration.
type ServiceConfig struct {
	API              apiConfig              `yaml:"api"`
	Session          sessionConfig          `yaml:"session"`
	ServiceDiscovery serviceDiscoveryConfig `yaml:"serviceDiscovery"`
	Limiter          limiterConfig          `yaml:"limiter"`
	Prometheus       prometheusConfig       `yaml:"prometheus"`
	Tracing          TracingConfig          `yaml:"tracing"`
	RatingForm       ratingFormConfig       `yaml:"ratingForm"`
	Log              logConfig              `yaml:"log"`
}

type apiConfig struct {
	Scheme              string        `yaml:"scheme" validate:"oneof=http https"`
	Address             string        `yaml:"address" validate:"required,hostname_port"`
	ServiceName         string        `yaml:"serviceName" validate:"required"`
	Timeout             time.Duration `yaml:"timeout" validate:"gt=0"`
	RecommendationLimit int           `yaml:"recommendationLimit" validate:"gte=0"`
}

type sessionConfig struct {
	DemoUserID int `yaml:"demoUserID" validate:"gt=0"`
}

type serviceDiscoveryConfig struct {
	Consul consulConfig `yaml:"consul"`
}

type consulConfig struct {
	Address string `yaml:"address" validate:"omitempty,hostname_port"`
}

type limiterConfig struct {
	Rate  float64 `yaml:"rate" validate:"gte=0"`
	Burst int     `yaml:"burst" validate:"gte=0"`
}

type prometheusConfig struct {
	MetricsPort int `yaml:"metricsPort" validate:"gte=0,lte=65535"`
}

// TracingConfig defines the OTLP trace exporter settings. An empty URL
// disables tracing.
type TracingConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

type ratingFormConfig struct {
	ConfirmDelay time.Duration `yaml:"confirmDelay" validate:"gt=0"`
}

type logConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is present.
func Default() ServiceConfig {
	var cfg ServiceConfig
	cfg.API.Scheme = "http"
	cfg.API.Address = "localhost:8000"
	cfg.API.ServiceName = "catalog"
	cfg.API.Timeout = 10 * time.Second
	cfg.Session.DemoUserID = 1
	cfg.Limiter.Rate = 20
	cfg.Limiter.Burst = 10
	cfg.RatingForm.ConfirmDelay = 2 * time.Second
	cfg.Log.Level = "info"
	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a YAML configuration from r on top of the defaults and
// validates it.
func Decode(r io.Reader) (ServiceConfig, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ServiceConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return ServiceConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration file at path. A missing file yields the defaults.
func Load(path string) (cfg ServiceConfig, err error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return ServiceConfig{}, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Decode(f)
}
