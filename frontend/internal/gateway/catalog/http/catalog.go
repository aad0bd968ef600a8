package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"netstream/frontend/internal/gateway"
	"netstream/frontend/pkg/model"
	"netstream/pkg/discovery"
	"netstream/pkg/logging"
	"netstream/pkg/metrics"
	"strconv"
	"time"

	"github.com/uber-go/tally/v6"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerID = "catalog-gateway-http"

// Gateway endpoint names used for metrics and spans.
const (
	endpointGetUser         = "GetUser"
	endpointListMovies      = "ListMovies"
	endpointGetMovie        = "GetMovie"
	endpointRecommendations = "Recommendations"
	endpointSubmitRating    = "SubmitRating"
)

// maxErrorBody bounds how much of an error response body is kept in errors.
const maxErrorBody = 512

type waiter interface {
	Wait(ctx context.Context) error
}

// Config defines the catalog gateway settings.
type Config struct {
	// ServiceName is the name the catalog service is registered under.
	ServiceName string
	// Scheme is the URL scheme used to reach instances, http by default.
	Scheme string
	// Timeout bounds a single request including reading the body.
	Timeout time.Duration
	// RecommendationLimit is sent as the n query parameter when positive.
	RecommendationLimit int
}

// Gateway defines a catalog service HTTP gateway.
type Gateway struct {
	registry discovery.Registry
	limiter  waiter
	client   *http.Client
	cfg      Config
	metrics  map[string]*metrics.GatewayMetrics
	logger   *zap.Logger
}

var _ gateway.Catalog = (*Gateway)(nil)

// New creates a new HTTP gateway for the catalog service.
func New(registry discovery.Registry, limiter waiter, scope tally.Scope, cfg Config, logger *zap.Logger) *Gateway {
	logger = logger.With(
		zap.String(logging.FieldComponent, "catalog-gateway"),
		zap.String(logging.FieldType, "http"),
	)
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	m := map[string]*metrics.GatewayMetrics{}
	for _, e := range []string{endpointGetUser, endpointListMovies, endpointGetMovie, endpointRecommendations, endpointSubmitRating} {
		m[e] = metrics.NewGatewayMetrics(scope, e)
	}
	return &Gateway{
		registry: registry,
		limiter:  limiter,
		client:   &http.Client{Timeout: cfg.Timeout},
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}
}

// GetUser returns a user by id.
func (g *Gateway) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	var u *model.User
	if err := g.do(ctx, endpointGetUser, http.MethodGet, "/users/"+strconv.Itoa(int(id)), nil, nil, &u); err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: empty response: %w", id, gateway.ErrNotFound)
	}
	return u, nil
}

// ListMovies returns the full catalog.
func (g *Gateway) ListMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := g.do(ctx, endpointListMovies, http.MethodGet, "/movies", nil, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie returns a movie by id or gateway.ErrNotFound.
func (g *Gateway) GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error) {
	var m *model.Movie
	if err := g.do(ctx, endpointGetMovie, http.MethodGet, "/movies/"+strconv.Itoa(int(id)), nil, nil, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("movie %d: empty response: %w", id, gateway.ErrNotFound)
	}
	return m, nil
}

// Recommendations returns movies recommended to a user by the given strategy.
func (g *Gateway) Recommendations(ctx context.Context, userID model.UserID, strategy model.Strategy, contentWeight float64) ([]model.Movie, error) {
	query := url.Values{}
	if strategy == model.StrategyHybrid {
		query.Set("content_weight", strconv.FormatFloat(contentWeight, 'f', -1, 64))
	}
	if g.cfg.RecommendationLimit > 0 {
		query.Set("n", strconv.Itoa(g.cfg.RecommendationLimit))
	}
	path := "/recommendations/" + string(strategy) + "/" + strconv.Itoa(int(userID))
	var movies []model.Movie
	if err := g.do(ctx, endpointRecommendations, http.MethodGet, path, query, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// SubmitRating sends a rating to the catalog service.
func (g *Gateway) SubmitRating(ctx context.Context, rating *model.Rating) error {
	return g.do(ctx, endpointSubmitRating, http.MethodPost, "/ratings", nil, rating, nil)
}

func (g *Gateway) do(ctx context.Context, endpoint string, method string, path string, query url.Values, in any, out any) (err error) {
	m := g.metrics[endpoint]
	m.Calls.Inc(1)
	sw := m.Latency.Start()
	defer sw.Stop()

	ctx, span := otel.Tracer(tracerID).Start(ctx, "Gateway/"+endpoint)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := g.limiter.Wait(ctx); err != nil {
		m.TransportErrors.Inc(1)
		return err
	}
	addrs, err := g.registry.ServiceAddresses(ctx, g.cfg.ServiceName)
	if err != nil {
		m.TransportErrors.Inc(1)
		return fmt.Errorf("resolve %s: %w", g.cfg.ServiceName, err)
	}
	u := url.URL{
		Scheme:   g.cfg.Scheme,
		Host:     addrs[rand.Intn(len(addrs))],
		Path:     path,
		RawQuery: query.Encode(),
	}
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", u.String()),
	)
	g.logger.Debug("Calling catalog service",
		zap.String("url", u.String()),
		zap.String("method", method),
	)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := g.client.Do(req)
	if err != nil {
		m.TransportErrors.Inc(1)
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		m.NotFoundErrors.Inc(1)
		return gateway.ErrNotFound
	} else if resp.StatusCode/100 != 2 {
		m.UpstreamErrors.Inc(1)
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s returned %d: %s", gateway.ErrUpstream, method, path, resp.StatusCode, bytes.TrimSpace(detail))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			m.UpstreamErrors.Inc(1)
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
	}
	m.Successes.Inc(1)
	return nil
}
