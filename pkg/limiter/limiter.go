package limiter

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter throttles outbound requests.
type Limiter struct {
	logger *zap.Logger
	l      *rate.Limiter
}

// New creates a limiter allowing limit requests per second with the given
// burst. A non-positive limit disables throttling.
func New(logger *zap.Logger, limit float64, burst int) *Limiter {
	r := rate.Limit(limit)
	if limit <= 0 {
		r = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{logger: logger, l: rate.NewLimiter(r, burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.l.Wait(ctx); err != nil {
		l.logger.Debug("Rate limit wait aborted",
			zap.Float64("limit", float64(l.l.Limit())),
			zap.Int("burst", l.l.Burst()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
