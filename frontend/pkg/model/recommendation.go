package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWeight is returned when a content weight is outside [0, 1].
var ErrInvalidWeight = errors.New("content weight must be between 0 and 1")

// Strategy defines the server-side algorithm that produced a recommendation set.
type Strategy string

// Supported recommendation strategies. The values double as URL path segments.
const (
	StrategyContent       = Strategy("content-based")
	StrategyCollaborative = Strategy("collaborative")
	StrategyHybrid        = Strategy("hybrid")
)

// Content weight bounds for hybrid recommendations.
const (
	DefaultContentWeight = 0.5
	ContentWeightStep    = 0.1
)

// RecommendationSet defines an ordered list of recommended movies tagged by
// the strategy that produced it. ContentWeight is only meaningful for
// StrategyHybrid.
type RecommendationSet struct {
	Strategy      Strategy
	ContentWeight float64
	Movies        []Movie
}

// NormalizeContentWeight validates w and snaps it to the ContentWeightStep grid.
func NormalizeContentWeight(w float64) (float64, error) {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	return math.Round(w/ContentWeightStep) / (1 / ContentWeightStep), nil
}
