package gateway

import (
	"context"
	"errors"
	"netstream/frontend/pkg/model"
)

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrUpstream is returned when the catalog service answers with a non-2xx status.
	ErrUpstream = errors.New("catalog service error")
)

// Catalog defines the operations of the external catalog and recommendation service.
type Catalog interface {
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	ListMovies(ctx context.Context) ([]model.Movie, error)
	GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error)
	// Recommendations returns the movies recommended to a user by the given
	// strategy. contentWeight is only sent for model.StrategyHybrid.
	Recommendations(ctx context.Context, userID model.UserID, strategy model.Strategy, contentWeight float64) ([]model.Movie, error)
	SubmitRating(ctx context.Context, rating *model.Rating) error
}
