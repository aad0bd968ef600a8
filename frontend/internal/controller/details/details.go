package details

import (
	"context"
	"fmt"
	"netstream/frontend/internal/gateway"
	"netstream/frontend/pkg/model"
	"netstream/pkg/fetch"
	"netstream/pkg/logging"
	"sync"
	"time"

	"go.uber.org/zap"
)

const similarLimit = 4

// DefaultConfirmDelay is how long a submitted rating confirmation stays visible.
const DefaultConfirmDelay = 2 * time.Second

type catalogGateway interface {
	GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error)
	ListMovies(ctx context.Context) ([]model.Movie, error)
	SubmitRating(ctx context.Context, rating *model.Rating) error
}

// View is a snapshot of the movie details page state.
type View struct {
	ID      model.MovieID
	Movie   fetch.State[*model.Movie]
	Similar fetch.State[[]model.Movie]
	Form    Form
}

// Controller defines a movie details page controller.
type Controller struct {
	gateway      catalogGateway
	logger       *zap.Logger
	confirmDelay time.Duration

	movie   fetch.Field[*model.Movie]
	similar fetch.Field[[]model.Movie]

	mu   sync.Mutex
	id   model.MovieID
	form ratingForm
}

// New creates a movie details controller. A non-positive confirmDelay
// falls back to DefaultConfirmDelay.
func New(gateway catalogGateway, confirmDelay time.Duration, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "details"))
	if confirmDelay <= 0 {
		confirmDelay = DefaultConfirmDelay
	}
	return &Controller{gateway: gateway, logger: logger, confirmDelay: confirmDelay}
}

// Load switches the page to the given movie, discarding any rating in
// progress, then fetches the movie and, if that succeeds, the catalog to
// derive similar titles.
func (c *Controller) Load(ctx context.Context, id model.MovieID) {
	c.mu.Lock()
	c.id = id
	c.form.reset()
	c.mu.Unlock()

	c.similar.Reset()
	movieCtx, movieTok := c.movie.Begin(ctx)
	movie, err := c.gateway.GetMovie(movieCtx, id)
	if err == nil && movie == nil {
		err = fmt.Errorf("movie %d: %w", id, gateway.ErrNotFound)
	}
	if err != nil {
		c.logger.Warn("Failed to fetch movie", zap.Int(logging.FieldMovieID, int(id)), zap.Error(err))
	}
	if !c.movie.Resolve(movieTok, movie, err) || err != nil {
		return
	}

	similarCtx, similarTok := c.similar.Begin(ctx)
	movies, err := c.gateway.ListMovies(similarCtx)
	if err != nil {
		c.logger.Warn("Failed to fetch similar movies", zap.Int(logging.FieldMovieID, int(id)), zap.Error(err))
	}
	if c.movie.Current(movieTok) {
		c.similar.Resolve(similarTok, Similar(movie, movies, similarLimit), err)
	}
}

// View returns the current state of the page.
func (c *Controller) View() View {
	c.mu.Lock()
	id, form := c.id, c.form.snapshot()
	c.mu.Unlock()
	return View{
		ID:      id,
		Movie:   c.movie.State(),
		Similar: c.similar.State(),
		Form:    form,
	}
}

// Similar returns at most limit catalog movies other than movie sharing at
// least one genre with it, in catalog order.
func Similar(movie *model.Movie, catalog []model.Movie, limit int) []model.Movie {
	var res []model.Movie
	for i := range catalog {
		if len(res) == limit {
			break
		}
		if catalog[i].ID != movie.ID && catalog[i].SharesGenre(movie) {
			res = append(res, catalog[i])
		}
	}
	return res
}
