package home

import (
	"context"
	"math/rand"
	"netstream/frontend/pkg/model"
	"netstream/pkg/fetch"
	"netstream/pkg/logging"
	"slices"
	"sync"

	"go.uber.org/zap"
)

const (
	trendingLimit    = 5
	recommendedLimit = 5
)

type catalogGateway interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
	Recommendations(ctx context.Context, userID model.UserID, strategy model.Strategy, contentWeight float64) ([]model.Movie, error)
}

// Catalog defines the catalog fetched for the home page and what is derived from it.
type Catalog struct {
	Movies   []model.Movie
	Featured *model.Movie
	Trending []model.Movie
}

// Recommended defines the personalised section of the home page. Fallback
// is set when the movies were derived locally because the recommendation
// request failed.
type Recommended struct {
	Movies   []model.Movie
	Fallback bool
}

// View is a snapshot of the home page state.
type View struct {
	Catalog     fetch.State[Catalog]
	Recommended fetch.State[Recommended]
}

// Controller defines a home page controller.
type Controller struct {
	gateway     catalogGateway
	logger      *zap.Logger
	pick        func(n int) int
	catalog     fetch.Field[Catalog]
	recommended fetch.Field[Recommended]
}

// New creates a home page controller.
func New(gateway catalogGateway, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "home"))
	return &Controller{gateway: gateway, logger: logger, pick: rand.Intn}
}

// Load fetches the catalog and, when user is not nil, the user's hybrid
// recommendations. Both requests run concurrently and Load returns once
// both have settled.
func (c *Controller) Load(ctx context.Context, user *model.User) {
	var wg sync.WaitGroup
	catalogCtx, catalogTok := c.catalog.Begin(ctx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		movies, err := c.gateway.ListMovies(catalogCtx)
		if err != nil {
			c.logger.Warn("Failed to fetch movies", zap.Error(err))
			c.catalog.Resolve(catalogTok, Catalog{}, err)
			return
		}
		c.catalog.Resolve(catalogTok, c.derive(movies), nil)
	}()

	if user == nil {
		c.recommended.Reset()
	} else {
		recCtx, recTok := c.recommended.Begin(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			movies, err := c.gateway.Recommendations(recCtx, user.ID, model.StrategyHybrid, model.DefaultContentWeight)
			if err == nil {
				c.recommended.Resolve(recTok, Recommended{Movies: movies}, nil)
				return
			}
			c.logger.Warn("Failed to fetch recommendations, falling back to unviewed movies",
				zap.Int(logging.FieldUserID, int(user.ID)),
				zap.Error(err),
			)
			var fallback []model.Movie
			if s := c.catalog.Wait(recCtx, catalogTok); s.Loaded() {
				fallback = Unviewed(s.Data.Movies, user, recommendedLimit)
			}
			c.recommended.Resolve(recTok, Recommended{Movies: fallback, Fallback: true}, nil)
		}()
	}
	wg.Wait()
}

// View returns the current state of the home page.
func (c *Controller) View() View {
	return View{Catalog: c.catalog.State(), Recommended: c.recommended.State()}
}

func (c *Controller) derive(movies []model.Movie) Catalog {
	res := Catalog{Movies: movies, Trending: Trending(movies, trendingLimit)}
	if len(movies) > 0 {
		res.Featured = &movies[c.pick(len(movies))]
	}
	return res
}

// Trending returns at most limit movies ordered by rating, highest first.
// Movies with equal ratings keep their catalog order.
func Trending(movies []model.Movie, limit int) []model.Movie {
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b model.Movie) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return 0
	})
	return sorted[:min(limit, len(sorted))]
}

// Unviewed returns at most limit catalog movies the user has not viewed, in catalog order.
func Unviewed(movies []model.Movie, user *model.User, limit int) []model.Movie {
	var res []model.Movie
	for _, m := range movies {
		if len(res) == limit {
			break
		}
		if !user.HasViewed(m.ID) {
			res = append(res, m)
		}
	}
	return res
}
