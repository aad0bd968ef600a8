package profile

import (
	"context"
	"errors"
	"netstream/frontend/pkg/model"
	"netstream/pkg/fetch"
	"netstream/pkg/logging"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrNoUser is returned when the profile is requested without a user.
var ErrNoUser = errors.New("please log in to view your profile")

type catalogGateway interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
}

// Partition defines the catalog entries a user liked and viewed.
type Partition struct {
	Liked  []model.Movie
	Viewed []model.Movie
}

// View is a snapshot of the profile page.
type View struct {
	User   *model.User
	Movies fetch.State[Partition]
}

// Controller defines a profile page controller.
type Controller struct {
	gateway catalogGateway
	logger  *zap.Logger
	user    atomic.Pointer[model.User]
	movies  fetch.Field[Partition]
}

// New creates a profile page controller.
func New(gateway catalogGateway, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "profile"))
	return &Controller{gateway: gateway, logger: logger}
}

// Load fetches the catalog once and partitions it for user. Without a user
// nothing is fetched and ErrNoUser is returned.
func (c *Controller) Load(ctx context.Context, user *model.User) error {
	if user == nil {
		c.user.Store(nil)
		c.movies.Reset()
		return ErrNoUser
	}
	c.user.Store(user)
	ctx, tok := c.movies.Begin(ctx)
	movies, err := c.gateway.ListMovies(ctx)
	if err != nil {
		c.logger.Warn("Failed to fetch movies", zap.Int(logging.FieldUserID, int(user.ID)), zap.Error(err))
		c.movies.Resolve(tok, Partition{}, err)
		return nil
	}
	c.movies.Resolve(tok, Split(movies, user), nil)
	return nil
}

// View returns the current state of the page.
func (c *Controller) View() View {
	return View{User: c.user.Load(), Movies: c.movies.State()}
}

// Split partitions catalog into the movies user liked and viewed, keeping catalog order.
func Split(catalog []model.Movie, user *model.User) Partition {
	var p Partition
	for _, m := range catalog {
		if user.HasLiked(m.ID) {
			p.Liked = append(p.Liked, m)
		}
		if user.HasViewed(m.ID) {
			p.Viewed = append(p.Viewed, m)
		}
	}
	return p
}
