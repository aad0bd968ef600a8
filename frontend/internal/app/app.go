package app

import (
	"context"
	"errors"
	"netstream/frontend/internal/controller/details"
	"netstream/frontend/internal/controller/home"
	"netstream/frontend/internal/controller/profile"
	"netstream/frontend/internal/controller/recommendations"
	"netstream/frontend/internal/controller/session"
	"netstream/frontend/internal/gateway"
	"netstream/frontend/internal/view"
	"netstream/frontend/pkg/model"
	"netstream/pkg/logging"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	// ErrNotStarted is returned by actions issued before the session is bootstrapped.
	ErrNotStarted = errors.New("app not started")
	// ErrUnavailable is returned by page actions issued on another page.
	ErrUnavailable = errors.New("action not available on this page")
	// ErrNoHistory is returned by Back when there is no previous route.
	ErrNoHistory = errors.New("no previous page")
)

// Config defines the App settings.
type Config struct {
	DemoUserID   model.UserID
	ConfirmDelay time.Duration
}

// App is the root orchestrator. It owns the session, routes between pages
// and forwards page actions to the page controllers.
type App struct {
	logger   *zap.Logger
	sessions *session.Controller

	home            *home.Controller
	details         *details.Controller
	profile         *profile.Controller
	recommendations *recommendations.Controller

	mu      sync.Mutex
	session *session.Session
	route   Route
	history []Route
	navbar  view.Navbar
}

// New creates an App backed by the given catalog gateway.
func New(catalog gateway.Catalog, cfg Config, logger *zap.Logger) *App {
	return &App{
		logger:          logger.With(zap.String(logging.FieldComponent, "app")),
		sessions:        session.NewController(catalog, cfg.DemoUserID, logger),
		home:            home.New(catalog, logger),
		details:         details.New(catalog, cfg.ConfirmDelay, logger),
		profile:         profile.New(catalog, logger),
		recommendations: recommendations.New(catalog, logger),
		route:           HomeRoute,
	}
}

// Start bootstraps the session and loads the landing page. Until Start
// returns only the loading indicator is rendered.
func (a *App) Start(ctx context.Context) {
	s := a.sessions.Bootstrap(ctx)
	a.mu.Lock()
	a.session = s
	r := a.route
	a.mu.Unlock()
	a.load(ctx, r)
}

// Session returns the bootstrapped session, or nil before Start.
func (a *App) Session() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// Route returns the current route.
func (a *App) Route() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Navigate resolves path, applying redirects, and loads the resulting page.
// Unknown paths, malformed movie ids and gated pages without a user all
// redirect to the home page.
func (a *App) Navigate(ctx context.Context, path string) (Route, error) {
	a.mu.Lock()
	if a.session == nil {
		a.mu.Unlock()
		return Route{}, ErrNotStarted
	}
	r := a.resolve(path)
	a.history = append(a.history, a.route)
	a.route = r
	a.mu.Unlock()

	a.load(ctx, r)
	return r, nil
}

// Back returns to the previous route.
func (a *App) Back(ctx context.Context) (Route, error) {
	a.mu.Lock()
	if a.session == nil {
		a.mu.Unlock()
		return Route{}, ErrNotStarted
	}
	if len(a.history) == 0 {
		a.mu.Unlock()
		return Route{}, ErrNoHistory
	}
	r := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.route = r
	a.mu.Unlock()

	a.load(ctx, r)
	return r, nil
}

// Refresh reloads the current page.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	if a.session == nil {
		a.mu.Unlock()
		return ErrNotStarted
	}
	r := a.route
	a.mu.Unlock()
	a.load(ctx, r)
	return nil
}

// resolve must be called with a.mu held.
func (a *App) resolve(path string) Route {
	r, ok := ParseRoute(path)
	if !ok {
		a.logger.Info("Unknown route, redirecting home", zap.String(logging.FieldRoute, path))
		return HomeRoute
	}
	if r.RequiresUser() && !a.session.Authenticated() {
		a.logger.Info("Route requires a user, redirecting home", zap.String(logging.FieldRoute, path))
		return HomeRoute
	}
	return r
}

func (a *App) load(ctx context.Context, r Route) {
	user := a.Session().User()
	switch r.Page {
	case PageHome:
		a.home.Load(ctx, user)
	case PageDetails:
		a.details.Load(ctx, r.MovieID)
	case PageProfile:
		if err := a.profile.Load(ctx, user); err != nil {
			a.logger.Debug("Profile not loaded", zap.Error(err))
		}
	case PageRecommendations:
		if err := a.recommendations.Load(ctx, user); err != nil {
			a.logger.Debug("Recommendations not loaded", zap.Error(err))
		}
	}
}

// ToggleRating opens or closes the rating form of the current movie.
func (a *App) ToggleRating() error {
	if err := a.require(PageDetails); err != nil {
		return err
	}
	return a.details.ToggleForm()
}

// CancelRating closes the rating form of the current movie.
func (a *App) CancelRating() error {
	if err := a.require(PageDetails); err != nil {
		return err
	}
	return a.details.CancelForm()
}

// SelectRating selects a star value in the open rating form.
func (a *App) SelectRating(v model.RatingValue) error {
	if err := a.require(PageDetails); err != nil {
		return err
	}
	return a.details.SelectRating(v)
}

// SubmitRating submits the selected rating on behalf of the session user.
func (a *App) SubmitRating(ctx context.Context) error {
	if err := a.require(PageDetails); err != nil {
		return err
	}
	return a.details.SubmitRating(ctx, a.Session().User())
}

// SelectTab switches the displayed recommendation set.
func (a *App) SelectTab(name string) error {
	if err := a.require(PageRecommendations); err != nil {
		return err
	}
	tab, err := recommendations.ParseTab(name)
	if err != nil {
		return err
	}
	return a.recommendations.SetTab(tab)
}

// SetContentWeight changes the hybrid content weight and refetches the hybrid set.
func (a *App) SetContentWeight(ctx context.Context, w float64) error {
	if err := a.require(PageRecommendations); err != nil {
		return err
	}
	return a.recommendations.SetWeight(ctx, w)
}

// Scroll records the scroll offset and reports whether the navbar style changed.
func (a *App) Scroll(offset int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.navbar.Scroll(offset)
}

func (a *App) require(p Page) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ErrNotStarted
	}
	if a.route.Page != p {
		return ErrUnavailable
	}
	return nil
}

// Render draws the navbar and the current page.
func (a *App) Render() string {
	a.mu.Lock()
	s, r := a.session, a.route
	nav := a.navbar
	a.mu.Unlock()
	if s == nil {
		return view.Loading()
	}

	var page string
	switch r.Page {
	case PageDetails:
		page = view.Details(a.details.View())
	case PageProfile:
		page = view.Profile(a.profile.View())
	case PageRecommendations:
		page = view.Recommendations(a.recommendations.View(), s.User())
	default:
		page = view.Home(a.home.View(), s.User())
	}
	return lipgloss.JoinVertical(lipgloss.Left, nav.Render(s.User(), r.Path()), page)
}
