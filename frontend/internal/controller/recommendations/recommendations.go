package recommendations

import (
	"context"
	"errors"
	"fmt"
	"netstream/frontend/pkg/model"
	"netstream/pkg/fetch"
	"netstream/pkg/logging"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNoUser is returned when recommendations are requested without a user.
	ErrNoUser = errors.New("please log in to see your personalized recommendations")
	// ErrUnknownTab is returned for a tab name that does not exist.
	ErrUnknownTab = errors.New("unknown recommendations tab")
)

// Tab defines which recommendation set is displayed.
type Tab string

// Recommendation tabs.
const (
	TabHybrid        = Tab("hybrid")
	TabContent       = Tab("content")
	TabCollaborative = Tab("collaborative")
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabHybrid, TabContent, TabCollaborative}

// ParseTab returns the tab with the given name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

type catalogGateway interface {
	Recommendations(ctx context.Context, userID model.UserID, strategy model.Strategy, contentWeight float64) ([]model.Movie, error)
}

// View is a snapshot of the recommendations page.
type View struct {
	Tab           Tab
	ContentWeight float64
	Content       fetch.State[model.RecommendationSet]
	Collaborative fetch.State[model.RecommendationSet]
	Hybrid        fetch.State[model.RecommendationSet]
}

// Active returns the state of the set selected by the active tab.
func (v View) Active() fetch.State[model.RecommendationSet] {
	switch v.Tab {
	case TabContent:
		return v.Content
	case TabCollaborative:
		return v.Collaborative
	}
	return v.Hybrid
}

// Controller defines a recommendations page controller. Each strategy owns
// its own field so a failing request never affects the other two.
type Controller struct {
	gateway catalogGateway
	logger  *zap.Logger

	mu     sync.Mutex
	user   *model.User
	tab    Tab
	weight float64

	content       fetch.Field[model.RecommendationSet]
	collaborative fetch.Field[model.RecommendationSet]
	hybrid        fetch.Field[model.RecommendationSet]
}

// New creates a recommendations controller showing the hybrid tab with the
// default content weight.
func New(gateway catalogGateway, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "recommendations"))
	return &Controller{
		gateway: gateway,
		logger:  logger,
		tab:     TabHybrid,
		weight:  model.DefaultContentWeight,
	}
}

// Load fetches the three recommendation sets for user in parallel and
// returns once all have settled. Without a user nothing is fetched and
// ErrNoUser is returned.
func (c *Controller) Load(ctx context.Context, user *model.User) error {
	c.mu.Lock()
	c.user = user
	weight := c.weight
	c.mu.Unlock()
	if user == nil {
		c.content.Reset()
		c.collaborative.Reset()
		c.hybrid.Reset()
		return ErrNoUser
	}

	var wg sync.WaitGroup
	for _, f := range []struct {
		field    *fetch.Field[model.RecommendationSet]
		strategy model.Strategy
	}{
		{&c.content, model.StrategyContent},
		{&c.collaborative, model.StrategyCollaborative},
		{&c.hybrid, model.StrategyHybrid},
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.fetch(ctx, f.field, user.ID, f.strategy, weight)
		}()
	}
	wg.Wait()
	return nil
}

// SetWeight changes the content weight, snapped to steps of 0.1, and
// refetches the hybrid set only.
func (c *Controller) SetWeight(ctx context.Context, w float64) error {
	w, err := model.NormalizeContentWeight(w)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.weight = w
	user := c.user
	c.mu.Unlock()
	if user == nil {
		return ErrNoUser
	}
	c.fetch(ctx, &c.hybrid, user.ID, model.StrategyHybrid, w)
	return nil
}

// SetTab selects the displayed set. No request is issued.
func (c *Controller) SetTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
	return nil
}

// View returns the current state of the page.
func (c *Controller) View() View {
	c.mu.Lock()
	tab, weight := c.tab, c.weight
	c.mu.Unlock()
	return View{
		Tab:           tab,
		ContentWeight: weight,
		Content:       c.content.State(),
		Collaborative: c.collaborative.State(),
		Hybrid:        c.hybrid.State(),
	}
}

func (c *Controller) fetch(ctx context.Context, field *fetch.Field[model.RecommendationSet], userID model.UserID, strategy model.Strategy, weight float64) {
	ctx, tok := field.Begin(ctx)
	movies, err := c.gateway.Recommendations(ctx, userID, strategy, weight)
	if err != nil {
		c.logger.Warn("Failed to fetch recommendations",
			zap.String("strategy", string(strategy)),
			zap.Int(logging.FieldUserID, int(userID)),
			zap.Error(err),
		)
	}
	set := model.RecommendationSet{Strategy: strategy, Movies: movies}
	if strategy == model.StrategyHybrid {
		set.ContentWeight = weight
	}
	field.Resolve(tok, set, err)
}
