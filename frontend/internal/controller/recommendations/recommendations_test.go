package recommendations

import (
	"context"
	"errors"
	"netstream/frontend/pkg/model"
	"netstream/pkg/fetch"
	"testing"

	gen "netstream/gen/mock/frontend/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var user = &model.User{ID: 1}

func movies(ids ...model.MovieID) []model.Movie {
	res := make([]model.Movie, len(ids))
	for i, id := range ids {
		res[i] = model.Movie{ID: id}
	}
	return res
}

func TestLoadNoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := New(gen.NewMockCatalog(ctrl), zap.NewNop())
	assert.ErrorIs(t, c.Load(context.Background(), nil), ErrNoUser)
	assert.ErrorIs(t, c.SetWeight(context.Background(), 0.2), ErrNoUser)
	v := c.View()
	assert.Equal(t, fetch.StatusIdle, v.Hybrid.Status)
	assert.Equal(t, TabHybrid, v.Tab)
}

func TestLoadIsolatesFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		failing model.Strategy
	}{
		{name: "content fails", failing: model.StrategyContent},
		{name: "collaborative fails", failing: model.StrategyCollaborative},
		{name: "hybrid fails", failing: model.StrategyHybrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gw := gen.NewMockCatalog(ctrl)
			result := map[model.Strategy][]model.Movie{
				model.StrategyContent:       movies(1),
				model.StrategyCollaborative: movies(2),
				model.StrategyHybrid:        movies(3),
			}
			gw.EXPECT().Recommendations(gomock.Any(), user.ID, gomock.Any(), model.DefaultContentWeight).
				DoAndReturn(func(_ context.Context, _ model.UserID, s model.Strategy, _ float64) ([]model.Movie, error) {
					if s == tt.failing {
						return nil, boom
					}
					return result[s], nil
				}).Times(3)

			c := New(gw, zap.NewNop())
			require.NoError(t, c.Load(context.Background(), user))
			v := c.View()
			states := map[model.Strategy]fetch.State[model.RecommendationSet]{
				model.StrategyContent:       v.Content,
				model.StrategyCollaborative: v.Collaborative,
				model.StrategyHybrid:        v.Hybrid,
			}
			for s, st := range states {
				if s == tt.failing {
					assert.Equal(t, fetch.StatusFailed, st.Status, s)
					assert.ErrorIs(t, st.Err, boom)
					continue
				}
				require.True(t, st.Loaded(), s)
				assert.Equal(t, result[s], st.Data.Movies, s)
			}
		})
	}
}

func TestSetWeightRefetchesHybridOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := gen.NewMockCatalog(ctrl)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyContent, gomock.Any()).Return(movies(1), nil).Times(1)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyCollaborative, gomock.Any()).Return(movies(2), nil).Times(1)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyHybrid, 0.5).Return(movies(3), nil).Times(1)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyHybrid, 0.7).Return(movies(4), nil).Times(1)

	c := New(gw, zap.NewNop())
	require.NoError(t, c.Load(context.Background(), user))
	require.NoError(t, c.SetWeight(context.Background(), 0.68))

	v := c.View()
	assert.InDelta(t, 0.7, v.ContentWeight, 1e-9)
	assert.Equal(t, movies(1), v.Content.Data.Movies)
	assert.Equal(t, movies(2), v.Collaborative.Data.Movies)
	assert.Equal(t, movies(4), v.Hybrid.Data.Movies)
	assert.Equal(t, model.StrategyContent, v.Content.Data.Strategy)
	assert.Equal(t, model.StrategyCollaborative, v.Collaborative.Data.Strategy)
	assert.Equal(t, model.StrategyHybrid, v.Hybrid.Data.Strategy)
	assert.InDelta(t, 0.7, v.Hybrid.Data.ContentWeight, 1e-9)

	assert.ErrorIs(t, c.SetWeight(context.Background(), 1.5), model.ErrInvalidWeight)
	assert.InDelta(t, 0.7, c.View().ContentWeight, 1e-9)
}

func TestStaleHybridDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := gen.NewMockCatalog(ctrl)
	entered := make(chan struct{})
	release := make(chan struct{})
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyContent, gomock.Any()).Return(movies(1), nil)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyCollaborative, gomock.Any()).Return(movies(2), nil)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyHybrid, 0.5).Return(movies(3), nil)
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyHybrid, 0.2).
		DoAndReturn(func(ctx context.Context, _ model.UserID, _ model.Strategy, _ float64) ([]model.Movie, error) {
			close(entered)
			<-release
			return movies(20), nil
		})
	gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyHybrid, 0.9).Return(movies(90), nil)

	c := New(gw, zap.NewNop())
	require.NoError(t, c.Load(context.Background(), user))

	done := make(chan error)
	go func() { done <- c.SetWeight(context.Background(), 0.2) }()
	<-entered
	require.NoError(t, c.SetWeight(context.Background(), 0.9))
	close(release)
	require.NoError(t, <-done)

	v := c.View()
	assert.Equal(t, movies(90), v.Hybrid.Data.Movies)
	assert.InDelta(t, 0.9, v.ContentWeight, 1e-9)
}

func TestSetTab(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := gen.NewMockCatalog(ctrl)
	gw.EXPECT().Recommendations(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.UserID, s model.Strategy, _ float64) ([]model.Movie, error) {
			switch s {
			case model.StrategyContent:
				return movies(1), nil
			case model.StrategyCollaborative:
				return movies(2), nil
			}
			return movies(3), nil
		}).Times(3)

	c := New(gw, zap.NewNop())
	require.NoError(t, c.Load(context.Background(), user))
	assert.Equal(t, movies(3), c.View().Active().Data.Movies)

	// Switching tabs issues no further requests; Times(3) enforces it.
	require.NoError(t, c.SetTab(TabContent))
	assert.Equal(t, movies(1), c.View().Active().Data.Movies)
	require.NoError(t, c.SetTab(TabCollaborative))
	assert.Equal(t, movies(2), c.View().Active().Data.Movies)
	assert.ErrorIs(t, c.SetTab("trending"), ErrUnknownTab)
	assert.Equal(t, TabCollaborative, c.View().Tab)
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs {
		got, err := ParseTab(string(tab))
		require.NoError(t, err)
		assert.Equal(t, tab, got)
	}
	_, err := ParseTab("")
	assert.ErrorIs(t, err, ErrUnknownTab)
}
