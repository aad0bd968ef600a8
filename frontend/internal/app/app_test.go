package app

import (
	"context"
	"errors"
	"netstream/frontend/internal/controller/details"
	"netstream/frontend/internal/controller/recommendations"
	"netstream/frontend/internal/gateway"
	"netstream/frontend/internal/view"
	"netstream/frontend/pkg/model"
	"testing"
	"time"

	gen "netstream/gen/mock/frontend/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	testUser = &model.User{ID: 1, Name: "Demo", ViewedMovies: []model.MovieID{1}, LikedMovies: []model.MovieID{2}}
	catalog  = []model.Movie{
		{ID: 1, Title: "Alpha", Genres: []string{"Drama"}, Rating: 4.5},
		{ID: 2, Title: "Beta", Genres: []string{"Drama"}, Rating: 3.0},
	}
)

func newApp(t *testing.T) (*App, *gen.MockCatalog) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := gen.NewMockCatalog(ctrl)
	return New(gw, Config{DemoUserID: 1, ConfirmDelay: time.Hour}, zap.NewNop()), gw
}

func startAnonymous(t *testing.T) (*App, *gen.MockCatalog) {
	t.Helper()
	a, gw := newApp(t)
	gw.EXPECT().GetUser(gomock.Any(), model.UserID(1)).Return(nil, errors.New("connection refused"))
	gw.EXPECT().ListMovies(gomock.Any()).Return(catalog, nil)
	a.Start(context.Background())
	return a, gw
}

func startWithUser(t *testing.T) (*App, *gen.MockCatalog) {
	t.Helper()
	a, gw := newApp(t)
	gw.EXPECT().GetUser(gomock.Any(), model.UserID(1)).Return(testUser, nil)
	gw.EXPECT().ListMovies(gomock.Any()).Return(catalog, nil)
	gw.EXPECT().Recommendations(gomock.Any(), model.UserID(1), model.StrategyHybrid, model.DefaultContentWeight).Return(catalog[:1], nil)
	a.Start(context.Background())
	return a, gw
}

func TestRenderBeforeStart(t *testing.T) {
	a, _ := newApp(t)
	assert.Equal(t, view.Loading(), a.Render())
	_, err := a.Navigate(context.Background(), "/")
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, a.ToggleRating(), ErrNotStarted)
}

func TestStartAnonymous(t *testing.T) {
	a, _ := startAnonymous(t)
	require.NotNil(t, a.Session())
	assert.False(t, a.Session().Authenticated())
	out := a.Render()
	assert.Contains(t, out, "Trending Now")
	assert.NotContains(t, out, "Recommended for You")
}

func TestGatedRoutesRedirectWithoutUser(t *testing.T) {
	a, gw := startAnonymous(t)
	for _, path := range []string{"/profile", "/recommendations", "/nowhere", "/movie/x"} {
		t.Run(path, func(t *testing.T) {
			gw.EXPECT().ListMovies(gomock.Any()).Return(catalog, nil)
			r, err := a.Navigate(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, HomeRoute, r)
		})
	}
}

func TestNavigateWithUser(t *testing.T) {
	a, gw := startWithUser(t)
	ctx := context.Background()
	assert.Contains(t, a.Render(), "Recommended for You")

	gw.EXPECT().ListMovies(gomock.Any()).Return(catalog, nil)
	r, err := a.Navigate(ctx, "/profile")
	require.NoError(t, err)
	assert.Equal(t, PageProfile, r.Page)
	assert.Contains(t, a.Render(), "Movies You Liked")

	gw.EXPECT().Recommendations(gomock.Any(), model.UserID(1), gomock.Any(), gomock.Any()).Return(catalog, nil).Times(3)
	r, err = a.Navigate(ctx, "/recommendations")
	require.NoError(t, err)
	assert.Equal(t, PageRecommendations, r.Page)
	require.NoError(t, a.SelectTab("content"))
	assert.ErrorIs(t, a.SelectTab("popular"), recommendations.ErrUnknownTab)

	gw.EXPECT().Recommendations(gomock.Any(), model.UserID(1), model.StrategyHybrid, 0.7).Return(nil, nil)
	require.NoError(t, a.SetContentWeight(ctx, 0.7))
	assert.ErrorIs(t, a.SetContentWeight(ctx, 1.5), model.ErrInvalidWeight)

	gw.EXPECT().ListMovies(gomock.Any()).Return(catalog, nil)
	r, err = a.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, PageProfile, r.Page)
}

func TestUnknownMovie(t *testing.T) {
	a, gw := startAnonymous(t)
	gw.EXPECT().GetMovie(gomock.Any(), model.MovieID(99)).Return(nil, gateway.ErrNotFound)
	gw.EXPECT().ListMovies(gomock.Any()).Times(0)

	r, err := a.Navigate(context.Background(), "/movie/99")
	require.NoError(t, err)
	assert.Equal(t, Route{Page: PageDetails, MovieID: 99}, r)
	out := a.Render()
	assert.Contains(t, out, "Error!")
	assert.Contains(t, out, view.ReturnHomeText)
}

func TestRatingUnavailableForMissingMovie(t *testing.T) {
	a, gw := startWithUser(t)
	ctx := context.Background()
	gw.EXPECT().GetMovie(gomock.Any(), model.MovieID(99)).Return(nil, gateway.ErrNotFound)
	gw.EXPECT().SubmitRating(gomock.Any(), gomock.Any()).Times(0)

	_, err := a.Navigate(ctx, "/movie/99")
	require.NoError(t, err)
	assert.ErrorIs(t, a.ToggleRating(), details.ErrInvalidTransition)
	assert.ErrorIs(t, a.SelectRating(3), details.ErrInvalidTransition)
	assert.ErrorIs(t, a.SubmitRating(ctx), details.ErrInvalidTransition)
	assert.NotContains(t, a.Render(), "Rate this title")
}

func TestRatingFlow(t *testing.T) {
	a, gw := startWithUser(t)
	ctx := context.Background()

	assert.ErrorIs(t, a.ToggleRating(), ErrUnavailable)

	gw.EXPECT().GetMovie(gomock.Any(), model.MovieID(2)).Return(&catalog[1], nil)
	gw.EXPECT().ListMovies(gomock.Any()).Return(catalog, nil)
	_, err := a.Navigate(ctx, "/movie/2")
	require.NoError(t, err)
	assert.Contains(t, a.Render(), "More Like This")

	require.NoError(t, a.ToggleRating())
	assert.ErrorIs(t, a.SubmitRating(ctx), model.ErrUnrated)
	require.NoError(t, a.SelectRating(4))

	gw.EXPECT().SubmitRating(gomock.Any(), &model.Rating{UserID: 1, MovieID: 2, Value: 4}).Return(nil)
	require.NoError(t, a.SubmitRating(ctx))
	assert.Contains(t, a.Render(), view.RatingSubmittedText)
	assert.Equal(t, details.PhaseSubmitted, a.details.View().Form.Phase)
}

func TestBackWithoutHistory(t *testing.T) {
	a, _ := startAnonymous(t)
	_, err := a.Back(context.Background())
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestScroll(t *testing.T) {
	a, _ := startAnonymous(t)
	assert.True(t, a.Scroll(120))
	assert.False(t, a.Scroll(60))
	assert.True(t, a.Scroll(0))
}
