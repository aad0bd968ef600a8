package shell

import (
	"bytes"
	"context"
	"errors"
	"netstream/frontend/internal/app"
	"netstream/frontend/internal/controller/details"
	"netstream/frontend/pkg/model"
	"strings"
	"testing"
	"time"

	gen "netstream/gen/mock/frontend/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var movies = []model.Movie{
	{ID: 1, Title: "Alpha", Genres: []string{"Drama"}, Rating: 4.5},
	{ID: 2, Title: "Beta", Genres: []string{"Drama"}, Rating: 3.0},
}

func newHandler(t *testing.T, user *model.User) (*Handler, *gen.MockCatalog) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := gen.NewMockCatalog(ctrl)
	if user == nil {
		gw.EXPECT().GetUser(gomock.Any(), model.UserID(1)).Return(nil, errors.New("unavailable"))
	} else {
		gw.EXPECT().GetUser(gomock.Any(), model.UserID(1)).Return(user, nil)
		gw.EXPECT().Recommendations(gomock.Any(), user.ID, model.StrategyHybrid, model.DefaultContentWeight).Return(nil, nil)
	}
	gw.EXPECT().ListMovies(gomock.Any()).Return(movies, nil)
	a := app.New(gw, app.Config{DemoUserID: 1, ConfirmDelay: time.Hour}, zap.NewNop())
	return New(a, zap.NewNop()), gw
}

func TestServe(t *testing.T) {
	h, gw := newHandler(t, nil)
	gw.EXPECT().GetMovie(gomock.Any(), model.MovieID(2)).Return(&movies[1], nil)
	gw.EXPECT().ListMovies(gomock.Any()).Return(movies, nil)

	in := strings.NewReader("help\nopen /movie/2\nrate\nstar 4\nsubmit\nfly\nquit\nhome\n")
	var out bytes.Buffer
	require.NoError(t, h.Serve(context.Background(), in, &out))

	got := out.String()
	assert.Contains(t, got, "Trending Now")
	assert.Contains(t, got, "Commands:")
	assert.Contains(t, got, "More Like This")
	assert.Contains(t, got, "Your rating: 4/5")
	assert.Contains(t, got, "You must be logged in to rate movies")
	assert.Contains(t, got, "unknown command")
}

func TestExecute(t *testing.T) {
	user := &model.User{ID: 1, Name: "Demo"}
	tests := []struct {
		name    string
		line    string
		wantErr error
		wantMsg string
	}{
		{name: "rate outside details", line: "rate", wantErr: app.ErrUnavailable},
		{name: "tab outside recommendations", line: "tab content", wantErr: app.ErrUnavailable},
		{name: "back without history", line: "back", wantErr: app.ErrNoHistory},
		{name: "bad star", line: "star five", wantMsg: "usage: star <1-5>"},
		{name: "bad weight", line: "weight heavy", wantMsg: "usage: weight <0..1>"},
		{name: "open without path", line: "open", wantMsg: "usage: open <path>"},
		{name: "unknown", line: "dance", wantErr: ErrUnknownCommand},
		{name: "empty", line: "", wantErr: ErrUnknownCommand},
		{name: "blank", line: "  \t ", wantErr: ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHandler(t, user)
			var out bytes.Buffer
			h.app.Start(context.Background())
			quit, err := h.Execute(context.Background(), tt.line, &out)
			assert.False(t, quit)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "You must be logged in to rate movies", message(details.ErrUnauthenticated))
	assert.Equal(t, "Failed to submit rating. Please try again.", message(details.ErrSubmitFailed))
	assert.Equal(t, "boom", message(errors.New("boom")))
}
