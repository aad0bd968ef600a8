package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path   string
		want   Route
		wantOK bool
	}{
		{path: "/", want: HomeRoute, wantOK: true},
		{path: "", want: HomeRoute, wantOK: true},
		{path: "/profile", want: Route{Page: PageProfile}, wantOK: true},
		{path: "/recommendations/", want: Route{Page: PageRecommendations}, wantOK: true},
		{path: "/movie/12", want: Route{Page: PageDetails, MovieID: 12}, wantOK: true},
		{path: "/movie/abc", want: HomeRoute},
		{path: "/movie/-1", want: HomeRoute},
		{path: "/movie/", want: HomeRoute},
		{path: "/settings", want: HomeRoute},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ParseRoute(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoutePath(t *testing.T) {
	for _, path := range []string{"/", "/movie/3", "/profile", "/recommendations"} {
		r, ok := ParseRoute(path)
		assert.True(t, ok)
		assert.Equal(t, path, r.Path())
	}
}
