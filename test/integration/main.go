package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"netstream/frontend/pkg/model"
	"netstream/frontend/pkg/testutil"
	"netstream/pkg/discovery/memory"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

const catalogServiceAddress = "localhost:8084"

func main() {
	log.Println("Starting the integration test")

	ctx := context.Background()
	registry := memory.NewRegistry()

	log.Println("Setting up the catalog service")
	catalog := testutil.NewCatalog()
	srv := startCatalogService(catalog)
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Failed to stop catalog service: %v", err)
		}
	}()
	registry.Register(testutil.CatalogServiceName, catalogServiceAddress)

	log.Println("Saving test movies and the demo user")
	movies := []model.Movie{
		{ID: 1, Title: "The Movie", Genres: []string{"Drama"}, Rating: 4.1, Director: "Mr. D", Year: 2001, Duration: "1h 50m"},
		{ID: 2, Title: "The Sequel", Genres: []string{"Drama", "Thriller"}, Rating: 3.2, Director: "Mr. D", Year: 2004, Duration: "2h 5m"},
		{ID: 3, Title: "Another One", Genres: []string{"Comedy"}, Rating: 4.8, Director: "Ms. E", Year: 2010, Duration: "95m"},
	}
	for _, m := range movies {
		catalog.PutMovie(m)
	}
	catalog.PutUser(&model.User{
		ID:           1,
		Username:     "demo",
		Name:         "Demo User",
		ViewedMovies: []model.MovieID{1},
		LikedMovies:  []model.MovieID{1},
		Preferences:  model.Preferences{Genres: []string{"Drama"}, MinRating: 3.5},
	})

	a := testutil.NewTestApp(registry, 1, 200*time.Millisecond, zap.NewNop())

	log.Println("Bootstrapping the session")
	a.Start(ctx)
	if !a.Session().Authenticated() {
		log.Fatalf("session: want demo user, got anonymous")
	}

	log.Println("Opening movie details")
	r, err := a.Navigate(ctx, "/movie/1")
	if err != nil {
		log.Fatalf("navigate: %v", err)
	}
	if got, want := r.Path(), "/movie/1"; got != want {
		log.Fatalf("route mismatch: got %v, want %v", got, want)
	}

	log.Println("Submitting a rating")
	if err := a.ToggleRating(); err != nil {
		log.Fatalf("open rating form: %v", err)
	}
	if err := a.SelectRating(4); err != nil {
		log.Fatalf("select rating: %v", err)
	}
	if err := a.SubmitRating(ctx); err != nil {
		log.Fatalf("submit rating: %v", err)
	}
	want := []model.Rating{{UserID: 1, MovieID: 1, Value: 4}}
	if diff := cmp.Diff(want, catalog.Ratings()); diff != "" {
		log.Fatalf("ratings mismatch: %v", diff)
	}

	log.Println("Opening an unknown movie")
	if _, err := a.Navigate(ctx, "/movie/404"); err != nil {
		log.Fatalf("navigate: %v", err)
	}

	log.Println("Changing the hybrid balance")
	if _, err := a.Navigate(ctx, "/recommendations"); err != nil {
		log.Fatalf("navigate: %v", err)
	}
	if err := a.SetContentWeight(ctx, 0.2); err != nil {
		log.Fatalf("set content weight: %v", err)
	}
	if err := a.SetContentWeight(ctx, 2); !errors.Is(err, model.ErrInvalidWeight) {
		log.Fatalf("set content weight: got %v, want %v", err, model.ErrInvalidWeight)
	}

	log.Println(a.Render())
	log.Println("Integration test execution successful")
}

func startCatalogService(catalog *testutil.Catalog) *http.Server {
	log.Println("Starting catalog service on " + catalogServiceAddress)
	l, err := net.Listen("tcp", catalogServiceAddress)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	srv := &http.Server{Handler: testutil.NewCatalogHandler(catalog, zap.NewNop())}
	go func() {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()
	return srv
}
