package testutil

import (
	"cmp"
	"encoding/json"
	"net/http"
	"netstream/frontend/pkg/model"
	"netstream/pkg/logging"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

const defaultRecommendationLimit = 5

// Catalog defines an in-memory catalog service store.
type Catalog struct {
	sync.RWMutex
	movies  []model.Movie
	users   map[model.UserID]*model.User
	ratings []model.Rating
}

// NewCatalog creates a new in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{users: map[model.UserID]*model.User{}}
}

// PutMovie adds a movie, or replaces the one with the same id keeping its position.
func (c *Catalog) PutMovie(m model.Movie) {
	c.Lock()
	defer c.Unlock()
	if i := slices.IndexFunc(c.movies, func(e model.Movie) bool { return e.ID == m.ID }); i >= 0 {
		c.movies[i] = m
		return
	}
	c.movies = append(c.movies, m)
}

// PutUser adds or replaces a user.
func (c *Catalog) PutUser(u *model.User) {
	c.Lock()
	defer c.Unlock()
	c.users[u.ID] = u
}

// Ratings returns the ratings received so far.
func (c *Catalog) Ratings() []model.Rating {
	c.RLock()
	defer c.RUnlock()
	return slices.Clone(c.ratings)
}

func (c *Catalog) movie(id model.MovieID) (model.Movie, bool) {
	c.RLock()
	defer c.RUnlock()
	i := slices.IndexFunc(c.movies, func(e model.Movie) bool { return e.ID == id })
	if i < 0 {
		return model.Movie{}, false
	}
	return c.movies[i], true
}

func (c *Catalog) user(id model.UserID) (*model.User, bool) {
	c.RLock()
	defer c.RUnlock()
	u, ok := c.users[id]
	return u, ok
}

// recommend ranks unviewed movies by rating. Content-based candidates must
// share a genre with the user's preferences; hybrid takes content-based
// picks in proportion to contentWeight and fills up with collaborative ones.
func (c *Catalog) recommend(u *model.User, strategy model.Strategy, contentWeight float64, n int) []model.Movie {
	c.RLock()
	var unviewed []model.Movie
	for _, m := range c.movies {
		if !u.HasViewed(m.ID) {
			unviewed = append(unviewed, m)
		}
	}
	c.RUnlock()
	slices.SortStableFunc(unviewed, func(a, b model.Movie) int { return cmp.Compare(b.Rating, a.Rating) })

	var content []model.Movie
	for _, m := range unviewed {
		if slices.ContainsFunc(m.Genres, func(g string) bool { return slices.Contains(u.Preferences.Genres, g) }) {
			content = append(content, m)
		}
	}

	switch strategy {
	case model.StrategyContent:
		return content[:min(n, len(content))]
	case model.StrategyCollaborative:
		return unviewed[:min(n, len(unviewed))]
	}
	res := slices.Clone(content[:min(int(contentWeight*float64(n)+0.5), len(content))])
	for _, m := range unviewed {
		if len(res) >= n {
			break
		}
		if !slices.ContainsFunc(res, func(e model.Movie) bool { return e.ID == m.ID }) {
			res = append(res, m)
		}
	}
	return res
}

// CatalogHandler defines a catalog service HTTP handler serving a Catalog.
type CatalogHandler struct {
	catalog *Catalog
	logger  *zap.Logger
	mux     *http.ServeMux
}

// NewCatalogHandler creates a catalog service HTTP handler.
func NewCatalogHandler(catalog *Catalog, logger *zap.Logger) *CatalogHandler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "http"),
	)
	h := &CatalogHandler{catalog: catalog, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /users/{id}", h.GetUser)
	h.mux.HandleFunc("GET /movies", h.ListMovies)
	h.mux.HandleFunc("GET /movies/{id}", h.GetMovie)
	h.mux.HandleFunc("GET /recommendations/{strategy}/{userID}", h.Recommendations)
	h.mux.HandleFunc("POST /ratings", h.PostRating)
	return h
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.mux.ServeHTTP(w, req)
}

// GetUser handles GET /users/{id} requests.
func (h *CatalogHandler) GetUser(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	u, ok := h.catalog.user(model.UserID(id))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.encode(w, u)
}

// ListMovies handles GET /movies requests.
func (h *CatalogHandler) ListMovies(w http.ResponseWriter, _ *http.Request) {
	h.catalog.RLock()
	movies := slices.Clone(h.catalog.movies)
	h.catalog.RUnlock()
	if movies == nil {
		movies = []model.Movie{}
	}
	h.encode(w, movies)
}

// GetMovie handles GET /movies/{id} requests.
func (h *CatalogHandler) GetMovie(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	m, ok := h.catalog.movie(model.MovieID(id))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.encode(w, m)
}

// Recommendations handles GET /recommendations/{strategy}/{userID} requests.
func (h *CatalogHandler) Recommendations(w http.ResponseWriter, req *http.Request) {
	strategy := model.Strategy(req.PathValue("strategy"))
	if strategy != model.StrategyContent && strategy != model.StrategyCollaborative && strategy != model.StrategyHybrid {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	userID, err := strconv.Atoi(req.PathValue("userID"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	n := defaultRecommendationLimit
	if v := req.FormValue("n"); v != "" {
		if n, err = strconv.Atoi(v); err != nil || n <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	weight := model.DefaultContentWeight
	if v := req.FormValue("content_weight"); v != "" {
		if weight, err = strconv.ParseFloat(v, 64); err != nil || weight < 0 || weight > 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	u, ok := h.catalog.user(model.UserID(userID))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	res := h.catalog.recommend(u, strategy, weight, n)
	if res == nil {
		res = []model.Movie{}
	}
	h.encode(w, res)
}

// PostRating handles POST /ratings requests.
func (h *CatalogHandler) PostRating(w http.ResponseWriter, req *http.Request) {
	var r model.Rating
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		h.logger.Warn("Incorrect rating provided", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := r.Validate(); err != nil {
		h.logger.Warn("Incorrect rating provided", zap.Error(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	if _, ok := h.catalog.movie(r.MovieID); !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.catalog.Lock()
	h.catalog.ratings = append(h.catalog.ratings, r)
	h.catalog.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	h.encode(w, r)
}

func (h *CatalogHandler) encode(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Response encode error", zap.Error(err))
	}
}
