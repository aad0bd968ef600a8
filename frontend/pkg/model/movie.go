package model

import "slices"

// MovieID defines a movie identifier.
type MovieID int

// Movie defines a catalog entry as returned by the catalog service.
type Movie struct {
	ID          MovieID  `json:"id"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"image_url"`
	Genres      []string `json:"genres"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	Director    string   `json:"director"`
	Year        int      `json:"year"`
	Duration    string   `json:"duration"`
}

// SharesGenre reports whether m and other have at least one genre label in common.
func (m *Movie) SharesGenre(other *Movie) bool {
	for _, g := range m.Genres {
		if slices.Contains(other.Genres, g) {
			return true
		}
	}
	return false
}
