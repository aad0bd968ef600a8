package view

import (
	"fmt"
	"netstream/frontend/pkg/model"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cardsPerRow bounds how many cards a carousel places side by side.
const cardsPerRow = 4

// MovieCard renders a single movie summary.
func MovieCard(m model.Movie) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(m.Title),
		mutedStyle.Render(GenreLine(m.Genres)),
		ratingStyle.Render(Rating(m.Rating)),
		mutedStyle.Render(MoviePath(m.ID)),
	))
}

// GenreLine joins the first two genres and marks that more exist.
func GenreLine(genres []string) string {
	line := strings.Join(genres[:min(2, len(genres))], " • ")
	if len(genres) > 2 {
		line += " • ..."
	}
	return line
}

// Rating formats a movie rating with one decimal.
func Rating(r float64) string {
	return fmt.Sprintf("★ %.1f", r)
}

// MoviePath returns the route of a movie's details page.
func MoviePath(id model.MovieID) string {
	return fmt.Sprintf("/movie/%d", id)
}

// Carousel lays movie cards out in rows.
func Carousel(movies []model.Movie) string {
	var rows []string
	for start := 0; start < len(movies); start += cardsPerRow {
		end := min(start+cardsPerRow, len(movies))
		cards := make([]string, 0, end-start)
		for _, m := range movies[start:end] {
			cards = append(cards, MovieCard(m))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
