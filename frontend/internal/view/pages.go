package view

import (
	"fmt"
	"math"
	"netstream/frontend/internal/controller/details"
	"netstream/frontend/internal/controller/home"
	"netstream/frontend/internal/controller/profile"
	"netstream/frontend/internal/controller/recommendations"
	"netstream/frontend/pkg/model"
	"netstream/pkg/fetch"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Messages shown in place of content.
const (
	LoadingText           = "Loading..."
	CatalogErrorText      = "Failed to load movies. Please try again later."
	EmptyCatalogText      = "No movies available."
	NoRecommendationsText = "No recommendations available yet. Try rating more movies!"
	NoLikedText           = "You haven't liked any movies yet. Start rating movies to see them here!"
	NoViewedText          = "You haven't viewed any movies yet."
	ProfileGateText       = "Please log in to view your profile."
	RecommendationsGate   = "Please log in to see your personalized recommendations."
	ReturnHomeText        = "Return to Home"
	RatingSubmittedText   = "Rating submitted successfully!"
	MovieErrorText        = "Failed to load movie details"
)

var emptyTabText = map[recommendations.Tab]string{
	recommendations.TabHybrid:        "No hybrid recommendations available. Try adjusting the balance or rating more movies.",
	recommendations.TabContent:       "No content-based recommendations available. Try rating more movies or updating your preferences.",
	recommendations.TabCollaborative: "No collaborative recommendations available. Try rating more movies to improve results.",
}

var tabLabels = map[recommendations.Tab]string{
	recommendations.TabHybrid:        "Hybrid Recommendations",
	recommendations.TabContent:       "Content-Based",
	recommendations.TabCollaborative: "Collaborative Filtering",
}

// Loading renders the blocking loading indicator.
func Loading() string {
	return mutedStyle.Render("⟳ " + LoadingText)
}

func section(title string, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, sectionStyle.Render(title), body)
}

// Home renders the home page.
func Home(v home.View, user *model.User) string {
	switch v.Catalog.Status {
	case fetch.StatusIdle, fetch.StatusLoading:
		return Loading()
	case fetch.StatusFailed:
		return Alert(AlertError, CatalogErrorText)
	}
	catalog := v.Catalog.Data
	if catalog.Featured == nil {
		return Alert(AlertInfo, EmptyCatalogText)
	}

	f := catalog.Featured
	parts := []string{
		heroTitleStyle.Render(f.Title),
		f.Description,
		buttonStyle.Render("▶ Play") + " " + buttonStyle.Render("ⓘ More Info "+MoviePath(f.ID)),
		section("Trending Now", Carousel(catalog.Trending)),
	}
	if user != nil {
		parts = append(parts, section("Recommended for You", recommended(v.Recommended)))
	}
	parts = append(parts, section("All Movies", Carousel(catalog.Movies)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func recommended(s fetch.State[home.Recommended]) string {
	switch s.Status {
	case fetch.StatusIdle, fetch.StatusLoading:
		return Loading()
	case fetch.StatusFailed:
		return mutedStyle.Render(NoRecommendationsText)
	}
	if len(s.Data.Movies) == 0 {
		return mutedStyle.Render(NoRecommendationsText)
	}
	return Carousel(s.Data.Movies)
}

// Details renders the movie details page.
func Details(v details.View) string {
	switch v.Movie.Status {
	case fetch.StatusIdle, fetch.StatusLoading:
		return Loading()
	case fetch.StatusFailed:
		msg := MovieErrorText
		if v.Movie.Err != nil {
			msg = v.Movie.Err.Error()
		}
		return Alert(AlertError, lipgloss.JoinVertical(lipgloss.Left,
			heroTitleStyle.Render("Error!"),
			msg,
			"",
			buttonStyle.Render(ReturnHomeText),
		))
	}

	m := v.Movie.Data
	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, badgeStyle.Render(g))
	}
	parts := []string{
		mutedStyle.Render("← Back"),
		heroTitleStyle.Render(m.Title),
		fmt.Sprintf("%d   %s   %s", m.Year, m.Duration, ratingStyle.Render(Rating(m.Rating))),
		strings.Join(genres, " "),
		m.Description,
		"Director: " + m.Director,
		buttonStyle.Render("▶ Play") + " " + buttonStyle.Render("★ Rate"),
	}
	if form := ratingForm(v.Form); form != "" {
		parts = append(parts, form)
	}
	if v.Similar.Loaded() && len(v.Similar.Data) > 0 {
		parts = append(parts, section("More Like This", Carousel(v.Similar.Data)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func ratingForm(f details.Form) string {
	switch f.Phase {
	case details.PhaseIdle:
		return ""
	case details.PhaseSubmitted:
		return section("Rate this title", Alert(AlertSuccess, RatingSubmittedText))
	}

	hint := "Click to rate"
	if f.Rating != 0 {
		hint = fmt.Sprintf("Your rating: %d/5", f.Rating)
	}
	label := "Submit Rating"
	if f.Phase == details.PhaseSubmitting {
		label = "Submitting..."
	}
	submit := buttonStyle.Render(label)
	if !f.CanSubmit() {
		submit = disabledButton.Render(label)
	}
	return section("Rate this title", lipgloss.JoinVertical(lipgloss.Left,
		Stars(f.Rating),
		mutedStyle.Render(hint),
		submit+" "+buttonStyle.Render("Cancel"),
	))
}

// Stars renders five stars with the first n highlighted.
func Stars(n model.RatingValue) string {
	var b strings.Builder
	for v := model.MinRating; v <= model.MaxRating; v++ {
		if v > model.MinRating {
			b.WriteString(" ")
		}
		if v <= n {
			b.WriteString(selectedStar.Render("★"))
		} else {
			b.WriteString(unselectedStar.Render("☆"))
		}
	}
	return b.String()
}

// Profile renders the profile page.
func Profile(v profile.View) string {
	if v.User == nil {
		return Alert(AlertWarning, ProfileGateText)
	}
	u := v.User
	prefs := "Favorite genres: " + strings.Join(u.Preferences.Genres, ", ")
	if len(u.Preferences.Genres) == 0 {
		prefs = "Favorite genres: none"
	}
	parts := []string{
		heroTitleStyle.Render(u.Name),
		mutedStyle.Render("@" + u.Username + "  " + u.Email),
		section("Preferences", lipgloss.JoinVertical(lipgloss.Left,
			prefs,
			fmt.Sprintf("Minimum rating: %.1f", u.Preferences.MinRating),
		)),
	}

	switch v.Movies.Status {
	case fetch.StatusIdle, fetch.StatusLoading:
		parts = append(parts, Loading())
	default:
		p := v.Movies.Data
		parts = append(parts,
			section("Movies You Liked", moviesOr(p.Liked, NoLikedText)),
			section("Recently Viewed", moviesOr(p.Viewed, NoViewedText)),
		)
	}
	parts = append(parts, linkStyle.Render("View Recommendations → /recommendations"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func moviesOr(movies []model.Movie, empty string) string {
	if len(movies) == 0 {
		return mutedStyle.Render(empty)
	}
	return Carousel(movies)
}

// BalanceLabel describes the content weight of the hybrid strategy.
func BalanceLabel(contentWeight float64) string {
	content := math.Round(contentWeight * 100)
	return fmt.Sprintf("%.0f%% Content-Based / %.0f%% Collaborative", content, 100-content)
}

// Recommendations renders the recommendations page.
func Recommendations(v recommendations.View, user *model.User) string {
	if user == nil {
		return Alert(AlertWarning, RecommendationsGate)
	}
	tabs := make([]string, 0, len(recommendations.Tabs))
	for _, t := range recommendations.Tabs {
		if t == v.Tab {
			tabs = append(tabs, activeTabStyle.Render(tabLabels[t]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabLabels[t]))
		}
	}
	parts := []string{
		heroTitleStyle.Render("Your Personalized Recommendations"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	}
	if v.Tab == recommendations.TabHybrid {
		parts = append(parts, "Recommendation Balance: "+BalanceLabel(v.ContentWeight))
	}

	active := v.Active()
	switch {
	case active.Status == fetch.StatusIdle, active.Status == fetch.StatusLoading:
		parts = append(parts, Loading())
	case len(active.Data.Movies) == 0:
		parts = append(parts, mutedStyle.Render(emptyTabText[v.Tab]))
	default:
		parts = append(parts, Carousel(active.Data.Movies))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
