package model

import "slices"

// UserID defines a user identifier.
type UserID int

// Preferences defines the taste profile stored for a user.
type Preferences struct {
	Genres    []string `json:"genres"`
	MinRating float64  `json:"min_rating"`
}

// User defines a catalog service user.
type User struct {
	ID           UserID      `json:"id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	ViewedMovies []MovieID   `json:"viewed_movies"`
	LikedMovies  []MovieID   `json:"liked_movies"`
	Preferences  Preferences `json:"preferences"`
}

// HasViewed reports whether the movie is in the user's viewed list.
func (u *User) HasViewed(id MovieID) bool {
	return slices.Contains(u.ViewedMovies, id)
}

// HasLiked reports whether the movie is in the user's liked list.
func (u *User) HasLiked(id MovieID) bool {
	return slices.Contains(u.LikedMovies, id)
}
