package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnrated is returned when a rating is submitted without a star value.
	ErrUnrated = errors.New("rating not selected")
	// ErrInvalidRating is returned when a rating falls outside 1..5 or lacks ids.
	ErrInvalidRating = errors.New("invalid rating")
)

// RatingValue defines a star value. Zero means unrated.
type RatingValue int

// Rating bounds.
const (
	MinRating = RatingValue(1)
	MaxRating = RatingValue(5)
)

// Rating defines a single rating submission.
type Rating struct {
	UserID  UserID      `json:"user_id" validate:"gt=0"`
	MovieID MovieID     `json:"movie_id" validate:"gt=0"`
	Value   RatingValue `json:"rating" validate:"min=1,max=5"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the rating can be sent to the catalog service.
func (r *Rating) Validate() error {
	if r.Value == 0 {
		return ErrUnrated
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRating, err)
	}
	return nil
}

func (r *Rating) String() string {
	return fmt.Sprintf("Rating{userId=%d, movieId=%d, value=%d}", r.UserID, r.MovieID, r.Value)
}
