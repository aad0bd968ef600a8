package details

import (
	"context"
	"errors"
	"fmt"
	"netstream/frontend/pkg/model"
	"netstream/pkg/logging"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnauthenticated is returned when a rating is submitted without a user.
	ErrUnauthenticated = errors.New("you must be logged in to rate movies")
	// ErrInvalidTransition is returned when an action is not allowed in the current phase.
	ErrInvalidTransition = errors.New("action not allowed in current rating phase")
	// ErrSubmitFailed is returned when the rating service rejects a submission.
	ErrSubmitFailed = errors.New("failed to submit rating, please try again")
)

// Phase defines the phase of the rating form.
type Phase int

// Rating form phases.
const (
	PhaseIdle Phase = iota
	PhaseFormOpen
	PhaseSubmitting
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFormOpen:
		return "form-open"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Form is a snapshot of the rating form.
type Form struct {
	Phase  Phase
	Rating model.RatingValue
}

// CanSubmit reports whether the submit control is enabled.
func (f Form) CanSubmit() bool {
	return f.Phase == PhaseFormOpen && f.Rating != 0
}

// ratingForm is guarded by Controller.mu.
type ratingForm struct {
	gen   uint64
	phase Phase
	value model.RatingValue
	timer *time.Timer
}

func (f *ratingForm) reset() {
	f.gen++
	f.phase = PhaseIdle
	f.value = 0
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *ratingForm) snapshot() Form {
	return Form{Phase: f.phase, Rating: f.value}
}

// ToggleForm opens a closed form or closes an open one. The form is only
// available once the movie has loaded.
func (c *Controller) ToggleForm() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.movie.State().Loaded() {
		return fmt.Errorf("%w: toggle without a loaded movie", ErrInvalidTransition)
	}
	switch c.form.phase {
	case PhaseIdle:
		c.form.phase = PhaseFormOpen
	case PhaseFormOpen:
		c.form.reset()
	default:
		return fmt.Errorf("%w: toggle while %s", ErrInvalidTransition, c.form.phase)
	}
	return nil
}

// CancelForm closes an open form, discarding the selected rating.
func (c *Controller) CancelForm() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.phase != PhaseFormOpen {
		return fmt.Errorf("%w: cancel while %s", ErrInvalidTransition, c.form.phase)
	}
	c.form.reset()
	return nil
}

// SelectRating picks a star value on the open form.
func (c *Controller) SelectRating(v model.RatingValue) error {
	if v < model.MinRating || v > model.MaxRating {
		return fmt.Errorf("%w: %d", model.ErrInvalidRating, v)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.phase != PhaseFormOpen {
		return fmt.Errorf("%w: select while %s", ErrInvalidTransition, c.form.phase)
	}
	c.form.value = v
	return nil
}

// SubmitRating sends the selected rating for the current movie on behalf of
// user. It fails without a network call when user is nil or no star is
// selected. On rejection the form reopens so the user can retry; on success
// the confirmation is shown until the confirm delay elapses.
func (c *Controller) SubmitRating(ctx context.Context, user *model.User) error {
	c.mu.Lock()
	if c.form.phase != PhaseFormOpen {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit while %s", ErrInvalidTransition, c.form.phase)
	}
	if !c.movie.State().Loaded() {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit without a loaded movie", ErrInvalidTransition)
	}
	if user == nil {
		c.mu.Unlock()
		return ErrUnauthenticated
	}
	rating := &model.Rating{UserID: user.ID, MovieID: c.id, Value: c.form.value}
	if err := rating.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.form.phase = PhaseSubmitting
	gen := c.form.gen
	c.mu.Unlock()

	err := c.gateway.SubmitRating(ctx, rating)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.form.gen {
		// The page moved to another movie meanwhile.
		return err
	}
	if err != nil {
		c.logger.Warn("Failed to submit rating", zap.Stringer("rating", rating), zap.Error(err))
		c.form.phase = PhaseFormOpen
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	c.logger.Info("Rating submitted", zap.Int(logging.FieldMovieID, int(rating.MovieID)), zap.Int("value", int(rating.Value)))
	c.form.phase = PhaseSubmitted
	c.form.timer = time.AfterFunc(c.confirmDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen == c.form.gen && c.form.phase == PhaseSubmitted {
			c.form.timer = nil
			c.form.reset()
		}
	})
	return nil
}
