package session

import (
	"context"
	"netstream/frontend/pkg/model"
	"netstream/pkg/logging"

	"go.uber.org/zap"
)

type userGateway interface {
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
}

// Session holds the user the application runs as for the lifetime of the
// process. A session without a user is valid and means nobody is logged in.
type Session struct {
	user *model.User
}

// New creates a session for the given user, which may be nil.
func New(user *model.User) *Session {
	return &Session{user: user}
}

// User returns the current user or nil.
func (s *Session) User() *model.User {
	if s == nil {
		return nil
	}
	return s.user
}

// Authenticated reports whether a user is present.
func (s *Session) Authenticated() bool {
	return s.User() != nil
}

// Controller defines a session bootstrap controller.
type Controller struct {
	gateway userGateway
	userID  model.UserID
	logger  *zap.Logger
}

// NewController creates a session controller resolving the fixed demo user id.
func NewController(gateway userGateway, userID model.UserID, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "session"))
	return &Controller{gateway: gateway, userID: userID, logger: logger}
}

// Bootstrap issues the single request resolving the current user. A failure
// is logged and yields an anonymous session, never an error.
func (c *Controller) Bootstrap(ctx context.Context) *Session {
	user, err := c.gateway.GetUser(ctx, c.userID)
	if err != nil {
		c.logger.Warn("Failed to resolve current user, continuing anonymously",
			zap.Int(logging.FieldUserID, int(c.userID)),
			zap.Error(err),
		)
		return New(nil)
	}
	c.logger.Info("Session started", zap.Int(logging.FieldUserID, int(user.ID)), zap.String("name", user.Name))
	return New(user)
}
