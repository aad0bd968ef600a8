package session

import (
	"context"
	"errors"
	"netstream/frontend/pkg/model"
	"testing"

	gen "netstream/gen/mock/frontend/gateway"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestBootstrap(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.User
		err      error
		wantUser *model.User
	}{
		{
			name:     "user resolved",
			user:     &model.User{ID: 1, Name: "John Doe"},
			wantUser: &model.User{ID: 1, Name: "John Doe"},
		},
		{
			name: "failure yields anonymous session",
			err:  errors.New("connection refused"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gw := gen.NewMockCatalog(ctrl)
			gw.EXPECT().GetUser(gomock.Any(), model.UserID(1)).Return(tt.user, tt.err).Times(1)

			s := NewController(gw, 1, zap.NewNop()).Bootstrap(context.Background())
			assert.Equal(t, tt.wantUser, s.User())
			assert.Equal(t, tt.wantUser != nil, s.Authenticated())
		})
	}
}

func TestNilSession(t *testing.T) {
	var s *Session
	assert.Nil(t, s.User())
	assert.False(t, s.Authenticated())
}
