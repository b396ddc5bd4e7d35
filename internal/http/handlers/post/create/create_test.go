package create_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/post/create"
	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	services "github.com/magabrotheeeer/creator-platform/internal/services/content"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CreatePost(ctx context.Context, viewer services.Viewer, title, body, visibility string) (*models.Post, error) {
	args := m.Called(ctx, viewer, title, body, visibility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(body, userUID, role string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBufferString(body))
	ctx := req.Context()
	if userUID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
		ctx = context.WithValue(ctx, middlewarectx.Role, role)
	}
	return req.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	author := services.Viewer{UID: "creator-uid", Role: models.RoleCreator}

	tests := []struct {
		name       string
		body       string
		userUID    string
		role       string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:    "автор публикует закрытую запись",
			body:    `{"title":"t","body":"b","visibility":"members_only"}`,
			userUID: "creator-uid",
			role:    models.RoleCreator,
			setupMocks: func(s *ServiceMock) {
				s.On("CreatePost", mock.Anything, author, "t", "b", models.VisibilityMembersOnly).
					Return(&models.Post{ID: "p1", Visibility: models.VisibilityMembersOnly}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "зрителю запрещено публиковать",
			body:    `{"title":"t","body":"b","visibility":"public"}`,
			userUID: "viewer-uid",
			role:    models.RoleUser,
			setupMocks: func(s *ServiceMock) {
				s.On("CreatePost", mock.Anything, services.Viewer{UID: "viewer-uid", Role: models.RoleUser},
					"t", "b", models.VisibilityPublic).
					Return(nil, models.ErrNotOwner).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "неизвестная видимость не проходит валидацию",
			body:       `{"title":"t","body":"b","visibility":"secret"}`,
			userUID:    "creator-uid",
			role:       models.RoleCreator,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "без авторизации",
			body:       `{"title":"t","body":"b","visibility":"public"}`,
			userUID:    "",
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)

			handler := create.New(newNoopLogger(), service)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, newRequest(tt.body, tt.userUID, tt.role))

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
