package read_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Snapshot(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error) {
	args := m.Called(ctx, subscriberUID, creatorUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(creatorUID, userUID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+creatorUID, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("creatorUID", creatorUID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if userUID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
	}
	return req.WithContext(ctx)
}

func TestReadHandler(t *testing.T) {
	tests := []struct {
		name       string
		userUID    string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:    "подписка на автора найдена",
			userUID: "viewer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("Snapshot", mock.Anything, "viewer-uid", "creator-uid").
					Return(&models.Subscription{
						ID:            "sub-1",
						SubscriberUID: "viewer-uid",
						CreatorUID:    "creator-uid",
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "подписки нет",
			userUID: "viewer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("Snapshot", mock.Anything, "viewer-uid", "creator-uid").
					Return(nil, nil).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "ошибка хранилища",
			userUID: "viewer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("Snapshot", mock.Anything, "viewer-uid", "creator-uid").
					Return(nil, errors.New("storage down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "без авторизации",
			userUID:    "",
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)

			handler := read.New(newNoopLogger(), service)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, newRequest("creator-uid", tt.userUID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
