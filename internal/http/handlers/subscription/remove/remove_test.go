package remove_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Unsubscribe(ctx context.Context, callerUID, subscriptionID string) error {
	return m.Called(ctx, callerUID, subscriptionID).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(userUID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/subscriptions/sub-1", nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "sub-1")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if userUID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
	}
	return req.WithContext(ctx)
}

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name       string
		userUID    string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:    "успешное удаление",
			userUID: "viewer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("Unsubscribe", mock.Anything, "viewer-uid", "sub-1").Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "подписка не найдена",
			userUID: "viewer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("Unsubscribe", mock.Anything, "viewer-uid", "sub-1").
					Return(models.ErrSubscriptionNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "чужая подписка",
			userUID: "intruder-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("Unsubscribe", mock.Anything, "intruder-uid", "sub-1").
					Return(models.ErrNotOwner).Once()
			},
			wantStatus: http.StatusForbidden,
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

			handler := remove.New(newNoopLogger(), service)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, newRequest(tt.userUID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
