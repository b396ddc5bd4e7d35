package listbycreator_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/post/listbycreator"
	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	services "github.com/magabrotheeeer/creator-platform/internal/services/content"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListByCreator(ctx context.Context, viewer services.Viewer, creatorUID string, limit, offset int) ([]models.PostView, error) {
	args := m.Called(ctx, viewer, creatorUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostView), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const creatorUID = "creator-uid"

func newRequest(target, userUID, role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("creatorUID", creatorUID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if userUID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
		ctx = context.WithValue(ctx, middlewarectx.Role, role)
	}
	return req.WithContext(ctx)
}

func TestListByCreatorHandler(t *testing.T) {
	subscriber := services.Viewer{UID: "viewer-uid", Role: models.RoleUser}

	t.Run("подписчик получает ленту с анонсом закрытого поста", func(t *testing.T) {
		service := new(ServiceMock)
		service.On("ListByCreator", mock.Anything, subscriber, creatorUID, 20, 0).
			Return([]models.PostView{
				{ID: "p1", Title: "Открытый", Locked: false},
				{ID: "p2", Locked: true},
			}, nil).Once()

		handler := listbycreator.New(newNoopLogger(), service)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("/creators/"+creatorUID+"/posts", "viewer-uid", models.RoleUser))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Status string            `json:"status"`
			Data   []models.PostView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.True(t, resp.Data[1].Locked)
		assert.Empty(t, resp.Data[1].Title)
	})

	t.Run("без подписки лента закрыта", func(t *testing.T) {
		service := new(ServiceMock)
		service.On("ListByCreator", mock.Anything, subscriber, creatorUID, 20, 0).
			Return(nil, services.ErrNotSubscribed).Once()

		handler := listbycreator.New(newNoopLogger(), service)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("/creators/"+creatorUID+"/posts", "viewer-uid", models.RoleUser))

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "not subscribed to this creator")
	})

	t.Run("пагинация из query-параметров", func(t *testing.T) {
		service := new(ServiceMock)
		service.On("ListByCreator", mock.Anything, subscriber, creatorUID, 5, 10).
			Return([]models.PostView{}, nil).Once()

		handler := listbycreator.New(newNoopLogger(), service)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("/creators/"+creatorUID+"/posts?limit=5&offset=10", "viewer-uid", models.RoleUser))

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("без авторизации", func(t *testing.T) {
		service := new(ServiceMock)
		handler := listbycreator.New(newNoopLogger(), service)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("/creators/"+creatorUID+"/posts", "", ""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		service.AssertNotCalled(t, "ListByCreator")
	})
}
