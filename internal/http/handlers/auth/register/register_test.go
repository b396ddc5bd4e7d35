package register_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/auth/register"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, username, password, role string) (string, error) {
	args := m.Called(ctx, email, username, password, role)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name: "успешная регистрация автора",
			body: `{"email":"a@b.com","username":"author1","password":"password123","role":"creator"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "a@b.com", "author1", "password123", "creator").
					Return("new-uid", nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "некорректный JSON",
			body:       `{"email":`,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "короткий пароль не проходит валидацию",
			body:       `{"email":"a@b.com","username":"author1","password":"short"}`,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "ошибка сервиса",
			body: `{"email":"a@b.com","username":"author1","password":"password123"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "a@b.com", "author1", "password123", "").
					Return("", errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)

			handler := register.New(newNoopLogger(), service)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
