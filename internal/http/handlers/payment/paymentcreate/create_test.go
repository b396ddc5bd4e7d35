package paymentcreate_test

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

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/paymentprovider"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CreateMembershipPayment(ctx context.Context, userUID, subscriptionID, token string) (*paymentprovider.CreatePaymentResponse, error) {
	args := m.Called(ctx, userUID, subscriptionID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreatePaymentResponse), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const subID = "7c0a1f2e-1111-4bbb-8ccc-000000000001"

func TestPaymentCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userUID    string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:    "успешное создание платежа",
			body:    `{"subscription_id":"` + subID + `","payment_token":"tok"}`,
			userUID: "payer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("CreateMembershipPayment", mock.Anything, "payer-uid", subID, "tok").
					Return(&paymentprovider.CreatePaymentResponse{ID: "pay-1", Status: "pending"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "невалидный ID подписки",
			body:       `{"subscription_id":"oops","payment_token":"tok"}`,
			userUID:    "payer-uid",
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:    "ошибка провайдера",
			body:    `{"subscription_id":"` + subID + `","payment_token":"tok"}`,
			userUID: "payer-uid",
			setupMocks: func(s *ServiceMock) {
				s.On("CreateMembershipPayment", mock.Anything, "payer-uid", subID, "tok").
					Return(nil, errors.New("provider unavailable")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "без авторизации",
			body:       `{"subscription_id":"` + subID + `","payment_token":"tok"}`,
			userUID:    "",
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)

			handler := paymentcreate.New(newNoopLogger(), service)
			req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(tt.body))
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
