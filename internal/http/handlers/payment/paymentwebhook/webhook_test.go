package paymentwebhook_test

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

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/creator-platform/internal/paymentprovider"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) HandleWebhook(ctx context.Context, notification *paymentprovider.WebhookNotification) error {
	return m.Called(ctx, notification).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const secret = "test-webhook-secret"

const succeededBody = `{
	"type": "notification",
	"event": "payment.succeeded",
	"object": {
		"id": "pay-1",
		"status": "succeeded",
		"metadata": {"subscription_id": "sub-1", "subscriber_uid": "viewer-uid"}
	}
}`

func TestWebhookHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		secret     string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:   "успешное уведомление обрабатывается",
			body:   succeededBody,
			secret: secret,
			setupMocks: func(s *ServiceMock) {
				s.On("HandleWebhook", mock.Anything, mock.MatchedBy(func(n *paymentprovider.WebhookNotification) bool {
					return n.Event == paymentprovider.EventPaymentSucceeded &&
						n.Object.Metadata["subscription_id"] == "sub-1"
				})).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "неверный секрет",
			body:       succeededBody,
			secret:     "wrong",
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "некорректное тело",
			body:       `{"type":"other"}`,
			secret:     secret,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)

			handler := paymentwebhook.New(newNoopLogger(), service, secret)
			req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBufferString(tt.body))
			req.Header.Set("X-Webhook-Secret", tt.secret)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
