// Package paymentwebhook реализует HTTP-обработчик вебхука платёжного
// провайдера. Успешная оплата переводит подписку в платное членство.
//
// Вебхук аутентифицируется общим секретом в заголовке X-Webhook-Secret:
// маршрут открыт для провайдера и не проходит JWT-middleware.
package paymentwebhook

import (
	"context"
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/paymentprovider"
)

// Handler управляет HTTP-запросами вебхука провайдера.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики платежей
	secret  string       // Общий секрет вебхука
}

// Service описывает интерфейс бизнес-логики обработки вебхука.
type Service interface {
	HandleWebhook(ctx context.Context, notification *paymentprovider.WebhookNotification) error
}

// New создает новый Handler с переданными логгером, сервисом и секретом.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		secret:  secret,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платёжного провайдера
// @Description Принимает уведомление о статусе платежа. Успешная оплата активирует платное членство.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param X-Webhook-Secret header string true "Общий секрет вебхука"
// @Success 200 {object} map[string]any "Уведомление обработано"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело уведомления"
// @Failure 401 {object} response.ErrorResponse "Неверный секрет"
// @Failure 500 {object} response.ErrorResponse "Ошибка обработки"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	secret := r.Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		log.Error("invalid webhook secret")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	notification, err := paymentprovider.ParseWebhook(body)
	if err != nil {
		log.Error("failed to parse webhook", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid notification"))
		return
	}
	log.Info("webhook received",
		slog.String("event", notification.Event),
		slog.String("payment_id", notification.Object.ID))

	if err := h.service.HandleWebhook(r.Context(), notification); err != nil {
		log.Error("failed to handle webhook", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not handle notification"))
		return
	}

	log.Info("webhook handled", slog.String("payment_id", notification.Object.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment_id": notification.Object.ID,
	}))
}
