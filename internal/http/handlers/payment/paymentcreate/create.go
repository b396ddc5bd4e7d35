// Package paymentcreate реализует HTTP-обработчик оплаты членства.
//
// Handler принимает JSON с ID подписки и платёжным токеном, создаёт
// платёж у провайдера и возвращает его статус. Сама подписка станет
// платной после подтверждения оплаты вебхуком провайдера.
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/paymentprovider"
)

// Request — входные данные для оплаты членства.
type Request struct {
	SubscriptionID string `json:"subscription_id" validate:"required,uuid"`
	PaymentToken   string `json:"payment_token" validate:"required"`
}

// Handler управляет HTTP-запросами на оплату членства.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики платежей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оплаты членства.
type Service interface {
	CreateMembershipPayment(ctx context.Context, userUID, subscriptionID, token string) (*paymentprovider.CreatePaymentResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оплатить членство
// @Description Создает платёж за месячное членство по подписке. Подписка станет платной после подтверждения оплаты провайдером.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "ID подписки и платёжный токен"
// @Success 200 {object} map[string]any "Созданный платёж"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера или провайдера"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("subscription_id", req.SubscriptionID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	payment, err := h.service.CreateMembershipPayment(r.Context(), userUID, req.SubscriptionID, req.PaymentToken)
	if err != nil {
		log.Error("failed to create payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create payment"))
		return
	}

	log.Info("success to create payment",
		slog.String("payment_id", payment.ID), slog.String("status", payment.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment_id": payment.ID,
		"status":     payment.Status,
	}))
}
