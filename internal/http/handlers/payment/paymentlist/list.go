// Package paymentlist реализует HTTP-обработчик выдачи сохранённых
// платёжных токенов текущего пользователя.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// Handler управляет HTTP-запросами на выдачу платёжных токенов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики платежей
}

// Service описывает интерфейс бизнес-логики выдачи токенов.
type Service interface {
	ListPaymentTokens(ctx context.Context, userUID string) ([]*models.PaymentToken, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список платёжных токенов
// @Description Возвращает сохранённые платёжные токены текущего пользователя.
// @Tags Payments
// @Produce  json
// @Success 200 {object} map[string]any "Сохранённые токены"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	tokens, err := h.service.ListPaymentTokens(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list payment tokens", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payment tokens"))
		return
	}

	log.Info("success to list payment tokens", slog.Int("count", len(tokens)))
	render.JSON(w, r, response.StatusOKWithData(tokens))
}
