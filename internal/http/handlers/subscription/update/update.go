// Package update реализует HTTP-обработчик смены статуса подписки.
//
// Целевой статус canceled отменяет продление членства, active —
// отзывает отмену. Текущий оплаченный период при этом не меняется.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// Handler управляет HTTP-запросами на смену статуса подписки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики смены статуса подписки.
type Service interface {
	Cancel(ctx context.Context, callerUID, subscriptionID string) (*models.Subscription, error)
	RevokeCancel(ctx context.Context, callerUID, subscriptionID string) (*models.Subscription, error)
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
// @Summary Сменить статус подписки
// @Description Отменяет продление членства (canceled) или отзывает отмену (active). Оплаченный период не меняется.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param id path string true "ID подписки"
// @Param request body models.DummyUpdateStatusRequest true "Целевой статус"
// @Success 200 {object} map[string]any "Обновлённая подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужая подписка"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход статуса"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

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

	subscriptionID := chi.URLParam(r, "id")
	var sub *models.Subscription
	var err error
	if req.Status == models.SubscriptionStatusCanceled {
		sub, err = h.service.Cancel(r.Context(), userUID, subscriptionID)
	} else {
		sub, err = h.service.RevokeCancel(r.Context(), userUID, subscriptionID)
	}
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSubscriptionNotFound):
			log.Error("subscription not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, models.ErrNotOwner):
			log.Error("access to foreign subscription denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		case errors.Is(err, models.ErrInvalidState):
			log.Error("invalid status transition", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("invalid status transition"))
		default:
			log.Error("failed to update subscription status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update subscription"))
		}
		return
	}

	log.Info("success to update subscription status",
		slog.String("id", sub.ID), slog.String("status", sub.Status))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
