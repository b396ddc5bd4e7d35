// Package remove реализует HTTP-обработчик удаления подписки.
//
// Удаление снимает отношение подписки целиком, включая платное
// членство: для возврата потребуется новая подписка и новая оплата.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// Handler управляет HTTP-запросами на удаление подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики удаления подписки.
type Service interface {
	Unsubscribe(ctx context.Context, callerUID, subscriptionID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отписаться от автора
// @Description Удаляет подписку целиком. Платное членство при этом теряется без возврата.
// @Tags Subscriptions
// @Produce  json
// @Param id path string true "ID подписки"
// @Success 200 {object} map[string]any "Подписка удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужая подписка"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
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

	subscriptionID := chi.URLParam(r, "id")
	if err := h.service.Unsubscribe(r.Context(), userUID, subscriptionID); err != nil {
		switch {
		case errors.Is(err, models.ErrSubscriptionNotFound):
			log.Error("subscription not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, models.ErrNotOwner):
			log.Error("access to foreign subscription denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		default:
			log.Error("failed to remove subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove subscription"))
		}
		return
	}

	log.Info("success to remove subscription", slog.String("id", subscriptionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": subscriptionID,
	}))
}
