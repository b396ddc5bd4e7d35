// Package read реализует HTTP-обработчик выдачи снимка подписки
// текущего пользователя на автора.
package read

import (
	"context"
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

// Handler управляет HTTP-запросами на чтение подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики чтения снимка подписки.
type Service interface {
	Snapshot(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подписку на автора
// @Description Возвращает текущую подписку пользователя на указанного автора.
// @Tags Subscriptions
// @Produce  json
// @Param creatorUID path string true "UID автора"
// @Success 200 {object} map[string]any "Подписка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{creatorUID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"
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

	creatorUID := chi.URLParam(r, "creatorUID")
	sub, err := h.service.Snapshot(r.Context(), userUID, creatorUID)
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}
	if sub == nil {
		log.Info("subscription not found", slog.String("creator_uid", creatorUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subscription not found"))
		return
	}

	log.Info("success to read subscription", slog.String("id", sub.ID))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
