// Package list реализует HTTP-обработчик выдачи подписок пользователя.
//
// Обычный пользователь получает свои подписки, администратор — все.
// Пагинация задаётся query-параметрами limit и offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler управляет HTTP-запросами на выдачу списка подписок.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики выдачи подписок.
type Service interface {
	List(ctx context.Context, subscriberUID, role string, limit, offset int) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ParsePagination извлекает limit и offset из query-параметров.
func ParsePagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxLimit {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает подписки текущего пользователя. Администратор видит все подписки.
// @Tags Subscriptions
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
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
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	limit, offset := ParsePagination(r)
	subs, err := h.service.List(r.Context(), userUID, role, limit, offset)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	log.Info("success to list subscriptions", slog.Int("count", len(subs)))
	render.JSON(w, r, response.StatusOKWithData(subs))
}
