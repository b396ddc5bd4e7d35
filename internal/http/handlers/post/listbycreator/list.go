// Package listbycreator реализует HTTP-обработчик выдачи ленты автора.
//
// Лента доступна при любой подписке на автора; без подписки запрос
// отклоняется целиком с причиной, по которой слой представления
// ведёт зрителя к кнопке подписки. Закрытые публикации без членства
// выдаются заблокированными анонсами.
package listbycreator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	services "github.com/magabrotheeeer/creator-platform/internal/services/content"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler управляет HTTP-запросами на выдачу ленты автора.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики выдачи ленты автора.
type Service interface {
	ListByCreator(ctx context.Context, viewer services.Viewer, creatorUID string, limit, offset int) ([]models.PostView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func parsePagination(r *http.Request) (limit, offset int) {
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
// @Summary Лента автора
// @Description Возвращает публикации автора. Требуется подписка на автора; закрытые публикации без членства выдаются анонсами.
// @Tags Posts
// @Produce  json
// @Param creatorUID path string true "UID автора"
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Публикации автора"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет подписки на автора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /creators/{creatorUID}/posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.listbycreator"
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

	creatorUID := chi.URLParam(r, "creatorUID")
	limit, offset := parsePagination(r)

	viewer := services.Viewer{UID: userUID, Role: role}
	views, err := h.service.ListByCreator(r.Context(), viewer, creatorUID, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrNotSubscribed) {
			log.Error("creator feed denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to list creator posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list posts"))
		return
	}

	log.Info("success to list creator posts", slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(views))
}
