// Package read реализует HTTP-обработчик выдачи одной публикации.
//
// Публикация проходит вычисление доступа: закрытая запись без
// членства возвращается заблокированным анонсом, а не ошибкой.
package read

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
	services "github.com/magabrotheeeer/creator-platform/internal/services/content"
)

// Handler управляет HTTP-запросами на чтение публикации.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики чтения публикации.
type Service interface {
	ReadPost(ctx context.Context, viewer services.Viewer, postID string) (*models.PostView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить публикацию
// @Description Возвращает публикацию по ID. Закрытая публикация без членства выдаётся анонсом.
// @Tags Posts
// @Produce  json
// @Param id path string true "ID публикации"
// @Success 200 {object} map[string]any "Публикация"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет подписки на автора"
// @Failure 404 {object} response.ErrorResponse "Публикация не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /posts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.read"
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

	postID := chi.URLParam(r, "id")
	viewer := services.Viewer{UID: userUID, Role: role}
	view, err := h.service.ReadPost(r.Context(), viewer, postID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPostNotFound):
			log.Error("post not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, services.ErrNotSubscribed):
			log.Error("post access denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to read post", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read post"))
		}
		return
	}

	log.Info("success to read post", slog.String("id", view.ID), slog.Bool("locked", view.Locked))
	render.JSON(w, r, response.StatusOKWithData(view))
}
