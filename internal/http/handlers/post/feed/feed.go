// Package feed реализует HTTP-обработчик общей ленты зрителя:
// публикации всех авторов, на которых он подписан.
package feed

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
	services "github.com/magabrotheeeer/creator-platform/internal/services/content"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler управляет HTTP-запросами на выдачу общей ленты.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики общей ленты.
type Service interface {
	Feed(ctx context.Context, viewer services.Viewer, limit, offset int) ([]models.PostView, error)
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
// @Summary Общая лента
// @Description Возвращает публикации всех авторов, на которых подписан текущий пользователь.
// @Tags Posts
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Публикации ленты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /feed [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.feed"
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

	limit, offset := parsePagination(r)
	viewer := services.Viewer{UID: userUID, Role: role}
	views, err := h.service.Feed(r.Context(), viewer, limit, offset)
	if err != nil {
		log.Error("failed to build feed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build feed"))
		return
	}

	log.Info("success to build feed", slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(views))
}
