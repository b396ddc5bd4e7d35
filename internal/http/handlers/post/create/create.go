// Package create реализует HTTP-обработчик публикации новой записи автора.
//
// Handler принимает JSON с заголовком, содержимым и видимостью,
// валидирует их и создаёт публикацию от имени текущего пользователя.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	services "github.com/magabrotheeeer/creator-platform/internal/services/content"
)

// Handler управляет HTTP-запросами на публикацию записей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики публикаций
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики публикации записи.
type Service interface {
	CreatePost(ctx context.Context, viewer services.Viewer, title, body, visibility string) (*models.Post, error)
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
// @Summary Опубликовать запись
// @Description Создает публикацию от имени текущего автора. Видимость: public или members_only.
// @Tags Posts
// @Accept  json
// @Produce  json
// @Param request body models.DummyPostRequest true "Данные публикации"
// @Success 200 {object} map[string]any "Созданная публикация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Публиковать могут только авторы"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /posts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

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
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	viewer := services.Viewer{UID: userUID, Role: role}
	post, err := h.service.CreatePost(r.Context(), viewer, req.Title, req.Body, req.Visibility)
	if err != nil {
		if errors.Is(err, models.ErrNotOwner) {
			log.Error("post creation denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("only creators can publish posts"))
			return
		}
		log.Error("failed to create post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create post"))
		return
	}

	log.Info("success to create post", slog.String("id", post.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":         post.ID,
		"visibility": post.Visibility,
	}))
}
