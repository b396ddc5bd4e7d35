// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Принимает JSON с email, именем, паролем и желаемой ролью (зритель
// или автор), валидирует поля и делегирует создание пользователя
// сервису аутентификации.
package register

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя с ролью зрителя или автора. Возвращает UID.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyRegisterRequest true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	uid, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password, req.Role)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":      uid,
		"username": req.Username,
	}))
}
