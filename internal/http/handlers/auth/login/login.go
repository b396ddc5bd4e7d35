// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём выполняется декодирование JSON, проверка и валидация полей,
// а также делегирование операции входа сервису аутентификации.
// При успешной аутентификации возвращается JSON с JWT и ролью;
// в случае ошибок формируются соответствующие HTTP-ответы.
package login

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-platform/internal/http/response"
	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	services "github.com/magabrotheeeer/creator-platform/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по имени и паролю. Возвращает JWT и роль.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyLoginRequest true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLoginRequest
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

	token, role, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":    token,
		"role":     role,
		"username": req.Username,
	}))
}
