// Package create реализует HTTP-обработчик подписки зрителя на автора.
//
// Handler принимает JSON с UID автора, валидирует его, извлекает UID
// зрителя из контекста и создаёт бесплатную подписку через сервис.
// Платное членство оформляется отдельно, через оплату.
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
)

// Handler управляет HTTP-запросами на создание подписки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания подписки.
type Service interface {
	Subscribe(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error)
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
// @Summary Подписаться на автора
// @Description Создает бесплатную подписку текущего пользователя на автора.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.DummySubscribeRequest true "UID автора"
// @Success 200 {object} map[string]any "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или подписка на себя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Подписка уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscribeRequest
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

	subscriberUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || subscriberUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	sub, err := h.service.Subscribe(r.Context(), subscriberUID, req.CreatorUID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSelfSubscription):
			log.Error("self subscription rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cannot subscribe to yourself"))
		case errors.Is(err, models.ErrAlreadySubscribed):
			log.Error("duplicate subscription rejected", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("already subscribed to this creator"))
		default:
			log.Error("failed to create subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create subscription"))
		}
		return
	}

	log.Info("success to create subscription", slog.String("id", sub.ID))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
