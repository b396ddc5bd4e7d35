// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/response"
)

// Handler отвечает на проверку живости.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Сервис работает"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
