package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-platform/internal/http/response"
)

// RequireRole возвращает middleware, пропускающий запрос только
// при одной из перечисленных ролей в контексте. Администратор
// проходит всегда.
func RequireRole(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("user role missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			if _, ok := allowed[role]; !ok && role != "admin" {
				log.Error("access denied for role", slog.String("role", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
