// Package creatorplatform предоставляет маршруты для основного приложения.
package creatorplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/payment/paymentwebhook"
	postcreate "github.com/magabrotheeeer/creator-platform/internal/http/handlers/post/create"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/post/feed"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/post/listbycreator"
	postread "github.com/magabrotheeeer/creator-platform/internal/http/handlers/post/read"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/creator-platform/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/creator-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	authservice "github.com/magabrotheeeer/creator-platform/internal/services/auth"
	contentservice "github.com/magabrotheeeer/creator-platform/internal/services/content"
	paymentservice "github.com/magabrotheeeer/creator-platform/internal/services/payment"
	subservice "github.com/magabrotheeeer/creator-platform/internal/services/subscription"
)

// Services — сервисы бизнес-логики, которыми пользуются маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Subscription *subservice.SubscriptionService
	Content      *contentservice.ContentService
	Payment      *paymentservice.PaymentService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/subscriptions", create.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions", list.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/{creatorUID}", read.New(logger, s.Subscription).ServeHTTP)
			r.Put("/subscriptions/{id}/status", update.New(logger, s.Subscription).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, s.Subscription).ServeHTTP)

			r.Get("/creators/{creatorUID}/posts", listbycreator.New(logger, s.Content).ServeHTTP)
			r.Get("/posts/{id}", postread.New(logger, s.Content).ServeHTTP)
			r.Get("/feed", feed.New(logger, s.Content).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, s.Payment).ServeHTTP)

			// Публиковать могут только авторы
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleCreator))
				r.Post("/posts", postcreate.New(logger, s.Content).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации, защищён общим секретом)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment, webhookSecret).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
