// Package creatorplatform собирает основной HTTP-сервис платформы:
// хранилище, кеш, брокер событий, платёжного провайдера и маршруты.
package creatorplatform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/creator-platform/internal/cache"
	"github.com/magabrotheeeer/creator-platform/internal/config"
	"github.com/magabrotheeeer/creator-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-platform/internal/migrations"
	"github.com/magabrotheeeer/creator-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/creator-platform/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/creator-platform/internal/services/auth"
	contentservice "github.com/magabrotheeeer/creator-platform/internal/services/content"
	paymentservice "github.com/magabrotheeeer/creator-platform/internal/services/payment"
	subservice "github.com/magabrotheeeer/creator-platform/internal/services/subscription"
	"github.com/magabrotheeeer/creator-platform/internal/storage/repository"
)

// App представляет основной HTTP-сервис платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создаёт приложение: подключает зависимости, прогоняет миграции
// и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 10, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetSubscriptionQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}
	events := rabbitmq.NewEventPublisher(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, events, logger)
	contentService := contentservice.NewContentService(db, subscriptionService, logger)

	providerClient := paymentprovider.NewClient(cfg.ShopID, cfg.SecretKey)
	paymentService := paymentservice.New(db, providerClient, subscriptionService,
		cfg.MembershipPrice, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:         authService,
		Subscription: subscriptionService,
		Content:      contentService,
		Payment:      paymentService,
	}, cfg.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", cerr))
		}
		return err
	}
}
