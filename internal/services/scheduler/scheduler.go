// Package services содержит фоновый обход членств с истекающим
// оплаченным периодом. Обход только публикует события-напоминания
// в брокер: сам доступ пересчитывается при чтении и в переводе
// истёкших записей не нуждается.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
	"github.com/magabrotheeeer/creator-platform/internal/rabbitmq"
)

// ExpiringWindow — горизонт поиска истекающих членств.
const ExpiringWindow = 24 * time.Hour

// SubscriptionRepository описывает выборку истекающих членств.
type SubscriptionRepository interface {
	FindMembershipsExpiringWithin(ctx context.Context, window time.Duration) ([]*models.Subscription, error)
}

// EventPublisher публикует события подписок в брокер.
type EventPublisher interface {
	Publish(routingKey string, event any) error
}

// SchedulerService периодически публикует напоминания об истекающих членствах.
type SchedulerService struct {
	repo   SubscriptionRepository
	events EventPublisher
	log    *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, events EventPublisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// Run запускает периодический обход до отмены контекста.
// Первый проход выполняется сразу, далее раз в 12 часов.
func (s *SchedulerService) Run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep выполняет один обход: находит членства, истекающие в ближайшие
// сутки, и публикует по каждому событие expiring.
func (s *SchedulerService) Sweep(ctx context.Context) {
	s.log.Info("starting sweep for expiring memberships")
	subs, err := s.repo.FindMembershipsExpiringWithin(ctx, ExpiringWindow)
	if err != nil {
		s.log.Error("failed to find expiring memberships", sl.Err(err))
		return
	}
	if len(subs) == 0 {
		s.log.Info("no expiring memberships found")
		return
	}
	s.log.Info("found expiring memberships", slog.Int("count", len(subs)))
	for _, sub := range subs {
		event := models.NewSubscriptionEvent(rabbitmq.RoutingKeyExpiring, sub)
		if err := s.events.Publish(rabbitmq.RoutingKeyExpiring, event); err != nil {
			s.log.Error("failed to publish expiring event",
				slog.String("subscription_id", sub.ID), sl.Err(err))
		}
	}
}
