// Package services содержит бизнес-логику жизненного цикла подписки
// зрителя на автора: создание, апгрейд до платного членства, отмену,
// отзыв отмены и удаление, а также выдачу снимка состояния для
// вычисления доступа.
//
// Пакет владеет записью отношения (зритель, автор), но не решает
// вопросы доступа: это делает пакет access по снимку, который отсюда
// выдаётся. Каждая мутация инвалидирует кеш снимка до подтверждения,
// поэтому вычисление доступа после мутации видит её результат.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/creator-platform/internal/lib/sl"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку.
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// FindSubscriptionByPair возвращает подписку зрителя на автора.
	FindSubscriptionByPair(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error)
	// FindSubscriptionByID возвращает подписку по ID.
	FindSubscriptionByID(ctx context.Context, id string) (*models.Subscription, error)
	// UpgradeSubscription переводит подписку в paid/active с датой окончания периода.
	UpgradeSubscription(ctx context.Context, id string, expiresAt time.Time) (*models.Subscription, error)
	// UpdateSubscriptionStatus изменяет статус подписки.
	UpdateSubscriptionStatus(ctx context.Context, id, status string) (*models.Subscription, error)
	// RemoveSubscription удаляет подписку и возвращает количество удалённых записей.
	RemoveSubscription(ctx context.Context, id string) (int, error)
	// ListSubscriptionsBySubscriber возвращает подписки зрителя с пагинацией.
	ListSubscriptionsBySubscriber(ctx context.Context, subscriberUID string, limit, offset int) ([]*models.Subscription, error)
	// ListAllSubscriptions возвращает все подписки с пагинацией.
	ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
}

// Cache описывает методы для кэширования снимков подписки.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события жизненного цикла подписки в брокер.
type EventPublisher interface {
	Publish(routingKey string, event any) error
}

// SubscriptionService реализует жизненный цикл подписки.
type SubscriptionService struct {
	repo   SubscriptionRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, events EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

func snapshotKey(subscriberUID, creatorUID string) string {
	return fmt.Sprintf("subscription:%s:%s", subscriberUID, creatorUID)
}

// invalidateSnapshot удаляет кешированный снимок пары до подтверждения
// мутации: следующее вычисление доступа перечитает хранилище.
func (s *SubscriptionService) invalidateSnapshot(sub *models.Subscription) {
	key := snapshotKey(sub.SubscriberUID, sub.CreatorUID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate snapshot cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *SubscriptionService) publish(routingKey string, sub *models.Subscription) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, models.NewSubscriptionEvent(routingKey, sub)); err != nil {
		s.log.Warn("failed to publish subscription event",
			slog.String("event", routingKey), sl.Err(err))
	}
}

// Subscribe создаёт бесплатную подписку зрителя на автора.
// Автор не может подписаться сам на себя; на пару (зритель, автор)
// допускается только одна подписка.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error) {
	if subscriberUID == creatorUID {
		return nil, models.ErrSelfSubscription
	}

	if _, err := s.repo.FindSubscriptionByPair(ctx, subscriberUID, creatorUID); err == nil {
		return nil, models.ErrAlreadySubscribed
	} else if !errors.Is(err, models.ErrSubscriptionNotFound) {
		return nil, err
	}

	sub := models.Subscription{
		ID:            uuid.New().String(),
		SubscriberUID: subscriberUID,
		CreatorUID:    creatorUID,
		Type:          models.SubscriptionTypeFree,
		Status:        models.SubscriptionStatusActive,
	}
	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new subscription",
		slog.String("id", created.ID), slog.String("creator_uid", creatorUID))

	s.invalidateSnapshot(created)
	s.publish("subscribed", created)
	return created, nil
}

// Upgrade переводит подписку в платное членство после подтверждения
// оплаты внешним провайдером. Для уже платной подписки работает как
// продление: дата окончания сдвигается вперёд, дубликат не создаётся.
func (s *SubscriptionService) Upgrade(ctx context.Context, callerUID, subscriptionID string, paidPeriodEnd time.Time) (*models.Subscription, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.SubscriberUID != callerUID {
		return nil, models.ErrNotOwner
	}
	if !paidPeriodEnd.After(time.Now()) {
		return nil, models.ErrInvalidState
	}
	// Продление не укорачивает уже оплаченный период
	if sub.IsPaid() && sub.ExpiresAt != nil && sub.ExpiresAt.After(paidPeriodEnd) {
		paidPeriodEnd = *sub.ExpiresAt
	}

	upgraded, err := s.repo.UpgradeSubscription(ctx, subscriptionID, paidPeriodEnd)
	if err != nil {
		return nil, err
	}
	s.log.Info("upgraded subscription to paid membership",
		slog.String("id", upgraded.ID), slog.Time("expires_at", paidPeriodEnd))

	s.invalidateSnapshot(upgraded)
	s.publish("upgraded", upgraded)
	return upgraded, nil
}

// Cancel отменяет продление платного членства. Текущий оплаченный
// период не затрагивается: членство действует до ExpiresAt.
// Повторная отмена — no-op, возвращает текущую запись.
func (s *SubscriptionService) Cancel(ctx context.Context, callerUID, subscriptionID string) (*models.Subscription, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.SubscriberUID != callerUID {
		return nil, models.ErrNotOwner
	}
	if !sub.IsPaid() {
		// У бесплатной подписки нет продления; её снимают через Unsubscribe
		return nil, models.ErrInvalidState
	}
	if sub.Status == models.SubscriptionStatusCanceled {
		return sub, nil
	}

	canceled, err := s.repo.UpdateSubscriptionStatus(ctx, subscriptionID, models.SubscriptionStatusCanceled)
	if err != nil {
		return nil, err
	}
	s.log.Info("canceled subscription renewal", slog.String("id", canceled.ID))

	s.invalidateSnapshot(canceled)
	s.publish("canceled", canceled)
	return canceled, nil
}

// RevokeCancel отзывает отмену: членство снова будет продлеваться.
// Для истёкшего членства отзыв невозможен — требуется новая оплата.
func (s *SubscriptionService) RevokeCancel(ctx context.Context, callerUID, subscriptionID string) (*models.Subscription, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.SubscriberUID != callerUID {
		return nil, models.ErrNotOwner
	}
	if sub.Status != models.SubscriptionStatusCanceled {
		return nil, models.ErrInvalidState
	}
	if sub.ExpiresAt == nil || !sub.ExpiresAt.After(time.Now()) {
		return nil, models.ErrInvalidState
	}

	reactivated, err := s.repo.UpdateSubscriptionStatus(ctx, subscriptionID, models.SubscriptionStatusActive)
	if err != nil {
		return nil, err
	}
	s.log.Info("revoked subscription cancellation", slog.String("id", reactivated.ID))

	s.invalidateSnapshot(reactivated)
	s.publish("reactivated", reactivated)
	return reactivated, nil
}

// Unsubscribe удаляет отношение подписки целиком. Необратимо:
// для возврата потребуется новый Subscribe.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, callerUID, subscriptionID string) error {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.SubscriberUID != callerUID {
		return models.ErrNotOwner
	}

	count, err := s.repo.RemoveSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrSubscriptionNotFound
	}
	s.log.Info("removed subscription", slog.String("id", subscriptionID))

	s.invalidateSnapshot(sub)
	s.publish("unsubscribed", sub)
	return nil
}

// Snapshot возвращает текущую подписку зрителя на автора или nil,
// если отношения нет. Отсутствие подписки — нормальный результат,
// а не ошибка: дальше его интерпретирует пакет access.
func (s *SubscriptionService) Snapshot(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error) {
	key := snapshotKey(subscriberUID, creatorUID)

	var cached *models.Subscription
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read snapshot cache", slog.String("key", key), sl.Err(err))
	} else if found {
		return cached, nil
	}

	sub, err := s.repo.FindSubscriptionByPair(ctx, subscriberUID, creatorUID)
	if err != nil {
		if errors.Is(err, models.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.cache.Set(key, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache snapshot", slog.String("key", key), sl.Err(err))
	}
	return sub, nil
}

// List возвращает подписки в зависимости от роли: администратор видит
// все, остальные — только свои.
func (s *SubscriptionService) List(ctx context.Context, subscriberUID, role string, limit, offset int) ([]*models.Subscription, error) {
	if role == models.RoleAdmin {
		return s.repo.ListAllSubscriptions(ctx, limit, offset)
	}
	return s.repo.ListSubscriptionsBySubscriber(ctx, subscriberUID, limit, offset)
}
