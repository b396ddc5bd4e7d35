package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-platform/internal/models"
	"github.com/magabrotheeeer/creator-platform/internal/rabbitmq"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindMembershipsExpiringWithin(ctx context.Context, window time.Duration) ([]*models.Subscription, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, event any) error {
	return m.Called(routingKey, event).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSchedulerService_Sweep(t *testing.T) {
	paidUntil := time.Now().Add(6 * time.Hour)
	expiring := []*models.Subscription{
		{ID: "s1", SubscriberUID: "v1", CreatorUID: "c1",
			Type: models.SubscriptionTypePaid, Status: models.SubscriptionStatusActive, ExpiresAt: &paidUntil},
		{ID: "s2", SubscriberUID: "v2", CreatorUID: "c1",
			Type: models.SubscriptionTypePaid, Status: models.SubscriptionStatusCanceled, ExpiresAt: &paidUntil},
	}

	t.Run("публикует событие по каждому истекающему членству", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		repo.On("FindMembershipsExpiringWithin", mock.Anything, ExpiringWindow).Return(expiring, nil).Once()
		events.On("Publish", rabbitmq.RoutingKeyExpiring, mock.MatchedBy(func(e any) bool {
			event, ok := e.(models.SubscriptionEvent)
			return ok && event.Event == rabbitmq.RoutingKeyExpiring
		})).Return(nil).Twice()

		NewSchedulerService(repo, events, newNoopLogger()).Sweep(context.Background())

		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("без истекающих членств ничего не публикует", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		repo.On("FindMembershipsExpiringWithin", mock.Anything, ExpiringWindow).Return([]*models.Subscription{}, nil).Once()

		NewSchedulerService(repo, events, newNoopLogger()).Sweep(context.Background())

		events.AssertNotCalled(t, "Publish")
	})

	t.Run("ошибка выборки не прерывает работу", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		repo.On("FindMembershipsExpiringWithin", mock.Anything, ExpiringWindow).
			Return(nil, errors.New("db down")).Once()

		NewSchedulerService(repo, events, newNoopLogger()).Sweep(context.Background())

		events.AssertNotCalled(t, "Publish")
	})

	t.Run("ошибка публикации не останавливает обход", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		repo.On("FindMembershipsExpiringWithin", mock.Anything, ExpiringWindow).Return(expiring, nil).Once()
		events.On("Publish", rabbitmq.RoutingKeyExpiring, mock.Anything).
			Return(errors.New("broker down")).Twice()

		NewSchedulerService(repo, events, newNoopLogger()).Sweep(context.Background())

		events.AssertExpectations(t)
	})
}
