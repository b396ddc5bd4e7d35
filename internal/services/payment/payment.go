// Package services содержит бизнес-логику оплаты членства:
// сохранение платёжных токенов, создание платежа у провайдера
// и обработку вебхука подтверждения оплаты.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/creator-platform/internal/models"
	"github.com/magabrotheeeer/creator-platform/internal/paymentprovider"
)

// MembershipPeriod — длительность оплачиваемого периода членства.
const MembershipPeriod = 30 * 24 * time.Hour

// ErrUnexpectedWebhook возвращается для вебхука без метаданных подписки.
var ErrUnexpectedWebhook = errors.New("webhook without subscription metadata")

// PaymentRepository описывает контракт для работы с платёжными токенами.
type PaymentRepository interface {
	// FindPaymentToken находит сохранённый токен пользователя.
	FindPaymentToken(ctx context.Context, userUID string, token string) (int, bool, error)
	// CreatePaymentToken сохраняет новый токен пользователя.
	CreatePaymentToken(ctx context.Context, userUID string, token string) (int, error)
	// ListPaymentTokens возвращает сохранённые токены пользователя.
	ListPaymentTokens(ctx context.Context, userUID string) ([]*models.PaymentToken, error)
}

// ProviderClient описывает клиент платёжного провайдера.
type ProviderClient interface {
	CreatePayment(ctx context.Context, req paymentprovider.CreatePaymentRequest) (*paymentprovider.CreatePaymentResponse, error)
}

// MembershipUpgrader переводит подписку в платное членство
// после подтверждения оплаты.
type MembershipUpgrader interface {
	Upgrade(ctx context.Context, callerUID, subscriptionID string, paidPeriodEnd time.Time) (*models.Subscription, error)
}

// PaymentService реализует оплату членства через внешнего провайдера.
type PaymentService struct {
	repo     PaymentRepository
	provider ProviderClient
	ledger   MembershipUpgrader
	price    int // цена месячного членства в минорных единицах
	log      *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(repo PaymentRepository, provider ProviderClient, ledger MembershipUpgrader, price int, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		ledger:   ledger,
		price:    price,
		log:      log,
	}
}

// GetOrCreatePaymentToken возвращает ID сохранённого токена,
// при отсутствии — сохраняет новый.
func (s *PaymentService) GetOrCreatePaymentToken(ctx context.Context, userUID string, token string) (int, error) {
	res, found, err := s.repo.FindPaymentToken(ctx, userUID, token)
	if err != nil {
		return 0, fmt.Errorf("failed to find token: %w", err)
	}
	if found {
		return res, nil
	}
	res, err = s.repo.CreatePaymentToken(ctx, userUID, token)
	if err != nil {
		return 0, fmt.Errorf("failed to create token: %w", err)
	}
	return res, nil
}

// ListPaymentTokens возвращает сохранённые токены пользователя.
func (s *PaymentService) ListPaymentTokens(ctx context.Context, userUID string) ([]*models.PaymentToken, error) {
	return s.repo.ListPaymentTokens(ctx, userUID)
}

// CreateMembershipPayment создаёт у провайдера платёж за членство
// по подписке. Токен сохраняется для последующих продлений. Апгрейд
// подписки произойдёт позже, когда провайдер подтвердит оплату вебхуком.
func (s *PaymentService) CreateMembershipPayment(ctx context.Context, userUID, subscriptionID, token string) (*paymentprovider.CreatePaymentResponse, error) {
	if _, err := s.GetOrCreatePaymentToken(ctx, userUID, token); err != nil {
		return nil, err
	}

	req := paymentprovider.CreatePaymentRequest{
		Amount: paymentprovider.Amount{
			Value:    fmt.Sprintf("%d.%02d", s.price/100, s.price%100),
			Currency: "RUB",
		},
		PaymentToken:      token,
		Capture:           true,
		Description:       "Monthly creator membership",
		SavePaymentMethod: true,
		Metadata: map[string]string{
			"subscription_id": subscriptionID,
			"subscriber_uid":  userUID,
		},
	}
	resp, err := s.provider.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("created membership payment",
		slog.String("payment_id", resp.ID),
		slog.String("subscription_id", subscriptionID),
		slog.String("status", resp.Status))
	return resp, nil
}

// HandleWebhook обрабатывает уведомление провайдера. Успешная оплата
// переводит подписку в платное членство на MembershipPeriod вперёд;
// прочие события только логируются.
func (s *PaymentService) HandleWebhook(ctx context.Context, notification *paymentprovider.WebhookNotification) error {
	if notification.Event != paymentprovider.EventPaymentSucceeded {
		s.log.Info("skipped payment webhook",
			slog.String("event", notification.Event),
			slog.String("payment_id", notification.Object.ID))
		return nil
	}

	subscriptionID := notification.Object.Metadata["subscription_id"]
	subscriberUID := notification.Object.Metadata["subscriber_uid"]
	if subscriptionID == "" || subscriberUID == "" {
		return ErrUnexpectedWebhook
	}

	paidPeriodEnd := time.Now().UTC().Add(MembershipPeriod)
	upgraded, err := s.ledger.Upgrade(ctx, subscriberUID, subscriptionID, paidPeriodEnd)
	if err != nil {
		return fmt.Errorf("failed to upgrade subscription %s: %w", subscriptionID, err)
	}
	s.log.Info("confirmed membership payment",
		slog.String("payment_id", notification.Object.ID),
		slog.String("subscription_id", upgraded.ID),
		slog.Time("expires_at", *upgraded.ExpiresAt))
	return nil
}
