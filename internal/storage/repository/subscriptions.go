package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/creator-platform/internal/models"
)

const subscriptionColumns = `id, subscriber_uid, creator_uid, sub_type, status, expires_at, created_at`

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	var sub models.Subscription
	var expiresAt sql.NullTime
	if err := row.Scan(&sub.ID, &sub.SubscriberUID, &sub.CreatorUID,
		&sub.Type, &sub.Status, &expiresAt, &sub.CreatedAt); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		sub.ExpiresAt = &t
	}
	return &sub, nil
}

// CreateSubscription вставляет новую запись подписки.
// Уникальный индекс по паре (subscriber_uid, creator_uid) гарантирует
// не более одной подписки на пару.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (id, subscriber_uid, creator_uid, sub_type, status, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		sub.ID, sub.SubscriberUID, sub.CreatorUID, sub.Type, sub.Status, sub.ExpiresAt)
	result, err := scanSubscription(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindSubscriptionByPair возвращает подписку зрителя на автора
// или models.ErrSubscriptionNotFound, если отношения нет.
func (s *Storage) FindSubscriptionByPair(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error) {
	const op = "storage.FindSubscriptionByPair"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE subscriber_uid = $1 AND creator_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, subscriberUID, creatorUID)
	result, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindSubscriptionByID возвращает подписку по её ID.
func (s *Storage) FindSubscriptionByID(ctx context.Context, id string) (*models.Subscription, error) {
	const op = "storage.FindSubscriptionByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	result, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpgradeSubscription переводит подписку в paid/active и устанавливает
// дату окончания оплаченного периода. Используется и для продления:
// запись изменяется, дубликат не создаётся.
func (s *Storage) UpgradeSubscription(ctx context.Context, id string, expiresAt time.Time) (*models.Subscription, error) {
	const op = "storage.UpgradeSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET sub_type = $1, status = $2, expires_at = $3
			  WHERE id = $4
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		models.SubscriptionTypePaid, models.SubscriptionStatusActive, expiresAt, id)
	result, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscriptionStatus изменяет только статус подписки.
// Тип и expires_at не затрагиваются: отмена не завершает оплаченный период.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, id, status string) (*models.Subscription, error) {
	const op = "storage.UpdateSubscriptionStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = $1
			  WHERE id = $2
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query, status, id)
	result, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveSubscription удаляет подписку по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptionsBySubscriber возвращает подписки зрителя с пагинацией.
func (s *Storage) ListSubscriptionsBySubscriber(ctx context.Context, subscriberUID string, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsBySubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE subscriber_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, subscriberUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllSubscriptions возвращает все подписки с пагинацией (для администратора).
func (s *Storage) ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindMembershipsExpiringWithin возвращает платные подписки, оплаченный
// период которых заканчивается в интервале (now, now+window].
// Статус не фильтруется: напоминание уместно и для отменённого членства.
func (s *Storage) FindMembershipsExpiringWithin(ctx context.Context, window time.Duration) ([]*models.Subscription, error) {
	const op = "storage.FindMembershipsExpiringWithin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE sub_type = $1
			    AND expires_at > now()
			    AND expires_at <= now() + $2::interval
			  ORDER BY expires_at`
	interval := fmt.Sprintf("%d seconds", int(window.Seconds()))
	rows, err := s.DB.QueryContext(ctx, query, models.SubscriptionTypePaid, interval)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
