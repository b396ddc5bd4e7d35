package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// FindPaymentToken находит токен платежа пользователя.
func (s *Storage) FindPaymentToken(ctx context.Context, userUID string, token string) (int, bool, error) {
	const op = "storage.FindPaymentToken"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id FROM payment_tokens
			  WHERE user_uid = $1 AND token = $2`
	var id int
	err := s.DB.QueryRowContext(ctx, query, userUID, token).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return id, true, nil
}

// CreatePaymentToken создает новый токен платежа.
func (s *Storage) CreatePaymentToken(ctx context.Context, userUID string, token string) (int, error) {
	const op = "storage.CreatePaymentToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_tokens (user_uid, token)
			  VALUES ($1, $2) RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, userUID, token).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentTokens возвращает сохранённые токены платежей пользователя.
func (s *Storage) ListPaymentTokens(ctx context.Context, userUID string) ([]*models.PaymentToken, error) {
	const op = "storage.ListPaymentTokens"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, token, created_at
			  FROM payment_tokens
			  WHERE user_uid = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.PaymentToken
	for rows.Next() {
		var item models.PaymentToken
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Token, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
