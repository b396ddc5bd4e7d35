package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Email, user.Username, user.PasswordHash, user.Role).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at
			  FROM users WHERE username = $1`
	row := s.DB.QueryRowContext(ctx, query, username)

	var user models.User
	if err := row.Scan(&user.UID, &user.Email, &user.Username,
		&user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUserByUID возвращает пользователя по UID.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at
			  FROM users WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var user models.User
	if err := row.Scan(&user.UID, &user.Email, &user.Username,
		&user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
