// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/creator-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-platform/internal/lib/password"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль задаётся при регистрации: зритель (user) или автор (creator);
// роль admin через регистрацию получить нельзя.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword, role string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	if role != models.RoleCreator {
		role = models.RoleUser
	}
	user := models.User{
		UID:          uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе и роль.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UID:      claims.UserUID,
	}
	return user, claims.Role, nil
}
