// Package models содержит доменные структуры платформы:
// пользователей, подписки на авторов, публикации и снимок состояния
// для вычисления доступа. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей платформы.
const (
	// RoleUser — обычный зритель без собственного контента.
	RoleUser = "user"
	// RoleCreator — автор, публикующий контент.
	RoleCreator = "creator"
	// RoleAdmin — администратор с полным доступом для модерации.
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя платформы.
// Автор (creator) живёт в том же пространстве идентификаторов,
// что и зритель: владение контентом определяется сравнением UID,
// а не ролью.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль: user, creator или admin
	CreatedAt    time.Time // Дата регистрации
}

// DummyRegisterRequest используется для приёма данных регистрации из JSON-запроса.
type DummyRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`              // Электронная почта
	Username string `json:"username" validate:"required,alphanum"`        // Имя пользователя
	Password string `json:"password" validate:"required,min=8"`           // Пароль
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user creator"` // Роль при регистрации
}

// DummyLoginRequest используется для приёма данных входа из JSON-запроса.
type DummyLoginRequest struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}
