package models

import "time"

// PaymentToken — сохранённый платёжный токен пользователя у провайдера.
// Используется для повторных списаний при продлении членства.
type PaymentToken struct {
	ID        int       `json:"id"`         // Идентификатор записи
	UserUID   string    `json:"user_uid"`   // UID пользователя
	Token     string    `json:"token"`      // Токен платёжного метода у провайдера
	CreatedAt time.Time `json:"created_at"` // Дата сохранения
}
