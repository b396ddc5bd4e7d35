// Package password инкапсулирует хеширование паролей пользователей.
// Хранится только bcrypt-хэш; исходный пароль за пределы регистрации
// и входа не выходит.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash возвращает bcrypt-хэш пароля для хранения в базе.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hash), nil
}

// CompareHash проверяет пароль против сохранённого хэша.
// Возвращает nil при совпадении.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
