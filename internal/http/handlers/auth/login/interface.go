package login

import (
	"context"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (token, role string, err error)
}
