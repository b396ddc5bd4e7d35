package register

import (
	"context"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, username, password, role string) (string, error)
}
