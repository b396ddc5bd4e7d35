package models

import "errors"

// Ошибки доменного уровня. Обработчики сопоставляют их через errors.Is
// и превращают в HTTP-статусы; ядро не повторяет упавшие операции.
var (
	// ErrSubscriptionNotFound — подписка не найдена там, где она обязана быть.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrPostNotFound — публикация не найдена.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOwner — вызывающий не владеет записью, которую пытается изменить.
	ErrNotOwner = errors.New("caller does not own this record")
	// ErrInvalidState — недопустимый переход жизненного цикла,
	// например отзыв отмены после истечения оплаченного периода.
	ErrInvalidState = errors.New("invalid subscription state transition")
	// ErrSelfSubscription — автор не может подписаться сам на себя.
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
	// ErrAlreadySubscribed — подписка на пару (зритель, автор) уже существует.
	ErrAlreadySubscribed = errors.New("subscription already exists")
)
