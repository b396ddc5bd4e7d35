package models

import "time"

// Типы подписки зрителя на автора.
const (
	// SubscriptionTypeFree — бесплатная подписка (фолловинг),
	// открывает ленту автора, но не закрытые публикации.
	SubscriptionTypeFree = "free"
	// SubscriptionTypePaid — платное членство, открывает
	// публикации members_only до даты окончания оплаченного периода.
	SubscriptionTypePaid = "paid"
)

// Статусы подписки.
const (
	// SubscriptionStatusActive — подписка действует и будет продлеваться.
	SubscriptionStatusActive = "active"
	// SubscriptionStatusCanceled — продление отменено. Отмена не
	// завершает текущий оплаченный период: членство действует до ExpiresAt.
	SubscriptionStatusCanceled = "canceled"
)

// Subscription описывает отношение зрителя к автору.
// На пару (subscriber, creator) существует не более одной записи:
// переход free -> paid изменяет существующую запись, а не создаёт новую.
// ExpiresAt заполняется только для платной подписки; бесплатная
// подписка бессрочна и не участвует в истечении членства.
type Subscription struct {
	ID            string     `json:"id"`                   // Уникальный идентификатор подписки
	SubscriberUID string     `json:"subscriber_uid"`       // UID зрителя
	CreatorUID    string     `json:"creator_uid"`          // UID автора
	Type          string     `json:"type"`                 // Тип: free или paid
	Status        string     `json:"status"`               // Статус: active или canceled
	ExpiresAt     *time.Time `json:"expires_at,omitempty"` // Дата окончания оплаченного периода (nil для free)
	CreatedAt     time.Time  `json:"created_at"`           // Дата создания подписки
}

// IsPaid сообщает, является ли подписка платной.
func (s *Subscription) IsPaid() bool {
	return s.Type == SubscriptionTypePaid
}

// DummySubscribeRequest используется для приёма запроса на подписку из JSON.
type DummySubscribeRequest struct {
	CreatorUID string `json:"creator_uid" validate:"required,uuid"` // UID автора
}

// DummyUpdateStatusRequest используется для приёма запроса на смену
// статуса подписки: canceled — отмена продления, active — отзыв отмены.
type DummyUpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active canceled"` // Целевой статус
}
