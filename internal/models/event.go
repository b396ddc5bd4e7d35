package models

import "time"

// SubscriptionEvent — событие жизненного цикла подписки, публикуемое
// в брокер для внешнего сервиса уведомлений.
type SubscriptionEvent struct {
	Event          string     `json:"event"`           // subscribed, upgraded, canceled, reactivated, unsubscribed, expiring
	SubscriptionID string     `json:"subscription_id"` // ID подписки
	SubscriberUID  string     `json:"subscriber_uid"`  // UID зрителя
	CreatorUID     string     `json:"creator_uid"`     // UID автора
	Type           string     `json:"type"`            // Тип подписки на момент события
	Status         string     `json:"status"`          // Статус подписки на момент события
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// NewSubscriptionEvent собирает событие из текущего состояния подписки.
func NewSubscriptionEvent(event string, sub *Subscription) SubscriptionEvent {
	return SubscriptionEvent{
		Event:          event,
		SubscriptionID: sub.ID,
		SubscriberUID:  sub.SubscriberUID,
		CreatorUID:     sub.CreatorUID,
		Type:           sub.Type,
		Status:         sub.Status,
		ExpiresAt:      sub.ExpiresAt,
		OccurredAt:     time.Now().UTC(),
	}
}
