package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// SubscriptionsExchange — exchange событий жизненного цикла подписок.
const SubscriptionsExchange = "subscriptions"

// Маршрутные ключи событий подписки.
const (
	RoutingKeySubscribed   = "subscribed"
	RoutingKeyUpgraded     = "upgraded"
	RoutingKeyCanceled     = "canceled"
	RoutingKeyReactivated  = "reactivated"
	RoutingKeyUnsubscribed = "unsubscribed"
	RoutingKeyExpiring     = "expiring"
)

// QueueConfig описывает очередь и её маршрутный ключ.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetSubscriptionQueues возвращает очереди событий подписки,
// которые читает внешний сервис уведомлений.
func GetSubscriptionQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "subscriptions.lifecycle.subscribed", RoutingKey: RoutingKeySubscribed},
		{QueueName: "subscriptions.lifecycle.upgraded", RoutingKey: RoutingKeyUpgraded},
		{QueueName: "subscriptions.lifecycle.canceled", RoutingKey: RoutingKeyCanceled},
		{QueueName: "subscriptions.lifecycle.reactivated", RoutingKey: RoutingKeyReactivated},
		{QueueName: "subscriptions.lifecycle.unsubscribed", RoutingKey: RoutingKeyUnsubscribed},
		{QueueName: "subscriptions.expiring", RoutingKey: RoutingKeyExpiring},
	}
}

// SetupChannel открывает канал, объявляет exchange и очереди событий.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		SubscriptionsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			SubscriptionsExchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
