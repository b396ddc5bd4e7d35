package rabbitmq

import "github.com/streadway/amqp"

// EventPublisher публикует события жизненного цикла подписок
// в exchange SubscriptionsExchange.
type EventPublisher struct {
	ch *amqp.Channel
}

// NewEventPublisher создаёт издателя поверх открытого канала.
func NewEventPublisher(ch *amqp.Channel) *EventPublisher {
	return &EventPublisher{ch: ch}
}

// Publish публикует событие с маршрутным ключом routingKey.
func (p *EventPublisher) Publish(routingKey string, event any) error {
	return PublishMessage(p.ch, SubscriptionsExchange, routingKey, event)
}
