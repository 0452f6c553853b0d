package kafka

import (
	"errors"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

// TopicMenuEvents — topic по умолчанию для изменений меню.
const TopicMenuEvents = "menu.items.events"

// MenuEventPublisher отправляет события меню в Kafka; ключ сообщения — ID блюда,
// поэтому все изменения одного блюда попадают в одну партицию.
type MenuEventPublisher struct {
	producer *Producer
	topic    string
}

// NewMenuEventPublisher создаёт паблишер поверх producer.
func NewMenuEventPublisher(producer *Producer, topic string) *MenuEventPublisher {
	if topic == "" {
		topic = TopicMenuEvents
	}
	return &MenuEventPublisher{producer: producer, topic: topic}
}

// Publish отправляет событие.
func (p *MenuEventPublisher) Publish(event domain.MenuEvent) error {
	if p == nil || p.producer == nil {
		return errors.New("kafka menu publisher is not initialized")
	}
	return p.producer.PublishJSON(p.topic, event.ItemID, event)
}

// Topic возвращает topic, в который пишет паблишер.
func (p *MenuEventPublisher) Topic() string {
	return p.topic
}

var _ domain.MenuEventPublisher = (*MenuEventPublisher)(nil)
