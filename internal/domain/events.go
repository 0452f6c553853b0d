package domain

import "time"

// MenuEventType задаёт тип изменения меню.
type MenuEventType string

const (
	MenuEventItemAdded   MenuEventType = "menu.item_added"
	MenuEventItemRemoved MenuEventType = "menu.item_removed"
)

// MenuEvent описывает изменение коллекции блюд для внешних подписчиков.
type MenuEvent struct {
	Type       MenuEventType `json:"event_type"`
	ItemID     string        `json:"item_id"`
	Name       string        `json:"name,omitempty"`
	Course     Course        `json:"course,omitempty"`
	Price      float64       `json:"price"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// MenuEventPublisher публикует события изменения меню.
type MenuEventPublisher interface {
	Publish(event MenuEvent) error
}
