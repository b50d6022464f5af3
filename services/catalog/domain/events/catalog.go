package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the catalog. Each event is written to the
// outbox in the same transaction as the change it describes.
const (
	TopicCategoryCreated = "catalog.category.created"
	TopicCategoryUpdated = "catalog.category.updated"
	TopicCategoryDeleted = "catalog.category.deleted"
	TopicItemCreated     = "catalog.item.created"
	TopicItemUpdated     = "catalog.item.updated"
	TopicItemDeleted     = "catalog.item.deleted"
)

// CategoryTopics and ItemTopics list every topic per entity, for subscribers.
var (
	CategoryTopics = []string{TopicCategoryCreated, TopicCategoryUpdated, TopicCategoryDeleted}
	ItemTopics     = []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted}
)

// Topics returns every catalog topic, categories first.
func Topics() []string {
	return append(append([]string{}, CategoryTopics...), ItemTopics...)
}

// CategoryEvent is published after a category is created, updated or deleted.
// Name and Description are empty on delete.
type CategoryEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemEvent is published after an item is created, updated or deleted.
// Price is the decimal string form, empty when the item has no price.
type ItemEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	ItemID      uuid.UUID `json:"item_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price,omitempty"`
	NIS         int64     `json:"nis"`
	DAdded      time.Time `json:"d_added"`
	OccurredAt  time.Time `json:"occurred_at"`
}
