package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"mediahub/internal/model"
)

// Event types for the rating stream
const (
	EventRatingUpserted = "rating_upserted"
	EventRatingDeleted  = "rating_deleted"
)

// Stream names
const (
	StreamRatings = "stream:ratings"
)

// Consumer group name for rating workers
const (
	ConsumerGroupRatings = "rating_workers"
)

// RatingEvent represents an event published to the rating stream.
// Workers recompute and re-warm the stats cache for the content item.
type RatingEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	UserID      int64             `json:"user_id"`
	ContentType model.ContentType `json:"content_type"`
	ContentID   string            `json:"content_id"`
	Stars       int               `json:"stars,omitempty"` // Set on upsert events only
}

// NewRatingUpsertedEvent creates an event for a rating submit or overwrite.
func NewRatingUpsertedEvent(userID int64, contentType model.ContentType, contentID string, stars int) RatingEvent {
	return RatingEvent{
		Type:        EventRatingUpserted,
		Timestamp:   time.Now().Unix(),
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
		Stars:       stars,
	}
}

// NewRatingDeletedEvent creates an event for a rating removal.
func NewRatingDeletedEvent(userID int64, contentType model.ContentType, contentID string) RatingEvent {
	return RatingEvent{
		Type:        EventRatingDeleted,
		Timestamp:   time.Now().Unix(),
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so the event is serialized to
// JSON in a "data" field alongside a plain "type" field.
func (e RatingEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseRatingEvent parses a RatingEvent from Redis stream message values.
func ParseRatingEvent(values map[string]interface{}) (RatingEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return RatingEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event RatingEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return RatingEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
