// Package events defines the activity change payloads published through the outbox.
package events

import "time"

// TopicActivityEvents carries every activity change event.
const TopicActivityEvents = "activity_events"

// Event types recorded in the outbox and sent as the event_type Kafka header.
const (
	TypeActivityCreated = "activity.created"
	TypeActivityUpdated = "activity.updated"
	TypeActivityDeleted = "activity.deleted"
)

// ActivityCreated is emitted when a new activity is stored.
type ActivityCreated struct {
	ActivityID int64     `json:"activity_id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Pending    bool      `json:"pending"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityUpdated carries only the fields that were changed.
type ActivityUpdated struct {
	ActivityID int64     `json:"activity_id"`
	Title      *string   `json:"title,omitempty"`
	Subtitle   *string   `json:"subtitle,omitempty"`
	Pending    *bool     `json:"pending,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityDeleted is emitted when an activity is removed.
type ActivityDeleted struct {
	ActivityID int64     `json:"activity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
