package models

import "time"

// Event types
const (
	EventTypeMixOrderDrafted = "MIX_ORDER_DRAFTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// MixOrderDraftedEvent is published when a composed mix is converted
// into an order draft and handed to order intake.
type MixOrderDraftedEvent struct {
	BaseEvent
	Name       string             `json:"name"`
	Components []MixComponent     `json:"components"`
	TotalPrice float64            `json:"total_price"`
	Nutrition  AggregateNutrition `json:"nutrition"`
}
