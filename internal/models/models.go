package models

import "time"

// CatalogItem represents a purchasable bulk product. The catalog is
// supplied by the catalog provider and is read-only to the mix engine;
// stock is advisory (never reserved or decremented here).
type CatalogItem struct {
	Code        string  `db:"code" json:"code"`
	Name        string  `db:"name" json:"name"`
	RetailPrice float64 `db:"retail_price" json:"retail_price"`
	Stock       float64 `db:"initial_stock" json:"initial_stock"`
}

// MixComponent is one catalog item + quantity line within a mix.
// LineTotal is computed at add/edit time and not recomputed if the
// catalog price later changes.
type MixComponent struct {
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// MixDraft is the in-progress, unsaved mix being edited in one session.
type MixDraft struct {
	Name       string         `json:"name"`
	Components []MixComponent `json:"components"`
}

// SavedMix is a persisted, immutable snapshot of a composed mix.
type SavedMix struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Components []MixComponent     `json:"components"`
	TotalPrice float64            `json:"total_price"`
	Nutrition  AggregateNutrition `json:"nutrition"`
	CreatedAt  time.Time          `json:"created_at"`
}

// AggregateNutrition holds the summed quantitative fields and the union
// of qualitative attributes across a mix's components, each scaled by
// component quantity. Vitamins and minerals are kept sorted so the
// result is deterministic regardless of component order.
type AggregateNutrition struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Fat      float64  `json:"fat"`
	Carbs    float64  `json:"carbs"`
	Fiber    float64  `json:"fiber"`
	Vitamins []string `json:"vitamins"`
	Minerals []string `json:"minerals"`
}

// OrderDraft is the payload handed to the order intake collaborator.
// Components are passed as-is; the consumer must treat them as a
// snapshot.
type OrderDraft struct {
	Name       string             `json:"name"`
	Components []MixComponent     `json:"components"`
	TotalPrice float64            `json:"total_price"`
	Nutrition  AggregateNutrition `json:"nutrition"`
}

// Icon identifies the dialog icon rendered by the confirmation UI.
type Icon string

const (
	IconSuccess  Icon = "success"
	IconWarning  Icon = "warning"
	IconError    Icon = "error"
	IconInfo     Icon = "info"
	IconQuestion Icon = "question"
)

// Notification is a request to the confirmation/notification UI. The
// engine prescribes the content; rendering belongs to the client.
type Notification struct {
	Icon              Icon   `json:"icon"`
	Title             string `json:"title"`
	Text              string `json:"text"`
	ConfirmButtonText string `json:"confirm_button_text,omitempty"`
	CancelButtonText  string `json:"cancel_button_text,omitempty"`
	TimerMS           int    `json:"timer_ms,omitempty"`
}

// ConfirmRequest is a yes/no dialog gating a prepared intent. The
// client answers by resolving the intent ID with a confirmed flag.
type ConfirmRequest struct {
	IntentID string `json:"intent_id"`
	Notification
}
