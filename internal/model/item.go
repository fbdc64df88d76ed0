package model

import "time"

// Item is a sellable product. Items are immutable once created; stock levels
// live entirely in the item's lots.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
