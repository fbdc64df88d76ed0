package model

import "time"

// Lot is a discrete batch of an item with its own expiry. Quantity only ever
// decreases after creation; restocking always creates a new lot. Expired or
// emptied lots stay in storage until the purge sweep removes them.
type Lot struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	ValidTill time.Time `json:"valid_till"`
	CreatedAt time.Time `json:"created_at"`
}

// Available reports whether the lot can still be sold from at the given
// instant: positive quantity and an expiry strictly in the future. A lot
// whose expiry equals now exactly is not available.
func (l Lot) Available(now time.Time) bool {
	return l.Quantity > 0 && l.ValidTill.After(now)
}
