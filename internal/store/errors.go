package store

import "errors"

// Domain errors returned by ledger operations. Handlers map these to
// boundary responses; everything else is an internal store failure.
var (
	// ErrItemNotFound is returned when a referenced item id does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrLotNotFound is returned when a decrement matched no lot row, which
	// means the planned lot was deleted or drained between the snapshot and
	// the write. The surrounding transaction is rolled back.
	ErrLotNotFound = errors.New("lot not found")

	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

	// ErrPastExpiry is returned when a new lot's expiry is not strictly in
	// the future.
	ErrPastExpiry = errors.New("expiry must be in the future")
)
