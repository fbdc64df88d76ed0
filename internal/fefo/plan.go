// Package fefo computes first-expiring-first-out depletion plans.
//
// The engine is a pure function over a snapshot of an item's available lots:
// the store reads the snapshot, the engine decides how much to take from each
// lot, and the store applies the whole plan in one transaction. Keeping the
// algorithm free of I/O lets it be tested without a database.
package fefo

import "fmt"

// Lot is one available lot in the snapshot handed to Plan: positive
// remaining quantity, unexpired, and already ordered soonest-expiring first.
type Lot struct {
	ID       string
	Quantity int
}

// Decrement is the amount to subtract from a single lot.
type Decrement struct {
	LotID    string
	Quantity int
}

// InsufficientStockError reports that the snapshot cannot cover a requested
// quantity. Available carries the aggregate the snapshot could have supplied.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d available", e.Available)
}

// Plan computes the per-lot decrements that satisfy requested, drawing down
// lots strictly in snapshot order. Every returned decrement is at least 1 and
// the decrements sum exactly to requested; lots past the point where the
// request is covered are untouched.
//
// The caller is expected to have checked that the snapshot covers the
// request. If it does not, Plan returns *InsufficientStockError and no plan,
// never a partial one.
func Plan(requested int, lots []Lot) ([]Decrement, error) {
	if requested <= 0 {
		return nil, fmt.Errorf("requested quantity must be positive, got %d", requested)
	}

	remaining := requested
	plan := make([]Decrement, 0, len(lots))

	for _, lot := range lots {
		if lot.Quantity <= 0 {
			continue
		}

		take := min(remaining, lot.Quantity)
		plan = append(plan, Decrement{LotID: lot.ID, Quantity: take})

		remaining -= take
		if remaining == 0 {
			return plan, nil
		}
	}

	return nil, &InsufficientStockError{Available: requested - remaining}
}
