package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freshstock/internal/fefo"
	"freshstock/internal/model"
)

// AddLot creates a new lot for an item. Restocking never touches existing
// lots; every delivery becomes its own lot with its own expiry.
func AddLot(ctx context.Context, db *sql.DB, itemID string, quantity int, validTill, now time.Time) (*model.Lot, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !validTill.After(now) {
		return nil, ErrPastExpiry
	}

	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO lots (id, item_id, quantity, valid_till) VALUES (?, ?, ?, ?)`,
		id, itemID, quantity, validTill.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lot: %w", err)
	}

	return GetLot(ctx, db, id)
}

// GetLot returns a lot by ID, or nil if no lot matches.
func GetLot(ctx context.Context, db *sql.DB, id string) (*model.Lot, error) {
	lot := &model.Lot{}
	var validTill int64
	err := db.QueryRowContext(ctx,
		`SELECT id, item_id, quantity, valid_till, created_at FROM lots WHERE id = ?`, id,
	).Scan(&lot.ID, &lot.ItemID, &lot.Quantity, &validTill, &lot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lot: %w", err)
	}
	lot.ValidTill = time.UnixMilli(validTill)
	return lot, nil
}

// ListLots returns all lots for an item in expiry order, including expired
// and emptied lots, which stay around until the purge sweep removes them.
func ListLots(ctx context.Context, db *sql.DB, itemID string) ([]model.Lot, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, quantity, valid_till, created_at
		 FROM lots WHERE item_id = ? ORDER BY valid_till, rowid`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lots: %w", err)
	}
	defer rows.Close()

	var lots []model.Lot
	for rows.Next() {
		var lot model.Lot
		var validTill int64
		if err := rows.Scan(&lot.ID, &lot.ItemID, &lot.Quantity, &validTill, &lot.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lot: %w", err)
		}
		lot.ValidTill = time.UnixMilli(validTill)
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// AvailableQuantity returns the aggregate sellable quantity of an item at
// the given instant and the earliest expiry among the lots that make it up.
// The total is always derived fresh from the lot set, never cached, and the
// expiry is the minimum valid_till among available lots. Returns (0, nil)
// when no lot qualifies.
func AvailableQuantity(ctx context.Context, db *sql.DB, itemID string, now time.Time) (int, *time.Time, error) {
	var total int
	var earliest sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0), MIN(valid_till)
		 FROM lots WHERE item_id = ? AND quantity > 0 AND valid_till > ?`,
		itemID, now.UnixMilli(),
	).Scan(&total, &earliest)
	if err != nil {
		return 0, nil, fmt.Errorf("aggregating available quantity: %w", err)
	}

	if !earliest.Valid {
		return 0, nil, nil
	}
	till := time.UnixMilli(earliest.Int64)
	return total, &till, nil
}

// Sell depletes an item's stock first-expiring-first-out. The available-lot
// snapshot, the aggregate check, and the per-lot decrements all happen inside
// one transaction, so no partial sale is ever visible and concurrent sells
// against the same item serialize on the store.
//
// Returns the applied decrements. Fails with *fefo.InsufficientStockError
// (carrying the actual available total) when the request exceeds stock, in
// which case no quantity changes.
func Sell(ctx context.Context, db *sql.DB, itemID string, quantity int, now time.Time) ([]fefo.Decrement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking item: %w", err)
	}

	// Snapshot the available lots soonest-expiring first. Rowid breaks
	// expiry ties by insertion order, keeping the depletion order stable.
	rows, err := tx.QueryContext(ctx,
		`SELECT id, quantity FROM lots
		 WHERE item_id = ? AND quantity > 0 AND valid_till > ?
		 ORDER BY valid_till, rowid`,
		itemID, now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshotting lots: %w", err)
	}

	var snapshot []fefo.Lot
	total := 0
	for rows.Next() {
		var lot fefo.Lot
		if err := rows.Scan(&lot.ID, &lot.Quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning lot: %w", err)
		}
		total += lot.Quantity
		snapshot = append(snapshot, lot)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshotting lots: %w", err)
	}

	if quantity > total {
		return nil, &fefo.InsufficientStockError{Available: total}
	}

	plan, err := fefo.Plan(quantity, snapshot)
	if err != nil {
		return nil, err
	}

	if err := applyDecrements(ctx, tx, plan); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing sale: %w", err)
	}
	return plan, nil
}

// applyDecrements applies a depletion plan inside an open transaction. Each
// update is guarded on the lot still holding at least the planned quantity;
// a miss aborts the whole plan so the caller's rollback leaves every lot
// untouched.
func applyDecrements(ctx context.Context, tx *sql.Tx, plan []fefo.Decrement) error {
	for _, d := range plan {
		result, err := tx.ExecContext(ctx,
			`UPDATE lots SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
			d.Quantity, d.LotID, d.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrementing lot %s: %w", d.LotID, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("decrementing lot %s: %w", d.LotID, err)
		}
		if affected == 0 {
			return fmt.Errorf("decrementing lot %s: %w", d.LotID, ErrLotNotFound)
		}
	}
	return nil
}

// PurgeExpired deletes every lot whose expiry is strictly before the given
// instant, regardless of remaining quantity, and returns the number removed.
// Running it again without new expirations deletes nothing.
func PurgeExpired(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lots WHERE valid_till < ?`, now.UnixMilli(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting expired lots: %w", err)
	}

	if count > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM lots WHERE valid_till < ?`, now.UnixMilli(),
		); err != nil {
			return 0, fmt.Errorf("deleting expired lots: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing purge: %w", err)
	}
	return count, nil
}
