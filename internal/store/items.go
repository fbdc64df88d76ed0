package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"freshstock/internal/model"
)

// CreateItem creates a new item with a generated id.
func CreateItem(ctx context.Context, db *sql.DB, name, description string) (*model.Item, error) {
	id := uuid.NewString()

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, name, description) VALUES (?, ?, ?)`,
		id, name, description,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no item matches.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item := &model.Item{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &description, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	return item, nil
}

// ListItems returns all items in creation order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM items ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &description, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		items = append(items, item)
	}
	return items, rows.Err()
}
