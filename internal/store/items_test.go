package store

import (
	"context"
	"testing"

	"freshstock/internal/db"

	"github.com/google/uuid"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Yoghurt", "plain, 500g")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := uuid.Parse(item.ID); err != nil {
		t.Errorf("expected UUID item id, got %q", item.ID)
	}
	if item.Name != "Yoghurt" || item.Description != "plain, 500g" {
		t.Errorf("unexpected item: %+v", item)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.ID != item.ID {
		t.Errorf("expected item %s, got %v", item.ID, got)
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, uuid.NewString())
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %v", item)
	}
}

func TestListItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, "Milk", "")
	CreateItem(ctx, database, "Butter", "salted")

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}
