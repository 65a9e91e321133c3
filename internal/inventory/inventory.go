// Package inventory tracks what each user already has in their kitchen.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	inventorydb "mealmind/internal/inventory/inventory_db"
)

// Item is one inventory entry.
type Item struct {
	InventoryID string  `json:"inventory_id,omitempty"`
	ItemName    string  `json:"item_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// Repository provides access to inventory persistence.
type Repository struct {
	queries *inventorydb.Queries
	db      *sql.DB
}

// NewRepository creates a Repository backed by an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		queries: inventorydb.New(db),
		db:      db,
	}
}

// Add inserts a new item for a user and returns its generated ID.
func (r *Repository) Add(ctx context.Context, userID string, item Item) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	err := r.queries.CreateInventoryItem(ctx, inventorydb.CreateInventoryItemParams{
		InventoryID: id,
		UserID:      userID,
		ItemName:    item.ItemName,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		Category:    sql.NullString{String: item.Category, Valid: item.Category != ""},
		Notes:       sql.NullString{String: item.Notes, Valid: item.Notes != ""},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to add inventory item: %w", err)
	}
	return id, nil
}

// ListByUser returns all of a user's inventory, ordered by item name.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.queries.ListInventoryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			InventoryID: row.InventoryID,
			ItemName:    row.ItemName,
			Quantity:    row.Quantity,
			Unit:        row.Unit,
			Category:    row.Category.String,
			Notes:       row.Notes.String,
		})
	}
	return items, nil
}

// SetQuantity updates the quantity of a single item.
func (r *Repository) SetQuantity(ctx context.Context, inventoryID string, quantity float64) error {
	err := r.queries.UpdateInventoryQuantity(ctx, inventorydb.UpdateInventoryQuantityParams{
		Quantity:    quantity,
		UpdatedAt:   time.Now().UTC(),
		InventoryID: inventoryID,
	})
	if err != nil {
		return fmt.Errorf("failed to update inventory quantity: %w", err)
	}
	return nil
}

// Delete removes a single item.
func (r *Repository) Delete(ctx context.Context, inventoryID string) error {
	if err := r.queries.DeleteInventoryItem(ctx, inventoryID); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}
