package repositories

import (
	"context"
	"fmt"

	"backoffice/internal/models"
	"backoffice/internal/store"

	"github.com/shopspring/decimal"
)

type InventoryRepository struct {
	store store.Store
}

func NewInventoryRepository(s store.Store) *InventoryRepository {
	return &InventoryRepository{store: s}
}

// ItemChanges lists the fields an update writes. Nil pointers are left
// untouched; ClearCategory writes a null category.
type ItemChanges struct {
	CategoryID    *int64
	ClearCategory bool
	IsVeg         *models.VegType
	Name          *string
	Description   *string
	Price         *decimal.Decimal
}

func (c ItemChanges) Empty() bool {
	return c.CategoryID == nil && !c.ClearCategory && c.IsVeg == nil &&
		c.Name == nil && c.Description == nil && c.Price == nil
}

// ListByRestaurant returns items ordered by category, then veg type
// descending. CategoryName is left for the caller to join.
func (r *InventoryRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]models.InventoryItem, error) {
	rows, err := r.store.Select(ctx, store.Inventory, store.Query{
		Filters: []store.Filter{store.Eq("restaurant_id", restaurantID)},
		Order: []store.Order{
			{Field: "category_id"},
			{Field: "is_veg", Desc: true},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(rows))
	for _, row := range rows {
		item, err := itemFromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	row := store.Row{
		"restaurant_id": item.RestaurantID,
		"category_id":   nil,
		"is_veg":        string(item.IsVeg),
		"item_name":     item.Name,
		"item_desc":     item.Description,
		"price":         item.Price.Round(2),
	}
	if item.CategoryID != nil {
		row["category_id"] = *item.CategoryID
	}

	inserted, err := r.store.Insert(ctx, store.Inventory, row)
	if err != nil {
		return err
	}
	if id, ok := inserted["item_id"]; ok {
		if item.ID, err = int64Value(id); err != nil {
			return fmt.Errorf("invalid item_id: %w", err)
		}
	}
	return nil
}

// Update writes changes to one item of the restaurant.
func (r *InventoryRepository) Update(ctx context.Context, restaurantID, itemID int64, changes ItemChanges) error {
	patch := store.Row{}
	switch {
	case changes.ClearCategory:
		patch["category_id"] = nil
	case changes.CategoryID != nil:
		patch["category_id"] = *changes.CategoryID
	}
	if changes.IsVeg != nil {
		patch["is_veg"] = string(*changes.IsVeg)
	}
	if changes.Name != nil {
		patch["item_name"] = *changes.Name
	}
	if changes.Description != nil {
		patch["item_desc"] = *changes.Description
	}
	if changes.Price != nil {
		patch["price"] = changes.Price.Round(2)
	}

	return r.store.Update(ctx, store.Inventory, patch, []store.Filter{
		store.Eq("item_id", itemID),
		store.Eq("restaurant_id", restaurantID),
	})
}

func (r *InventoryRepository) Delete(ctx context.Context, restaurantID, itemID int64) error {
	return r.store.Delete(ctx, store.Inventory, []store.Filter{
		store.Eq("item_id", itemID),
		store.Eq("restaurant_id", restaurantID),
	})
}

func itemFromRow(row store.Row) (models.InventoryItem, error) {
	id, err := int64Value(row["item_id"])
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid item_id: %w", err)
	}
	restaurantID, err := int64Value(row["restaurant_id"])
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid restaurant_id: %w", err)
	}
	categoryID, err := nullableInt64(row["category_id"])
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid category_id: %w", err)
	}
	price, err := decimalValue(row["price"])
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid price: %w", err)
	}

	return models.InventoryItem{
		ID:           id,
		RestaurantID: restaurantID,
		CategoryID:   categoryID,
		IsVeg:        models.VegType(stringValue(row["is_veg"])),
		Name:         stringValue(row["item_name"]),
		Description:  stringValue(row["item_desc"]),
		Price:        price,
	}, nil
}
