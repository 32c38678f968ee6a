package repositories

import (
	"context"
	"fmt"

	"backoffice/internal/models"
	"backoffice/internal/store"
)

type TableRepository struct {
	store store.Store
}

func NewTableRepository(s store.Store) *TableRepository {
	return &TableRepository{
		store: s,
	}
}

// ListByRestaurant returns a tenant's tables ordered by table number.
func (r *TableRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]models.Table, error) {
	rows, err := r.store.Select(ctx, store.Tables, store.Query{
		Filters: []store.Filter{store.Eq("restaurant_id", restaurantID)},
		Order:   []store.Order{{Field: "table_number"}},
	})
	if err != nil {
		return nil, err
	}

	tables := make([]models.Table, 0, len(rows))
	for _, row := range rows {
		t, err := tableFromRow(row)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// FindByNumber returns nil when the restaurant has no table with that number.
func (r *TableRepository) FindByNumber(ctx context.Context, restaurantID int64, number string) (*models.Table, error) {
	rows, err := r.store.Select(ctx, store.Tables, store.Query{
		Filters: []store.Filter{
			store.Eq("restaurant_id", restaurantID),
			store.Eq("table_number", number),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	t, err := tableFromRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) Create(ctx context.Context, table *models.Table) error {
	row, err := r.store.Insert(ctx, store.Tables, store.Row{
		"restaurant_id": table.RestaurantID,
		"table_number":  table.Number,
		"qr_code_data":  table.QRCodeData,
	})
	if err != nil {
		return err
	}
	if id, ok := row["table_id"]; ok {
		if table.ID, err = int64Value(id); err != nil {
			return fmt.Errorf("invalid table_id: %w", err)
		}
	}
	return nil
}

// Delete removes a table, scoped to its restaurant.
func (r *TableRepository) Delete(ctx context.Context, restaurantID, tableID int64) error {
	return r.store.Delete(ctx, store.Tables, []store.Filter{
		store.Eq("table_id", tableID),
		store.Eq("restaurant_id", restaurantID),
	})
}

func tableFromRow(row store.Row) (models.Table, error) {
	id, err := int64Value(row["table_id"])
	if err != nil {
		return models.Table{}, fmt.Errorf("invalid table_id: %w", err)
	}
	restaurantID, err := int64Value(row["restaurant_id"])
	if err != nil {
		return models.Table{}, fmt.Errorf("invalid restaurant_id: %w", err)
	}
	return models.Table{
		ID:           id,
		RestaurantID: restaurantID,
		Number:       stringValue(row["table_number"]),
		QRCodeData:   stringValue(row["qr_code_data"]),
	}, nil
}
