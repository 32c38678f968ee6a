package repositories

import (
	"context"
	"fmt"

	"backoffice/internal/models"
	"backoffice/internal/store"
)

type CategoryRepository struct {
	store store.Store
}

func NewCategoryRepository(s store.Store) *CategoryRepository {
	return &CategoryRepository{store: s}
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.store.Select(ctx, store.Categories, store.Query{
		Order: []store.Order{{Field: "category_id"}},
	})
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		id, err := int64Value(row["category_id"])
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		categories = append(categories, models.Category{
			ID:   id,
			Name: stringValue(row["category_name"]),
		})
	}
	return categories, nil
}
