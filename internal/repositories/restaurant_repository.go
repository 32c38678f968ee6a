package repositories

import (
	"context"
	"fmt"

	"backoffice/internal/models"
	"backoffice/internal/store"
)

type RestaurantRepository struct {
	store store.Store
}

func NewRestaurantRepository(s store.Store) *RestaurantRepository {
	return &RestaurantRepository{store: s}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.Prepare()

	row, err := r.store.Insert(ctx, store.Restaurants, store.Row{
		"restaurant_name": restaurant.Name,
		"address":         restaurant.Address,
		"contact":         restaurant.Contact,
		"email":           restaurant.Email,
		"password":        restaurant.PasswordHash,
	})
	if err != nil {
		return err
	}
	if id, ok := row["restaurant_id"]; ok {
		if restaurant.ID, err = int64Value(id); err != nil {
			return fmt.Errorf("invalid restaurant_id: %w", err)
		}
	}
	return nil
}

// FindByID returns nil, nil when no row matches.
func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*models.Restaurant, error) {
	return r.findOne(ctx, store.Eq("restaurant_id", id))
}

// FindByEmail returns nil, nil when no row matches.
func (r *RestaurantRepository) FindByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	return r.findOne(ctx, store.Eq("email", email))
}

// UpdateProfile writes the editable profile fields. Email and password are
// never part of the patch.
func (r *RestaurantRepository) UpdateProfile(ctx context.Context, id int64, name, address, contact string) error {
	return r.store.Update(ctx, store.Restaurants, store.Row{
		"restaurant_name": name,
		"address":         address,
		"contact":         contact,
	}, []store.Filter{store.Eq("restaurant_id", id)})
}

func (r *RestaurantRepository) findOne(ctx context.Context, filter store.Filter) (*models.Restaurant, error) {
	rows, err := r.store.Select(ctx, store.Restaurants, store.Query{Filters: []store.Filter{filter}})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	id, err := int64Value(row["restaurant_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant_id: %w", err)
	}
	return &models.Restaurant{
		ID:           id,
		Name:         stringValue(row["restaurant_name"]),
		Address:      stringValue(row["address"]),
		Contact:      stringValue(row["contact"]),
		Email:        stringValue(row["email"]),
		PasswordHash: stringValue(row["password"]),
	}, nil
}
