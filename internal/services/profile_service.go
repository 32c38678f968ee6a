package services

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/models"
	"backoffice/internal/repositories"
)

type ProfileService struct {
	restaurants *repositories.RestaurantRepository
	session     models.Session
}

func NewProfileService(restaurants *repositories.RestaurantRepository, session models.Session) *ProfileService {
	return &ProfileService{
		restaurants: restaurants,
		session:     session,
	}
}

type ProfileInput struct {
	Name    string `json:"restaurant_name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

// Load returns the restaurant profile. A missing row yields an empty
// profile rather than an error.
func (s *ProfileService) Load(ctx context.Context) (models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, s.session.RestaurantID)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if restaurant == nil {
		return models.Restaurant{}, nil
	}
	restaurant.PasswordHash = ""
	return *restaurant, nil
}

// Update writes name, address and contact. Credentials are never touched.
func (s *ProfileService) Update(ctx context.Context, in ProfileInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return validationError("restaurant_name", "required")
	}

	err := s.restaurants.UpdateProfile(ctx, s.session.RestaurantID,
		name,
		strings.TrimSpace(in.Address),
		strings.TrimSpace(in.Contact),
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
