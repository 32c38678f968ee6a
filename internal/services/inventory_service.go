package services

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/models"
	"backoffice/internal/repositories"

	"github.com/shopspring/decimal"
)

var maxPrice = decimal.RequireFromString("99999.99")

// InventoryService manages one restaurant's inventory. It keeps the last
// loaded list and reloads it in full after every write, so the list always
// reflects what the store joined. An instance serves one caller at a time.
type InventoryService struct {
	items      *repositories.InventoryRepository
	categories *repositories.CategoryRepository
	session    models.Session

	list   []models.InventoryItem
	loaded bool
}

func NewInventoryService(
	items *repositories.InventoryRepository,
	categories *repositories.CategoryRepository,
	session models.Session,
) *InventoryService {
	return &InventoryService{
		items:      items,
		categories: categories,
		session:    session,
	}
}

// ItemInput is the add-item form. Price is the raw text the user typed.
type ItemInput struct {
	CategoryID  *int64 `json:"category_id"`
	IsVeg       string `json:"is_veg"`
	Name        string `json:"item_name"`
	Description string `json:"item_desc"`
	Price       string `json:"price"`
}

// ItemPatch is the update form; nil fields are not changed.
type ItemPatch struct {
	CategoryID    *int64  `json:"category_id"`
	ClearCategory bool    `json:"clear_category"`
	IsVeg         *string `json:"is_veg"`
	Name          *string `json:"item_name"`
	Description   *string `json:"item_desc"`
	Price         *string `json:"price"`
}

// Items returns a copy of the loaded list.
func (s *InventoryService) Items() []models.InventoryItem {
	out := make([]models.InventoryItem, len(s.list))
	copy(out, s.list)
	return out
}

// LoadAll fetches the tenant's items with their category names and replaces
// the in-memory list. On failure the previous list is kept.
func (s *InventoryService) LoadAll(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.items.ListByRestaurant(ctx, s.session.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	for i := range items {
		items[i].CategoryName = models.UnknownCategory
		if items[i].CategoryID == nil {
			continue
		}
		if name, ok := names[*items[i].CategoryID]; ok {
			items[i].CategoryName = name
		}
	}

	s.list = items
	s.loaded = true
	return s.Items(), nil
}

// Filter returns the loaded items whose name contains query, ignoring case.
// A blank query returns the whole list. Order is preserved.
func (s *InventoryService) Filter(query string) []models.InventoryItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Items()
	}

	out := make([]models.InventoryItem, 0, len(s.list))
	for _, item := range s.list {
		if strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns dropdown data ordered by id.
func (s *InventoryService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

func (s *InventoryService) Add(ctx context.Context, in ItemInput) ([]models.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("name", "required")
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	vegType := models.Veg
	if strings.TrimSpace(in.IsVeg) != "" {
		if vegType, err = parseVegType(in.IsVeg); err != nil {
			return nil, err
		}
	}

	item := &models.InventoryItem{
		RestaurantID: s.session.RestaurantID,
		CategoryID:   in.CategoryID,
		IsVeg:        vegType,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return s.LoadAll(ctx)
}

// Update validates the patch, writes only the fields that differ from the
// stored item, then reloads.
func (s *InventoryService) Update(ctx context.Context, itemID int64, patch ItemPatch) ([]models.InventoryItem, error) {
	var changes repositories.ItemChanges

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationError("name", "required")
		}
		changes.Name = &name
	}
	if patch.Price != nil {
		price, err := ParsePrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		changes.Price = &price
	}
	if patch.IsVeg != nil {
		vegType, err := parseVegType(*patch.IsVeg)
		if err != nil {
			return nil, err
		}
		changes.IsVeg = &vegType
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		changes.Description = &desc
	}
	changes.CategoryID = patch.CategoryID
	changes.ClearCategory = patch.ClearCategory && patch.CategoryID == nil

	current, err := s.find(ctx, itemID)
	if err != nil {
		return nil, err
	}
	changes = dropUnchanged(current, changes)

	if !changes.Empty() {
		if err := s.items.Update(ctx, s.session.RestaurantID, itemID, changes); err != nil {
			return nil, fmt.Errorf("failed to update item: %w", err)
		}
	}

	return s.LoadAll(ctx)
}

// Remove deletes an item once the user has confirmed it. Without
// confirmation it returns a ConfirmationRequiredError and writes nothing.
func (s *InventoryService) Remove(ctx context.Context, itemID int64, confirmed bool) ([]models.InventoryItem, error) {
	item, err := s.find(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, &ConfirmationRequiredError{
			Prompt: fmt.Sprintf("Are you sure you want to delete '%s'?", item.Name),
		}
	}

	if err := s.items.Delete(ctx, s.session.RestaurantID, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	return s.LoadAll(ctx)
}

func (s *InventoryService) find(ctx context.Context, itemID int64) (models.InventoryItem, error) {
	if !s.loaded {
		if _, err := s.LoadAll(ctx); err != nil {
			return models.InventoryItem{}, err
		}
	}
	for _, item := range s.list {
		if item.ID == itemID {
			return item, nil
		}
	}
	return models.InventoryItem{}, ErrItemNotFound
}

func dropUnchanged(current models.InventoryItem, c repositories.ItemChanges) repositories.ItemChanges {
	if c.Name != nil && *c.Name == current.Name {
		c.Name = nil
	}
	if c.Description != nil && *c.Description == current.Description {
		c.Description = nil
	}
	if c.Price != nil && c.Price.Equal(current.Price) {
		c.Price = nil
	}
	if c.IsVeg != nil && *c.IsVeg == current.IsVeg {
		c.IsVeg = nil
	}
	if c.CategoryID != nil && current.CategoryID != nil && *c.CategoryID == *current.CategoryID {
		c.CategoryID = nil
	}
	if c.ClearCategory && current.CategoryID == nil {
		c.ClearCategory = false
	}
	return c
}

// ParsePrice accepts a non-negative number with at most two fractional
// digits, up to 99999.99.
func ParsePrice(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, validationError("price", "required")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, validationError("price", "must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, validationError("price", "must not be negative")
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, validationError("price", "at most two decimal places")
	}
	if d.GreaterThan(maxPrice) {
		return decimal.Zero, validationError("price", "must not exceed "+maxPrice.StringFixed(2))
	}
	return d, nil
}

func parseVegType(s string) (models.VegType, error) {
	v, err := models.ParseVegType(strings.TrimSpace(s))
	if err != nil {
		return "", validationError("is_veg", "must be one of Veg, Non-Veg, Egg")
	}
	return v, nil
}
