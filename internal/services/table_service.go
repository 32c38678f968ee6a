package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"backoffice/internal/models"
	"backoffice/internal/qr"
	"backoffice/internal/repositories"
	"backoffice/internal/store"
)

// reservedNumberChars break either the QR URL or the archive file name.
const reservedNumberChars = `/?#<>:"\|*`

// TableService manages one restaurant's tables and their QR artifacts. Like
// InventoryService it reloads the whole list after each write.
type TableService struct {
	tables  *repositories.TableRepository
	session models.Session
	baseURL string

	list   []models.Table
	loaded bool
}

func NewTableService(tables *repositories.TableRepository, session models.Session, baseURL string) *TableService {
	return &TableService{
		tables:  tables,
		session: session,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// QRData builds the payload printed on a table: <base-url>/<number>/<restaurant>.
func QRData(baseURL, number string, restaurantID int64) string {
	return strings.TrimRight(baseURL, "/") + "/" + number + "/" + strconv.FormatInt(restaurantID, 10)
}

// Tables returns a copy of the loaded list.
func (s *TableService) Tables() []models.Table {
	out := make([]models.Table, len(s.list))
	copy(out, s.list)
	return out
}

// LoadAll fetches the tenant's tables ordered by number and replaces the
// in-memory list. On failure the previous list is kept.
func (s *TableService) LoadAll(ctx context.Context) ([]models.Table, error) {
	tables, err := s.tables.ListByRestaurant(ctx, s.session.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	s.list = tables
	s.loaded = true
	return s.Tables(), nil
}

// Add creates a table after checking the number is free for this restaurant.
// The check and the insert are separate calls; a unique index in the store
// catches the race and is reported the same way.
func (s *TableService) Add(ctx context.Context, number string) ([]models.Table, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, validationError("number", "required")
	}
	if strings.ContainsAny(number, reservedNumberChars) {
		return nil, validationError("number", "must not contain any of "+reservedNumberChars)
	}

	existing, err := s.tables.FindByNumber(ctx, s.session.RestaurantID, number)
	if err != nil {
		return nil, fmt.Errorf("failed to check table number: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateError{Field: "table", Key: number}
	}

	table := &models.Table{
		RestaurantID: s.session.RestaurantID,
		Number:       number,
		QRCodeData:   QRData(s.baseURL, number, s.session.RestaurantID),
	}
	if err := s.tables.Create(ctx, table); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, &DuplicateError{Field: "table", Key: number}
		}
		return nil, fmt.Errorf("failed to add table: %w", err)
	}

	return s.LoadAll(ctx)
}

// Remove deletes a table once the user has confirmed it.
func (s *TableService) Remove(ctx context.Context, tableID int64, confirmed bool) ([]models.Table, error) {
	table, err := s.Get(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, &ConfirmationRequiredError{
			Prompt: fmt.Sprintf("Are you sure you want to delete Table %s?", table.Number),
		}
	}

	if err := s.tables.Delete(ctx, s.session.RestaurantID, tableID); err != nil {
		return nil, fmt.Errorf("failed to delete table: %w", err)
	}

	return s.LoadAll(ctx)
}

// Get finds a table in the loaded list, loading it first if needed.
func (s *TableService) Get(ctx context.Context, tableID int64) (models.Table, error) {
	if !s.loaded {
		if _, err := s.LoadAll(ctx); err != nil {
			return models.Table{}, err
		}
	}
	for _, t := range s.list {
		if t.ID == tableID {
			return t, nil
		}
	}
	return models.Table{}, ErrTableNotFound
}

// HasTables reports whether the restaurant has any table at all.
func (s *TableService) HasTables(ctx context.Context) (bool, error) {
	tables, err := s.tables.ListByRestaurant(ctx, s.session.RestaurantID)
	if err != nil {
		return false, fmt.Errorf("failed to load tables: %w", err)
	}
	return len(tables) > 0, nil
}

// ExportOne renders a stored QR payload as a PNG image.
func (s *TableService) ExportOne(qrData string) ([]byte, error) {
	return qr.PNG(qrData)
}

// ExportAll renders every table of the restaurant into one zip archive,
// one Table_<number>.png per table in table-number order.
func (s *TableService) ExportAll(ctx context.Context) ([]byte, error) {
	tables, err := s.tables.ListByRestaurant(ctx, s.session.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	if len(tables) == 0 {
		return nil, ErrEmptyExport
	}

	entries := make([]qr.Entry, 0, len(tables))
	seen := make(map[string]bool, len(tables))
	for _, t := range tables {
		name := qr.TableFilename(t.Number)
		// Rows written before numbers were restricted can still collide.
		if seen[name] {
			name = qr.TableFilename(t.Number + "_" + strconv.FormatInt(t.ID, 10))
		}
		seen[name] = true
		entries = append(entries, qr.Entry{Name: name, Payload: t.QRCodeData})
	}

	archive, err := qr.Archive(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr archive: %w", err)
	}
	return archive, nil
}
