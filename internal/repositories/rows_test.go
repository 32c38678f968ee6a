package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
	"backoffice/internal/store"
)

func TestInt64Value(t *testing.T) {
	for _, v := range []any{int64(7), 7, int32(7), float64(7), json.Number("7"), "7", sql.NullInt64{Int64: 7, Valid: true}} {
		got, err := int64Value(v)
		require.NoError(t, err, "%T", v)
		assert.Equal(t, int64(7), got, "%T", v)
	}

	_, err := int64Value(nil)
	assert.Error(t, err)
	_, err = int64Value(true)
	assert.Error(t, err)
}

func TestNullableInt64(t *testing.T) {
	got, err := nullableInt64(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = nullableInt64(sql.NullInt64{})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = nullableInt64(json.Number("3"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), *got)
}

func TestDecimalValue(t *testing.T) {
	want := decimal.RequireFromString("9.5")
	for _, v := range []any{want, 9.5, json.Number("9.50"), "9.50"} {
		got, err := decimalValue(v)
		require.NoError(t, err, "%T", v)
		assert.True(t, want.Equal(got), "%T: %s", v, got)
	}

	got, err := decimalValue(nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestInventoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository(store.NewMemoryStore())

	cat := int64(2)
	item := &models.InventoryItem{
		RestaurantID: 1,
		CategoryID:   &cat,
		IsVeg:        models.NonVeg,
		Name:         "Wings",
		Description:  "spicy",
		Price:        decimal.RequireFromString("12.345"),
	}
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)

	items, err := repo.ListByRestaurant(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "12.35", items[0].DisplayPrice())
	assert.Equal(t, models.NonVeg, items[0].IsVeg)
	require.NotNil(t, items[0].CategoryID)
	assert.Equal(t, cat, *items[0].CategoryID)

	name := "Hot Wings"
	require.NoError(t, repo.Update(ctx, 1, item.ID, ItemChanges{Name: &name, ClearCategory: true}))
	items, err = repo.ListByRestaurant(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hot Wings", items[0].Name)
	assert.Nil(t, items[0].CategoryID)

	// another tenant's id filter leaves the row alone
	require.NoError(t, repo.Delete(ctx, 2, item.ID))
	items, err = repo.ListByRestaurant(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, repo.Delete(ctx, 1, item.ID))
	items, err = repo.ListByRestaurant(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTableRepositoryFindByNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository(store.NewMemoryStore())

	missing, err := repo.FindByNumber(ctx, 1, "5")
	require.NoError(t, err)
	assert.Nil(t, missing)

	table := &models.Table{RestaurantID: 1, Number: "5", QRCodeData: "https://x/5/1"}
	require.NoError(t, repo.Create(ctx, table))
	assert.NotZero(t, table.ID)

	found, err := repo.FindByNumber(ctx, 1, "5")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *table, *found)

	other, err := repo.FindByNumber(ctx, 2, "5")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestRestaurantRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRestaurantRepository(store.NewMemoryStore())

	r := &models.Restaurant{Name: " Dosa Corner ", Email: " Hello@Dosa.in", PasswordHash: "argon2id$x"}
	require.NoError(t, repo.Create(ctx, r))
	assert.NotZero(t, r.ID)

	found, err := repo.FindByEmail(ctx, "hello@dosa.in")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Dosa Corner", found.Name)
	assert.Equal(t, "argon2id$x", found.PasswordHash)

	require.NoError(t, repo.UpdateProfile(ctx, r.ID, "Dosa Corner 2", "Main St", "1234567890"))
	found, err = repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dosa Corner 2", found.Name)
	assert.Equal(t, "hello@dosa.in", found.Email)

	none, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, none)
}
