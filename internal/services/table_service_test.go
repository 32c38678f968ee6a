package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
	"backoffice/internal/qr"
	"backoffice/internal/store"
)

func tableNumbers(tables []models.Table) []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Number)
	}
	return out
}

func TestTableAddDuplicateThenNew(t *testing.T) {
	ctx := context.Background()
	mem, st := newTestStore()
	tables := newTables(st, r1)

	for _, n := range []string{"1", "2"} {
		_, err := tables.Add(ctx, n)
		require.NoError(t, err)
	}
	inserts := st.inserts

	_, err := tables.Add(ctx, "1")
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1", dup.Key)
	assert.Equal(t, inserts, st.inserts)
	assert.Equal(t, 2, mem.Len(store.Tables))

	list, err := tables.Add(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, tableNumbers(list))
}

func TestTableAddTrimsAndDerivesQRData(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()

	list, err := newTables(st, r1).Add(ctx, "  7 ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "7", list[0].Number)
	assert.Equal(t, "https://menu.example.com/t/7/1", list[0].QRCodeData)
}

func TestTableNumbersAreOpaqueStrings(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	tables := newTables(st, r1)

	_, err := tables.Add(ctx, "1")
	require.NoError(t, err)
	list, err := tables.Add(ctx, "01")
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "1"}, tableNumbers(list))
}

func TestTableSameNumberAcrossTenants(t *testing.T) {
	ctx := context.Background()
	mem, st := newTestStore()

	_, err := newTables(st, r1).Add(ctx, "1")
	require.NoError(t, err)
	list, err := newTables(st, models.Session{RestaurantID: 2}).Add(ctx, "1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://menu.example.com/t/1/2", list[0].QRCodeData)
	assert.Equal(t, 2, mem.Len(store.Tables))
}

func TestTableAddValidation(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	tables := newTables(st, r1)

	for _, n := range []string{"", "   ", "1/2", "a?b", "#5", "A:1", `a"b`, `a\b`, "a|b", "a*b", "<1>"} {
		_, err := tables.Add(ctx, n)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "number %q", n)
		assert.Equal(t, "number", verr.Field)
	}
	assert.Zero(t, st.writes())
}

// racingStore hides existing tables from the pre-check so the insert hits
// the unique index.
type racingStore struct {
	*countingStore
}

func (s racingStore) Select(ctx context.Context, collection string, q store.Query) ([]store.Row, error) {
	if collection == store.Tables && len(q.Order) == 0 {
		return []store.Row{}, nil
	}
	return s.countingStore.Select(ctx, collection, q)
}

func TestTableAddUniqueViolationIsDuplicate(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	_, err := newTables(st, r1).Add(ctx, "4")
	require.NoError(t, err)

	_, err = newTables(racingStore{st}, r1).Add(ctx, "4")
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "4", dup.Key)
}

func TestTableRemoveNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	mem, st := newTestStore()
	tables := newTables(st, r1)

	list, err := tables.Add(ctx, "9")
	require.NoError(t, err)
	id := list[0].ID

	_, err = tables.Remove(ctx, id, false)
	var confirm *ConfirmationRequiredError
	require.ErrorAs(t, err, &confirm)
	assert.Equal(t, "Are you sure you want to delete Table 9?", confirm.Prompt)
	assert.Equal(t, 1, mem.Len(store.Tables))

	list, err = tables.Remove(ctx, id, true)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = tables.Remove(ctx, id, true)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestTableHasTables(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	tables := newTables(st, r1)

	has, err := tables.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = tables.Add(ctx, "1")
	require.NoError(t, err)
	has, err = tables.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestTableExportAllEmpty(t *testing.T) {
	_, st := newTestStore()
	_, err := newTables(st, r1).ExportAll(context.Background())
	assert.ErrorIs(t, err, ErrEmptyExport)
}

func TestTableExportAll(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	tables := newTables(st, r1)
	for _, n := range []string{"2", "1", "Patio 3"} {
		_, err := tables.Add(ctx, n)
		require.NoError(t, err)
	}

	data, err := tables.ExportAll(ctx)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG"), body[:4], f.Name)
	}
	assert.Equal(t, []string{"Table_1.png", "Table_2.png", "Table_Patio 3.png"}, names)
}

func TestTableExportAllNamesStayDistinct(t *testing.T) {
	ctx := context.Background()
	mem, st := newTestStore()
	tables := newTables(st, r1)

	_, err := tables.Add(ctx, "A_1")
	require.NoError(t, err)
	_, err = tables.Add(ctx, "A:1")
	require.Error(t, err)

	// a row stored before the restriction existed
	mem.Seed(store.Tables, store.Row{"table_id": int64(90), "restaurant_id": r1.RestaurantID, "table_number": "A:1", "qr_code_data": "legacy"})

	data, err := tables.ExportAll(ctx)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.Len(t, names, 2)
	assert.True(t, names["Table_A_1.png"])
}

func TestTableExportOneMatchesQRPackage(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	tables := newTables(st, r1)

	list, err := tables.Add(ctx, "5")
	require.NoError(t, err)

	got, err := tables.ExportOne(list[0].QRCodeData)
	require.NoError(t, err)
	want, err := qr.PNG(list[0].QRCodeData)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQRData(t *testing.T) {
	assert.Equal(t, "https://x.test/menu/12/3", QRData("https://x.test/menu/", "12", 3))
	assert.Equal(t, "https://x.test/menu/12/3", QRData("https://x.test/menu", "12", 3))
}
