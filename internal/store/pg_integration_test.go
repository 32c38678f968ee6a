package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const integrationSchema = `
CREATE TABLE tables (
  table_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  restaurant_id BIGINT NOT NULL,
  table_number TEXT NOT NULL,
  qr_code_data TEXT NOT NULL,
  UNIQUE (restaurant_id, table_number)
);
`

func newPGStore(t *testing.T) *PGStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("backoffice"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, integrationSchema)
	require.NoError(t, err)

	return NewPGStore(pool)
}

func TestPGStoreRoundTrip(t *testing.T) {
	s := newPGStore(t)
	ctx := context.Background()

	for _, n := range []string{"2", "1", "10"} {
		row, err := s.Insert(ctx, Tables, Row{"restaurant_id": int64(1), "table_number": n, "qr_code_data": "x/" + n + "/1"})
		require.NoError(t, err)
		assert.NotNil(t, row["table_id"])
	}

	rows, err := s.Select(ctx, Tables, Query{
		Filters: []Filter{Eq("restaurant_id", int64(1))},
		Order:   []Order{{Field: "table_number"}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0]["table_number"])
	assert.Equal(t, "10", rows[1]["table_number"])
	assert.Equal(t, "2", rows[2]["table_number"])

	_, err = s.Insert(ctx, Tables, Row{"restaurant_id": int64(1), "table_number": "1", "qr_code_data": "dup"})
	assert.True(t, IsUniqueViolation(err))

	require.NoError(t, s.Update(ctx, Tables, Row{"qr_code_data": "changed"}, []Filter{Eq("table_number", "2")}))
	require.NoError(t, s.Delete(ctx, Tables, []Filter{Eq("table_number", "10")}))

	rows, err = s.Select(ctx, Tables, Query{Filters: []Filter{Eq("restaurant_id", int64(1)), Eq("table_number", "2")}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "changed", rows[0]["qr_code_data"])

	rows, err = s.Select(ctx, Tables, Query{Filters: []Filter{Eq("table_number", "10")}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
