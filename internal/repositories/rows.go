package repositories

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Row values arrive in different shapes depending on the store backend:
// json.Number from PostgREST, native ints or pgtype values from pgx, and
// whatever was inserted for the in-memory store. These helpers normalize them.

func int64Value(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(t, 10, 64)
	case driver.Valuer:
		dv, err := t.Value()
		if err != nil {
			return 0, err
		}
		return int64Value(dv)
	case nil:
		return 0, fmt.Errorf("missing integer value")
	}
	return 0, fmt.Errorf("unexpected integer value %T", v)
}

func nullableInt64(v any) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	if dv, ok := v.(driver.Valuer); ok {
		inner, err := dv.Value()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, nil
		}
	}
	n, err := int64Value(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

func decimalValue(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(t)
	case driver.Valuer:
		dv, err := t.Value()
		if err != nil {
			return decimal.Zero, err
		}
		if dv == nil {
			return decimal.Zero, nil
		}
		return decimalValue(dv)
	case nil:
		return decimal.Zero, nil
	}
	return decimal.Zero, fmt.Errorf("unexpected decimal value %T", v)
}
