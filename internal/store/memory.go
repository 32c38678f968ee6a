package store

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps collections in process memory. It backs tests and local
// development; every access goes through a single mutex.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string][]Row
	nextID  map[string]int64
	uniques map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:    make(map[string][]Row),
		nextID:  make(map[string]int64),
		uniques: make(map[string][][]string),
	}
}

// AddUnique makes Insert reject rows whose values for fields match an
// existing row, mirroring a database unique index.
func (m *MemoryStore) AddUnique(collection string, fields ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uniques[collection] = append(m.uniques[collection], fields)
}

// Seed inserts rows as-is, advancing the identity counter past any key it sees.
func (m *MemoryStore) Seed(collection string, rows ...Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := PrimaryKeys[collection]
	for _, r := range rows {
		c := copyRow(r)
		if key != "" {
			if id, ok := toFloat(c[key]); ok && int64(id) > m.nextID[collection] {
				m.nextID[collection] = int64(id)
			}
		}
		m.data[collection] = append(m.data[collection], c)
	}
}

// Len returns how many rows a collection holds.
func (m *MemoryStore) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data[collection])
}

func (m *MemoryStore) Select(ctx context.Context, collection string, q Query) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "select", Err: err}
	}
	if err := validate(collection, queryFields(q)...); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Row{}
	for _, r := range m.data[collection] {
		if matches(r, q.Filters) {
			out = append(out, copyRow(r))
		}
	}

	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				c := compareValues(out[i][o.Field], out[j][o.Field])
				if c == 0 {
					continue
				}
				if o.Desc {
					// nulls stay last in both directions
					if out[i][o.Field] == nil || out[j][o.Field] == nil {
						return c < 0
					}
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	return out, nil
}

func (m *MemoryStore) Insert(ctx context.Context, collection string, row Row) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "insert", Err: err}
	}
	if len(row) == 0 {
		return nil, ErrEmptyRow
	}
	if err := validate(collection, rowFields(row)...); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := copyRow(row)
	for _, fields := range m.uniques[collection] {
		filters := make([]Filter, 0, len(fields))
		for _, f := range fields {
			filters = append(filters, Eq(f, stored[f]))
		}
		for _, existing := range m.data[collection] {
			if matches(existing, filters) {
				return nil, &RemoteError{
					Op:      "insert",
					Status:  409,
					Code:    uniqueViolation,
					Message: fmt.Sprintf("duplicate key value violates unique constraint on %s(%s)", collection, strings.Join(fields, ", ")),
				}
			}
		}
	}

	if key, ok := PrimaryKeys[collection]; ok {
		if _, set := stored[key]; !set {
			m.nextID[collection]++
			stored[key] = m.nextID[collection]
		}
	}
	m.data[collection] = append(m.data[collection], stored)
	return copyRow(stored), nil
}

func (m *MemoryStore) Update(ctx context.Context, collection string, patch Row, filters []Filter) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "update", Err: err}
	}
	if len(filters) == 0 {
		return ErrNoFilters
	}
	if len(patch) == 0 {
		return ErrEmptyRow
	}
	if err := validate(collection, append(rowFields(patch), filterFields(filters)...)...); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.data[collection] {
		if matches(r, filters) {
			for k, v := range patch {
				r[k] = v
			}
		}
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection string, filters []Filter) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "delete", Err: err}
	}
	if len(filters) == 0 {
		return ErrNoFilters
	}
	if err := validate(collection, filterFields(filters)...); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.data[collection][:0]
	for _, r := range m.data[collection] {
		if !matches(r, filters) {
			kept = append(kept, r)
		}
	}
	m.data[collection] = kept
	return nil
}

func matches(r Row, filters []Filter) bool {
	for _, f := range filters {
		v, ok := r[f.Field]
		if f.Value == nil {
			if ok && v != nil {
				return false
			}
			continue
		}
		if !ok || v == nil || compareValues(v, f.Value) != 0 {
			return false
		}
	}
	return true
}

func copyRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// compareValues orders numbers numerically, everything else by its string
// form, and nil after any value.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if _, isStr := a.(string); !isStr {
		if fa, ok := toFloat(a); ok {
			if fb, ok := toFloat(b); ok {
				switch {
				case fa < fb:
					return -1
				case fa > fb:
					return 1
				}
				return 0
			}
		}
	}
	return strings.Compare(formatValue(a), formatValue(b))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case decimal.Decimal:
		return t.InexactFloat64(), true
	case driver.Valuer:
		dv, err := t.Value()
		if err != nil {
			return 0, false
		}
		if s, ok := dv.(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			return f, err == nil
		}
		return toFloat(dv)
	}
	return 0, false
}
