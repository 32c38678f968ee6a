package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Collection names used by the back office.
const (
	Restaurants = "restaurants"
	Categories  = "categories"
	Inventory   = "inventory"
	Tables      = "tables"
)

// PrimaryKeys maps each collection to its identity column.
var PrimaryKeys = map[string]string{
	Restaurants: "restaurant_id",
	Categories:  "category_id",
	Inventory:   "item_id",
	Tables:      "table_id",
}

// Row is a single record keyed by column name.
type Row map[string]any

// Filter is an equality predicate. Filters in a query are combined with AND.
type Filter struct {
	Field string
	Value any
}

// Order sorts by Field, descending when Desc is set.
type Order struct {
	Field string
	Desc  bool
}

type Query struct {
	Filters []Filter
	Order   []Order
}

// Eq builds a Filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Store is the row-store contract every backend implements. An empty result
// set from Select means no matching rows and is never an error.
type Store interface {
	Select(ctx context.Context, collection string, q Query) ([]Row, error)
	Insert(ctx context.Context, collection string, row Row) (Row, error)
	Update(ctx context.Context, collection string, patch Row, filters []Filter) error
	Delete(ctx context.Context, collection string, filters []Filter) error
}

// TransportError reports that the store could not be reached.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store %s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports that the store answered but rejected the request or
// returned a payload that could not be decoded.
type RemoteError struct {
	Op      string
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store %s: remote error %d (%s): %s", e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("store %s: remote error %d: %s", e.Op, e.Status, e.Message)
}

// uniqueViolation is the SQLSTATE Postgres (and PostgREST) report for a
// unique constraint failure.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a store rejection caused by a
// unique constraint.
func IsUniqueViolation(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Code == uniqueViolation
}

var (
	ErrNoFilters = errors.New("refusing to write without filters")
	ErrEmptyRow  = errors.New("row has no fields")
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isValidIdentifier(name string) bool {
	return len(name) <= 63 && identifierPattern.MatchString(name)
}

func validate(collection string, fields ...string) error {
	if !isValidIdentifier(collection) {
		return fmt.Errorf("invalid collection name: %q", collection)
	}
	for _, f := range fields {
		if !isValidIdentifier(f) {
			return fmt.Errorf("invalid field name: %q", f)
		}
	}
	return nil
}

func queryFields(q Query) []string {
	fields := make([]string, 0, len(q.Filters)+len(q.Order))
	for _, f := range q.Filters {
		fields = append(fields, f.Field)
	}
	for _, o := range q.Order {
		fields = append(fields, o.Field)
	}
	return fields
}

func filterFields(filters []Filter) []string {
	fields := make([]string, 0, len(filters))
	for _, f := range filters {
		fields = append(fields, f.Field)
	}
	return fields
}

func rowFields(row Row) []string {
	fields := make([]string, 0, len(row))
	for k := range row {
		fields = append(fields, k)
	}
	return fields
}
