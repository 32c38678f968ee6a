package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore runs the row-store contract directly against Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Select(ctx context.Context, collection string, q Query) ([]Row, error) {
	if err := validate(collection, queryFields(q)...); err != nil {
		return nil, err
	}

	where, args := whereClause(q.Filters, 1)
	query := fmt.Sprintf("SELECT * FROM %s%s", pgx.Identifier{collection}.Sanitize(), where)
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "ASC"
			if o.Desc {
				dir = "DESC NULLS LAST"
			}
			parts = append(parts, pgx.Identifier{o.Field}.Sanitize()+" "+dir)
		}
		query += " ORDER BY " + strings.Join(parts, ", ")
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("select", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify("select", err)
	}

	out := make([]Row, 0, len(maps))
	for _, m := range maps {
		out = append(out, Row(m))
	}
	return out, nil
}

func (s *PGStore) Insert(ctx context.Context, collection string, row Row) (Row, error) {
	if len(row) == 0 {
		return nil, ErrEmptyRow
	}
	fields := sortedFields(row)
	if err := validate(collection, fields...); err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for i, f := range fields {
		cols = append(cols, pgx.Identifier{f}.Sanitize())
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, row[f])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pgx.Identifier{collection}.Sanitize(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("insert", err)
	}
	inserted, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify("insert", err)
	}
	return Row(inserted), nil
}

func (s *PGStore) Update(ctx context.Context, collection string, patch Row, filters []Filter) error {
	if len(filters) == 0 {
		return ErrNoFilters
	}
	if len(patch) == 0 {
		return ErrEmptyRow
	}
	fields := sortedFields(patch)
	if err := validate(collection, append(fields, filterFields(filters)...)...); err != nil {
		return err
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+len(filters))
	for i, f := range fields {
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{f}.Sanitize(), i+1))
		args = append(args, patch[f])
	}
	where, whereArgs := whereClause(filters, len(fields)+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", pgx.Identifier{collection}.Sanitize(), strings.Join(sets, ", "), where)
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return classify("update", err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, collection string, filters []Filter) error {
	if len(filters) == 0 {
		return ErrNoFilters
	}
	if err := validate(collection, filterFields(filters)...); err != nil {
		return err
	}

	where, args := whereClause(filters, 1)
	query := fmt.Sprintf("DELETE FROM %s%s", pgx.Identifier{collection}.Sanitize(), where)
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return classify("delete", err)
	}
	return nil
}

func whereClause(filters []Filter, start int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	n := start
	for _, f := range filters {
		col := pgx.Identifier{f.Field}.Sanitize()
		if f.Value == nil {
			conds = append(conds, col+" IS NULL")
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, f.Value)
		n++
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortedFields(row Row) []string {
	fields := rowFields(row)
	sort.Strings(fields)
	return fields
}

func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		status := http.StatusBadRequest
		if pgErr.Code == uniqueViolation {
			status = http.StatusConflict
		}
		return &RemoteError{Op: op, Status: status, Code: pgErr.Code, Message: pgErr.Message}
	}
	return &TransportError{Op: op, Err: err}
}
