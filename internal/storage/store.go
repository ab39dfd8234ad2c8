// Package storage implements the data-access layer: a generic CRUD store
// parameterized over the entity type, plus one repository per domain entity
// adding its typed filters.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmelnyk-dev/salonbook/internal/db"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// pageWindow normalizes a skip/limit pair: negative offsets become 0 and the
// limit is clamped to [1, maxLimit] with defaultLimit for zero/negative input.
func pageWindow(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

// Changes accumulates the columns touched by a partial update, in call order,
// so the generated SQL is deterministic.
type Changes struct {
	cols []string
	vals []any
}

func (c *Changes) Set(col string, val any) {
	c.cols = append(c.cols, col)
	c.vals = append(c.vals, val)
}

func (c *Changes) Empty() bool {
	return len(c.cols) == 0
}

// Store is the generic persistence component shared by every repository. E is
// the entity struct; rows are collected by db-tag name, so the select column
// list must match the struct's tags.
type Store[E any] struct {
	q     db.Querier
	table string
	cols  string
}

func NewStore[E any](q db.Querier, table, cols string) *Store[E] {
	return &Store[E]{q: q, table: table, cols: cols}
}

// WithTx returns a copy of the store bound to the given transaction.
func (s *Store[E]) WithTx(tx pgx.Tx) *Store[E] {
	c := *s
	c.q = tx
	return &c
}

func (s *Store[E]) Get(ctx context.Context, id int64) (E, error) {
	var zero E
	rows, err := s.q.Query(ctx,
		`SELECT `+s.cols+` FROM `+s.table+` WHERE id = $1`, id)
	if err != nil {
		return zero, err
	}
	e, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[E])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	return e, err
}

func (s *Store[E]) List(ctx context.Context, skip, limit int) ([]E, error) {
	return s.ListWhere(ctx, "", nil, skip, limit)
}

// ListWhere runs a filtered page query. where is a SQL fragment using
// placeholders $1..$n matching args; an empty where lists the whole table.
// Rows are ordered by id (insertion order) and an out-of-range offset yields
// an empty slice.
func (s *Store[E]) ListWhere(ctx context.Context, where string, args []any, skip, limit int) ([]E, error) {
	skip, limit = pageWindow(skip, limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + s.cols + ` FROM ` + s.table)
	if where != "" {
		sb.WriteString(` WHERE ` + where)
	}
	n := len(args)
	fmt.Fprintf(&sb, ` ORDER BY id OFFSET $%d LIMIT $%d`, n+1, n+2)
	args = append(args, skip, limit)

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[E])
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

// One runs a filter expected to match at most one row (unique lookups).
func (s *Store[E]) One(ctx context.Context, where string, args ...any) (E, error) {
	var zero E
	rows, err := s.q.Query(ctx,
		`SELECT `+s.cols+` FROM `+s.table+` WHERE `+where, args...)
	if err != nil {
		return zero, err
	}
	e, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[E])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	return e, err
}

// Insert persists a new row from parallel column/value slices and returns the
// stored entity including generated id and timestamps. Constraint violations
// surface as pgconn errors classified by IsUniqueViolation and
// IsForeignKeyViolation; nothing is validated in advance here.
func (s *Store[E]) Insert(ctx context.Context, cols []string, vals []any) (E, error) {
	var zero E
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		s.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), s.cols)

	rows, err := s.q.Query(ctx, sql, vals...)
	if err != nil {
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[E])
}

// Update applies the accumulated Changes to the row and stamps updated_at.
// An empty Changes is a field-level no-op: the current row is returned
// unmodified and updated_at is not touched.
func (s *Store[E]) Update(ctx context.Context, id int64, ch *Changes) (E, error) {
	if ch == nil || ch.Empty() {
		return s.Get(ctx, id)
	}

	var zero E
	set := make([]string, len(ch.cols))
	for i, col := range ch.cols {
		set[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	set = append(set, "updated_at = now()")
	sql := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`,
		s.table, strings.Join(set, ", "), len(ch.cols)+1, s.cols)
	args := append(append([]any{}, ch.vals...), id)

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	e, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[E])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	return e, err
}

// Delete removes the row and returns its pre-deletion value, so callers can
// confirm existence in the same round trip.
func (s *Store[E]) Delete(ctx context.Context, id int64) (E, error) {
	var zero E
	rows, err := s.q.Query(ctx,
		`DELETE FROM `+s.table+` WHERE id = $1 RETURNING `+s.cols, id)
	if err != nil {
		return zero, err
	}
	e, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[E])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	return e, err
}
