package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/model1"
)

// OpenDB connects to the portal database.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", describePQ(err))
	}

	return db, nil
}

// SQLAccessor implements the DAO for portal resources straight off the
// portal database.
type SQLAccessor struct {
	Resource
}

var _ Describer = (*SQLAccessor)(nil)

func (a *SQLAccessor) db() (*sql.DB, error) {
	f := a.getFactory()
	if f == nil || f.DB() == nil {
		return nil, errors.New("no database connection")
	}
	return f.DB(), nil
}

// List retrieves one page of records.
func (a *SQLAccessor) List(ctx context.Context, q *model1.Query) (model1.Page[model1.Row], error) {
	rid := a.ResourceID()
	key := PageKey(rid, q)
	if p, ok := a.cache().Get(key); ok {
		return p, nil
	}

	db, err := a.db()
	if err != nil {
		return model1.Page[model1.Row]{}, err
	}

	countSQL, countArgs := buildCountQuery(rid.Table(), q)
	var total int
	if err := db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return model1.Page[model1.Row]{}, fmt.Errorf("failed to count %s: %w", rid, describePQ(err))
	}

	listSQL, listArgs := buildListQuery(rid.Table(), q)
	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return model1.Page[model1.Row]{}, fmt.Errorf("failed to list %s: %w", rid, describePQ(err))
	}
	defer rows.Close()

	p := model1.Page[model1.Row]{Total: total}
	for rows.Next() {
		row, err := scanJSONRow(rows)
		if err != nil {
			return model1.Page[model1.Row]{}, err
		}
		p.Data = append(p.Data, row)
	}
	if err := rows.Err(); err != nil {
		return model1.Page[model1.Row]{}, fmt.Errorf("failed to read %s: %w", rid, describePQ(err))
	}
	a.cache().Set(key, p)

	return p, nil
}

// Get retrieves a single record by id.
func (a *SQLAccessor) Get(ctx context.Context, id string) (model1.Row, error) {
	db, err := a.db()
	if err != nil {
		return nil, err
	}
	rid := a.ResourceID()
	stmt := fmt.Sprintf(`SELECT row_to_json(r) FROM %s AS r WHERE r.id::text = $1`, pq.QuoteIdentifier(rid.Table()))
	row, err := scanJSONRow(db.QueryRowContext(ctx, stmt, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", rid, id, client.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", rid, id, describePQ(err))
	}

	return row, nil
}

// Update applies a JSON patch to a record.
func (a *SQLAccessor) Update(ctx context.Context, id string, patch []byte) (model1.Row, error) {
	if err := a.checkWritable(); err != nil {
		return nil, err
	}
	db, err := a.db()
	if err != nil {
		return nil, err
	}
	ops, err := ParsePatch(patch)
	if err != nil {
		return nil, err
	}
	rid := a.ResourceID()
	if len(ops) == 0 {
		return a.Get(ctx, id)
	}
	defer a.invalidate()

	stmt, args, err := buildUpdate(rid.Table(), id, ops)
	if err != nil {
		return nil, err
	}
	row, err := scanJSONRow(db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", rid, id, client.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", rid, id, describePQ(err))
	}

	return row, nil
}

// Delete removes a record.
func (a *SQLAccessor) Delete(ctx context.Context, id string) error {
	if err := a.checkWritable(); err != nil {
		return err
	}
	db, err := a.db()
	if err != nil {
		return err
	}
	rid := a.ResourceID()
	defer a.invalidate()

	stmt := fmt.Sprintf(`DELETE FROM %s AS r WHERE r.id::text = $1`, pq.QuoteIdentifier(rid.Table()))
	res, err := db.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", rid, id, describePQ(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %s: %w", rid, id, client.ErrNotFound)
	}

	return nil
}

// Describe returns a formatted description of a record.
func (a *SQLAccessor) Describe(ctx context.Context, id string) (string, error) {
	return describeWith(ctx, a, id)
}

// ToJSON returns a JSON representation of a record.
func (a *SQLAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	return jsonWith(ctx, a, id)
}

const searchClause = `($1 = '' OR r::text ILIKE '%' || $1 || '%')`

func buildCountQuery(table string, q *model1.Query) (string, []any) {
	var search string
	if q != nil {
		search = q.Search
	}
	stmt := fmt.Sprintf(`SELECT count(*) FROM %s AS r WHERE %s`, pq.QuoteIdentifier(table), searchClause)

	return stmt, []any{search}
}

func buildListQuery(table string, q *model1.Query) (string, []any) {
	var (
		search string
		limit  any
		offset int
	)
	if q != nil {
		search, offset = q.Search, q.Offset()
		if q.Limit > 0 && q.Limit < model1.UnboundedLimit {
			limit = q.Limit
		}
	}
	stmt := fmt.Sprintf(
		`SELECT row_to_json(t) FROM (SELECT r.* FROM %s AS r WHERE %s ORDER BY r.id LIMIT $2 OFFSET $3) AS t`,
		pq.QuoteIdentifier(table),
		searchClause,
	)

	return stmt, []any{search, limit, offset}
}

func buildUpdate(table, id string, ops []PatchOp) (string, []any, error) {
	sets := make([]string, 0, len(ops))
	args := make([]any, 0, len(ops)+1)
	for _, o := range ops {
		f, err := o.Field()
		if err != nil {
			return "", nil, err
		}
		if f == model1.DefaultIDField {
			return "", nil, fmt.Errorf("field %q is immutable", f)
		}
		if o.Op == "remove" {
			sets = append(sets, pq.QuoteIdentifier(f)+" = NULL")
			continue
		}
		v, err := sqlValue(o.Value)
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(f), len(args)))
	}
	args = append(args, id)
	stmt := fmt.Sprintf(
		`UPDATE %s AS r SET %s WHERE r.id::text = $%d RETURNING row_to_json(r)`,
		pq.QuoteIdentifier(table),
		strings.Join(sets, ", "),
		len(args),
	)

	return stmt, args, nil
}

func sqlValue(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, float64, int, int64:
		return t, nil
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value: %w", err)
		}
		return string(raw), nil
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJSONRow(s scanner) (model1.Row, error) {
	var raw []byte
	if err := s.Scan(&raw); err != nil {
		return nil, err
	}
	var row model1.Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return row, nil
}

// describePQ enriches postgres errors with their condition name.
func describePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Message, pqErr.Code.Name(), err)
	}
	return err
}
