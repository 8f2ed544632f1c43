package model1

import (
	"fmt"
	"strings"
)

// DefaultIDField is the row field used to key selections.
const DefaultIDField = "id"

// Row represents a single record returned by a fetch adapter.
type Row map[string]any

// Get returns the value stored under accessor. Dotted accessors walk nested
// objects when the flat key is absent.
func (r Row) Get(accessor string) any {
	if r == nil {
		return nil
	}
	if v, ok := r[accessor]; ok {
		return v
	}
	if !strings.Contains(accessor, ".") {
		return nil
	}

	var cur any = map[string]any(r)
	for _, part := range strings.Split(accessor, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		if cur, ok = m[part]; !ok {
			return nil
		}
	}
	return cur
}

// Key returns the selection key for the row: the idField value when present,
// the positional index otherwise.
func (r Row) Key(idField string, index int) string {
	if idField != "" {
		if v := r.Get(idField); v != nil {
			return "id:" + fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("idx:%d", index)
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Row:
		return m, true
	default:
		return nil, false
	}
}

// Rows represents a collection of rows.
type Rows []Row

// Clone returns a copy of the rows.
func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}
