package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/govportal/portalctl/internal/model1"
)

// Resource is the base struct accessors embed. It provides factory access,
// resource identification and page caching.
type Resource struct {
	Factory
	rid *ResourceID
	mx  sync.RWMutex
}

// Init initializes the resource with factory and resource ID.
func (r *Resource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()

	r.Factory = f
	r.rid = rid
}

// ResourceID returns the resource identifier.
func (r *Resource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return r.rid
}

func (r *Resource) getFactory() Factory {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return r.Factory
}

func (r *Resource) cache() *PageCache {
	if f := r.getFactory(); f != nil {
		return f.Cache()
	}
	return nil
}

func (r *Resource) checkWritable() error {
	if rid := r.ResourceID(); rid != nil && rid.IsPublic() {
		return fmt.Errorf("%s: %w", rid, ErrReadOnly)
	}
	if f := r.getFactory(); f != nil && f.ReadOnly() {
		return ErrReadOnly
	}
	return nil
}

func (r *Resource) invalidate() {
	if c, rid := r.cache(), r.ResourceID(); c != nil && rid != nil {
		c.InvalidatePrefix(rid.String() + ":")
	}
}

// describe renders a record as aligned key/value lines.
func describe(row model1.Row) string {
	keys := make([]string, 0, len(row))
	width := 0
	for k := range row {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%-*s %s\n", width+1, k+":", model1.CellText(row[k]))
	}

	return b.String()
}

func toJSON(row model1.Row) (string, error) {
	raw, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record to JSON: %w", err)
	}

	return string(raw), nil
}

// RowID returns the id field of a row as a string.
func RowID(row model1.Row, idField string) (string, error) {
	if idField == "" {
		idField = model1.DefaultIDField
	}
	v := row.Get(idField)
	if v == nil {
		return "", ErrNoID
	}

	return model1.CellText(v), nil
}

func describeWith(ctx context.Context, g Getter, id string) (string, error) {
	row, err := g.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return describe(row), nil
}

func jsonWith(ctx context.Context, g Getter, id string) (string, error) {
	row, err := g.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return toJSON(row)
}
