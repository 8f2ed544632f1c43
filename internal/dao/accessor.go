package dao

import (
	"fmt"
	"reflect"
	"sort"
)

// Accessors maps resource ID strings to their accessor implementations.
type Accessors map[string]Accessor

var accessors = make(Accessors)

// RegisterAccessor adds an accessor to the global registry.
func RegisterAccessor(rid *ResourceID, accessor Accessor) {
	accessors[rid.String()] = accessor
}

// AccessorFor returns a new initialized accessor for the given resource ID.
// A factory carrying a database yields a SQL accessor.
func AccessorFor(f Factory, rid *ResourceID) (Accessor, error) {
	if f != nil && f.DB() != nil {
		acc := new(SQLAccessor)
		acc.Init(f, rid)
		return acc, nil
	}

	accessor, ok := accessors[rid.String()]
	if !ok {
		return nil, fmt.Errorf("no accessor for: %s", rid)
	}

	accessorType := reflect.TypeOf(accessor)
	if accessorType.Kind() == reflect.Ptr {
		accessorType = accessorType.Elem()
	}
	acc, ok := reflect.New(accessorType).Interface().(Accessor)
	if !ok {
		return nil, fmt.Errorf("failed to create accessor for: %s", rid)
	}
	acc.Init(f, rid)

	return acc, nil
}

// ListAccessors returns all registered resource IDs sorted by name.
func ListAccessors() []*ResourceID {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rids := make([]*ResourceID, 0, len(keys))
	for _, k := range keys {
		var rid ResourceID
		if err := rid.Parse(k); err == nil {
			rids = append(rids, &rid)
		}
	}

	return rids
}
