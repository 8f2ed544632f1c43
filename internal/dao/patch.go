package dao

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/govportal/portalctl/internal/model1"
)

// PatchOp represents a single RFC 6902 operation.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Field returns the top level field the operation targets.
func (o PatchOp) Field() (string, error) {
	p := strings.TrimPrefix(o.Path, "/")
	if p == "" || strings.Contains(p, "/") {
		return "", fmt.Errorf("unsupported patch path %q", o.Path)
	}
	p = strings.ReplaceAll(p, "~1", "/")
	return strings.ReplaceAll(p, "~0", "~"), nil
}

// ParsePatch decodes a JSON patch document.
func ParsePatch(raw []byte) ([]PatchOp, error) {
	var ops []PatchOp
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, fmt.Errorf("invalid JSON patch: %w", err)
	}
	for _, o := range ops {
		switch o.Op {
		case "add", "replace", "remove":
		default:
			return nil, fmt.Errorf("unsupported patch op %q", o.Op)
		}
		if _, err := o.Field(); err != nil {
			return nil, err
		}
	}

	return ops, nil
}

// ApplyPatch applies top level add, replace and remove operations.
func ApplyPatch(row model1.Row, ops []PatchOp) (model1.Row, error) {
	out := row.Clone()
	for _, o := range ops {
		f, err := o.Field()
		if err != nil {
			return nil, err
		}
		switch o.Op {
		case "add", "replace":
			out[f] = o.Value
		case "remove":
			delete(out, f)
		default:
			return nil, fmt.Errorf("unsupported patch op %q", o.Op)
		}
	}

	return out, nil
}
