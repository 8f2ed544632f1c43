package render

import "github.com/govportal/portalctl/internal/model1"

// Base provides a base renderer implementation
type Base struct{}

// IDField returns the default id field.
func (*Base) IDField() string {
	return model1.DefaultIDField
}

// Checkbox returns the default row selection mode.
func (*Base) Checkbox() bool {
	return false
}
