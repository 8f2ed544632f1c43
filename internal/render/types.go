package render

import "github.com/govportal/portalctl/internal/model1"

const (
	// Glyphs prefixed to media cells.
	ImageGlyph  = "▣"
	VideoGlyph  = "▶"
	AudioGlyph  = "♫"
	DocGlyph    = "▤"
	StructGlyph = "{}"

	// MaxCellWidth bounds the rendered width of a table cell.
	MaxCellWidth = 40

	// Display values
	Blank = ""
)

// Renderer describes how a resource is presented in the terminal.
type Renderer interface {
	// Columns returns the column set of the resource table.
	Columns() model1.Columns

	// IDField returns the row field carrying the record identity.
	IDField() string

	// Checkbox returns true when rows are selectable.
	Checkbox() bool
}
