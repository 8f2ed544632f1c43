package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// Setting renders site settings. Values are sniffed so a logo path shows as
// an image.
type Setting struct {
	Base
}

// Columns returns the setting columns.
func (*Setting) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "KEY", Accessor: "key"},
		{Label: "VALUE", Accessor: "value"},
	}
}
