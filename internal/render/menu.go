package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// Menu renders navigation menu entries.
type Menu struct {
	Base
}

// Columns returns the menu columns.
func (*Menu) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "TITLE", Accessor: "title"},
		{Label: "SLUG", Accessor: "slug"},
		{Label: "PARENT", Accessor: "parent.title"},
		{Label: "ORDER", Accessor: "order", Align: tview.AlignRight},
		{Label: "STATUS", Accessor: "status"},
	}
}

// Checkbox enables bulk selection of menu entries.
func (*Menu) Checkbox() bool {
	return true
}
