package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// Slider renders home page slider entries.
type Slider struct {
	Base
}

// Columns returns the slider columns.
func (*Slider) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "TITLE", Accessor: "title"},
		{Label: "IMAGE", Accessor: "image", Kind: model1.KindImage},
		{Label: "CAPTION", Accessor: "caption"},
		{Label: "STATUS", Accessor: "status"},
	}
}
