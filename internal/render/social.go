package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// Social renders social media links.
type Social struct {
	Base
}

// Columns returns the social link columns.
func (*Social) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "PLATFORM", Accessor: "platform"},
		{Label: "URL", Accessor: "url", Kind: model1.KindText},
		{Label: "ICON", Accessor: "icon", Kind: model1.KindImage},
	}
}
