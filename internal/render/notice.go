package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// Notice renders public notices.
type Notice struct {
	Base
}

// Columns returns the notice columns.
func (*Notice) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "TITLE", Accessor: "title"},
		{Label: "PUBLISHED", Accessor: "published_at"},
		{Label: "FILE", Accessor: "file", Kind: model1.KindDocument},
		{Label: "VIEWS", Accessor: "views", Align: tview.AlignRight},
	}
}

// Opportunity renders job and tender openings.
type Opportunity struct {
	Base
}

// Columns returns the opportunity columns.
func (*Opportunity) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "TITLE", Accessor: "title"},
		{Label: "DEADLINE", Accessor: "deadline"},
		{Label: "DOCUMENT", Accessor: "document"},
		{Label: "OPEN", Accessor: "open"},
	}
}
