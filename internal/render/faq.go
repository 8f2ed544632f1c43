package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// FAQ renders frequently asked questions.
type FAQ struct {
	Base
}

// Columns returns the FAQ columns.
func (*FAQ) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "QUESTION", Accessor: "question"},
		{Label: "ANSWER", Accessor: "answer", Kind: model1.KindText},
		{Label: "STATUS", Accessor: "status"},
	}
}
