package render

import (
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

// GalleryCategory renders gallery categories.
type GalleryCategory struct {
	Base
}

// Columns returns the category columns.
func (*GalleryCategory) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "NAME", Accessor: "name"},
		{Label: "SLUG", Accessor: "slug"},
		{Label: "COVER", Accessor: "cover", Kind: model1.KindImage},
	}
}

// GalleryImage renders gallery media. The file kind is sniffed since a
// gallery mixes images, videos and audio.
type GalleryImage struct {
	Base
}

// Columns returns the gallery media columns.
func (*GalleryImage) Columns() model1.Columns {
	return model1.Columns{
		{Label: "ID", Accessor: "id", Align: tview.AlignRight},
		{Label: "TITLE", Accessor: "title"},
		{Label: "FILE", Accessor: "file"},
		{Label: "CATEGORY", Accessor: "category.name"},
	}
}

// Checkbox enables bulk selection of gallery media.
func (*GalleryImage) Checkbox() bool {
	return true
}
