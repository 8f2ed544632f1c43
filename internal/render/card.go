package render

import (
	"fmt"
	"strings"

	"github.com/govportal/portalctl/internal/model1"
)

// GalleryItem is a gallery card.
type GalleryItem struct {
	ID       string
	Title    string
	Category string
	Media    model1.Cell
}

// NewGalleryItem decodes a gallery row.
func NewGalleryItem(baseURL string) func(model1.Row) GalleryItem {
	return func(r model1.Row) GalleryItem {
		return GalleryItem{
			ID:       model1.CellText(r.Get("id")),
			Title:    model1.CellText(r.Get("title")),
			Category: model1.CellText(r.Get("category.name")),
			Media:    model1.Classify(r.Get("file"), model1.KindAuto, baseURL),
		}
	}
}

// Card renders the item as tview text.
func (g GalleryItem) Card() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n", model1.Truncate(g.Title, MaxCellWidth))
	fmt.Fprintf(&b, "[%s]%s[-]\n", kindTag(g.Media.Kind), CellLabel(g.Media))
	if g.Category != "" {
		fmt.Fprintf(&b, "[gray]%s[-]\n", g.Category)
	}
	if g.Media.URL != "" {
		fmt.Fprintf(&b, "[gray]%s[-]", model1.Truncate(g.Media.URL, MaxCellWidth))
	}

	return b.String()
}

// NoticeItem is a notice or opportunity card.
type NoticeItem struct {
	ID    string
	Title string
	Date  string
	File  model1.Cell
}

// NewNoticeItem decodes a notice row. dateField and fileField name the
// fields carrying the date and the attachment.
func NewNoticeItem(baseURL, dateField, fileField string) func(model1.Row) NoticeItem {
	return func(r model1.Row) NoticeItem {
		return NoticeItem{
			ID:    model1.CellText(r.Get("id")),
			Title: model1.CellText(r.Get("title")),
			Date:  model1.CellText(r.Get(dateField)),
			File:  model1.Classify(r.Get(fileField), model1.KindAuto, baseURL),
		}
	}
}

// Card renders the item as tview text.
func (n NoticeItem) Card() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n", model1.Truncate(n.Title, MaxCellWidth))
	date := n.Date
	if date == "" {
		date = model1.NAValue
	}
	fmt.Fprintf(&b, "[gray]%s[-]\n", date)
	if n.File.Kind != model1.KindEmpty {
		fmt.Fprintf(&b, "[%s]%s[-]", kindTag(n.File.Kind), CellLabel(n.File))
	}

	return b.String()
}

func kindTag(k model1.CellKind) string {
	switch k {
	case model1.KindImage:
		return "aqua"
	case model1.KindVideo:
		return "fuchsia"
	case model1.KindAudio:
		return "yellow"
	case model1.KindDocument:
		return "blue"
	case model1.KindEmpty:
		return "gray"
	default:
		return "white"
	}
}
