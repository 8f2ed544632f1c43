package render

import (
	"path"

	"github.com/derailed/tcell/v2"
	gtcell "github.com/gdamore/tcell/v2"

	"github.com/govportal/portalctl/internal/model1"
)

// Decorated is a cell ready for the terminal.
type Decorated struct {
	Text  string
	Color tcell.Color
	Cell  model1.Cell
}

// Decorate classifies a row value for col and renders it as glyph-prefixed,
// width-bounded text with its kind color.
func Decorate(row model1.Row, col model1.Column, baseURL string) Decorated {
	c := model1.Classify(row.Get(col.Accessor), col.Kind, baseURL)

	return Decorated{
		Text:  model1.Truncate(CellLabel(c), MaxCellWidth),
		Color: Color(model1.KindColor(c.Kind)),
		Cell:  c,
	}
}

// CellLabel returns the display label of a classified cell. Media cells show
// their file name behind a kind glyph.
func CellLabel(c model1.Cell) string {
	switch c.Kind {
	case model1.KindEmpty:
		return model1.NAValue
	case model1.KindImage:
		return ImageGlyph + " " + path.Base(c.Text)
	case model1.KindVideo:
		return VideoGlyph + " " + path.Base(c.Text)
	case model1.KindAudio:
		return AudioGlyph + " " + path.Base(c.Text)
	case model1.KindDocument:
		return DocGlyph + " " + path.Base(c.Text)
	case model1.KindStructured:
		return StructGlyph + " " + c.Text
	default:
		return c.Text
	}
}

// Color converts a palette color for the terminal widgets.
func Color(c gtcell.Color) tcell.Color {
	if c == gtcell.ColorDefault || !c.Valid() {
		return tcell.ColorDefault
	}
	hex := c.Hex()
	if hex < 0 {
		return tcell.ColorDefault
	}

	return tcell.NewHexColor(hex)
}
