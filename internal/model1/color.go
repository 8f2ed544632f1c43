package model1

import "github.com/gdamore/tcell/v2"

var (
	// StdColor default cell color.
	StdColor tcell.Color = tcell.ColorWhite

	// EmptyColor placeholder cell color.
	EmptyColor tcell.Color = tcell.ColorGray

	// ImageColor image cell color.
	ImageColor tcell.Color = tcell.ColorAqua

	// VideoColor video cell color.
	VideoColor tcell.Color = tcell.ColorFuchsia

	// AudioColor audio cell color.
	AudioColor tcell.Color = tcell.ColorYellow

	// DocColor document link color.
	DocColor tcell.Color = tcell.ColorBlue

	// StructColor structured value color.
	StructColor tcell.Color = tcell.ColorDarkCyan

	// ErrColor error row color.
	ErrColor tcell.Color = tcell.ColorRed

	// SelectedColor selected row color.
	SelectedColor tcell.Color = tcell.ColorGreen
)

// KindColor returns the display color for a cell kind.
func KindColor(k CellKind) tcell.Color {
	switch k {
	case KindEmpty:
		return EmptyColor
	case KindImage:
		return ImageColor
	case KindVideo:
		return VideoColor
	case KindAudio:
		return AudioColor
	case KindDocument:
		return DocColor
	case KindStructured:
		return StructColor
	default:
		return StdColor
	}
}
