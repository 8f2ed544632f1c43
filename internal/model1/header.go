package model1

import "fmt"

// Column describes one table column.
type Column struct {
	Label    string
	Accessor string

	// Kind declares the content kind of the column. KindAuto sniffs values.
	Kind CellKind

	// Align is the tview alignment used by the terminal table.
	Align int
}

func (c Column) String() string {
	return fmt.Sprintf("%s [%s::%s]", c.Label, c.Accessor, c.Kind)
}

// Columns represents a table header.
type Columns []Column

// Labels returns the column labels in order.
func (cc Columns) Labels() []string {
	ll := make([]string, 0, len(cc))
	for _, c := range cc {
		ll = append(ll, c.Label)
	}
	return ll
}

// IndexOf returns the index of the column with the given accessor.
func (cc Columns) IndexOf(accessor string) (int, bool) {
	for i, c := range cc {
		if c.Accessor == accessor {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy of the columns.
func (cc Columns) Clone() Columns {
	out := make(Columns, len(cc))
	copy(out, cc)
	return out
}

// Action describes a per-row action.
type Action struct {
	Label     string
	Key       rune
	Dangerous bool
	OnClick   func(Row)
}

// Actions represents a collection of row actions.
type Actions []Action

// Labels returns the action labels.
func (aa Actions) Labels() []string {
	ll := make([]string, 0, len(aa))
	for _, a := range aa {
		ll = append(ll, a.Label)
	}
	return ll
}
