package model1

// TableData is an immutable snapshot of a table presenter state.
type TableData struct {
	Columns    Columns
	Actions    Actions
	Rows       Rows
	Keys       []string
	Selected   map[string]struct{}
	Checkbox   bool
	Page       int
	TotalPages int
	Total      int
	Search     string
	Loading    bool
	Err        error
}

// NewTableData returns an empty snapshot.
func NewTableData(cols Columns) *TableData {
	return &TableData{
		Columns:    cols,
		Page:       1,
		TotalPages: 1,
		Selected:   make(map[string]struct{}),
	}
}

// Empty returns true if no rows are loaded.
func (t *TableData) Empty() bool {
	return len(t.Rows) == 0
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	return len(t.Rows)
}

// HasError returns true if the last load failed.
func (t *TableData) HasError() bool {
	return t.Err != nil
}

// CanPrev reports whether the previous page control is enabled.
func (t *TableData) CanPrev() bool {
	return CanPrev(t.Page)
}

// CanNext reports whether the next page control is enabled.
func (t *TableData) CanNext() bool {
	return CanNext(t.Page, t.TotalPages)
}

// IsSelected returns true if row i is selected.
func (t *TableData) IsSelected(i int) bool {
	if i < 0 || i >= len(t.Keys) {
		return false
	}
	_, ok := t.Selected[t.Keys[i]]
	return ok
}

// SelectedCount returns the number of selected rows.
func (t *TableData) SelectedCount() int {
	return len(t.Selected)
}

// ColumnCount returns the number of rendered columns, checkbox and actions
// included.
func (t *TableData) ColumnCount() int {
	n := len(t.Columns)
	if t.Checkbox {
		n++
	}
	if len(t.Actions) > 0 {
		n++
	}
	return n
}
