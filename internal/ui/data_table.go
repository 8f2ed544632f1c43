// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model"
	"github.com/govportal/portalctl/internal/model1"
	"github.com/govportal/portalctl/internal/render"
)

const (
	// NoDataMsg is shown when a page comes back empty.
	NoDataMsg = "No data found"

	// RetryHint follows a load failure message.
	RetryHint = "press <r> to retry"

	checkboxLabel = "[x]"
	checkedMark   = "[x]"
	uncheckedMark = "[ ]"
	actionsLabel  = "ACTIONS"
	skeletonCell  = "░░░░░░░░"
)

// DataTable renders a table presenter.
type DataTable struct {
	*tview.Table

	name      string
	baseURL   string
	model     *model.TableData
	actions   *KeyActions
	pageBar   *PageBar
	queue     QueueFunc
	data      *model1.TableData
	title     string
	rowOffset int
	mx        sync.RWMutex
}

// NewDataTable returns a new table widget.
func NewDataTable(name string) *DataTable {
	t := DataTable{
		Table:     tview.NewTable(),
		name:      name,
		actions:   NewKeyActions(),
		queue:     Immediate,
		rowOffset: 1,
	}
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetBorderColor(tcell.ColorLightSkyBlue)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetFixed(1, 0)
	t.SetSelectable(true, false)
	t.updateTitle(nil)

	return &t
}

// Init initializes the table.
func (t *DataTable) Init(context.Context) error {
	t.SetInputCapture(t.keyboard)
	t.bindKeys()

	return nil
}

// Name returns the table name.
func (t *DataTable) Name() string {
	return t.name
}

// SetQueue routes model notifications through the UI draw loop.
func (t *DataTable) SetQueue(q QueueFunc) {
	if q == nil {
		q = Immediate
	}
	t.queue = q
}

// SetBaseURL sets the base URL used to resolve media cells.
func (t *DataTable) SetBaseURL(u string) {
	t.baseURL = u
}

// SetPageBar attaches the page controls.
func (t *DataTable) SetPageBar(p *PageBar) {
	t.pageBar = p
}

// SetModel attaches a table model and renders its current state.
func (t *DataTable) SetModel(m *model.TableData) {
	t.mx.Lock()
	old := t.model
	t.model = m
	t.mx.Unlock()

	if old != nil {
		old.RemoveListener(t)
	}
	t.bindKeys()
	if m == nil {
		return
	}
	m.AddListener(t)
	t.render(m.Peek())
}

// GetModel returns the table model.
func (t *DataTable) GetModel() *model.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.model
}

// Actions returns the key actions.
func (t *DataTable) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints.
func (t *DataTable) Hints() MenuHints {
	return t.actions.Hints()
}

// Peek returns the last rendered snapshot.
func (t *DataTable) Peek() *model1.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.data
}

// SelectedIndex returns the page index of the selected row.
func (t *DataTable) SelectedIndex() (int, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.selectedIndexLocked()
}

func (t *DataTable) selectedIndexLocked() (int, bool) {
	if t.data == nil || t.data.Loading {
		return 0, false
	}
	row, _ := t.GetSelection()
	idx := row - t.rowOffset
	if idx < 0 || idx >= len(t.data.Rows) {
		return 0, false
	}

	return idx, true
}

// SelectedRow returns the selected row.
func (t *DataTable) SelectedRow() (model1.Row, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()

	idx, ok := t.selectedIndexLocked()
	if !ok {
		return nil, false
	}

	return t.data.Rows[idx], true
}

// TableLoading implements model.TableListener.
func (t *DataTable) TableLoading(td *model1.TableData) {
	t.queue(func() { t.render(td) })
}

// TableNoData implements model.TableListener.
func (t *DataTable) TableNoData(td *model1.TableData) {
	t.queue(func() { t.render(td) })
}

// TableDataChanged implements model.TableListener.
func (t *DataTable) TableDataChanged(td *model1.TableData) {
	t.queue(func() { t.render(td) })
}

// TableLoadFailed implements model.TableListener.
func (t *DataTable) TableLoadFailed(td *model1.TableData) {
	t.queue(func() { t.render(td) })
}

func (t *DataTable) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()
	first := t.firstRow()

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < rowCount-1 {
				t.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > first {
				t.Select(row-1, col)
			}
			return nil
		case 'g':
			t.Select(first, col)
			return nil
		case 'G':
			if rowCount > first {
				t.Select(rowCount-1, col)
			}
			return nil
		}
	}

	if a, ok := t.actions.Get(AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (t *DataTable) firstRow() int {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.rowOffset
}

func (t *DataTable) bindKeys() {
	t.actions.Clear()
	m := t.GetModel()
	if m == nil {
		return
	}

	t.actions.Add(KeyR, NewKeyAction("Retry/Refresh", t.retryCmd, true))
	if m.IsNavigate() {
		t.actions.Bulk(KeyMap{
			KeyLeftBracket:  NewKeyAction("Prev Page", t.prevCmd, true),
			KeyRightBracket: NewKeyAction("Next Page", t.nextCmd, true),
		})
	}
	if m.HasCheckbox() {
		t.actions.Bulk(KeyMap{
			KeySpace:       NewKeyAction("Toggle", t.toggleCmd, true),
			tcell.KeyCtrlA: NewKeyAction("Select All", t.selectAllCmd, true),
		})
	}
	for _, a := range m.Actions() {
		if a.Key == 0 || a.OnClick == nil {
			continue
		}
		t.actions.Add(tcell.Key(a.Key), NewKeyActionWithOpts(
			a.Label,
			t.rowActionCmd(a),
			ActionOpts{Visible: true, Dangerous: a.Dangerous},
		))
	}
}

func (t *DataTable) retryCmd(*tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	if m == nil {
		return nil
	}
	if td := t.Peek(); td != nil && td.HasError() {
		m.Retry()
		return nil
	}
	m.Refresh()

	return nil
}

func (t *DataTable) prevCmd(*tcell.EventKey) *tcell.EventKey {
	if m := t.GetModel(); m != nil {
		m.PrevPage()
	}

	return nil
}

func (t *DataTable) nextCmd(*tcell.EventKey) *tcell.EventKey {
	if m := t.GetModel(); m != nil {
		m.NextPage()
	}

	return nil
}

func (t *DataTable) toggleCmd(*tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	idx, ok := t.SelectedIndex()
	if m == nil || !ok {
		return nil
	}
	m.Toggle(idx)
	if row, col := t.GetSelection(); row < t.GetRowCount()-1 {
		t.Select(row+1, col)
	}

	return nil
}

func (t *DataTable) selectAllCmd(*tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	if m == nil {
		return nil
	}
	if td := m.Peek(); !td.Empty() && td.SelectedCount() == td.RowCount() {
		m.ClearSelection()
		return nil
	}
	m.SelectAll()

	return nil
}

func (t *DataTable) rowActionCmd(a model1.Action) ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		row, ok := t.SelectedRow()
		if !ok {
			return nil
		}
		go a.OnClick(row)

		return nil
	}
}

func (t *DataTable) render(td *model1.TableData) {
	if td == nil {
		return
	}

	t.mx.Lock()
	t.data = td
	t.rowOffset = 1
	if td.HasError() && !td.Loading {
		t.rowOffset = 2
	}
	offset := t.rowOffset
	t.mx.Unlock()

	prev, col := t.GetSelection()
	t.Clear()
	t.buildHeader(td)

	switch {
	case td.Loading:
		t.buildSkeleton(td)
	case td.HasError():
		t.showMessage(1, td, errorMessage(td.Err), tcell.ColorRed)
		t.buildRows(td, offset)
	case td.Empty():
		t.showMessage(1, td, NoDataMsg, tcell.ColorGray)
	default:
		t.buildRows(td, offset)
	}

	t.updateTitle(td)
	if t.pageBar != nil {
		t.pageBar.Update(td.Page, td.TotalPages)
	}

	if td.Loading || td.Empty() {
		t.Select(offset, col)
		return
	}
	last := offset + len(td.Rows) - 1
	t.Select(min(max(prev, offset), last), col)
}

func (t *DataTable) buildHeader(td *model1.TableData) {
	var col int
	if td.Checkbox {
		t.SetCell(0, col, headerCell(checkboxLabel, tview.AlignCenter))
		col++
	}
	for _, c := range td.Columns {
		t.SetCell(0, col, headerCell(strings.ToUpper(c.Label), c.Align))
		col++
	}
	if len(td.Actions) > 0 {
		t.SetCell(0, col, headerCell(actionsLabel, tview.AlignLeft))
	}
}

func headerCell(label string, align int) *tview.TableCell {
	c := tview.NewTableCell(tview.Escape(label))
	c.SetTextColor(tcell.ColorYellow)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetAttributes(tcell.AttrBold)
	c.SetAlign(align)
	c.SetExpansion(1)
	c.SetSelectable(false)

	return c
}

func (t *DataTable) buildSkeleton(td *model1.TableData) {
	cols := td.ColumnCount()
	for r := range model.SkeletonRows {
		for c := range cols {
			cell := tview.NewTableCell(skeletonCell)
			cell.SetTextColor(tcell.ColorDarkGray)
			cell.SetBackgroundColor(tcell.ColorDefault)
			cell.SetExpansion(1)
			cell.SetSelectable(false)
			t.SetCell(r+1, c, cell)
		}
	}
}

func (t *DataTable) buildRows(td *model1.TableData, offset int) {
	labels := actionLabels(td.Actions)
	for i, row := range td.Rows {
		r, col := i+offset, 0
		if td.Checkbox {
			mark := uncheckedMark
			if td.IsSelected(i) {
				mark = checkedMark
			}
			c := tview.NewTableCell(tview.Escape(mark))
			c.SetAlign(tview.AlignCenter)
			c.SetTextColor(tcell.ColorLightSkyBlue)
			c.SetBackgroundColor(tcell.ColorDefault)
			t.SetCell(r, col, c)
			col++
		}
		for _, column := range td.Columns {
			d := render.Decorate(row, column, t.baseURL)
			c := tview.NewTableCell(tview.Escape(d.Text))
			c.SetTextColor(d.Color)
			c.SetBackgroundColor(tcell.ColorDefault)
			c.SetAlign(column.Align)
			c.SetExpansion(1)
			c.SetReference(d.Cell)
			t.SetCell(r, col, c)
			col++
		}
		if labels != "" {
			c := tview.NewTableCell(labels)
			c.SetTextColor(tcell.ColorGray)
			c.SetBackgroundColor(tcell.ColorDefault)
			t.SetCell(r, col, c)
		}
		if td.IsSelected(i) {
			t.markRow(r)
		}
	}
}

func (t *DataTable) markRow(r int) {
	for c := range t.GetColumnCount() {
		if cell := t.GetCell(r, c); cell != nil {
			cell.SetAttributes(tcell.AttrBold)
			cell.SetTextColor(tcell.ColorAqua)
		}
	}
}

// showMessage renders a message row spanning the table width.
func (t *DataTable) showMessage(row int, td *model1.TableData, msg string, color tcell.Color) {
	cols := max(td.ColumnCount(), 1)
	cell := tview.NewTableCell(tview.Escape(msg))
	cell.SetTextColor(color)
	cell.SetBackgroundColor(tcell.ColorDefault)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	cell.SetExpansion(cols)
	t.SetCell(row, 0, cell)
	for c := 1; c < cols; c++ {
		pad := tview.NewTableCell("")
		pad.SetSelectable(false)
		pad.SetBackgroundColor(tcell.ColorDefault)
		t.SetCell(row, c, pad)
	}
}

// Title returns the current border title.
func (t *DataTable) Title() string {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.title
}

func (t *DataTable) updateTitle(td *model1.TableData) {
	if td == nil {
		t.setTitle(fmt.Sprintf(" %s ", tview.Escape(t.name)))
		return
	}
	title := fmt.Sprintf(" %s[%d] ", tview.Escape(t.name), td.Total)
	if td.Search != "" {
		title += fmt.Sprintf("</%s> ", tview.Escape(td.Search))
	}
	if n := td.SelectedCount(); n > 0 {
		title += fmt.Sprintf("(%d selected) ", n)
	}
	t.setTitle(title)
}

func (t *DataTable) setTitle(s string) {
	t.mx.Lock()
	t.title = s
	t.mx.Unlock()
	t.SetTitle(s)
}

func errorMessage(err error) string {
	return fmt.Sprintf("✗ %v  (%s)", err, RetryHint)
}

func actionLabels(aa model1.Actions) string {
	if len(aa) == 0 {
		return ""
	}
	ss := make([]string, 0, len(aa))
	for _, a := range aa {
		if a.Key == 0 {
			ss = append(ss, a.Label)
			continue
		}
		ss = append(ss, fmt.Sprintf("<%c>%s", a.Key, a.Label))
	}

	return strings.Join(ss, " ")
}
