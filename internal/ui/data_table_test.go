package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/portalctl/internal/model"
	"github.com/govportal/portalctl/internal/model1"
)

var tableCols = model1.Columns{
	{Label: "ID", Accessor: "id"},
	{Label: "Title", Accessor: "title"},
}

type source struct {
	rows model1.Rows
	err  error
	mx   sync.Mutex
}

func newSource(n int) *source {
	rr := make(model1.Rows, 0, n)
	for i := 1; i <= n; i++ {
		rr = append(rr, model1.Row{"id": float64(i), "title": fmt.Sprintf("Item %d", i)})
	}

	return &source{rows: rr}
}

func (s *source) setErr(err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.err = err
}

func (s *source) fetch(_ context.Context, q *model1.Query) (model1.Page[model1.Row], error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.err != nil {
		return model1.Page[model1.Row]{}, s.err
	}
	start := min(q.Offset(), len(s.rows))
	end := min(start+q.Limit, len(s.rows))

	return model1.Page[model1.Row]{Data: s.rows[start:end], Total: len(s.rows)}, nil
}

func newTestTable(t *testing.T, s *source, opts ...model.TableOption) (*DataTable, *model.TableData, *PageBar) {
	t.Helper()

	m, err := model.NewTableData(s.fetch, tableCols, append([]model.TableOption{model.WithDebounce(0)}, opts...)...)
	require.NoError(t, err)
	dt, bar := NewDataTable("menu"), NewPageBar()
	dt.SetPageBar(bar)
	require.NoError(t, dt.Init(context.Background()))
	dt.SetModel(m)
	require.NoError(t, m.Start(context.Background()))
	m.Wait()
	t.Cleanup(m.Stop)

	return dt, m, bar
}

func press(dt *DataTable, m *model.TableData, evt *tcell.EventKey) {
	dt.keyboard(evt)
	m.Wait()
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDataTableRender(t *testing.T) {
	var (
		mx      sync.Mutex
		clicked model1.Row
	)
	edit := model1.Action{Label: "Edit", Key: 'e', OnClick: func(r model1.Row) {
		mx.Lock()
		defer mx.Unlock()
		clicked = r
	}}
	del := model1.Action{Label: "Delete", Key: 'D', Dangerous: true, OnClick: func(model1.Row) {}}
	dt, m, bar := newTestTable(t, newSource(2),
		model.WithCheckbox(true),
		model.WithActions(model1.Actions{edit, del}),
	)

	assert.Equal(t, tview.Escape(checkboxLabel), dt.GetCell(0, 0).Text)
	assert.Equal(t, "ID", dt.GetCell(0, 1).Text)
	assert.Equal(t, "TITLE", dt.GetCell(0, 2).Text)
	assert.Equal(t, actionsLabel, dt.GetCell(0, 3).Text)

	assert.Equal(t, 3, dt.GetRowCount())
	assert.Equal(t, tview.Escape(uncheckedMark), dt.GetCell(1, 0).Text)
	assert.Equal(t, "1", dt.GetCell(1, 1).Text)
	assert.Equal(t, "Item 2", dt.GetCell(2, 2).Text)
	assert.Equal(t, "<e>Edit <D>Delete", dt.GetCell(1, 3).Text)
	assert.Equal(t, " menu[2] ", dt.Title())
	assert.Equal(t, "◀ Prev  Page 1 of 1  Next ▶", bar.GetText(true))

	a, ok := dt.Actions().Get(KeyShiftD)
	require.True(t, ok)
	assert.True(t, a.Opts.Dangerous)

	press(dt, m, runeKey('e'))
	assert.Eventually(t, func() bool {
		mx.Lock()
		defer mx.Unlock()
		return clicked != nil && clicked["id"] == float64(1)
	}, time.Second, 10*time.Millisecond)
}

func TestDataTableNoData(t *testing.T) {
	dt, _, _ := newTestTable(t, newSource(0))

	assert.Equal(t, 2, dt.GetRowCount())
	c := dt.GetCell(1, 0)
	assert.Equal(t, NoDataMsg, c.Text)
	assert.True(t, c.NotSelectable)
	_, ok := dt.SelectedRow()
	assert.False(t, ok)
}

func TestDataTableLoading(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, _ *model1.Query) (model1.Page[model1.Row], error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return model1.Page[model1.Row]{Data: model1.Rows{{"id": 1, "title": "A"}}, Total: 1}, nil
	}
	m, err := model.NewTableData(fetch, tableCols, model.WithCheckbox(true))
	require.NoError(t, err)
	dt := NewDataTable("slider")
	require.NoError(t, dt.Init(context.Background()))
	dt.SetModel(m)
	require.NoError(t, m.Start(context.Background()))

	close(release)
	m.Wait()
	defer m.Stop()
	assert.Equal(t, 2, dt.GetRowCount())
	assert.Equal(t, "A", dt.GetCell(1, 2).Text)
}

func TestDataTableSkeleton(t *testing.T) {
	dt := NewDataTable("faq")
	td := model1.NewTableData(tableCols)
	td.Loading = true
	td.Checkbox = true
	dt.TableLoading(td)

	assert.Equal(t, 1+model.SkeletonRows, dt.GetRowCount())
	assert.Equal(t, 3, dt.GetColumnCount())
	for r := 1; r <= model.SkeletonRows; r++ {
		assert.Equal(t, skeletonCell, dt.GetCell(r, 1).Text)
	}
	_, ok := dt.SelectedIndex()
	assert.False(t, ok)
}

func TestDataTableLoadFailed(t *testing.T) {
	s := newSource(3)
	dt, m, _ := newTestTable(t, s)

	s.setErr(errors.New("boom"))
	press(dt, m, runeKey('r'))

	require.Equal(t, 5, dt.GetRowCount())
	msg := dt.GetCell(1, 0)
	assert.Contains(t, msg.Text, "boom")
	assert.Contains(t, msg.Text, RetryHint)
	assert.Equal(t, tcell.ColorRed, msg.Color)
	assert.Equal(t, "Item 1", dt.GetCell(2, 1).Text)

	dt.Select(3, 0)
	row, ok := dt.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, float64(2), row["id"])

	s.setErr(nil)
	press(dt, m, runeKey('r'))
	assert.Equal(t, 4, dt.GetRowCount())
	assert.Equal(t, "1", dt.GetCell(1, 0).Text)
}

func TestDataTableSelection(t *testing.T) {
	var (
		mx  sync.Mutex
		sel model1.Rows
	)
	dt, m, _ := newTestTable(t, newSource(3),
		model.WithCheckbox(true),
		model.WithSelectionListener(func(rr model1.Rows) {
			mx.Lock()
			defer mx.Unlock()
			sel = rr
		}),
	)

	press(dt, m, runeKey(' '))
	assert.Equal(t, tview.Escape(checkedMark), dt.GetCell(1, 0).Text)
	assert.Equal(t, " menu[3] (1 selected) ", dt.Title())
	row, _ := dt.GetSelection()
	assert.Equal(t, 2, row)

	press(dt, m, tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	assert.Len(t, m.SelectedRows(), 3)

	press(dt, m, tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	assert.Empty(t, m.SelectedRows())

	mx.Lock()
	defer mx.Unlock()
	assert.Empty(t, sel)
}

func TestDataTablePaging(t *testing.T) {
	dt, m, bar := newTestTable(t, newSource(15))

	assert.Equal(t, 11, dt.GetRowCount())
	press(dt, m, runeKey(']'))
	assert.Equal(t, 6, dt.GetRowCount())
	assert.Equal(t, "11", dt.GetCell(1, 0).Text)
	assert.Equal(t, "◀ Prev  Page 2 of 2  Next ▶", bar.GetText(true))

	press(dt, m, runeKey(']'))
	assert.Equal(t, 2, m.Peek().Page)

	press(dt, m, runeKey('['))
	assert.Equal(t, 1, m.Peek().Page)
	assert.Equal(t, "1", dt.GetCell(1, 0).Text)
}

func TestDataTableSearchTitle(t *testing.T) {
	dt, m, _ := newTestTable(t, newSource(3))

	require.True(t, m.SetSearch("item"))
	m.Wait()
	assert.Equal(t, " menu[3] </item> ", dt.Title())
}

func TestDataTableNavigation(t *testing.T) {
	dt, m, _ := newTestTable(t, newSource(4))

	press(dt, m, runeKey('G'))
	row, _ := dt.GetSelection()
	assert.Equal(t, 4, row)

	press(dt, m, runeKey('k'))
	row, _ = dt.GetSelection()
	assert.Equal(t, 3, row)

	press(dt, m, runeKey('g'))
	row, _ = dt.GetSelection()
	assert.Equal(t, 1, row)
}
