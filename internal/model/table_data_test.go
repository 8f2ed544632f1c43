package model

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/portalctl/internal/model1"
)

var testCols = model1.Columns{
	{Label: "ID", Accessor: "id"},
	{Label: "Name", Accessor: "name"},
}

func TestTableDataNew(t *testing.T) {
	_, err := NewTableData(nil, testCols)
	assert.ErrorIs(t, err, ErrNoFetcher)

	_, err = NewTableData(newFetcher(nil).fetch, nil)
	assert.ErrorIs(t, err, ErrNoColumns)

	td, err := NewTableData(newFetcher(nil).fetch, testCols)
	require.NoError(t, err)
	assert.True(t, td.IsNavigate())
	assert.True(t, td.IsSearch())
	assert.True(t, td.IsExport())
	assert.False(t, td.HasCheckbox())
	assert.Equal(t, model1.DefaultLimit, td.Limit())
}

func TestTableDataLoaded(t *testing.T) {
	f := newFetcher(model1.Rows{
		{"id": float64(1), "name": "Alpha"},
		{"id": float64(2), "name": "Beta"},
	})
	td, l := startTable(t, f)

	snap := td.Peek()
	assert.Equal(t, 2, snap.RowCount())
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 1, snap.TotalPages)
	assert.False(t, snap.CanPrev())
	assert.False(t, snap.CanNext())
	assert.Nil(t, snap.Err)
	assert.Equal(t, &model1.Query{Page: 1, Limit: model1.DefaultLimit}, f.lastCall())
	assert.Equal(t, 1, l.count("loading"))
	assert.Equal(t, 1, l.count("changed"))
}

func TestTableDataNoData(t *testing.T) {
	td, l := startTable(t, newFetcher(model1.Rows{}))

	assert.True(t, td.Peek().Empty())
	assert.Equal(t, 1, l.count("nodata"))
	assert.Equal(t, 0, l.count("changed"))
}

func TestTableDataSearchDebounced(t *testing.T) {
	f := newFetcher(makeRows(3))
	td, err := NewTableData(f.fetch, testCols, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	defer td.Stop()

	for _, s := range []string{"b", "be", "bet", "beta"} {
		assert.True(t, td.SetSearch(s))
		assert.Equal(t, 1, td.Peek().Page)
	}
	assert.False(t, td.SetSearch("beta"))

	require.Eventually(t, func() bool { return f.callCount() == 2 }, time.Second, 5*time.Millisecond)
	td.Wait()
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, 2, f.callCount())
	assert.Equal(t, &model1.Query{Page: 1, Search: "beta", Limit: model1.DefaultLimit}, f.lastCall())
}

func TestTableDataSearchResetsPage(t *testing.T) {
	f := newFetcher(makeRows(35))
	td, _ := startTable(t, f)

	assert.True(t, td.GoTo(3))
	td.Wait()
	assert.Equal(t, 3, td.Peek().Page)
	assert.True(t, td.Peek().CanPrev())

	td.SetSearch("row")
	td.Wait()
	assert.Equal(t, 1, td.Peek().Page)
	assert.Equal(t, &model1.Query{Page: 1, Search: "row", Limit: model1.DefaultLimit}, f.lastCall())
}

func TestTableDataNavigation(t *testing.T) {
	f := newFetcher(makeRows(25))
	td, _ := startTable(t, f)

	assert.False(t, td.PrevPage())
	assert.True(t, td.NextPage())
	td.Wait()
	assert.True(t, td.NextPage())
	td.Wait()
	assert.False(t, td.NextPage())

	snap := td.Peek()
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Equal(t, 5, snap.RowCount())
	assert.False(t, snap.CanNext())

	assert.True(t, td.GoTo(-4))
	td.Wait()
	assert.Equal(t, 1, td.Peek().Page)
	assert.Equal(t, 4, f.callCount())
}

func TestTableDataFailureKeepsRows(t *testing.T) {
	f := newFetcher(makeRows(3))
	td, l := startTable(t, f)

	boom := errors.New("boom")
	f.setErr(boom)
	td.Refresh()
	td.Wait()

	snap := td.Peek()
	assert.Equal(t, 3, snap.RowCount())
	require.Error(t, snap.Err)
	assert.ErrorIs(t, snap.Err, boom)
	var fe *FetchError
	require.ErrorAs(t, snap.Err, &fe)
	assert.Equal(t, 1, fe.Query.Page)
	assert.Equal(t, 1, l.count("failed"))

	f.setErr(nil)
	td.Retry()
	td.Wait()
	assert.Nil(t, td.Peek().Err)
	assert.Equal(t, 3, td.Peek().RowCount())
}

func TestTableDataFirstLoadFailure(t *testing.T) {
	f := newFetcher(nil)
	f.setErr(errors.New("offline"))
	td, l := startTable(t, f)

	snap := td.Peek()
	assert.True(t, snap.Empty())
	assert.True(t, snap.HasError())
	assert.False(t, snap.Loading)
	assert.Equal(t, 1, l.count("failed"))
}

func TestTableDataFetchPanic(t *testing.T) {
	td, err := NewTableData(func(context.Context, *model1.Query) (model1.Page[model1.Row], error) {
		panic("kaboom")
	}, testCols, WithDebounce(0))
	require.NoError(t, err)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	td.Stop()

	assert.ErrorContains(t, td.Peek().Err, "kaboom")
}

func TestTableDataStaleResponse(t *testing.T) {
	gate := newGatedFetcher()
	td, err := NewTableData(gate.fetch, testCols, WithDebounce(0))
	require.NoError(t, err)
	defer td.Stop()

	require.NoError(t, td.Start(context.Background()))
	first := <-gate.started
	td.Refresh()
	second := <-gate.started

	second <- model1.Page[model1.Row]{Data: model1.Rows{{"id": "new"}}, Total: 1}
	require.Eventually(t, func() bool { return td.Peek().RowCount() == 1 }, time.Second, 5*time.Millisecond)

	first <- model1.Page[model1.Row]{Data: model1.Rows{{"id": "old"}, {"id": "old2"}}, Total: 2}
	td.Wait()

	snap := td.Peek()
	require.Equal(t, 1, snap.RowCount())
	assert.Equal(t, "new", snap.Rows[0]["id"])
}

func TestTableDataStopDropsResponse(t *testing.T) {
	gate := newGatedFetcher()
	td, err := NewTableData(gate.fetch, testCols, WithDebounce(0))
	require.NoError(t, err)

	require.NoError(t, td.Start(context.Background()))
	first := <-gate.started
	td.Stop()

	assert.Error(t, gate.lastCtx().Err())
	first <- model1.Page[model1.Row]{Data: model1.Rows{{"id": 1}}, Total: 1}
	td.Wait()

	assert.True(t, td.Peek().Empty())
	assert.ErrorIs(t, td.Start(context.Background()), ErrStopped)
	assert.False(t, td.NextPage())
}

func TestTableDataClampAfterShrink(t *testing.T) {
	f := newFetcher(makeRows(35))
	td, _ := startTable(t, f)

	assert.True(t, td.GoTo(4))
	td.Wait()
	assert.Equal(t, 4, td.Peek().Page)

	f.setRows(makeRows(12))
	td.Refresh()
	td.Wait()

	snap := td.Peek()
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Equal(t, 2, snap.RowCount())
	assert.Equal(t, &model1.Query{Page: 2, Limit: model1.DefaultLimit}, f.lastCall())
}

func TestTableDataStartAt(t *testing.T) {
	uu := map[string]struct {
		rows         int
		page         int
		search       string
		first, last  *model1.Query
		ePage, eRows int
	}{
		"restored-page": {
			rows:  50,
			page:  3,
			first: &model1.Query{Page: 3, Limit: model1.DefaultLimit},
			last:  &model1.Query{Page: 3, Limit: model1.DefaultLimit},
			ePage: 3,
			eRows: 10,
		},
		"past-the-end": {
			rows:  25,
			page:  9,
			first: &model1.Query{Page: 9, Limit: model1.DefaultLimit},
			last:  &model1.Query{Page: 3, Limit: model1.DefaultLimit},
			ePage: 3,
			eRows: 5,
		},
		"restored-search": {
			rows:   12,
			page:   1,
			search: "row1",
			first:  &model1.Query{Page: 1, Search: "row1", Limit: model1.DefaultLimit},
			last:   &model1.Query{Page: 1, Search: "row1", Limit: model1.DefaultLimit},
			ePage:  1,
			eRows:  10,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			f := newFetcher(makeRows(u.rows))
			td, err := NewTableData(f.fetch, testCols, WithDebounce(time.Hour))
			require.NoError(t, err)
			require.NoError(t, td.StartAt(context.Background(), u.page, u.search))
			td.Wait()
			t.Cleanup(td.Stop)

			f.mx.Lock()
			first := f.calls[0]
			f.mx.Unlock()
			assert.Equal(t, u.first, first)
			assert.Equal(t, u.last, f.lastCall())
			snap := td.Peek()
			assert.Equal(t, u.ePage, snap.Page)
			assert.Equal(t, u.search, snap.Search)
			assert.Equal(t, u.eRows, snap.RowCount())
		})
	}
}

func TestTableDataStartAtGated(t *testing.T) {
	g := newGatedFetcher()
	td, err := NewTableData(g.fetch, testCols, WithDebounce(0))
	require.NoError(t, err)
	require.NoError(t, td.StartAt(context.Background(), 3, ""))
	t.Cleanup(td.Stop)

	reply := <-g.started
	reply <- model1.Page[model1.Row]{Data: makeRows(10), Total: 50}
	td.Wait()

	snap := td.Peek()
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, 5, snap.TotalPages)
}

func TestTableDataSelection(t *testing.T) {
	var (
		mx       sync.Mutex
		selected []model1.Rows
	)
	f := newFetcher(makeRows(15))
	td, err := NewTableData(f.fetch, testCols,
		WithCheckbox(true),
		WithDebounce(0),
		WithSelectionListener(func(rr model1.Rows) {
			mx.Lock()
			defer mx.Unlock()
			selected = append(selected, rr)
		}),
	)
	require.NoError(t, err)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	defer td.Stop()

	assert.True(t, td.Toggle(2))
	assert.True(t, td.Toggle(4))
	assert.False(t, td.Toggle(42))
	assert.True(t, td.IsSelected(2))
	assert.Equal(t, 2, td.Peek().SelectedCount())

	rr := td.SelectedRows()
	require.Len(t, rr, 2)
	assert.Equal(t, "row2", rr[0]["name"])
	assert.Equal(t, "row4", rr[1]["name"])

	td.Toggle(2)
	assert.False(t, td.IsSelected(2))

	td.SelectAll()
	assert.Len(t, td.SelectedRows(), model1.DefaultLimit)

	td.NextPage()
	td.Wait()
	assert.Empty(t, td.SelectedRows())

	mx.Lock()
	defer mx.Unlock()
	require.Len(t, selected, 5)
	assert.Len(t, selected[3], model1.DefaultLimit)
	assert.Empty(t, selected[4])
}

func TestTableDataSelectionByKey(t *testing.T) {
	uu := map[string]struct {
		idField string
		rows    model1.Rows
		e       []string
	}{
		"by-id": {
			idField: "id",
			rows:    model1.Rows{{"id": "a"}, {"id": "b"}},
			e:       []string{"id:a", "id:b"},
		},
		"by-index": {
			rows: model1.Rows{{"id": "a"}, {"id": "b"}},
			e:    []string{"idx:0", "idx:1"},
		},
		"missing-id": {
			idField: "id",
			rows:    model1.Rows{{"name": "a"}, {"name": "a"}},
			e:       []string{"idx:0", "idx:1"},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			f := newFetcher(u.rows)
			td, err := NewTableData(f.fetch, testCols, WithCheckbox(true), WithIDField(u.idField), WithDebounce(0))
			require.NoError(t, err)
			require.NoError(t, td.Start(context.Background()))
			td.Wait()
			defer td.Stop()

			td.Toggle(0)
			snap := td.Peek()
			assert.Equal(t, u.e, snap.Keys)
			assert.True(t, snap.IsSelected(0))
			assert.False(t, snap.IsSelected(1))
		})
	}
}

func TestTableDataCheckboxOff(t *testing.T) {
	td, _ := startTable(t, newFetcher(makeRows(3)))

	assert.False(t, td.Toggle(0))
	td.SelectAll()
	assert.Empty(t, td.SelectedRows())
}

func TestTableDataExport(t *testing.T) {
	f := newFetcher(makeRows(3))
	td, err := NewTableData(f.fetch, testCols,
		WithCheckbox(true),
		WithActions(model1.Actions{{Label: "Edit"}}),
		WithDebounce(0),
	)
	require.NoError(t, err)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	defer td.Stop()
	td.Toggle(1)

	var buff bytes.Buffer
	require.NoError(t, td.Export(&buff))

	lines := strings.Split(buff.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"Selected","ID","Name","Actions"`, lines[0])
	assert.Equal(t, `"No","0","row0",""`, lines[1])
	assert.Equal(t, `"Yes","1","row1",""`, lines[2])

	buff.Reset()
	require.NoError(t, td.PrintHTML(&buff, "Rows", ""))
	assert.Contains(t, buff.String(), "row2")
}

func TestTableDataExportDisabled(t *testing.T) {
	td, err := NewTableData(newFetcher(nil).fetch, testCols, WithExport(false))
	require.NoError(t, err)

	assert.ErrorIs(t, td.Export(&bytes.Buffer{}), ErrExportDisabled)
	assert.ErrorIs(t, td.PrintHTML(&bytes.Buffer{}, "", ""), ErrExportDisabled)
}

func TestTableDataSearchDisabled(t *testing.T) {
	f := newFetcher(makeRows(25))
	td, err := NewTableData(f.fetch, testCols, WithSearch(false), WithDebounce(0))
	require.NoError(t, err)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	defer td.Stop()

	assert.Nil(t, f.lastCall())
	assert.Equal(t, model1.UnboundedLimit, td.Limit())
	assert.False(t, td.SetSearch("x"))

	snap := td.Peek()
	assert.Equal(t, 25, snap.RowCount())
	assert.Equal(t, 1, snap.TotalPages)
}

func TestTableDataExternalLoading(t *testing.T) {
	var busy bool
	f := newFetcher(makeRows(1))
	td, err := NewTableData(f.fetch, testCols, WithLoading(func() bool { return busy }), WithDebounce(0))
	require.NoError(t, err)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	defer td.Stop()

	assert.False(t, td.IsLoading())
	busy = true
	assert.True(t, td.IsLoading())
	assert.True(t, td.Peek().Loading)
}

func TestTableDataNotify(t *testing.T) {
	var busy atomic.Bool
	f := newFetcher(makeRows(3))
	td, err := NewTableData(f.fetch, testCols, WithLoading(busy.Load), WithDebounce(0))
	require.NoError(t, err)
	l := new(tableRecorder)
	td.AddListener(l)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	defer td.Stop()
	loading, changed := l.count("loading"), l.count("changed")

	busy.Store(true)
	td.Notify()
	assert.Equal(t, loading+1, l.count("loading"))

	busy.Store(false)
	td.Notify()
	assert.Equal(t, changed+1, l.count("changed"))
	assert.Equal(t, 3, td.Peek().RowCount())
}

func TestTableDataRemoveListener(t *testing.T) {
	f := newFetcher(makeRows(1))
	td, err := NewTableData(f.fetch, testCols, WithDebounce(0))
	require.NoError(t, err)
	l := new(tableRecorder)
	td.AddListener(l)
	td.RemoveListener(l)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	td.Stop()

	assert.Equal(t, 0, l.count("loading")+l.count("changed"))
}

// Helpers...

func startTable(t *testing.T, f *fetcher) (*TableData, *tableRecorder) {
	t.Helper()

	td, err := NewTableData(f.fetch, testCols, WithDebounce(0))
	require.NoError(t, err)
	l := new(tableRecorder)
	td.AddListener(l)
	require.NoError(t, td.Start(context.Background()))
	td.Wait()
	t.Cleanup(td.Stop)

	return td, l
}

func makeRows(n int) model1.Rows {
	rr := make(model1.Rows, 0, n)
	for i := range n {
		rr = append(rr, model1.Row{"id": float64(i), "name": "row" + string(rune('0'+i%10))})
	}
	return rr
}

type fetcher struct {
	mx    sync.Mutex
	rows  model1.Rows
	err   error
	calls []*model1.Query
}

func newFetcher(rows model1.Rows) *fetcher {
	return &fetcher{rows: rows}
}

func (f *fetcher) setRows(rr model1.Rows) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.rows = rr
}

func (f *fetcher) setErr(err error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.err = err
}

func (f *fetcher) callCount() int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return len(f.calls)
}

func (f *fetcher) lastCall() *model1.Query {
	f.mx.Lock()
	defer f.mx.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fetcher) fetch(_ context.Context, q *model1.Query) (model1.Page[model1.Row], error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if q == nil {
		f.calls = append(f.calls, nil)
	} else {
		c := *q
		f.calls = append(f.calls, &c)
	}
	if f.err != nil {
		return model1.Page[model1.Row]{}, f.err
	}
	if q == nil {
		return model1.Page[model1.Row]{Data: f.rows.Clone(), Total: len(f.rows)}, nil
	}
	start := min(q.Offset(), len(f.rows))
	end := min(start+q.Limit, len(f.rows))

	return model1.Page[model1.Row]{Data: f.rows[start:end].Clone(), Total: len(f.rows)}, nil
}

type gatedFetcher struct {
	mx      sync.Mutex
	ctxs    []context.Context
	started chan chan model1.Page[model1.Row]
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{started: make(chan chan model1.Page[model1.Row], 10)}
}

func (g *gatedFetcher) lastCtx() context.Context {
	g.mx.Lock()
	defer g.mx.Unlock()
	return g.ctxs[len(g.ctxs)-1]
}

func (g *gatedFetcher) fetch(ctx context.Context, _ *model1.Query) (model1.Page[model1.Row], error) {
	g.mx.Lock()
	g.ctxs = append(g.ctxs, ctx)
	g.mx.Unlock()

	c := make(chan model1.Page[model1.Row], 1)
	g.started <- c

	return <-c, nil
}

type tableRecorder struct {
	mx     sync.Mutex
	counts map[string]int
	last   *model1.TableData
}

func (r *tableRecorder) record(kind string, td *model1.TableData) {
	r.mx.Lock()
	defer r.mx.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[kind]++
	r.last = td
}

func (r *tableRecorder) count(kind string) int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.counts[kind]
}

func (r *tableRecorder) TableLoading(td *model1.TableData)     { r.record("loading", td) }
func (r *tableRecorder) TableNoData(td *model1.TableData)      { r.record("nodata", td) }
func (r *tableRecorder) TableDataChanged(td *model1.TableData) { r.record("changed", td) }
func (r *tableRecorder) TableLoadFailed(td *model1.TableData)  { r.record("failed", td) }
