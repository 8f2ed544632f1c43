package model

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/model1"
)

var (
	// ErrNoColumns is returned when a table is built without columns.
	ErrNoColumns = errors.New("table requires at least one column")

	// ErrNoFetcher is returned when a table is built without a fetch adapter.
	ErrNoFetcher = errors.New("table requires a fetch adapter")

	// ErrExportDisabled is returned when exporting a table that disallows it.
	ErrExportDisabled = errors.New("export is disabled for this table")
)

// TableOption configures a table model.
type TableOption func(*TableData)

// WithActions sets the per row actions.
func WithActions(aa model1.Actions) TableOption {
	return func(t *TableData) { t.actions = aa }
}

// WithNavigate toggles server side pagination.
func WithNavigate(b bool) TableOption {
	return func(t *TableData) { t.navigate = b }
}

// WithSearch toggles search driven queries.
func WithSearch(b bool) TableOption {
	return func(t *TableData) { t.search = b }
}

// WithExport toggles CSV export and print.
func WithExport(b bool) TableOption {
	return func(t *TableData) { t.export = b }
}

// WithCheckbox toggles row selection.
func WithCheckbox(b bool) TableOption {
	return func(t *TableData) { t.checkbox = b }
}

// WithIDField sets the row field keying selections. Blank keys by position.
func WithIDField(f string) TableOption {
	return func(t *TableData) { t.idField = f }
}

// WithLoading registers an external busy flag ORed with the fetch state.
func WithLoading(f func() bool) TableOption {
	return func(t *TableData) { t.loadingFn = f }
}

// WithSelectionListener registers a callback fired on selection changes.
func WithSelectionListener(f func(model1.Rows)) TableOption {
	return func(t *TableData) { t.onSelected = f }
}

// WithDebounce sets the search debounce delay.
func WithDebounce(d time.Duration) TableOption {
	return func(t *TableData) { t.debounce = d }
}

// WithLimit overrides the page size.
func WithLimit(n int) TableOption {
	return func(t *TableData) { t.limit = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) TableOption {
	return func(t *TableData) { t.log = l }
}

// TableData drives a paginated, searchable and selectable table.
type TableData struct {
	columns    model1.Columns
	actions    model1.Actions
	navigate   bool
	search     bool
	export     bool
	checkbox   bool
	idField    string
	limit      int
	debounce   time.Duration
	loadingFn  func() bool
	onSelected func(model1.Rows)
	log        *zap.Logger
	pager      *Pager[model1.Row]

	// notifyMx serializes state application and listener fan out.
	notifyMx  sync.Mutex
	mx        sync.RWMutex
	state     PagerState[model1.Row]
	selected  map[string]struct{}
	listeners []TableListener
}

// NewTableData returns a new table model.
func NewTableData(fetch FetchFunc[model1.Row], cols model1.Columns, opts ...TableOption) (*TableData, error) {
	if fetch == nil {
		return nil, ErrNoFetcher
	}
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}

	t := TableData{
		columns:  cols.Clone(),
		navigate: true,
		search:   true,
		export:   true,
		idField:  model1.DefaultIDField,
		debounce: DefaultDebounce,
		selected: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(&t)
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	t.pager = NewPager(fetch, PagerOptions{
		Navigate: t.navigate,
		Search:   t.search,
		Limit:    t.limit,
		Debounce: t.debounce,
		Log:      t.log,
	}, t.pagerChanged)
	t.state = t.pager.State()

	return &t, nil
}

// Columns returns the table columns.
func (t *TableData) Columns() model1.Columns {
	return t.columns
}

// Actions returns the row actions.
func (t *TableData) Actions() model1.Actions {
	return t.actions
}

// IsNavigate returns true if pagination is enabled.
func (t *TableData) IsNavigate() bool {
	return t.navigate
}

// IsSearch returns true if search is enabled.
func (t *TableData) IsSearch() bool {
	return t.search
}

// IsExport returns true if export and print are enabled.
func (t *TableData) IsExport() bool {
	return t.export
}

// HasCheckbox returns true if rows are selectable.
func (t *TableData) HasCheckbox() bool {
	return t.checkbox
}

// Limit returns the page size.
func (t *TableData) Limit() int {
	return t.pager.Limit()
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Start issues the initial fetch.
func (t *TableData) Start(ctx context.Context) error {
	return t.pager.Start(ctx)
}

// StartAt issues the initial fetch for a restored page and search.
func (t *TableData) StartAt(ctx context.Context, page int, search string) error {
	return t.pager.StartAt(ctx, page, search)
}

// Stop cancels pending fetches and debounced searches.
func (t *TableData) Stop() {
	t.pager.Stop()
}

// Wait blocks until in flight fetches have returned.
func (t *TableData) Wait() {
	t.pager.Wait()
}

// SetSearch updates the search term.
func (t *TableData) SetSearch(s string) bool {
	return t.pager.SetSearch(s)
}

// Search returns the current search term.
func (t *TableData) Search() string {
	return t.pager.Search()
}

// NextPage moves to the next page.
func (t *TableData) NextPage() bool {
	return t.pager.Next()
}

// PrevPage moves to the previous page.
func (t *TableData) PrevPage() bool {
	return t.pager.Prev()
}

// GoTo moves to the given page.
func (t *TableData) GoTo(n int) bool {
	return t.pager.GoTo(n)
}

// Refresh reloads the current page.
func (t *TableData) Refresh() {
	t.pager.Refresh()
}

// Retry reloads after a failure.
func (t *TableData) Retry() {
	t.pager.Retry()
}

// LastQuery returns the last issued query.
func (t *TableData) LastQuery() *model1.Query {
	return t.pager.LastQuery()
}

// IsLoading returns true while a fetch or an external mutation is running.
func (t *TableData) IsLoading() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.loadingLocked()
}

func (t *TableData) loadingLocked() bool {
	return t.state.Loading() || (t.loadingFn != nil && t.loadingFn())
}

// Peek returns a snapshot of the table.
func (t *TableData) Peek() *model1.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.snapshotLocked()
}

// RowAt returns the row at index i of the current page.
func (t *TableData) RowAt(i int) (model1.Row, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()

	if i < 0 || i >= len(t.state.Data) {
		return nil, false
	}
	return t.state.Data[i], true
}

// Toggle flips the selection of row i of the current page.
func (t *TableData) Toggle(i int) bool {
	if !t.checkbox {
		return false
	}

	t.notifyMx.Lock()
	defer t.notifyMx.Unlock()

	t.mx.Lock()
	if i < 0 || i >= len(t.state.Data) {
		t.mx.Unlock()
		return false
	}
	k := t.state.Data[i].Key(t.idField, i)
	if _, ok := t.selected[k]; ok {
		delete(t.selected, k)
	} else {
		t.selected[k] = struct{}{}
	}
	snap, sel, ll := t.snapshotLocked(), t.selectedRowsLocked(), t.listenersLocked()
	t.mx.Unlock()

	t.fire(ll, snap)
	t.fireSelected(sel)

	return true
}

// SelectAll selects every row of the current page.
func (t *TableData) SelectAll() {
	if !t.checkbox {
		return
	}

	t.notifyMx.Lock()
	defer t.notifyMx.Unlock()

	t.mx.Lock()
	t.selected = make(map[string]struct{}, len(t.state.Data))
	for i, r := range t.state.Data {
		t.selected[r.Key(t.idField, i)] = struct{}{}
	}
	snap, sel, ll := t.snapshotLocked(), t.selectedRowsLocked(), t.listenersLocked()
	t.mx.Unlock()

	t.fire(ll, snap)
	t.fireSelected(sel)
}

// ClearSelection deselects every row.
func (t *TableData) ClearSelection() {
	t.notifyMx.Lock()
	defer t.notifyMx.Unlock()

	t.mx.Lock()
	if len(t.selected) == 0 {
		t.mx.Unlock()
		return
	}
	t.selected = make(map[string]struct{})
	snap, ll := t.snapshotLocked(), t.listenersLocked()
	t.mx.Unlock()

	t.fire(ll, snap)
	t.fireSelected(model1.Rows{})
}

// IsSelected returns true if row i of the current page is selected.
func (t *TableData) IsSelected(i int) bool {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.isSelectedLocked(i)
}

func (t *TableData) isSelectedLocked(i int) bool {
	if i < 0 || i >= len(t.state.Data) {
		return false
	}
	_, ok := t.selected[t.state.Data[i].Key(t.idField, i)]

	return ok
}

// SelectedRows returns the selected rows in page order.
func (t *TableData) SelectedRows() model1.Rows {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.selectedRowsLocked()
}

func (t *TableData) selectedRowsLocked() model1.Rows {
	rr := make(model1.Rows, 0, len(t.selected))
	for i, r := range t.state.Data {
		if _, ok := t.selected[r.Key(t.idField, i)]; ok {
			rr = append(rr, r)
		}
	}

	return rr
}

// Export writes the current page as CSV.
func (t *TableData) Export(w io.Writer) error {
	if !t.export {
		return ErrExportDisabled
	}

	t.mx.RLock()
	rows := model1.Rows(t.state.Data).Clone()
	keys := make(map[int]bool, len(t.selected))
	for i := range rows {
		keys[i] = t.isSelectedLocked(i)
	}
	t.mx.RUnlock()

	return model1.WriteCSV(w, t.columns, rows, model1.CSVOptions{
		Checkbox:   t.checkbox,
		Actions:    len(t.actions) > 0,
		IsSelected: func(i int, _ model1.Row) bool { return keys[i] },
	})
}

// PrintHTML writes a printable snapshot of the current page.
func (t *TableData) PrintHTML(w io.Writer, title, baseURL string) error {
	if !t.export {
		return ErrExportDisabled
	}

	t.mx.RLock()
	rows := model1.Rows(t.state.Data).Clone()
	t.mx.RUnlock()

	return model1.WritePrintHTML(w, title, t.columns, rows, baseURL)
}

func (t *TableData) pagerChanged(st PagerState[model1.Row]) {
	t.notifyMx.Lock()
	defer t.notifyMx.Unlock()

	t.mx.Lock()
	if st.Rev <= t.state.Rev {
		t.mx.Unlock()
		return
	}
	t.state = st
	cleared := false
	if st.Fresh && len(t.selected) > 0 {
		t.selected, cleared = make(map[string]struct{}), true
	}
	snap, ll := t.snapshotLocked(), t.listenersLocked()
	t.mx.Unlock()

	t.fire(ll, snap)
	if cleared {
		t.fireSelected(model1.Rows{})
	}
}

// Notify re-fires the current snapshot. Callers use it when the external
// loading flag changes.
func (t *TableData) Notify() {
	t.notifyMx.Lock()
	defer t.notifyMx.Unlock()

	t.mx.RLock()
	snap, ll := t.snapshotLocked(), t.listenersLocked()
	t.mx.RUnlock()

	t.fire(ll, snap)
}

func (t *TableData) listenersLocked() []TableListener {
	ll := make([]TableListener, len(t.listeners))
	copy(ll, t.listeners)

	return ll
}

func (t *TableData) snapshotLocked() *model1.TableData {
	td := model1.NewTableData(t.columns)
	td.Actions = t.actions
	td.Checkbox = t.checkbox
	td.Rows = model1.Rows(t.state.Data).Clone()
	td.Keys = make([]string, len(td.Rows))
	for i, r := range td.Rows {
		td.Keys[i] = r.Key(t.idField, i)
		if _, ok := t.selected[td.Keys[i]]; ok {
			td.Selected[td.Keys[i]] = struct{}{}
		}
	}
	td.Page = t.state.Page
	td.TotalPages = max(t.state.TotalPages, 1)
	td.Total = t.state.Total
	td.Search = t.state.Search
	td.Loading = t.loadingLocked()
	if t.state.Status == StatusFailed {
		td.Err = t.state.Err
	}

	return td
}

func (t *TableData) fire(ll []TableListener, td *model1.TableData) {
	for _, l := range ll {
		switch {
		case td.Loading:
			l.TableLoading(td)
		case td.HasError():
			l.TableLoadFailed(td)
		case td.Empty():
			l.TableNoData(td)
		default:
			l.TableDataChanged(td)
		}
	}
}

func (t *TableData) fireSelected(rr model1.Rows) {
	if t.onSelected != nil {
		t.onSelected(rr)
	}
}
