// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/export"
	"github.com/govportal/portalctl/internal/model"
	"github.com/govportal/portalctl/internal/model1"
	"github.com/govportal/portalctl/internal/render"
	"github.com/govportal/portalctl/internal/ui"
)

const (
	// mutationTimeout bounds a single update or delete call.
	mutationTimeout = 30 * time.Second

	// deleteWorkers bounds concurrent deletes of a bulk selection.
	deleteWorkers = 4
)

// ErrBulkDisabled is returned when several rows are deleted without the
// bulkDelete feature gate.
var ErrBulkDisabled = errors.New("bulk delete is disabled (featureGates.bulkDelete)")

// Browser represents a paginated admin table over a portal resource.
type Browser struct {
	*tview.Flex

	app      *App
	rid      *dao.ResourceID
	table    *ui.DataTable
	pageBar  *ui.PageBar
	accessor dao.Accessor
	renderer render.Renderer
	model    *model.TableData
	search   string
	page     int
	cancelFn context.CancelFunc
	busy     atomic.Int32
	mx       sync.RWMutex
}

// NewBrowser returns a new resource browser.
func NewBrowser(app *App, rid *dao.ResourceID) *Browser {
	b := Browser{
		Flex:    tview.NewFlex(),
		app:     app,
		rid:     rid,
		table:   ui.NewDataTable(rid.String()),
		pageBar: ui.NewPageBar(),
	}
	b.SetDirection(tview.FlexRow)
	b.AddItem(b.table, 0, 1, true)
	b.AddItem(b.pageBar, 1, 0, false)
	b.table.SetPageBar(b.pageBar)

	return &b
}

// Init resolves the accessor and renderer of the resource.
func (b *Browser) Init(ctx context.Context) error {
	f := b.app.GetFactory()
	acc, err := dao.AccessorFor(f, b.rid)
	if err != nil {
		return err
	}
	r, err := render.For(b.rid)
	if err != nil {
		return err
	}
	b.accessor, b.renderer = acc, r

	if err := b.table.Init(ctx); err != nil {
		return err
	}
	b.table.SetQueue(b.app.Queue)
	if conn := f.Client(); conn != nil {
		b.table.SetBaseURL(conn.MediaURL())
	}

	return nil
}

// Name returns the view name.
func (b *Browser) Name() string {
	return b.rid.String()
}

// Table returns the data table widget.
func (b *Browser) Table() *ui.DataTable {
	return b.table
}

// GetModel returns the current table model.
func (b *Browser) GetModel() *model.TableData {
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.model
}

// Focus delegates focus to the table.
func (b *Browser) Focus(delegate func(tview.Primitive)) {
	delegate(b.table)
}

// Start builds a fresh model and fetches the first page. A previous search
// or page is restored.
func (b *Browser) Start() {
	b.Stop()

	m, err := model.NewTableData(
		dao.FetchFor(b.accessor),
		b.renderer.Columns(),
		model.WithActions(b.rowActions()),
		model.WithCheckbox(b.renderer.Checkbox()),
		model.WithIDField(b.renderer.IDField()),
		model.WithDebounce(b.debounce()),
		model.WithLimit(b.pageSize()),
		model.WithLogger(b.app.Logger().With(zap.Stringer("rid", b.rid))),
		model.WithLoading(b.Busy),
	)
	if err != nil {
		b.app.Flash().Err(err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.mx.Lock()
	b.model, b.cancelFn = m, cancel
	search, page := b.search, b.page
	b.mx.Unlock()

	b.table.SetModel(m)
	b.bindKeys()
	if err := m.StartAt(ctx, page, search); err != nil {
		b.app.Flash().Err(err)
	}
}

// Stop cancels the model and remembers where the user was.
func (b *Browser) Stop() {
	b.mx.Lock()
	m, cancel := b.model, b.cancelFn
	b.cancelFn = nil
	if m != nil {
		b.search = m.Search()
		b.page = m.Peek().Page
	}
	b.mx.Unlock()

	if cancel != nil {
		cancel()
	}
	if m != nil {
		m.Stop()
	}
}

// SetSearch updates the search term.
func (b *Browser) SetSearch(s string) {
	b.mx.Lock()
	b.search = s
	m := b.model
	b.mx.Unlock()

	if m != nil {
		m.SetSearch(s)
	}
}

// Search returns the current search term.
func (b *Browser) Search() string {
	if m := b.GetModel(); m != nil {
		return m.Search()
	}
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.search
}

// Hints returns menu hints.
func (b *Browser) Hints() ui.MenuHints {
	return b.table.Hints()
}

func (b *Browser) writable() bool {
	f := b.app.GetFactory()
	return f != nil && !f.ReadOnly() && !b.rid.IsPublic()
}

func (b *Browser) debounce() time.Duration {
	if cfg := b.app.Config(); cfg != nil {
		return cfg.SearchDebounce()
	}
	return model.DefaultDebounce
}

func (b *Browser) pageSize() int {
	if cfg := b.app.Config(); cfg != nil {
		return cfg.Portalctl.PageSize()
	}
	return model1.DefaultLimit
}

func (b *Browser) rowActions() model1.Actions {
	if !b.writable() {
		return nil
	}

	return model1.Actions{
		{Label: "Edit", Key: 'e', OnClick: b.editRow},
		{Label: "Delete", Key: 'D', Dangerous: true, OnClick: func(r model1.Row) {
			b.app.Queue(func() { b.confirmDelete(model1.Rows{r}) })
		}},
	}
}

func (b *Browser) bindKeys() {
	aa := b.table.Actions()
	aa.Bulk(ui.KeyMap{
		tcell.KeyEnter: ui.NewSharedKeyAction("Describe", b.describeCmd, false),
		ui.KeyD:        ui.NewKeyAction("Describe", b.describeCmd, true),
		ui.KeyX:        ui.NewKeyAction("Export CSV", b.exportCmd, true),
		ui.KeyP:        ui.NewKeyAction("Print", b.printCmd, true),
	})
	if b.writable() {
		aa.Add(tcell.KeyCtrlD, ui.NewDangerousKeyAction("Delete", b.deleteCmd, true))
	}
}

func (b *Browser) describeCmd(*tcell.EventKey) *tcell.EventKey {
	row, ok := b.table.SelectedRow()
	if !ok {
		return nil
	}
	id, err := dao.RowID(row, b.renderer.IDField())
	if err != nil {
		b.app.Flash().Err(err)
		return nil
	}

	d := NewDetails(b.app, b.rid, b.accessor, id)
	d.SetEditable(b.writable())
	if err := d.Init(context.Background()); err != nil {
		b.app.Flash().Err(err)
		return nil
	}
	b.app.Push(d)

	return nil
}

func (b *Browser) exportCmd(*tcell.EventKey) *tcell.EventKey {
	m := b.GetModel()
	if m == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := m.Export(&buf); err != nil {
		b.app.Flash().Err(err)
		return nil
	}
	name := export.Name(b.rid.String(), model1.CSVFileName, time.Now())
	go b.store(name, model1.CSVContentType, buf.Bytes(), false)

	return nil
}

func (b *Browser) printCmd(*tcell.EventKey) *tcell.EventKey {
	m := b.GetModel()
	if m == nil {
		return nil
	}
	var buf bytes.Buffer
	title := fmt.Sprintf("%s (page %d)", b.rid, m.Peek().Page)
	if err := m.PrintHTML(&buf, title, b.mediaURL()); err != nil {
		b.app.Flash().Err(err)
		return nil
	}
	name := export.Name(b.rid.String(), "print.html", time.Now())
	go b.store(name, "text/html; charset=utf-8", buf.Bytes(), true)

	return nil
}

// store writes an artifact to the export sink. Prints always land locally
// so they can be opened.
func (b *Browser) store(name, contentType string, body []byte, print bool) {
	ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
	defer cancel()

	sink, err := b.app.ExportSink(ctx, !print)
	if err != nil {
		b.app.Flash().Err(err)
		return
	}
	loc, err := sink.Put(ctx, name, contentType, body)
	if err != nil {
		b.app.Flash().Err(err)
		return
	}
	b.app.Logger().Info("artifact stored", zap.String("location", loc), zap.Int("bytes", len(body)))
	b.app.Flash().Infof("Saved %s", loc)

	if print && b.app.OpenPrints() {
		if err := openFile(loc); err != nil {
			b.app.Flash().Err(err)
		}
	}
}

func (b *Browser) mediaURL() string {
	if f := b.app.GetFactory(); f != nil && f.Client() != nil {
		return f.Client().MediaURL()
	}
	return ""
}

func (b *Browser) editRow(row model1.Row) {
	id, err := dao.RowID(row, b.renderer.IDField())
	if err != nil {
		b.app.Flash().Err(err)
		return
	}
	err = b.mutate(func() error {
		return EditRecord(context.Background(), b.app.Application, b.accessor, id)
	})
	switch {
	case errors.Is(err, ErrEditorCancelled):
		b.app.Flash().Info("Edit cancelled")
	case errors.Is(err, ErrNoChanges):
		b.app.Flash().Info("No changes detected")
	case err != nil:
		b.app.Flash().Err(err)
	default:
		b.app.Flash().Infof("%s %s updated", b.rid, id)
		if m := b.GetModel(); m != nil {
			m.Refresh()
		}
	}
}

func (b *Browser) deleteCmd(*tcell.EventKey) *tcell.EventKey {
	m := b.GetModel()
	if m == nil {
		return nil
	}
	rows := m.SelectedRows()
	if len(rows) == 0 {
		row, ok := b.table.SelectedRow()
		if !ok {
			return nil
		}
		rows = model1.Rows{row}
	}
	b.confirmDelete(rows)

	return nil
}

func (b *Browser) confirmDelete(rows model1.Rows) {
	if len(rows) > 1 && !b.app.Gates().BulkDelete {
		b.app.Flash().Err(ErrBulkDisabled)
		return
	}
	msg := fmt.Sprintf("Delete %d %s record(s)?", len(rows), b.rid)
	if len(rows) == 1 {
		id, _ := dao.RowID(rows[0], b.renderer.IDField())
		msg = fmt.Sprintf("Delete %s %s?", b.rid, id)
	}
	b.app.Confirm(msg, true, func() {
		go func() {
			if err := b.deleteRows(context.Background(), rows); err != nil {
				b.app.Alert(err)
				return
			}
			b.app.Flash().Infof("Deleted %d %s record(s)", len(rows), b.rid)
		}()
	})
}

// Busy returns true while an edit or delete is in flight.
func (b *Browser) Busy() bool {
	return b.busy.Load() > 0
}

// mutate runs fn with the table flagged as loading.
func (b *Browser) mutate(fn func() error) error {
	b.busy.Add(1)
	b.notify()
	defer func() {
		b.busy.Add(-1)
		b.notify()
	}()

	return fn()
}

func (b *Browser) notify() {
	if m := b.GetModel(); m != nil {
		m.Notify()
	}
}

// deleteRows deletes rows concurrently then reloads the current page.
func (b *Browser) deleteRows(ctx context.Context, rows model1.Rows) error {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id, err := dao.RowID(r, b.renderer.IDField())
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(ctx, mutationTimeout)
	defer cancel()

	err := b.mutate(func() error {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(deleteWorkers)
		for _, id := range ids {
			g.Go(func() error {
				return b.accessor.Delete(ctx, id)
			})
		}
		return g.Wait()
	})

	if m := b.GetModel(); m != nil {
		m.ClearSelection()
		m.Refresh()
	}

	return err
}
