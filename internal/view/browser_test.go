package view

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/portalctl/internal/config"
	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/model1"
)

func startBrowser(t *testing.T, app *App, rid *dao.ResourceID) *Browser {
	t.Helper()

	b := NewBrowser(app, rid)
	require.NoError(t, b.Init(context.Background()))
	b.Start()
	t.Cleanup(b.Stop)
	b.GetModel().Wait()

	return b
}

func hintNames(hh []HelpBind) []string {
	nn := make([]string, 0, len(hh))
	for _, h := range hh {
		nn = append(nn, h.Desc)
	}

	return nn
}

func TestBrowserStart(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.MenuRID)

	td := b.Table().Peek()
	require.NotNil(t, td)
	assert.Len(t, td.Rows, 7)
	assert.Equal(t, 1, td.TotalPages)
	assert.Equal(t, "admin/menu", b.Name())

	row, ok := b.Table().SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "Home", row["title"])

	nn := hintNames(actionBinds(b))
	assert.Contains(t, nn, "Describe")
	assert.Contains(t, nn, "Export CSV")
	assert.Contains(t, nn, "Delete")
}

func TestBrowserReadOnly(t *testing.T) {
	app := newTestApp(t, nil, true)
	b := startBrowser(t, app, &dao.MenuRID)

	assert.False(t, b.writable())
	assert.Empty(t, b.GetModel().Actions())
	assert.NotContains(t, hintNames(actionBinds(b)), "Delete")
}

func TestBrowserRestoresPage(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.GalleryImageRID)

	m := b.GetModel()
	require.True(t, m.NextPage())
	m.Wait()
	assert.Equal(t, 2, m.Peek().Page)

	b.Stop()
	b.Start()
	require.NotSame(t, m, b.GetModel())
	b.GetModel().Wait()
	assert.Equal(t, 2, b.GetModel().Peek().Page)
	assert.Len(t, b.Table().Peek().Rows, 4)
}

func TestBrowserRestoresSearch(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.SliderRID)

	require.True(t, b.GetModel().SetSearch("flood"))
	b.Stop()
	b.Start()
	m := b.GetModel()
	assert.Equal(t, &model1.Query{Page: 1, Search: "flood", Limit: m.Limit()}, m.LastQuery())
	m.Wait()

	rows := b.Table().Peek().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Flood Relief", rows[0]["title"])
}

type busyRecorder struct {
	b    *Browser
	seen atomic.Bool
}

func (r *busyRecorder) TableLoading(td *model1.TableData) {
	if td.Loading && r.b.Busy() {
		r.seen.Store(true)
	}
}
func (*busyRecorder) TableNoData(*model1.TableData)      {}
func (*busyRecorder) TableDataChanged(*model1.TableData) {}
func (*busyRecorder) TableLoadFailed(*model1.TableData)  {}

func TestBrowserDeleteFlagsLoading(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.SliderRID)
	r := busyRecorder{b: b}
	b.GetModel().AddListener(&r)

	rows := b.Table().Peek().Rows
	require.NoError(t, b.deleteRows(context.Background(), model1.Rows{rows[0]}))
	b.GetModel().Wait()

	assert.True(t, r.seen.Load())
	assert.False(t, b.Busy())
	assert.False(t, b.GetModel().IsLoading())
	assert.Len(t, b.Table().Peek().Rows, 2)
}

func TestBrowserDeleteRowsMissingID(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.SliderRID)

	rows := b.Table().Peek().Rows
	err := b.deleteRows(context.Background(), model1.Rows{rows[0], {"title": "orphan"}})
	assert.ErrorIs(t, err, dao.ErrNoID)
	b.GetModel().Refresh()
	b.GetModel().Wait()
	assert.Len(t, b.Table().Peek().Rows, 3)
}

func TestBrowserDeleteRows(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.SliderRID)

	rows := b.Table().Peek().Rows
	require.Len(t, rows, 3)
	require.NoError(t, b.deleteRows(context.Background(), model1.Rows{rows[0], rows[1]}))
	b.GetModel().Wait()

	rows = b.Table().Peek().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Flood Relief", rows[0]["title"])
}

func TestBrowserBulkDeleteGate(t *testing.T) {
	app := newTestApp(t, nil, false)
	b := startBrowser(t, app, &dao.SliderRID)

	b.confirmDelete(b.Table().Peek().Rows)
	assert.Contains(t, app.Flash().Text(), "bulk delete is disabled")
	b.GetModel().Wait()
	assert.Len(t, b.Table().Peek().Rows, 3)
}

func TestBrowserStore(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig(nil)
	cfg.Portalctl.Export.Dir = dir
	cfg.Portalctl.Print.Open = false
	app := newTestApp(t, cfg, false)
	b := startBrowser(t, app, &dao.MenuRID)

	var buf bytes.Buffer
	require.NoError(t, b.GetModel().Export(&buf))
	b.store("admin-menu/export.csv", model1.CSVContentType, buf.Bytes(), false)

	raw, err := os.ReadFile(filepath.Join(dir, "admin-menu", "export.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Organization Structure")
	assert.Contains(t, app.Flash().Text(), "Saved")
}
