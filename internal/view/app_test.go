package view

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/config"
	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/demo"
	"github.com/govportal/portalctl/internal/export"
	"github.com/govportal/portalctl/internal/ui"
)

func newTestApp(t *testing.T, cfg *config.Config, readOnly bool) *App {
	t.Helper()

	srv := httptest.NewServer(demo.NewServer(nil).Handler())
	t.Cleanup(srv.Close)
	conn, err := client.NewAPIClient(nil, &client.ClientConfig{BaseURL: srv.URL + "/api"}, nil)
	require.NoError(t, err)

	app := NewApp(cfg, zap.NewNop(), "test")
	app.SetQueue(ui.Immediate)
	app.SetFactory(dao.NewFactory(conn, nil, dao.NewPageCache(dao.DefaultCacheTTL), readOnly))
	app.command = NewCommand(app)
	t.Cleanup(func() { app.Stack().Clear() })

	return app
}

func TestFlash(t *testing.T) {
	f := NewFlash(ui.Immediate, nil)

	f.Info("page saved")
	assert.Contains(t, f.Text(), "page saved")

	f.Warnf("%d rows skipped", 2)
	assert.Contains(t, f.Text(), "2 rows skipped")

	f.Err(errors.New("boom"))
	assert.Contains(t, f.Text(), "boom")

	f.Err(nil)
	assert.Contains(t, f.Text(), "boom")

	f.Clear()
	assert.Empty(t, f.Text())
}

func TestAppPushPop(t *testing.T) {
	app := newTestApp(t, nil, false)

	assert.False(t, app.Pop())
	require.NoError(t, app.command.Run("menu"))
	b, ok := app.Top().(*Browser)
	require.True(t, ok)
	b.GetModel().Wait()

	require.NoError(t, app.command.Run("slider"))
	assert.Equal(t, "admin/slider", app.Top().Name())
	app.Top().(*Browser).GetModel().Wait()

	assert.True(t, app.Pop())
	assert.Equal(t, "admin/menu", app.Top().Name())
	assert.False(t, app.Pop())
}

func TestAppExportSink(t *testing.T) {
	cfg := config.NewConfig(nil)
	cfg.Portalctl.Export.Dir = t.TempDir()
	cfg.Portalctl.Export.S3Bucket = "portal-exports"
	app := newTestApp(t, cfg, false)

	s, err := app.ExportSink(context.Background(), true)
	require.NoError(t, err)
	assert.IsType(t, &export.DirSink{}, s)
}
