// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/config"
	"github.com/govportal/portalctl/internal/config/data"
	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/export"
	"github.com/govportal/portalctl/internal/model"
	"github.com/govportal/portalctl/internal/ui"
)

const (
	// FlashDelay sets the flash auto-clear delay.
	FlashDelay = 5 * time.Second

	helpPage = "help"
	mainPage = "main"
)

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash shows transient status messages under the content area.
type Flash struct {
	*tview.TextView

	queue  ui.QueueFunc
	log    *zap.Logger
	delay  time.Duration
	cancel context.CancelFunc
	mx     sync.RWMutex
}

// NewFlash creates a new Flash instance.
func NewFlash(queue ui.QueueFunc, log *zap.Logger) *Flash {
	if queue == nil {
		queue = ui.Immediate
	}
	if log == nil {
		log = zap.NewNop()
	}
	f := Flash{
		TextView: tview.NewTextView(),
		queue:    queue,
		log:      log,
		delay:    FlashDelay,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)

	return &f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...any) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message using the client error taxonomy.
func (f *Flash) Err(err error) {
	if err == nil {
		return
	}
	f.log.Warn("flash error", zap.Error(err), zap.String("kind", string(client.Kind(err))))
	f.setMessage(FlashErr, client.Describe(err))
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.stopTimer()
	f.queue(func() { f.TextView.Clear() })
}

// Text returns the displayed message without color tags.
func (f *Flash) Text() string {
	return f.GetText(true)
}

func (f *Flash) stopTimer() {
	f.mx.Lock()
	defer f.mx.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	f.stopTimer()
	if msg == "" {
		f.Clear()
		return
	}

	f.queue(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		_, _ = fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), tview.Escape(msg))
	})

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	f.cancel = cancel
	delay := f.delay
	f.mx.Unlock()

	go f.autoClear(ctx, delay)
}

func (f *Flash) autoClear(ctx context.Context, delay time.Duration) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
		f.queue(func() { f.TextView.Clear() })
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN[]"
	case FlashErr:
		return "[ERROR[]"
	default:
		return "[INFO[]"
	}
}

// App represents the main application container.
type App struct {
	*tview.Application

	version string
	Main    *tview.Pages
	Content *ui.Pages
	stack   *model.Stack
	command *Command
	config  *config.Config
	factory dao.Factory
	actions *ui.KeyActions
	cmdBar  *ui.CmdBar
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	flash   *Flash
	help    *Help
	log     *zap.Logger
	queue   ui.QueueFunc
	running bool
	mx      sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, log *zap.Logger, version string) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := App{
		Application: tview.NewApplication(),
		version:     version,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		stack:       model.NewStack(),
		config:      cfg,
		actions:     ui.NewKeyActions(),
		menu:        ui.NewMenu(),
		crumbs:      ui.NewCrumbs(),
		cmdBar:      ui.NewCmdBar(),
		log:         log,
	}
	a.queue = a.QueueUpdateDraw
	a.flash = NewFlash(a.Queue, log)
	a.help = NewHelp()

	a.stack.AddListener(a.Content)
	a.stack.AddListener(a.crumbs)
	a.stack.AddListener(a.menu)

	a.Application.SetInputCapture(a.keyboard)
	a.cmdBar.SetActiveFn(func(active bool) {
		if active {
			a.SetFocus(a.cmdBar)
			return
		}
		a.focusTop()
	})
	a.cmdBar.SetCommandFn(func(cmd string) {
		if err := a.command.Run(cmd); err != nil {
			a.flash.Err(err)
		}
	})
	a.cmdBar.SetSearchFn(a.applySearch)
	a.cmdBar.SetCancelFn(func() { a.applySearch("") })

	return &a
}

// Init initializes the command interpreter, hotkeys and layout.
func (a *App) Init() error {
	a.command = NewCommand(a)
	if err := a.command.Init(); err != nil {
		return fmt.Errorf("failed to initialize command: %w", err)
	}
	a.cmdBar.SetCommands(a.command.Names())

	hk := config.NewHotKeys()
	if err := hk.Load(); err != nil {
		a.log.Warn("hotkeys load failed", zap.Error(err))
	}
	a.bindHotKeys(hk)

	if a.config != nil {
		a.EnableMouse(a.config.Portalctl.UI.EnableMouse)
	}
	a.Main.AddPage(mainPage, a.buildLayout(), true, true)
	a.SetRoot(a.Main, true)

	return nil
}

// Run shows the default view and starts the event loop.
func (a *App) Run(startCmd string) error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	if err := a.command.Run(startCmd); err != nil {
		a.flash.Err(err)
	}

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	a.running = false
	a.mx.Unlock()

	a.stack.Clear()
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Config returns the app configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// Stack returns the component stack.
func (a *App) Stack() *model.Stack {
	return a.stack
}

// GetFactory returns the accessor factory.
func (a *App) GetFactory() dao.Factory {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.factory
}

// SetFactory sets the accessor factory.
func (a *App) SetFactory(f dao.Factory) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.factory = f
}

// SwitchProfile switches to a different API profile.
func (a *App) SwitchProfile(profile string) error {
	f := a.GetFactory()
	if f == nil {
		return errors.New("factory not initialized")
	}
	if err := f.SetProfile(profile); err != nil {
		return fmt.Errorf("failed to switch profile: %w", err)
	}
	if a.config != nil {
		if _, err := a.config.Portalctl.ActivateProfile(profile); err != nil {
			a.log.Warn("profile activation failed", zap.String("profile", profile), zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if conn := f.Client(); conn != nil && !conn.CheckConnectivity(ctx) {
		return fmt.Errorf("profile %q: %w", profile, client.ErrNoConnection)
	}

	return nil
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// Queue schedules a UI mutation on the draw loop.
func (a *App) Queue(fn func()) {
	a.mx.RLock()
	q := a.queue
	a.mx.RUnlock()

	q(fn)
}

// SetQueue overrides how UI mutations are scheduled.
func (a *App) SetQueue(q ui.QueueFunc) {
	if q == nil {
		q = a.QueueUpdateDraw
	}
	a.mx.Lock()
	defer a.mx.Unlock()

	a.queue = q
}

// Push starts a component and shows it on top of the stack.
func (a *App) Push(c ui.Component) {
	a.stack.Push(c)
	a.SetFocus(c)
}

// Pop removes the top component unless it is the last one.
func (a *App) Pop() bool {
	if a.stack.IsLast() || a.stack.Empty() {
		return false
	}
	a.stack.Pop()
	a.focusTop()

	return true
}

// Top returns the component on top of the stack.
func (a *App) Top() ui.Component {
	c, _ := a.stack.Top().(ui.Component)
	return c
}

// RefreshCurrentView restarts the component on top of the stack.
func (a *App) RefreshCurrentView() {
	top := a.Top()
	if top == nil {
		return
	}
	top.Stop()
	top.Start()
	a.flash.Info("Refreshing...")
}

// ShowDialog overlays a dialog on the content area.
func (a *App) ShowDialog(name string, p tview.Primitive) {
	a.Content.ShowDialog(name, p)
	a.SetFocus(p)
}

// Alert shows an error that needs acknowledging, e.g. a partially failed bulk delete.
func (a *App) Alert(err error) {
	a.flash.Err(err)
	a.Queue(func() {
		d := ui.ErrorDialog(a.Content, err.Error()).SetDoneCallback(a.focusTop)
		d.Show()
		a.SetFocus(d)
	})
}

// Confirm asks before running a mutation.
func (a *App) Confirm(msg string, dangerous bool, ok func()) {
	c := ui.NewConfirm(a.Content).
		SetMessage(msg).
		SetDangerous(dangerous).
		SetOnConfirm(func() {
			a.focusTop()
			ok()
		}).
		SetOnCancel(a.focusTop)
	c.Show()
	a.SetFocus(c)
}

func (a *App) focusTop() {
	if top := a.Top(); top != nil {
		a.SetFocus(top)
	}
}

func (a *App) bindHotKeys(hk *config.HotKeys) {
	a.actions.Clear()
	for _, name := range hk.Names() {
		h := hk.Get(name)
		if h == nil {
			continue
		}
		key, err := ui.ParseKey(h.ShortCut)
		if err != nil {
			a.log.Warn("invalid hotkey", zap.String("name", name), zap.Error(err))
			continue
		}
		cmd := h.Command
		a.actions.Add(key, ui.NewSharedKeyAction(h.Description, func(*tcell.EventKey) *tcell.EventKey {
			if err := a.command.Run(cmd); err != nil {
				a.flash.Err(err)
			}
			return nil
		}, false))
	}
}

func (a *App) buildLayout() *tview.Flex {
	main := tview.NewFlex().SetDirection(tview.FlexRow)
	main.AddItem(a.menu, 6, 0, false)
	main.AddItem(a.cmdBar, 3, 0, false)
	main.AddItem(a.Content, 0, 10, true)
	if a.config == nil || !a.config.Portalctl.UI.Crumbsless {
		main.AddItem(a.crumbs, 1, 0, false)
	}
	main.AddItem(a.flash, 1, 0, false)

	return main
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if name, _ := a.Content.GetFrontPage(); name == helpPage {
		return evt
	}
	if a.cmdBar.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyEsc:
		a.handleEscape()
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case ':':
			a.cmdBar.Activate(ui.ModeCommand, "")
			return nil
		case '/':
			a.activateSearch()
			return nil
		case '?':
			a.showHelp()
			return nil
		case 'q':
			a.Stop()
			return nil
		}
	}

	if ka, ok := a.actions.Get(ui.AsKey(evt)); ok {
		return ka.Action(evt)
	}

	return evt
}

func (a *App) activateSearch() {
	p, ok := a.Top().(ui.Pageable)
	if !ok {
		a.flash.Warn("Search is not available here")
		return
	}
	a.cmdBar.Activate(ui.ModeSearch, p.Search())
}

func (a *App) applySearch(term string) {
	if p, ok := a.Top().(ui.Pageable); ok {
		p.SetSearch(term)
	}
}

func (a *App) showHelp() {
	a.help.SetCloseFn(func() {
		a.Content.RemovePage(helpPage)
		a.focusTop()
	})
	a.help.Populate(a.command, a.Top())
	a.Content.AddPage(helpPage, a.help, true, true)
	a.SetFocus(a.help)
}

func (a *App) handleEscape() {
	if p, ok := a.Top().(ui.Pageable); ok && p.Search() != "" {
		p.SetSearch("")
		return
	}
	a.Pop()
}

// Gates returns the feature gates of the active profile.
func (a *App) Gates() data.FeatureGates {
	if a.config == nil {
		return data.NewFeatureGates()
	}
	return a.config.Portalctl.Gates()
}

// OpenPrints returns true when print snapshots are opened after saving.
func (a *App) OpenPrints() bool {
	return a.config != nil && a.config.Portalctl.Print.Open
}

// ExportSink returns where artifacts are stored. Remote artifacts go to S3
// when the s3Export gate is on and a bucket is configured.
func (a *App) ExportSink(ctx context.Context, remote bool) (export.Sink, error) {
	if a.config == nil {
		return export.NewDirSink(config.AppDumpsDir), nil
	}
	x := a.config.Portalctl.Export
	if remote && a.Gates().S3Export && x.S3Bucket != "" {
		return export.NewS3Sink(ctx, export.S3Options{
			Bucket:  x.S3Bucket,
			Prefix:  x.S3Prefix,
			Region:  x.S3Region,
			Profile: x.S3Profile,
		})
	}
	if x.Dir != "" {
		return export.NewDirSink(x.Dir), nil
	}

	return export.NewDirSink(config.AppDumpsDir), nil
}
