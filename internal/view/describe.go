// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"gopkg.in/yaml.v3"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/model1"
	"github.com/govportal/portalctl/internal/ui"
)

// Detail formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatText = "text"
)

// Details displays a single portal record.
type Details struct {
	*tview.TextView

	app      *App
	rid      *dao.ResourceID
	accessor dao.Accessor
	id       string
	title    string
	format   string
	row      model1.Row
	text     string
	err      error
	editable bool
	wrapOn   bool
	actions  *ui.KeyActions
	cancelFn context.CancelFunc
	wg       sync.WaitGroup
	mx       sync.RWMutex
}

// NewDetails creates a new record detail view.
func NewDetails(app *App, rid *dao.ResourceID, acc dao.Accessor, id string) *Details {
	d := Details{
		TextView: tview.NewTextView(),
		app:      app,
		rid:      rid,
		accessor: acc,
		id:       id,
		format:   FormatYAML,
		actions:  ui.NewKeyActions(),
	}
	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)
	d.SetBackgroundColor(tcell.ColorDefault)
	d.updateTitle()

	return &d
}

// Init initializes the view.
func (d *Details) Init(context.Context) error {
	d.bindKeys()
	d.SetInputCapture(d.keyboard)

	return nil
}

// Name returns the view name.
func (d *Details) Name() string {
	return "describe"
}

// SetEditable enables the edit key.
func (d *Details) SetEditable(b bool) {
	d.editable = b
	d.bindKeys()
}

// Start fetches the record.
func (d *Details) Start() {
	d.Refresh()
}

// Stop cancels a pending fetch.
func (d *Details) Stop() {
	d.mx.Lock()
	cancel := d.cancelFn
	d.cancelFn = nil
	d.mx.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until a pending fetch completes.
func (d *Details) Wait() {
	d.wg.Wait()
}

// Hints returns the menu hints.
func (d *Details) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// Format returns the current format.
func (d *Details) Format() string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return d.format
}

// Content returns the displayed text without color tags.
func (d *Details) Content() string {
	return d.GetText(true)
}

// Refresh reloads the record in the current format.
func (d *Details) Refresh() {
	d.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
	d.mx.Lock()
	d.cancelFn = cancel
	format := d.format
	d.mx.Unlock()

	d.app.Queue(func() { d.SetText("[gray]Loading...[-]") })
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		d.fetch(ctx, format)
	}()
}

func (d *Details) fetch(ctx context.Context, format string) {
	var (
		row  model1.Row
		text string
		err  error
	)
	if format == FormatText {
		if desc, ok := d.accessor.(dao.Describer); ok {
			text, err = desc.Describe(ctx, d.id)
		} else {
			err = fmt.Errorf("%s cannot be described", d.rid)
		}
	} else {
		row, err = d.accessor.Get(ctx, d.id)
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	d.mx.Lock()
	d.row, d.text, d.err = row, text, err
	d.mx.Unlock()
	d.app.Queue(d.render)
}

func (d *Details) render() {
	d.mx.RLock()
	row, text, err, format := d.row, d.text, d.err, d.format
	d.mx.RUnlock()

	d.Clear()
	d.updateTitle()
	switch {
	case err != nil:
		d.SetText(fmt.Sprintf("[red::b]%s[-::-]", tview.Escape(err.Error())))
	case format == FormatText:
		d.SetText(tview.Escape(text))
	case format == FormatJSON:
		d.SetText(tview.Escape(toJSON(row)))
	default:
		d.SetText(highlightYAML(toYAML(row)))
	}
	d.ScrollToBeginning()
}

func (d *Details) bindKeys() {
	d.actions.Clear()
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY:      ui.NewKeyAction("YAML", d.formatCmd(FormatYAML), true),
		ui.KeyShiftJ: ui.NewKeyAction("JSON", d.formatCmd(FormatJSON), true),
		ui.KeyT:      ui.NewKeyAction("Text", d.formatCmd(FormatText), true),
		ui.KeyW:      ui.NewKeyAction("Wrap", d.toggleWrap, true),
		ui.KeyR:      ui.NewKeyAction("Refresh", d.refreshCmd, true),
		tcell.KeyEsc: ui.NewKeyAction("Back", d.backCmd, true),
	})
	if d.editable {
		d.actions.Add(ui.KeyE, ui.NewKeyAction("Edit", d.editCmd, true))
	}
}

func (d *Details) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, _ := d.GetScrollOffset()
	switch evt.Key() {
	case tcell.KeyDown:
		d.ScrollTo(row+1, 0)
		return nil
	case tcell.KeyUp:
		d.ScrollTo(max(row-1, 0), 0)
		return nil
	case tcell.KeyPgDn:
		d.ScrollTo(row+20, 0)
		return nil
	case tcell.KeyPgUp:
		d.ScrollTo(max(row-20, 0), 0)
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'j':
			d.ScrollTo(row+1, 0)
			return nil
		case 'k':
			d.ScrollTo(max(row-1, 0), 0)
			return nil
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
	}

	if a, ok := d.actions.Get(ui.AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (d *Details) formatCmd(format string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		d.mx.Lock()
		prev := d.format
		d.format = format
		d.mx.Unlock()

		if format == FormatText || prev == FormatText {
			d.Refresh()
			return nil
		}
		d.render()

		return nil
	}
}

func (d *Details) toggleWrap(*tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	d.SetWordWrap(d.wrapOn)

	return nil
}

func (d *Details) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	d.Refresh()
	return nil
}

func (d *Details) backCmd(*tcell.EventKey) *tcell.EventKey {
	d.app.Pop()
	return nil
}

func (d *Details) editCmd(*tcell.EventKey) *tcell.EventKey {
	go func() {
		err := EditRecord(context.Background(), d.app.Application, d.accessor, d.id)
		switch {
		case errors.Is(err, ErrEditorCancelled):
			d.app.Flash().Info("Edit cancelled")
		case errors.Is(err, ErrNoChanges):
			d.app.Flash().Info("No changes detected")
		case err != nil:
			d.app.Flash().Err(err)
		default:
			d.app.Flash().Infof("%s %s updated", d.rid, d.id)
			d.Refresh()
		}
	}()

	return nil
}

// Title returns the view title.
func (d *Details) Title() string {
	return d.title
}

func (d *Details) updateTitle() {
	d.title = fmt.Sprintf(" %s/%s (%s) ", d.rid, tview.Escape(d.id), strings.ToUpper(d.Format()))
	d.SetTitle(d.title)
}

func toJSON(row model1.Row) string {
	raw, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return fmt.Sprintf("// Error generating JSON: %v", err)
	}

	return string(raw)
}

func toYAML(row model1.Row) string {
	raw, err := yaml.Marshal(map[string]any(row))
	if err != nil {
		return fmt.Sprintf("# Error generating YAML: %v", err)
	}

	return string(raw)
}

// highlightYAML colors keys and scalar values.
func highlightYAML(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		key, value, ok := strings.Cut(line, ":")
		trimmed := strings.TrimLeft(key, " -")
		if !ok || trimmed == "" || strings.Contains(trimmed, " ") {
			b.WriteString(tview.Escape(line) + "\n")
			continue
		}
		indent := key[:len(key)-len(trimmed)]
		value = strings.TrimSpace(value)
		if value == "" {
			fmt.Fprintf(&b, "%s[aqua::]%s:[-::]\n", indent, tview.Escape(trimmed))
			continue
		}
		fmt.Fprintf(&b, "%s[aqua::]%s:[-::] %s\n", indent, tview.Escape(trimmed), colorizeValue(value))
	}

	return b.String()
}

func colorizeValue(value string) string {
	escaped := tview.Escape(value)
	trimmed := strings.Trim(value, `"'`)
	switch strings.ToLower(trimmed) {
	case "true", "published", "active", "open":
		return "[green::]" + escaped + "[-::]"
	case "false", "draft", "inactive", "closed":
		return "[red::]" + escaped + "[-::]"
	case "null", "~":
		return "[gray::]" + escaped + "[-::]"
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return "[fuchsia::]" + escaped + "[-::]"
	}
	if c := model1.Classify(trimmed, model1.KindAuto, ""); c.Kind != model1.KindText && c.Kind != model1.KindEmpty {
		return "[blue::u]" + escaped + "[-::-]"
	}

	return escaped
}
