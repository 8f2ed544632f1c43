// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/fvbommel/sortorder"
)

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota

	// ModeCommand is for entering commands (: prefix).
	ModeCommand

	// ModeSearch is for entering a search term (/ prefix).
	ModeSearch
)

// Mode indicators.
const (
	IndicatorNormal  = "⌂"
	IndicatorCommand = "⌂"
	IndicatorSearch  = "⌕"
)

// CmdBar is a bordered command/search input bar at the top of the app.
// Command mode shows ghost text completions.
type CmdBar struct {
	*tview.TextView

	mode              IndicatorMode
	cmdFn             func(string)
	searchFn          func(string)
	cancelFn          func()
	activeFn          func(bool)
	isActive          bool
	text              []rune
	suggestions       []string
	suggestionIdx     int
	currentSuggestion string
	commands          []string
	mx                sync.RWMutex
}

// NewCmdBar creates a new command bar.
func NewCmdBar() *CmdBar {
	c := CmdBar{
		TextView:      tview.NewTextView(),
		mode:          ModeNormal,
		suggestionIdx: -1,
	}
	c.SetBorder(true)
	c.SetBorderColor(tcell.ColorDarkCyan)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.render()

	return &c
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		c.mx.Lock()
		if len(c.text) > 0 {
			c.text = c.text[:len(c.text)-1]
		}
		c.mx.Unlock()
		c.changed()
		return nil

	case tcell.KeyEnter:
		c.execute()
		return nil

	case tcell.KeyEsc:
		c.cancel()
		return nil

	case tcell.KeyTab, tcell.KeyRight:
		c.mx.Lock()
		if c.currentSuggestion != "" {
			c.text = []rune(c.currentSuggestion)
		}
		c.mx.Unlock()
		c.clearSuggestions()
		c.render()
		return nil

	case tcell.KeyUp:
		c.cycle(-1)
		return nil

	case tcell.KeyDown:
		c.cycle(1)
		return nil

	case tcell.KeyCtrlU, tcell.KeyCtrlW:
		c.mx.Lock()
		c.text = c.text[:0]
		c.mx.Unlock()
		c.changed()
		return nil

	case tcell.KeyRune:
		c.mx.Lock()
		c.text = append(c.text, evt.Rune())
		c.mx.Unlock()
		c.changed()
		return nil
	}

	return evt
}

func (c *CmdBar) changed() {
	c.updateSuggestions()
	c.render()
	if c.Mode() == ModeSearch && c.searchFn != nil {
		c.searchFn(c.GetText())
	}
}

func (c *CmdBar) cycle(delta int) {
	c.mx.Lock()
	if n := len(c.suggestions); n > 0 {
		c.suggestionIdx = ((c.suggestionIdx+delta)%n + n) % n
		c.currentSuggestion = c.suggestions[c.suggestionIdx]
	}
	c.mx.Unlock()
	c.render()
}

func (c *CmdBar) render() {
	c.mx.RLock()
	text := string(c.text)
	suggestion := c.currentSuggestion
	mode := c.mode
	c.mx.RUnlock()

	var icon, prefix string
	switch mode {
	case ModeCommand:
		icon, prefix = IndicatorCommand, ":"
	case ModeSearch:
		icon, prefix = IndicatorSearch, "/"
	default:
		icon, prefix = IndicatorNormal, ">"
	}

	display := fmt.Sprintf("%s%s [::b]%s", icon, prefix, tview.Escape(text))
	if ghost, ok := strings.CutPrefix(suggestion, text); ok && ghost != "" {
		display += fmt.Sprintf("[gray::-]%s[-::]", tview.Escape(ghost))
	}
	c.SetText(display)
}

// Suggest returns the commands completing text in natural order.
func (c *CmdBar) Suggest(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	c.mx.RLock()
	defer c.mx.RUnlock()

	var matches []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, text) && cmd != text {
			matches = append(matches, cmd)
		}
	}
	sort.Sort(sortorder.Natural(matches))
	slices.SortStableFunc(matches, func(a, b string) int {
		return len(a) - len(b)
	})

	return matches
}

func (c *CmdBar) updateSuggestions() {
	if c.Mode() != ModeCommand {
		c.clearSuggestions()
		return
	}
	ss := c.Suggest(c.GetText())

	c.mx.Lock()
	defer c.mx.Unlock()
	c.suggestions, c.suggestionIdx, c.currentSuggestion = ss, -1, ""
	if len(ss) > 0 {
		c.suggestionIdx, c.currentSuggestion = 0, ss[0]
	}
}

func (c *CmdBar) clearSuggestions() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.suggestions = nil
	c.suggestionIdx = -1
	c.currentSuggestion = ""
}

// SetCommands sets the full list of available commands.
func (c *CmdBar) SetCommands(cmds []string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.commands = append([]string(nil), cmds...)
	sort.Sort(sortorder.Natural(c.commands))
}

// GetText returns the current input text.
func (c *CmdBar) GetText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return string(c.text)
}

// Activate enters command or search mode. Search mode starts from the
// current term.
func (c *CmdBar) Activate(mode IndicatorMode, initial string) {
	c.mx.Lock()
	c.mode = mode
	c.isActive = true
	c.text = []rune(initial)
	c.mx.Unlock()
	c.clearSuggestions()
	c.render()

	if c.activeFn != nil {
		c.activeFn(true)
	}
}

// Deactivate exits input mode and returns to normal.
func (c *CmdBar) Deactivate() {
	c.mx.Lock()
	c.isActive = false
	c.mode = ModeNormal
	c.text = c.text[:0]
	c.mx.Unlock()
	c.clearSuggestions()
	c.render()

	if c.activeFn != nil {
		c.activeFn(false)
	}
}

func (c *CmdBar) execute() {
	text := strings.TrimSpace(c.GetText())
	mode := c.Mode()
	c.Deactivate()

	if mode == ModeCommand && c.cmdFn != nil && text != "" {
		c.cmdFn(text)
	}
}

func (c *CmdBar) cancel() {
	if c.Mode() == ModeSearch && c.cancelFn != nil {
		c.cancelFn()
	}
	c.Deactivate()
}

// IsActive returns whether the command bar is accepting input.
func (c *CmdBar) IsActive() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.isActive
}

// Mode returns the current mode.
func (c *CmdBar) Mode() IndicatorMode {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.mode
}

// SetCommandFn sets the callback for command execution.
func (c *CmdBar) SetCommandFn(fn func(string)) {
	c.cmdFn = fn
}

// SetSearchFn sets the callback for search term changes.
func (c *CmdBar) SetSearchFn(fn func(string)) {
	c.searchFn = fn
}

// SetCancelFn sets the callback for when a search is abandoned.
func (c *CmdBar) SetCancelFn(fn func()) {
	c.cancelFn = fn
}

// SetActiveFn sets the callback for when active state changes.
func (c *CmdBar) SetActiveFn(fn func(bool)) {
	c.activeFn = fn
}
