// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model"
)

const (
	menuIndexFmt = " [fuchsia::b]<%d>[white::-] %s "
	menuPlainFmt = " [dodgerblue::b]<%s>[white::-] %s "
	maxRows      = 6
)

// Menu presents menu options.
type Menu struct {
	*tview.Table

	hints MenuHints
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := Menu{
		Table: tview.NewTable(),
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return &m
}

// Hints returns the hints currently displayed.
func (m *Menu) Hints() MenuHints {
	return m.hints
}

// StackPushed notifies a component was added.
func (m *Menu) StackPushed(c model.Component) {
	m.hydrateFrom(c)
}

// StackPopped notifies a component was removed.
func (m *Menu) StackPopped(_, top model.Component) {
	if top == nil {
		m.hints = nil
		m.Clear()
		return
	}
	m.hydrateFrom(top)
}

// StackTop notifies the top component.
func (m *Menu) StackTop(c model.Component) {
	m.hydrateFrom(c)
}

func (m *Menu) hydrateFrom(c model.Component) {
	if h, ok := c.(Hinter); ok {
		m.HydrateMenu(h.Hints())
	}
}

// HydrateMenu populate menu ui from hints.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()
	visible := make(MenuHints, 0, len(hh))
	for _, h := range hh {
		if h.Visible && !h.IsBlank() {
			visible = append(visible, h)
		}
	}
	sort.Sort(visible)
	m.hints = visible

	for i, h := range visible {
		c := tview.NewTableCell(formatMenu(h))
		c.SetBackgroundColor(tcell.ColorDefault)
		m.SetCell(i%maxRows, i/maxRows, c)
	}
}

func formatMenu(h MenuHint) string {
	if h.Mnemonic == "" || h.Description == "" {
		return ""
	}
	if i, err := strconv.Atoi(h.Mnemonic); err == nil {
		return fmt.Sprintf(menuIndexFmt, i, h.Description)
	}

	return fmt.Sprintf(menuPlainFmt, h.Mnemonic, h.Description)
}
