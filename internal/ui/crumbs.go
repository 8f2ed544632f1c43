// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model"
)

// Crumbs represents user breadcrumbs.
type Crumbs struct {
	*tview.TextView

	names []string
}

// NewCrumbs returns a new breadcrumb view.
func NewCrumbs() *Crumbs {
	c := Crumbs{
		TextView: tview.NewTextView(),
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return &c
}

// Names returns the current breadcrumbs.
func (c *Crumbs) Names() []string {
	return append([]string(nil), c.names...)
}

// StackPushed indicates a new item was added.
func (c *Crumbs) StackPushed(comp model.Component) {
	c.names = append(c.names, comp.Name())
	c.refresh()
}

// StackPopped indicates an item was deleted.
func (c *Crumbs) StackPopped(_, _ model.Component) {
	if len(c.names) > 0 {
		c.names = c.names[:len(c.names)-1]
	}
	c.refresh()
}

// StackTop indicates the top of the stack.
func (*Crumbs) StackTop(model.Component) {}

func (c *Crumbs) refresh() {
	c.Clear()
	last := len(c.names) - 1
	for i, crumb := range c.names {
		name := tview.Escape(strings.ReplaceAll(strings.ToLower(crumb), " ", ""))
		if i == last {
			_, _ = fmt.Fprintf(c, "[black:aqua:b] <%s> [-:-:-] ", name)
			continue
		}
		_, _ = fmt.Fprintf(c, "[black:lightslategray:-] <%s> [-:-:-] ", name)
	}
}
