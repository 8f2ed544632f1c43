// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/ui"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// Help displays a full-screen help view with keybindings.
type Help struct {
	*tview.Table
	closeFn func()
}

// NewHelp creates a new help view.
func NewHelp() *Help {
	h := &Help{
		Table: tview.NewTable(),
	}
	h.build()
	h.Populate(nil, nil)

	return h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

func (h *Help) build() {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch evt.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			h.close()
			return nil
		}
		if evt.Rune() == '?' || evt.Rune() == 'q' {
			h.close()
			return nil
		}
		return evt
	})
}

func (h *Help) close() {
	if h.closeFn != nil {
		h.closeFn()
	}
}

// Populate lays out the resource commands, the global keys and the actions
// of the active view.
func (h *Help) Populate(cmd *Command, top ui.Component) {
	h.Clear()

	columns := [][]HelpBind{
		resourceBinds(cmd),
		{
			{"<:>", "Command"},
			{"</>", "Search"},
			{"<?>", "Help"},
			{"<esc>", "Back/Clear"},
			{"<q>", "Quit"},
			{"<ctrl-c>", "Quit"},
		},
		{
			{"<j>", "Down"},
			{"<k>", "Up"},
			{"<g>", "Top"},
			{"<G>", "Bottom"},
			{"<[>", "Prev Page"},
			{"<]>", "Next Page"},
			{"<enter>", "Open"},
		},
		actionBinds(top),
	}
	headers := []string{"RESOURCES", "GENERAL", "NAVIGATION", "ACTIONS"}

	maxRows := 0
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	// Each logical column spans key, desc and spacer cells.
	const colWidth = 3
	for colIdx, col := range columns {
		baseCol := colIdx * colWidth
		h.SetCell(0, baseCol, tview.NewTableCell(headers[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for rowIdx, bind := range col {
			h.SetCell(rowIdx+1, baseCol, tview.NewTableCell(bind.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(rowIdx+1, baseCol+1, tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				h.SetCell(row, baseCol+2, tview.NewTableCell("").
					SetSelectable(false).
					SetExpansion(1))
			}
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}

// Binds returns the rendered bindings of a column.
func (h *Help) Binds(col int) []HelpBind {
	var bb []HelpBind
	for row := 1; row < h.GetRowCount(); row++ {
		k, d := h.GetCell(row, col*3), h.GetCell(row, col*3+1)
		if k == nil || k.Text == "" || d == nil {
			continue
		}
		bb = append(bb, HelpBind{Key: k.Text, Desc: d.Text})
	}

	return bb
}

func resourceBinds(cmd *Command) []HelpBind {
	bb := make([]HelpBind, 0, len(dao.AllRIDs))
	for _, rid := range dao.AllRIDs {
		name := rid.String()
		if cmd != nil {
			if ss := cmd.Aliases().ShortNames(name); len(ss) > 0 {
				name = ss[0]
			}
		}
		bb = append(bb, HelpBind{Key: ":" + name, Desc: rid.String()})
	}

	return bb
}

func actionBinds(top ui.Component) []HelpBind {
	if top == nil {
		return nil
	}
	var bb []HelpBind
	for _, h := range top.Hints() {
		if h.IsBlank() || !h.Visible {
			continue
		}
		bb = append(bb, HelpBind{Key: "<" + h.Mnemonic + ">", Desc: h.Description})
	}

	return bb
}
