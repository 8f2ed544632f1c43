// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const dialogKey = "dialog"

// Dialog represents a dismissable message box.
type Dialog struct {
	*tview.Modal

	pages  *Pages
	onDone func()
}

// NewDialog creates a new dialog.
func NewDialog(pages *Pages, msg string) *Dialog {
	d := Dialog{
		Modal: tview.NewModal(),
		pages: pages,
	}
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetText(msg)
	d.AddButtons([]string{"OK"})
	d.SetDoneFunc(func(int, string) { d.Dismiss() })
	d.SetColors(tcell.ColorWhite, tcell.ColorDodgerBlue, tcell.ColorWhite)

	return &d
}

// ErrorDialog creates a styled error dialog.
func ErrorDialog(pages *Pages, msg string) *Dialog {
	return NewDialog(pages, msg).SetColors(tcell.ColorRed, tcell.ColorRed, tcell.ColorWhite)
}

// SetColors configures dialog colors.
func (d *Dialog) SetColors(text, btnBg, btnText tcell.Color) *Dialog {
	d.SetTextColor(text)
	d.SetButtonBackgroundColor(btnBg)
	d.SetButtonTextColor(btnText)

	return d
}

// SetDoneCallback sets the callback for when dialog closes.
func (d *Dialog) SetDoneCallback(fn func()) *Dialog {
	d.onDone = fn
	return d
}

// Show displays the dialog as a modal overlay.
func (d *Dialog) Show() {
	if d.pages != nil {
		d.pages.ShowDialog(dialogKey, d)
	}
}

// Dismiss removes the dialog from display.
func (d *Dialog) Dismiss() {
	if d.pages != nil {
		d.pages.DismissDialog(dialogKey)
	}
	if d.onDone != nil {
		d.onDone()
	}
}
