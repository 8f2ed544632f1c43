// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const confirmKey = "confirm"

// ConfirmFunc is called when user confirms action.
type ConfirmFunc func()

// Confirm represents a confirmation dialog.
type Confirm struct {
	*tview.Modal

	dangerous bool
	onConfirm ConfirmFunc
	onCancel  func()
	pages     *Pages
}

// NewConfirm creates a new confirmation dialog.
func NewConfirm(pages *Pages) *Confirm {
	c := Confirm{
		Modal: tview.NewModal(),
		pages: pages,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.AddButtons([]string{"Yes", "No"})
	c.SetDoneFunc(c.done)
	c.SetInputCapture(c.keyboard)
	c.updateStyle()

	return &c
}

// SetMessage sets the confirmation message.
func (c *Confirm) SetMessage(msg string) *Confirm {
	c.SetText(msg)
	return c
}

// SetDangerous styles the dialog for destructive operations.
func (c *Confirm) SetDangerous(b bool) *Confirm {
	c.dangerous = b
	c.updateStyle()
	return c
}

// SetOnConfirm sets the callback for when user confirms.
func (c *Confirm) SetOnConfirm(fn ConfirmFunc) *Confirm {
	c.onConfirm = fn
	return c
}

// SetOnCancel sets the callback for when user cancels.
func (c *Confirm) SetOnCancel(fn func()) *Confirm {
	c.onCancel = fn
	return c
}

// Show displays the dialog.
func (c *Confirm) Show() {
	if c.pages != nil {
		c.pages.ShowDialog(confirmKey, c)
	}
}

// Dismiss removes the dialog.
func (c *Confirm) Dismiss() {
	if c.pages != nil {
		c.pages.DismissDialog(confirmKey)
	}
}

func (c *Confirm) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	switch evt.Key() {
	case tcell.KeyEsc:
		c.done(1, "No")
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'y', 'Y':
			c.done(0, "Yes")
			return nil
		case 'n', 'N':
			c.done(1, "No")
			return nil
		}
	}

	return evt
}

func (c *Confirm) done(idx int, _ string) {
	c.Dismiss()
	switch idx {
	case 0:
		if c.onConfirm != nil {
			c.onConfirm()
		}
	default:
		if c.onCancel != nil {
			c.onCancel()
		}
	}
}

func (c *Confirm) updateStyle() {
	if c.dangerous {
		c.SetTextColor(tcell.ColorRed)
		c.SetButtonBackgroundColor(tcell.ColorRed)
		c.SetButtonTextColor(tcell.ColorWhite)
		return
	}
	c.SetTextColor(tcell.ColorWhite)
	c.SetButtonBackgroundColor(tcell.ColorDodgerBlue)
	c.SetButtonTextColor(tcell.ColorWhite)
}
