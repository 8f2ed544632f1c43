// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"context"
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/ui"
)

// ProfileSwitcher lists the API profiles and switches between them.
type ProfileSwitcher struct {
	*tview.Table

	app      *App
	profiles []string
	current  string
}

// NewProfileSwitcher creates a new profile switcher view.
func NewProfileSwitcher(app *App) *ProfileSwitcher {
	p := &ProfileSwitcher{
		Table: tview.NewTable(),
		app:   app,
	}

	p.SetBorder(true)
	p.SetTitle(" Profiles ")
	p.SetTitleAlign(tview.AlignCenter)
	p.SetBorderColor(tcell.ColorAqua)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetSelectable(true, false)
	p.SetFixed(1, 0)

	return p
}

// Init initializes the profile switcher.
func (p *ProfileSwitcher) Init(context.Context) error {
	p.SetInputCapture(p.keyboard)
	p.loadProfiles()

	return nil
}

// Start begins the view lifecycle.
func (p *ProfileSwitcher) Start() {
	p.loadProfiles()
}

// Stop ends the view lifecycle.
func (*ProfileSwitcher) Stop() {}

// Name returns the view name.
func (*ProfileSwitcher) Name() string {
	return profileCmd
}

// Hints returns menu hints.
func (*ProfileSwitcher) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "enter", Description: "Switch", Visible: true},
		{Mnemonic: "esc", Description: "Back", Visible: true},
	}
}

// Profiles returns the listed profile names.
func (p *ProfileSwitcher) Profiles() []string {
	return p.profiles
}

func (p *ProfileSwitcher) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := p.GetSelection()
	last := p.GetRowCount() - 1

	switch evt.Key() {
	case tcell.KeyEnter:
		p.selectProfile()
		return nil
	case tcell.KeyDown:
		p.Select(min(row+1, last), col)
		return nil
	case tcell.KeyUp:
		p.Select(max(row-1, 1), col)
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'j':
			p.Select(min(row+1, last), col)
			return nil
		case 'k':
			p.Select(max(row-1, 1), col)
			return nil
		case 'g':
			p.Select(1, col)
			return nil
		case 'G':
			p.Select(last, col)
			return nil
		}
	}

	return evt
}

func (p *ProfileSwitcher) loadProfiles() {
	p.Clear()
	p.profiles = nil

	for col, h := range []string{"", "PROFILE", "BASE URL", "STATUS"} {
		p.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	f := p.app.GetFactory()
	if f == nil || f.Client() == nil {
		p.showNoData("No portal connection")
		return
	}
	conn := f.Client()
	p.current = f.Profile()
	p.profiles = conn.ProfileNames()
	if len(p.profiles) == 0 {
		p.showNoData("No profiles found")
		return
	}

	for i, name := range p.profiles {
		row := i + 1
		active := name == p.current

		indicator, color, status := "", tcell.ColorWhite, ""
		if active {
			indicator, color, status = "●", tcell.ColorGreen, "active"
		}
		p.SetCell(row, 0, tview.NewTableCell(indicator).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignCenter))
		p.SetCell(row, 1, tview.NewTableCell(name).
			SetTextColor(color).
			SetExpansion(1).
			SetReference(name))

		url := conn.ProfileURL(name)
		if url == "" {
			url = "(default)"
		}
		p.SetCell(row, 2, tview.NewTableCell(url).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		p.SetCell(row, 3, tview.NewTableCell(status).
			SetTextColor(tcell.ColorGreen).
			SetExpansion(1))
	}

	p.SetTitle(fmt.Sprintf(" Profiles [%d] ", len(p.profiles)))
	p.Select(1, 0)
}

func (p *ProfileSwitcher) showNoData(msg string) {
	p.SetCell(1, 0, tview.NewTableCell(msg).
		SetTextColor(tcell.ColorGray).
		SetAlign(tview.AlignCenter).
		SetSelectable(false))
}

func (p *ProfileSwitcher) selectProfile() {
	row, _ := p.GetSelection()
	if row == 0 || row > len(p.profiles) {
		return
	}

	name := p.profiles[row-1]
	if name == p.current {
		p.app.Flash().Infof("Already using profile: %s", name)
		return
	}
	if err := p.app.SwitchProfile(name); err != nil {
		p.app.Flash().Errf("Failed to switch profile: %v", err)
		return
	}

	p.app.Flash().Infof("Switched to profile: %s", name)
	p.loadProfiles()
}
