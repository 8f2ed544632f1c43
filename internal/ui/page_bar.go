// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model1"
)

const (
	prevLabel = "◀ Prev"
	nextLabel = "Next ▶"
)

// PageBar renders the pagination controls under a presenter.
type PageBar struct {
	*tview.TextView

	page, totalPages int
}

// NewPageBar returns a new page bar.
func NewPageBar() *PageBar {
	p := PageBar{
		TextView:   tview.NewTextView(),
		page:       1,
		totalPages: 1,
	}
	p.SetDynamicColors(true)
	p.SetTextAlign(tview.AlignCenter)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetWrap(false)
	p.SetText(PageBarText(1, 1))

	return &p
}

// Update refreshes the controls for the given page.
func (p *PageBar) Update(page, totalPages int) {
	p.page, p.totalPages = page, max(totalPages, 1)
	p.SetText(PageBarText(p.page, p.totalPages))
}

// Page returns the displayed page and page count.
func (p *PageBar) Page() (int, int) {
	return p.page, p.totalPages
}

// PageBarText renders the page controls. Controls leading nowhere are dimmed.
func PageBarText(page, totalPages int) string {
	totalPages = max(totalPages, 1)
	page = model1.ClampPage(page, totalPages)

	return fmt.Sprintf("%s  [white::b]Page %d of %d[-::-]  %s",
		pageControl(prevLabel, model1.CanPrev(page)),
		page,
		totalPages,
		pageControl(nextLabel, model1.CanNext(page, totalPages)),
	)
}

func pageControl(label string, enabled bool) string {
	if !enabled {
		return "[gray::d]" + label + "[-::-]"
	}

	return "[aqua::b]" + label + "[-::-]"
}
