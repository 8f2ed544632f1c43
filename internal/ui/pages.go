package ui

import (
	"fmt"

	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model"
)

// Pages mirrors the app component stack as tview pages.
type Pages struct {
	*tview.Pages

	stack []string
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// StackPushed shows the pushed component.
func (p *Pages) StackPushed(c model.Component) {
	prim, ok := c.(tview.Primitive)
	if !ok {
		return
	}
	name := fmt.Sprintf("%d-%s", len(p.stack), c.Name())
	p.stack = append(p.stack, name)
	p.AddPage(name, prim, true, true)
	p.SwitchToPage(name)
}

// StackPopped removes the popped component and shows the new top.
func (p *Pages) StackPopped(_, _ model.Component) {
	if len(p.stack) == 0 {
		return
	}
	name := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.RemovePage(name)
	if top := p.Current(); top != "" {
		p.SwitchToPage(top)
	}
}

// StackTop is a no-op.
func (*Pages) StackTop(model.Component) {}

// Current returns the current page name.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}

	return p.stack[len(p.stack)-1]
}

// StackSize returns the stack depth.
func (p *Pages) StackSize() int {
	return len(p.stack)
}

// ShowDialog overlays a modal above the current page.
func (p *Pages) ShowDialog(name string, prim tview.Primitive) {
	p.AddPage(name, prim, true, true)
}

// DismissDialog removes a modal overlay.
func (p *Pages) DismissDialog(name string) {
	p.RemovePage(name)
}
