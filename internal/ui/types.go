package ui

import (
	"context"
	"strconv"

	"github.com/derailed/tview"
	"github.com/fvbommel/sortorder"

	"github.com/govportal/portalctl/internal/model"
)

// MenuHint represents a keyboard mnemonic.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
}

// IsBlank checks if menu hint is a placeholder.
func (m MenuHint) IsBlank() bool {
	return m.Mnemonic == "" && m.Description == "" && !m.Visible
}

// MenuHints represents a collection of hints.
type MenuHints []MenuHint

// Len returns the hints length.
func (h MenuHints) Len() int {
	return len(h)
}

// Swap swaps two elements.
func (h MenuHints) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Less sorts numeric mnemonics first, then naturally by mnemonic.
func (h MenuHints) Less(i, j int) bool {
	n, err1 := strconv.Atoi(h[i].Mnemonic)
	m, err2 := strconv.Atoi(h[j].Mnemonic)
	switch {
	case err1 == nil && err2 == nil:
		return n < m
	case err1 == nil:
		return true
	case err2 == nil:
		return false
	}
	if h[i].Mnemonic == h[j].Mnemonic {
		return h[i].Description < h[j].Description
	}

	return sortorder.NaturalLess(h[i].Mnemonic, h[j].Mnemonic)
}

// Hinter represent a menu mnemonic provider.
type Hinter interface {
	// Hints returns a collection of menu hints.
	Hints() MenuHints
}

// Primitive represents a UI primitive.
type Primitive interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
}

// Igniter represents a runnable view.
type Igniter interface {
	// Init initializes a component.
	Init(ctx context.Context) error

	// Start starts a component.
	Start()

	// Stop terminates a component.
	Stop()
}

// Component represents a screen living on the app stack.
type Component interface {
	Primitive
	Igniter
	Hinter
}

var _ model.Component = Component(nil)

// Pageable represents a widget driving a paged model.
type Pageable interface {
	// SetSearch updates the model search term.
	SetSearch(string)

	// Search returns the model search term.
	Search() string
}

// QueueFunc schedules a UI mutation on the draw loop.
type QueueFunc func(func())

// Immediate runs UI mutations inline. Used by headless widgets and tests.
func Immediate(f func()) {
	f()
}
