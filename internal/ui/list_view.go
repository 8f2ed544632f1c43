// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/govportal/portalctl/internal/model"
)

const (
	// DefaultCardColumns is the number of cards per grid row.
	DefaultCardColumns = 3

	skeletonCard = "[darkgray]░░░░░░░░░░░░\n░░░░░░░░\n░░░░░░░░░░[-]"
)

// RenderFunc renders one list item as tview text.
type RenderFunc[T any] func(T) string

// ListView renders a list presenter as a grid of cards.
type ListView[T any] struct {
	*tview.Flex

	name      string
	grid      *tview.Grid
	status    *tview.TextView
	statusMsg string
	pageBar   *PageBar
	model     *model.ListData[T]
	renderFn  RenderFunc[T]
	onSelect  func(T)
	actions   *KeyActions
	queue     QueueFunc
	columns   int
	snap      model.ListSnapshot[T]
	cards     []string
	selected  int
	mx        sync.RWMutex
}

// NewListView returns a new card list.
func NewListView[T any](name string, render RenderFunc[T]) *ListView[T] {
	l := ListView[T]{
		Flex:     tview.NewFlex(),
		name:     name,
		grid:     tview.NewGrid(),
		status:   tview.NewTextView(),
		pageBar:  NewPageBar(),
		renderFn: render,
		actions:  NewKeyActions(),
		queue:    Immediate,
		columns:  DefaultCardColumns,
	}
	l.SetDirection(tview.FlexRow)
	l.SetBorder(true)
	l.SetBorderAttributes(tcell.AttrBold)
	l.SetBorderColor(tcell.ColorLightSkyBlue)
	l.SetBackgroundColor(tcell.ColorDefault)
	l.SetTitle(fmt.Sprintf(" %s ", tview.Escape(name)))

	l.grid.SetGap(1, 2)
	l.grid.SetBackgroundColor(tcell.ColorDefault)
	l.status.SetTextAlign(tview.AlignCenter)
	l.status.SetBackgroundColor(tcell.ColorDefault)

	l.AddItem(l.status, 1, 0, false)
	l.AddItem(l.grid, 0, 1, false)
	l.AddItem(l.pageBar, 1, 0, false)

	return &l
}

// Init initializes the view.
func (l *ListView[T]) Init(context.Context) error {
	l.SetInputCapture(l.keyboard)
	l.bindKeys()

	return nil
}

// Name returns the view name.
func (l *ListView[T]) Name() string {
	return l.name
}

// SetQueue routes model notifications through the UI draw loop.
func (l *ListView[T]) SetQueue(q QueueFunc) {
	if q == nil {
		q = Immediate
	}
	l.queue = q
}

// SetColumns sets the number of cards per row.
func (l *ListView[T]) SetColumns(n int) {
	l.columns = max(n, 1)
}

// SetSelectedFunc registers the enter key handler.
func (l *ListView[T]) SetSelectedFunc(f func(T)) {
	l.onSelect = f
}

// SetModel attaches a list model and renders its current state.
func (l *ListView[T]) SetModel(m *model.ListData[T]) {
	l.mx.Lock()
	old := l.model
	l.model = m
	l.mx.Unlock()

	if old != nil {
		old.RemoveListener(l)
	}
	if m == nil {
		return
	}
	m.AddListener(l)
	l.render(m.Peek())
}

// GetModel returns the list model.
func (l *ListView[T]) GetModel() *model.ListData[T] {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return l.model
}

// Actions returns the key actions.
func (l *ListView[T]) Actions() *KeyActions {
	return l.actions
}

// Hints returns menu hints.
func (l *ListView[T]) Hints() MenuHints {
	return l.actions.Hints()
}

// Cards returns the rendered card texts.
func (l *ListView[T]) Cards() []string {
	l.mx.RLock()
	defer l.mx.RUnlock()

	cc := make([]string, len(l.cards))
	copy(cc, l.cards)

	return cc
}

// Status returns the status line text.
func (l *ListView[T]) Status() string {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return l.statusMsg
}

// PageBar returns the page controls.
func (l *ListView[T]) PageBar() *PageBar {
	return l.pageBar
}

// SelectedItem returns the highlighted item.
func (l *ListView[T]) SelectedItem() (T, bool) {
	l.mx.RLock()
	defer l.mx.RUnlock()

	var zero T
	if l.snap.Loading || l.selected < 0 || l.selected >= len(l.snap.Items) {
		return zero, false
	}

	return l.snap.Items[l.selected], true
}

// ListDataChanged implements model.ListListener.
func (l *ListView[T]) ListDataChanged(s model.ListSnapshot[T]) {
	l.queue(func() { l.render(s) })
}

func (l *ListView[T]) bindKeys() {
	l.actions.Bulk(KeyMap{
		KeyLeftBracket:  NewKeyAction("Prev Page", l.prevCmd, true),
		KeyRightBracket: NewKeyAction("Next Page", l.nextCmd, true),
		KeyR:            NewKeyAction("Retry/Refresh", l.retryCmd, true),
		tcell.KeyEnter:  NewKeyAction("Open", l.enterCmd, true),
	})
}

func (l *ListView[T]) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	switch evt.Key() {
	case tcell.KeyLeft:
		l.move(-1)
		return nil
	case tcell.KeyRight:
		l.move(1)
		return nil
	case tcell.KeyUp:
		l.move(-l.columns)
		return nil
	case tcell.KeyDown:
		l.move(l.columns)
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'h':
			l.move(-1)
			return nil
		case 'l':
			l.move(1)
			return nil
		case 'k':
			l.move(-l.columns)
			return nil
		case 'j':
			l.move(l.columns)
			return nil
		}
	}

	if a, ok := l.actions.Get(AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (l *ListView[T]) move(delta int) {
	l.mx.Lock()
	n := len(l.cards)
	if n == 0 || l.snap.Loading {
		l.mx.Unlock()
		return
	}
	l.selected = min(max(l.selected+delta, 0), n-1)
	l.mx.Unlock()

	l.layout()
}

func (l *ListView[T]) prevCmd(*tcell.EventKey) *tcell.EventKey {
	if m := l.GetModel(); m != nil {
		m.PrevPage()
	}

	return nil
}

func (l *ListView[T]) nextCmd(*tcell.EventKey) *tcell.EventKey {
	if m := l.GetModel(); m != nil {
		m.NextPage()
	}

	return nil
}

func (l *ListView[T]) retryCmd(*tcell.EventKey) *tcell.EventKey {
	m := l.GetModel()
	if m == nil {
		return nil
	}
	l.mx.RLock()
	failed := l.snap.Err != nil
	l.mx.RUnlock()
	if failed {
		m.Retry()
		return nil
	}
	m.Refresh()

	return nil
}

func (l *ListView[T]) enterCmd(*tcell.EventKey) *tcell.EventKey {
	if l.onSelect == nil {
		return nil
	}
	if it, ok := l.SelectedItem(); ok {
		l.onSelect(it)
	}

	return nil
}

func (l *ListView[T]) render(s model.ListSnapshot[T]) {
	l.mx.Lock()
	l.snap = s
	switch {
	case s.Loading:
		l.cards = make([]string, model.SkeletonCards)
		for i := range l.cards {
			l.cards[i] = skeletonCard
		}
	default:
		l.cards = make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			l.cards = append(l.cards, l.renderFn(it))
		}
	}
	if l.selected >= len(s.Items) {
		l.selected = max(len(s.Items)-1, 0)
	}
	l.mx.Unlock()

	msg, color := fmt.Sprintf("%d item(s)", s.Total), tcell.ColorGray
	switch {
	case s.Loading:
		msg = "Loading..."
	case s.Err != nil:
		msg, color = errorMessage(s.Err), tcell.ColorRed
	case len(s.Items) == 0:
		msg = NoDataMsg
	}
	l.mx.Lock()
	l.statusMsg = msg
	l.mx.Unlock()
	l.status.SetTextColor(color)
	l.status.SetText(msg)

	title := fmt.Sprintf(" %s[%d] ", tview.Escape(l.name), s.Total)
	if s.Search != "" {
		title += fmt.Sprintf("</%s> ", tview.Escape(s.Search))
	}
	l.SetTitle(title)
	l.pageBar.Update(s.Page, s.TotalPages)
	l.layout()
}

func (l *ListView[T]) layout() {
	l.mx.RLock()
	cards, selected, loading, cols := l.cards, l.selected, l.snap.Loading, l.columns
	l.mx.RUnlock()

	l.grid.Clear()
	rows := (len(cards) + cols - 1) / cols
	rr := make([]int, rows)
	for i := range rr {
		rr[i] = 6
	}
	cc := make([]int, cols)
	l.grid.SetRows(rr...)
	l.grid.SetColumns(cc...)

	for i, card := range cards {
		tv := tview.NewTextView()
		tv.SetDynamicColors(true)
		tv.SetWrap(true)
		tv.SetBorder(true)
		tv.SetBackgroundColor(tcell.ColorDefault)
		tv.SetText(card)
		if !loading && i == selected {
			tv.SetBorderColor(tcell.ColorAqua)
		} else {
			tv.SetBorderColor(tcell.ColorDimGray)
		}
		l.grid.AddItem(tv, i/cols, i%cols, 1, 1, 0, 0, false)
	}
}
