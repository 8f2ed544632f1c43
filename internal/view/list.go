// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/model"
	"github.com/govportal/portalctl/internal/model1"
	"github.com/govportal/portalctl/internal/render"
	"github.com/govportal/portalctl/internal/ui"
)

// CardList represents a paginated card grid over a portal resource.
type CardList[T any] struct {
	*ui.ListView[T]

	app      *App
	rid      *dao.ResourceID
	accessor dao.Accessor
	convFn   func(baseURL string) func(model1.Row) T
	idFn     func(T) string
	model    *model.ListData[T]
	search   string
	page     int
	cancelFn context.CancelFunc
	mx       sync.RWMutex
}

// NewGalleryList returns a card grid of gallery images.
func NewGalleryList(app *App, rid *dao.ResourceID) *CardList[render.GalleryItem] {
	return newCardList(app, rid,
		render.NewGalleryItem,
		func(it render.GalleryItem) string { return it.Card() },
		func(it render.GalleryItem) string { return it.ID },
	)
}

// NewNoticeList returns a card grid of dated documents. dateField and
// fileField name the record fields carrying the date and the attachment.
func NewNoticeList(app *App, rid *dao.ResourceID, dateField, fileField string) *CardList[render.NoticeItem] {
	return newCardList(app, rid,
		func(baseURL string) func(model1.Row) render.NoticeItem {
			return render.NewNoticeItem(baseURL, dateField, fileField)
		},
		func(it render.NoticeItem) string { return it.Card() },
		func(it render.NoticeItem) string { return it.ID },
	)
}

func newCardList[T any](
	app *App,
	rid *dao.ResourceID,
	conv func(string) func(model1.Row) T,
	card ui.RenderFunc[T],
	id func(T) string,
) *CardList[T] {
	l := CardList[T]{
		ListView: ui.NewListView(rid.String(), card),
		app:      app,
		rid:      rid,
		convFn:   conv,
		idFn:     id,
	}
	l.SetSelectedFunc(l.open)

	return &l
}

// Init resolves the resource accessor.
func (l *CardList[T]) Init(ctx context.Context) error {
	acc, err := dao.AccessorFor(l.app.GetFactory(), l.rid)
	if err != nil {
		return err
	}
	l.accessor = acc
	l.SetQueue(l.app.Queue)

	return l.ListView.Init(ctx)
}

// Start builds a fresh model and fetches the first page.
func (l *CardList[T]) Start() {
	l.Stop()

	cfg := l.app.Config()
	opts := model.DefaultListOptions()
	opts.Log = l.app.Logger().With(zap.Stringer("rid", l.rid))
	if cfg != nil {
		opts.Limit = cfg.Portalctl.PageSize()
		opts.Debounce = cfg.SearchDebounce()
	}
	m, err := model.NewListData(dao.FetchAs(l.accessor, l.convFn(l.mediaURL())), opts)
	if err != nil {
		l.app.Flash().Err(err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mx.Lock()
	l.model, l.cancelFn = m, cancel
	search, page := l.search, l.page
	l.mx.Unlock()

	l.SetModel(m)
	if err := m.StartAt(ctx, page, search); err != nil {
		l.app.Flash().Err(err)
	}
}

// Stop cancels the model and remembers the search and page.
func (l *CardList[T]) Stop() {
	l.mx.Lock()
	m, cancel := l.model, l.cancelFn
	l.cancelFn = nil
	if m != nil {
		s := m.Peek()
		l.search, l.page = s.Search, s.Page
	}
	l.mx.Unlock()

	if cancel != nil {
		cancel()
	}
	if m != nil {
		m.Stop()
	}
}

// SetSearch updates the search term.
func (l *CardList[T]) SetSearch(s string) {
	l.mx.Lock()
	l.search = s
	m := l.model
	l.mx.Unlock()

	if m != nil {
		m.SetSearch(s)
	}
}

// Search returns the current search term.
func (l *CardList[T]) Search() string {
	l.mx.RLock()
	m, s := l.model, l.search
	l.mx.RUnlock()

	if m != nil {
		return m.Search()
	}

	return s
}

func (l *CardList[T]) mediaURL() string {
	if f := l.app.GetFactory(); f != nil && f.Client() != nil {
		return f.Client().MediaURL()
	}

	return ""
}

func (l *CardList[T]) open(it T) {
	id := l.idFn(it)
	if id == "" {
		return
	}
	d := NewDetails(l.app, l.rid, l.accessor, id)
	f := l.app.GetFactory()
	d.SetEditable(f != nil && !f.ReadOnly() && !l.rid.IsPublic())
	if err := d.Init(context.Background()); err != nil {
		l.app.Flash().Err(err)
		return
	}
	l.app.Push(d)
}
