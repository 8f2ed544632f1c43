package model

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ListSnapshot is the state handed to list listeners.
type ListSnapshot[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
	Search     string
	Loading    bool
	Err        error
}

// CanPrev reports whether a previous page exists.
func (s ListSnapshot[T]) CanPrev() bool {
	return s.Page > 1
}

// CanNext reports whether a next page exists.
func (s ListSnapshot[T]) CanNext() bool {
	return s.Page < s.TotalPages
}

// ListOptions configures a list model.
type ListOptions struct {
	Navigate bool
	Search   bool
	Limit    int
	Debounce time.Duration
	Log      *zap.Logger
}

// DefaultListOptions returns the default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Navigate: true,
		Search:   true,
		Debounce: DefaultDebounce,
	}
}

// ListData drives a paginated list rendered by a caller supplied function.
type ListData[T any] struct {
	pager     *Pager[T]
	notifyMx  sync.Mutex
	mx        sync.RWMutex
	state     PagerState[T]
	listeners []ListListener[T]
}

// NewListData returns a new list model.
func NewListData[T any](fetch FetchFunc[T], opts ListOptions) (*ListData[T], error) {
	if fetch == nil {
		return nil, ErrNoFetcher
	}

	var l ListData[T]
	l.pager = NewPager(fetch, PagerOptions(opts), l.pagerChanged)
	l.state = l.pager.State()

	return &l, nil
}

// AddListener registers a list listener.
func (l *ListData[T]) AddListener(li ListListener[T]) {
	l.mx.Lock()
	defer l.mx.Unlock()

	l.listeners = append(l.listeners, li)
}

// RemoveListener unregisters a list listener.
func (l *ListData[T]) RemoveListener(li ListListener[T]) {
	l.mx.Lock()
	defer l.mx.Unlock()

	for i, lis := range l.listeners {
		if lis == li {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

// Start issues the initial fetch.
func (l *ListData[T]) Start(ctx context.Context) error {
	return l.pager.Start(ctx)
}

// StartAt issues the initial fetch for a restored page and search.
func (l *ListData[T]) StartAt(ctx context.Context, page int, search string) error {
	return l.pager.StartAt(ctx, page, search)
}

// Stop cancels pending work.
func (l *ListData[T]) Stop() {
	l.pager.Stop()
}

// Wait blocks until in flight fetches have returned.
func (l *ListData[T]) Wait() {
	l.pager.Wait()
}

// SetSearch updates the search term.
func (l *ListData[T]) SetSearch(s string) bool {
	return l.pager.SetSearch(s)
}

// Search returns the current search term.
func (l *ListData[T]) Search() string {
	return l.pager.Search()
}

// NextPage moves to the next page.
func (l *ListData[T]) NextPage() bool {
	return l.pager.Next()
}

// PrevPage moves to the previous page.
func (l *ListData[T]) PrevPage() bool {
	return l.pager.Prev()
}

// GoTo moves to the given page.
func (l *ListData[T]) GoTo(n int) bool {
	return l.pager.GoTo(n)
}

// Refresh reloads the current page.
func (l *ListData[T]) Refresh() {
	l.pager.Refresh()
}

// Retry reloads after a failure.
func (l *ListData[T]) Retry() {
	l.pager.Retry()
}

// Peek returns the current snapshot.
func (l *ListData[T]) Peek() ListSnapshot[T] {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return l.snapshotLocked()
}

func (l *ListData[T]) pagerChanged(st PagerState[T]) {
	l.notifyMx.Lock()
	defer l.notifyMx.Unlock()

	l.mx.Lock()
	if st.Rev <= l.state.Rev {
		l.mx.Unlock()
		return
	}
	l.state = st
	snap := l.snapshotLocked()
	ll := make([]ListListener[T], len(l.listeners))
	copy(ll, l.listeners)
	l.mx.Unlock()

	for _, li := range ll {
		li.ListDataChanged(snap)
	}
}

func (l *ListData[T]) snapshotLocked() ListSnapshot[T] {
	items := make([]T, len(l.state.Data))
	copy(items, l.state.Data)
	s := ListSnapshot[T]{
		Items:      items,
		Page:       l.state.Page,
		TotalPages: max(l.state.TotalPages, 1),
		Total:      l.state.Total,
		Search:     l.state.Search,
		Loading:    l.state.Loading(),
	}
	if l.state.Status == StatusFailed {
		s.Err = l.state.Err
	}

	return s
}
