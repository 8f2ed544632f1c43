package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/model1"
)

// ErrStopped is returned when a stopped pager is restarted.
var ErrStopped = errors.New("pager stopped")

// FetchFunc fetches one page of items. A nil query asks for every item.
type FetchFunc[T any] func(ctx context.Context, q *model1.Query) (model1.Page[T], error)

// Status tracks the pager load cycle.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FetchError wraps a failed fetch with the query that issued it.
type FetchError struct {
	Query *model1.Query
	Err   error
}

func (e *FetchError) Error() string {
	if e.Query == nil {
		return fmt.Sprintf("fetch all: %v", e.Err)
	}
	if e.Query.Search != "" {
		return fmt.Sprintf("fetch page %d (search %q): %v", e.Query.Page, e.Query.Search, e.Err)
	}
	return fmt.Sprintf("fetch page %d: %v", e.Query.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PagerState is a snapshot of a pager.
type PagerState[T any] struct {
	// Rev increases on every state change.
	Rev uint64

	// Seq is the latest issued request.
	Seq        uint64
	Page       int
	TotalPages int
	Total      int
	Search     string
	Data       []T
	Status     Status
	Err        error

	// Fresh is set when Data was just replaced by a successful fetch.
	Fresh bool
}

// Loading returns true while a request is in flight.
func (s PagerState[T]) Loading() bool {
	return s.Status == StatusLoading
}

// PagerOptions configures a pager.
type PagerOptions struct {
	// Navigate enables server side pagination.
	Navigate bool

	// Search enables queries. When off the fetch receives a nil query.
	Search bool

	// Limit overrides the page size when navigating.
	Limit int

	// Debounce delays search driven fetches.
	Debounce time.Duration

	Log *zap.Logger
}

type request struct {
	seq   uint64
	query *model1.Query
	ctx   context.Context
}

// Pager drives page and search state against a fetch adapter. Each request
// is tagged with a sequence number and only the latest one may land.
type Pager[T any] struct {
	fetch    FetchFunc[T]
	onChange func(PagerState[T])
	log      *zap.Logger
	debounce *Debouncer
	limit    int
	search   bool

	mx         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	reqCancel  context.CancelFunc
	page       int
	query      string
	total      int
	data       []T
	status     Status
	err        error
	seq        uint64
	rev        uint64
	started    bool
	stopped    bool
	inflight   sync.WaitGroup
	lastIssued *model1.Query
}

// NewPager returns a new pager. onChange receives every state change outside
// of the pager lock.
func NewPager[T any](fetch FetchFunc[T], opts PagerOptions, onChange func(PagerState[T])) *Pager[T] {
	limit := model1.UnboundedLimit
	if opts.Navigate && opts.Search {
		limit = model1.DefaultLimit
		if opts.Limit > 0 {
			limit = opts.Limit
		}
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if onChange == nil {
		onChange = func(PagerState[T]) {}
	}

	return &Pager[T]{
		fetch:    fetch,
		onChange: onChange,
		log:      log,
		debounce: NewDebouncer(opts.Debounce),
		limit:    limit,
		search:   opts.Search,
		page:     1,
	}
}

// Limit returns the page size.
func (p *Pager[T]) Limit() int {
	return p.limit
}

// SearchEnabled returns true if the pager issues queries.
func (p *Pager[T]) SearchEnabled() bool {
	return p.search
}

// Start issues the initial fetch for page one and an empty search.
func (p *Pager[T]) Start(ctx context.Context) error {
	return p.StartAt(ctx, 1, "")
}

// StartAt issues the initial fetch for the given page and search. A page past
// the end is clamped once the first response lands.
func (p *Pager[T]) StartAt(ctx context.Context, page int, search string) error {
	p.mx.Lock()
	if p.stopped {
		p.mx.Unlock()
		return ErrStopped
	}
	if p.started {
		p.mx.Unlock()
		return nil
	}
	p.started = true
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.page, p.query = max(page, 1), ""
	if p.search {
		p.query = search
	}
	req, st := p.issueLocked()
	p.mx.Unlock()

	p.emit(st)
	p.run(req)

	return nil
}

// Stop cancels pending work. No response is applied once stopped.
func (p *Pager[T]) Stop() {
	p.debounce.Stop()

	p.mx.Lock()
	defer p.mx.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
}

// Wait blocks until in flight fetches have returned.
func (p *Pager[T]) Wait() {
	p.inflight.Wait()
}

// SetSearch updates the search term, resets the page and schedules a
// debounced fetch. It returns false when nothing changed.
func (p *Pager[T]) SetSearch(s string) bool {
	if !p.search {
		return false
	}

	p.mx.Lock()
	if p.stopped || s == p.query {
		p.mx.Unlock()
		return false
	}
	p.query, p.page = s, 1
	st := p.stateLocked(false)
	p.mx.Unlock()

	p.emit(st)
	p.debounce.Trigger(p.reload)

	return true
}

// Search returns the current search term.
func (p *Pager[T]) Search() string {
	p.mx.Lock()
	defer p.mx.Unlock()

	return p.query
}

// Next moves to the next page.
func (p *Pager[T]) Next() bool {
	p.mx.Lock()
	page := p.page + 1
	p.mx.Unlock()

	return p.GoTo(page)
}

// Prev moves to the previous page.
func (p *Pager[T]) Prev() bool {
	p.mx.Lock()
	page := p.page - 1
	p.mx.Unlock()

	return p.GoTo(page)
}

// GoTo moves to page n clamped to the known page range. It returns false when
// the page did not change.
func (p *Pager[T]) GoTo(n int) bool {
	p.mx.Lock()
	if p.stopped || !p.started {
		p.mx.Unlock()
		return false
	}
	n = model1.ClampPage(n, model1.TotalPages(p.total, p.limit))
	if n == p.page {
		p.mx.Unlock()
		return false
	}
	p.page = n
	p.debounce.Cancel()
	req, st := p.issueLocked()
	p.mx.Unlock()

	p.emit(st)
	p.run(req)

	return true
}

// Refresh reissues the current query.
func (p *Pager[T]) Refresh() {
	p.debounce.Cancel()
	p.reload()
}

// Retry reissues the query that last failed.
func (p *Pager[T]) Retry() {
	p.Refresh()
}

// State returns the current state.
func (p *Pager[T]) State() PagerState[T] {
	p.mx.Lock()
	defer p.mx.Unlock()

	return p.stateLocked(false)
}

// LastQuery returns the last issued query.
func (p *Pager[T]) LastQuery() *model1.Query {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.lastIssued == nil {
		return nil
	}
	q := *p.lastIssued
	return &q
}

func (p *Pager[T]) reload() {
	p.mx.Lock()
	if p.stopped || !p.started {
		p.mx.Unlock()
		return
	}
	req, st := p.issueLocked()
	p.mx.Unlock()

	p.emit(st)
	p.run(req)
}

func (p *Pager[T]) issueLocked() (request, PagerState[T]) {
	if p.reqCancel != nil {
		p.reqCancel()
	}
	p.seq++
	ctx, cancel := context.WithCancel(p.ctx)
	p.reqCancel = cancel

	var q *model1.Query
	if p.search {
		q = &model1.Query{Page: p.page, Search: p.query, Limit: p.limit}
	}
	p.lastIssued = q
	p.status = StatusLoading

	return request{seq: p.seq, query: q, ctx: ctx}, p.stateLocked(false)
}

func (p *Pager[T]) run(req request) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.land(req, p.safeFetch(req))
	}()
}

type fetchResult[T any] struct {
	page model1.Page[T]
	err  error
}

func (p *Pager[T]) safeFetch(req request) (res fetchResult[T]) {
	defer func() {
		if e := recover(); e != nil {
			res.err = fmt.Errorf("fetch panic: %v", e)
		}
	}()
	res.page, res.err = p.fetch(req.ctx, req.query)

	return
}

func (p *Pager[T]) land(req request, res fetchResult[T]) {
	p.mx.Lock()
	if p.stopped {
		p.mx.Unlock()
		p.log.Debug("Response dropped after stop", zap.Uint64("seq", req.seq))
		return
	}
	if req.seq != p.seq {
		latest := p.seq
		p.mx.Unlock()
		p.log.Debug("Stale response discarded",
			zap.Uint64("seq", req.seq),
			zap.Uint64("latest", latest),
		)
		return
	}

	if res.err != nil {
		p.status = StatusFailed
		p.err = &FetchError{Query: req.query, Err: res.err}
		st := p.stateLocked(false)
		p.mx.Unlock()
		p.log.Warn("Fetch failed",
			zap.Error(res.err),
			zap.Int("page", st.Page),
			zap.String("search", st.Search),
			zap.Uint64("seq", req.seq),
		)
		p.emit(st)
		return
	}

	p.data, p.total, p.err = res.page.Data, max(res.page.Total, 0), nil
	if tp := model1.TotalPages(p.total, p.limit); p.page > tp {
		p.log.Debug("Page out of range, clamping",
			zap.Int("page", p.page),
			zap.Int("totalPages", tp),
		)
		p.page = tp
		next, st := p.issueLocked()
		st.Fresh = true
		p.mx.Unlock()
		p.emit(st)
		p.run(next)
		return
	}
	p.status = StatusReady
	st := p.stateLocked(true)
	p.mx.Unlock()

	p.emit(st)
}

func (p *Pager[T]) stateLocked(fresh bool) PagerState[T] {
	p.rev++
	data := make([]T, len(p.data))
	copy(data, p.data)

	return PagerState[T]{
		Rev:        p.rev,
		Seq:        p.seq,
		Page:       p.page,
		TotalPages: model1.TotalPages(p.total, p.limit),
		Total:      p.total,
		Search:     p.query,
		Data:       data,
		Status:     p.status,
		Err:        p.err,
		Fresh:      fresh,
	}
}

func (p *Pager[T]) emit(st PagerState[T]) {
	p.onChange(st)
}
