package model

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/portalctl/internal/model1"
)

type notice struct {
	ID    int
	Title string
}

func noticeFetcher(nn []notice, fail *bool) FetchFunc[notice] {
	return func(_ context.Context, q *model1.Query) (model1.Page[notice], error) {
		if fail != nil && *fail {
			return model1.Page[notice]{}, errors.New("unavailable")
		}
		if q == nil {
			return model1.Page[notice]{Data: nn, Total: len(nn)}, nil
		}
		start := min(q.Offset(), len(nn))
		end := min(start+q.Limit, len(nn))
		return model1.Page[notice]{Data: nn[start:end], Total: len(nn)}, nil
	}
}

func makeNotices(n int) []notice {
	nn := make([]notice, 0, n)
	for i := range n {
		nn = append(nn, notice{ID: i + 1, Title: "notice"})
	}
	return nn
}

func TestListDataPages(t *testing.T) {
	opts := DefaultListOptions()
	opts.Debounce = 0
	l, err := NewListData(noticeFetcher(makeNotices(14), nil), opts)
	require.NoError(t, err)
	rec := new(listRecorder[notice])
	l.AddListener(rec)

	require.NoError(t, l.Start(context.Background()))
	l.Wait()
	defer l.Stop()

	snap := l.Peek()
	assert.Len(t, snap.Items, 10)
	assert.Equal(t, 2, snap.TotalPages)
	assert.False(t, snap.CanPrev())
	assert.True(t, snap.CanNext())

	assert.True(t, l.NextPage())
	l.Wait()
	snap = l.Peek()
	assert.Len(t, snap.Items, 4)
	assert.Equal(t, 11, snap.Items[0].ID)
	assert.False(t, snap.CanNext())

	last := rec.lastSnap()
	assert.False(t, last.Loading)
	assert.Equal(t, 2, last.Page)
	assert.GreaterOrEqual(t, rec.count(), 4)
}

func TestListDataSearch(t *testing.T) {
	opts := DefaultListOptions()
	opts.Debounce = 0
	l, err := NewListData(noticeFetcher(makeNotices(30), nil), opts)
	require.NoError(t, err)
	require.NoError(t, l.Start(context.Background()))
	l.Wait()
	defer l.Stop()

	l.GoTo(3)
	l.Wait()
	assert.True(t, l.SetSearch("notice"))
	l.Wait()

	assert.Equal(t, "notice", l.Search())
	assert.Equal(t, 1, l.Peek().Page)
}

func TestListDataStartAt(t *testing.T) {
	opts := DefaultListOptions()
	opts.Debounce = 0
	l, err := NewListData(noticeFetcher(makeNotices(25), nil), opts)
	require.NoError(t, err)
	require.NoError(t, l.StartAt(context.Background(), 2, "notice"))
	l.Wait()
	defer l.Stop()

	snap := l.Peek()
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, "notice", snap.Search)
	assert.Equal(t, 11, snap.Items[0].ID)
}

func TestListDataFailure(t *testing.T) {
	fail := false
	opts := DefaultListOptions()
	opts.Debounce = 0
	l, err := NewListData(noticeFetcher(makeNotices(3), &fail), opts)
	require.NoError(t, err)
	require.NoError(t, l.Start(context.Background()))
	l.Wait()
	defer l.Stop()

	fail = true
	l.Refresh()
	l.Wait()

	snap := l.Peek()
	assert.Error(t, snap.Err)
	assert.Len(t, snap.Items, 3)

	fail = false
	l.Retry()
	l.Wait()
	assert.NoError(t, l.Peek().Err)
}

func TestListDataNilFetcher(t *testing.T) {
	_, err := NewListData[notice](nil, DefaultListOptions())
	assert.ErrorIs(t, err, ErrNoFetcher)
}

type listRecorder[T any] struct {
	mx    sync.Mutex
	snaps []ListSnapshot[T]
}

func (r *listRecorder[T]) ListDataChanged(s ListSnapshot[T]) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *listRecorder[T]) count() int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return len(r.snaps)
}

func (r *listRecorder[T]) lastSnap() ListSnapshot[T] {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.snaps[len(r.snaps)-1]
}
