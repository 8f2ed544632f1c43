package model

import (
	"github.com/govportal/portalctl/internal/model1"
)

const (
	// SkeletonRows is the number of placeholder rows shown while loading.
	SkeletonRows = 5

	// SkeletonCards is the number of placeholder cards shown while loading.
	SkeletonCards = 6
)

// TableListener represents a table model listener. Listeners are called in
// state order and must not call back into the model synchronously.
type TableListener interface {
	// TableLoading notifies a fetch is in flight.
	TableLoading(*model1.TableData)

	// TableNoData notifies listener no data was found.
	TableNoData(*model1.TableData)

	// TableDataChanged notifies the model data changed.
	TableDataChanged(*model1.TableData)

	// TableLoadFailed notifies the load failed. Previous rows are kept.
	TableLoadFailed(*model1.TableData)
}

// ListListener represents a list model listener.
type ListListener[T any] interface {
	// ListDataChanged notifies the list state changed.
	ListDataChanged(ListSnapshot[T])
}

// Pageable represents a model that can be paged and searched.
type Pageable interface {
	NextPage() bool
	PrevPage() bool
	GoTo(int) bool
	SetSearch(string) bool
	Search() string
	Refresh()
	Retry()
}
