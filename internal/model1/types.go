package model1

import (
	"math"
)

const (
	// NAValue is the placeholder rendered for empty cells.
	NAValue = "-"

	// DefaultLimit is the page size used when navigation is enabled.
	DefaultLimit = 10

	// UnboundedLimit is the page size used when navigation is disabled.
	UnboundedLimit = math.MaxInt32

	// CSVFileName is the name of an exported table.
	CSVFileName = "table_export.csv"

	// CSVContentType is the MIME type of an exported table.
	CSVContentType = "text/csv;charset=utf-8;"
)

// Query represents a page request handed to a fetch adapter.
type Query struct {
	Page   int
	Search string
	Limit  int
}

// Offset returns the zero based index of the first row of the page.
func (q *Query) Offset() int {
	if q == nil || q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Page represents one page of data returned by a fetch adapter.
type Page[T any] struct {
	Data  []T
	Total int
}

// TotalPages returns the number of pages for total items, never less than one.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return max(1, n)
}

// CanPrev reports whether a previous page exists.
func CanPrev(page int) bool {
	return page > 1
}

// CanNext reports whether a next page exists.
func CanNext(page, totalPages int) bool {
	return page < totalPages
}

// ClampPage pins page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(max(page, 1), totalPages)
}

// DecoratorFunc decorates a string.
type DecoratorFunc func(string) string
