package dao

import (
	"context"

	"github.com/govportal/portalctl/internal/model"
	"github.com/govportal/portalctl/internal/model1"
)

// FetchFor adapts an accessor into a table fetch adapter.
func FetchFor(l Lister) model.FetchFunc[model1.Row] {
	return func(ctx context.Context, q *model1.Query) (model1.Page[model1.Row], error) {
		return l.List(ctx, q)
	}
}

// FetchAs adapts an accessor into a list fetch adapter decoding rows with conv.
func FetchAs[T any](l Lister, conv func(model1.Row) T) model.FetchFunc[T] {
	return func(ctx context.Context, q *model1.Query) (model1.Page[T], error) {
		p, err := l.List(ctx, q)
		if err != nil {
			return model1.Page[T]{}, err
		}
		out := model1.Page[T]{Data: make([]T, 0, len(p.Data)), Total: p.Total}
		for _, r := range p.Data {
			out.Data = append(out.Data, conv(r))
		}

		return out, nil
	}
}
