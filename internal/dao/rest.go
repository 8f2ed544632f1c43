package dao

import (
	"context"
	"fmt"
	"net/url"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/model1"
)

func init() {
	for i := range AllRIDs {
		RegisterAccessor(&AllRIDs[i], &RESTAccessor{})
	}
}

// RESTAccessor implements the DAO for portal resources over the REST API.
type RESTAccessor struct {
	Resource
}

var _ Describer = (*RESTAccessor)(nil)

func (a *RESTAccessor) conn() (client.Connection, error) {
	f := a.getFactory()
	if f == nil || f.Client() == nil {
		return nil, client.ErrNoConnection
	}
	return f.Client(), nil
}

// List retrieves one page of records.
func (a *RESTAccessor) List(ctx context.Context, q *model1.Query) (model1.Page[model1.Row], error) {
	rid := a.ResourceID()
	key := PageKey(rid, q)
	if p, ok := a.cache().Get(key); ok {
		return p, nil
	}

	conn, err := a.conn()
	if err != nil {
		return model1.Page[model1.Row]{}, err
	}
	env, err := conn.List(ctx, rid.Path(), q)
	if err != nil {
		return model1.Page[model1.Row]{}, fmt.Errorf("failed to list %s: %w", rid, err)
	}

	p := model1.Page[model1.Row]{
		Data:  make([]model1.Row, 0, len(env.Items)),
		Total: env.Total,
	}
	for _, it := range env.Items {
		p.Data = append(p.Data, model1.Row(it))
	}
	a.cache().Set(key, p)

	return p, nil
}

// Get retrieves a single record by id.
func (a *RESTAccessor) Get(ctx context.Context, id string) (model1.Row, error) {
	conn, err := a.conn()
	if err != nil {
		return nil, err
	}
	rid := a.ResourceID()
	m, err := conn.Get(ctx, a.itemPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", rid, id, err)
	}

	return model1.Row(m), nil
}

// Update applies a JSON patch to a record.
func (a *RESTAccessor) Update(ctx context.Context, id string, patch []byte) (model1.Row, error) {
	if err := a.checkWritable(); err != nil {
		return nil, err
	}
	conn, err := a.conn()
	if err != nil {
		return nil, err
	}
	defer a.invalidate()

	m, err := conn.Patch(ctx, a.itemPath(id), patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", a.ResourceID(), id, err)
	}

	return model1.Row(m), nil
}

// Delete removes a record.
func (a *RESTAccessor) Delete(ctx context.Context, id string) error {
	if err := a.checkWritable(); err != nil {
		return err
	}
	conn, err := a.conn()
	if err != nil {
		return err
	}
	defer a.invalidate()

	if err := conn.Delete(ctx, a.itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", a.ResourceID(), id, err)
	}

	return nil
}

// Describe returns a formatted description of a record.
func (a *RESTAccessor) Describe(ctx context.Context, id string) (string, error) {
	return describeWith(ctx, a, id)
}

// ToJSON returns a JSON representation of a record.
func (a *RESTAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	return jsonWith(ctx, a, id)
}

func (a *RESTAccessor) itemPath(id string) string {
	return a.ResourceID().Path() + "/" + url.PathEscape(id)
}
