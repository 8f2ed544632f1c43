package dao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/govportal/portalctl/internal/model1"
)

func TestPageCache(t *testing.T) {
	now := time.Now()
	c := NewPageCache(time.Second)
	c.now = func() time.Time { return now }

	k1 := PageKey(&MenuRID, &model1.Query{Page: 1, Limit: 10})
	k2 := PageKey(&MenuRID, nil)
	k3 := PageKey(&FAQRID, &model1.Query{Page: 2, Limit: 10, Search: "fee"})
	assert.Equal(t, "admin/menu:1:10:", k1)
	assert.Equal(t, "admin/menu:all", k2)
	assert.Equal(t, "admin/faq:2:10:fee", k3)

	c.Set(k1, model1.Page[model1.Row]{Data: []model1.Row{{"id": 1}}, Total: 1})
	c.Set(k2, model1.Page[model1.Row]{})
	c.Set(k3, model1.Page[model1.Row]{})

	p, ok := c.Get(k1)
	assert.True(t, ok)
	assert.Equal(t, 1, p.Total)
	p.Data[0]["id"] = 2
	p, _ = c.Get(k1)
	assert.Equal(t, 1, p.Data[0]["id"])

	assert.Equal(t, 2, c.InvalidatePrefix("admin/menu:"))
	assert.Equal(t, 1, c.Len())

	now = now.Add(2 * time.Second)
	_, ok = c.Get(k3)
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestPageCacheEviction(t *testing.T) {
	now := time.Now()
	c := NewPageCache(time.Minute)
	c.maxEntries = 2
	c.now = func() time.Time { return now }

	c.Set("a", model1.Page[model1.Row]{})
	now = now.Add(time.Millisecond)
	c.Set("b", model1.Page[model1.Row]{})
	now = now.Add(time.Millisecond)
	c.Set("c", model1.Page[model1.Row]{})

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestPageCacheDisabled(t *testing.T) {
	c := NewPageCache(0)
	c.Set("a", model1.Page[model1.Row]{Total: 3})

	_, ok := c.Get("a")
	assert.False(t, ok)

	var nilCache *PageCache
	_, ok = nilCache.Get("a")
	assert.False(t, ok)
}
