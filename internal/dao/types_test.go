package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceIDParse(t *testing.T) {
	uu := map[string]struct {
		s   string
		e   ResourceID
		err bool
	}{
		"ok":       {s: "admin/menu", e: MenuRID},
		"no-slash": {s: "menu", err: true},
		"empty":    {s: "admin/", err: true},
		"deep":     {s: "a/b/c", err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var rid ResourceID
			err := rid.Parse(u.s)
			if u.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, u.e, rid)
		})
	}
}

func TestResourceIDPaths(t *testing.T) {
	assert.Equal(t, "admin/gallery-categories", GalleryCategoryRID.Path())
	assert.Equal(t, "gallery_categories", GalleryCategoryRID.Table())
	assert.Equal(t, "misc/widgets", ResourceID{Group: "misc", Resource: "widget"}.Path())
	assert.True(t, NoticeRID.IsPublic())
	assert.False(t, MenuRID.IsPublic())
}
