package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageBarText(t *testing.T) {
	uu := map[string]struct {
		page, total int
		e           string
	}{
		"single": {
			page: 1, total: 1,
			e: "[gray::d]◀ Prev[-::-]  [white::b]Page 1 of 1[-::-]  [gray::d]Next ▶[-::-]",
		},
		"first": {
			page: 1, total: 3,
			e: "[gray::d]◀ Prev[-::-]  [white::b]Page 1 of 3[-::-]  [aqua::b]Next ▶[-::-]",
		},
		"middle": {
			page: 2, total: 3,
			e: "[aqua::b]◀ Prev[-::-]  [white::b]Page 2 of 3[-::-]  [aqua::b]Next ▶[-::-]",
		},
		"last": {
			page: 3, total: 3,
			e: "[aqua::b]◀ Prev[-::-]  [white::b]Page 3 of 3[-::-]  [gray::d]Next ▶[-::-]",
		},
		"zeroPages": {
			page: 1, total: 0,
			e: "[gray::d]◀ Prev[-::-]  [white::b]Page 1 of 1[-::-]  [gray::d]Next ▶[-::-]",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, PageBarText(u.page, u.total))
		})
	}
}

func TestPageBarUpdate(t *testing.T) {
	p := NewPageBar()
	p.Update(4, 7)

	page, total := p.Page()
	assert.Equal(t, 4, page)
	assert.Equal(t, 7, total)
	assert.Equal(t, "◀ Prev  Page 4 of 7  Next ▶", p.GetText(true))
}
