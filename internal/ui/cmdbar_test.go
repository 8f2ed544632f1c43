package ui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func typeText(c *CmdBar, s string) {
	for _, r := range s {
		c.keyboard(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestCmdBarSuggest(t *testing.T) {
	c := NewCmdBar()
	c.SetCommands([]string{"notice", "n", "gallery-image", "gallery", "gallery-category", "menu", "m"})

	assert.Equal(t, []string{"gallery", "gallery-image", "gallery-category"}, c.Suggest("gal"))
	assert.Equal(t, []string{"notice"}, c.Suggest("N"))
	assert.Nil(t, c.Suggest(""))
}

func TestCmdBarCommand(t *testing.T) {
	var ran string
	c := NewCmdBar()
	c.SetCommands([]string{"notice", "opportunity"})
	c.SetCommandFn(func(s string) { ran = s })

	c.Activate(ModeCommand, "")
	assert.True(t, c.IsActive())
	typeText(c, "no")
	c.keyboard(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	assert.Equal(t, "notice", c.GetText())

	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, "notice", ran)
	assert.False(t, c.IsActive())
	assert.Equal(t, ModeNormal, c.Mode())
}

func TestCmdBarSearch(t *testing.T) {
	var (
		terms     []string
		cancelled bool
	)
	c := NewCmdBar()
	c.SetSearchFn(func(s string) { terms = append(terms, s) })
	c.SetCancelFn(func() { cancelled = true })

	c.Activate(ModeSearch, "ten")
	typeText(c, "d")
	c.keyboard(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, []string{"tend", "ten"}, terms)

	c.keyboard(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))
	assert.True(t, cancelled)
	assert.False(t, c.IsActive())
}

func TestCmdBarInactive(t *testing.T) {
	c := NewCmdBar()
	evt := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)

	assert.Equal(t, evt, c.keyboard(evt))
}
