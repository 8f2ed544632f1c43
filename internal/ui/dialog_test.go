package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDialog(t *testing.T) {
	pages := NewPages()
	var done bool
	d := ErrorDialog(pages, errors.New("delete 3: 500").Error()).SetDoneCallback(func() { done = true })

	d.Show()
	name, _ := pages.GetFrontPage()
	assert.Equal(t, dialogKey, name)

	d.Dismiss()
	name, _ = pages.GetFrontPage()
	assert.Empty(t, name)
	assert.True(t, done)
}
