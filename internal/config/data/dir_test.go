package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirRoundTrip(t *testing.T) {
	d := NewDirAt(t.TempDir())

	cfg, err := d.Load("staging")
	require.NoError(t, err)
	ctx := cfg.GetContext()
	assert.False(t, ctx.HasReadOnly())
	assert.Equal(t, DefaultView, ctx.GetView().Active)

	ctx.SetReadOnly(true)
	ctx.SetView(&View{Active: "notice"})
	ctx.FeatureGates.Merge(FeatureGates{BulkDelete: true})
	require.NoError(t, d.Save(cfg))

	cfg, err = d.Load("staging")
	require.NoError(t, err)
	ctx = cfg.GetContext()
	assert.True(t, ctx.IsReadOnly())
	assert.Equal(t, "notice", ctx.GetView().Active)
	assert.True(t, ctx.Gates().BulkDelete)
	assert.False(t, ctx.Gates().S3Export)

	names, err := d.ListProfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"staging"}, names)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "prod-eu", SanitizeFileName("prod:eu"))
	assert.Equal(t, "a-b", SanitizeFileName("a/ b"))
}

func TestDirSaveNil(t *testing.T) {
	assert.Error(t, NewDirAt(t.TempDir()).Save(nil))
}
