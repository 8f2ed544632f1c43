package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/config/data"
)

const testProfiles = `[default]
base_url = http://ini-default/api
token = ini-token

[staging]
base_url = http://staging/api
media_url = http://cdn.staging
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	return path
}

func newTestConfig(t *testing.T, yaml string) (*Config, *client.ProfileManager) {
	t.Helper()

	dir := t.TempDir()
	m, err := client.NewProfileManager(writeFile(t, dir, "profiles.ini", testProfiles))
	require.NoError(t, err)

	cfg := NewConfig(m)
	if yaml != "" {
		require.NoError(t, cfg.Load(writeFile(t, dir, "portalctl.yaml", yaml), true))
	}
	cfg.Portalctl.setDir(data.NewDirAt(filepath.Join(dir, "profiles")))

	return cfg, m
}

func TestPortalctlValidate(t *testing.T) {
	p := NewPortalctl()
	p.UI.PageSize = -3
	p.UI.SearchDebounce = "soon"
	p.APITimeout = "0s"
	p.DefaultView = ""
	p.Validate()

	assert.Equal(t, DefaultPageSize, p.PageSize())
	assert.Equal(t, DefaultSearchDebounce, p.SearchDebounce())
	d, err := p.GetAPITimeout()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPITimeout, d)
	assert.Equal(t, DefaultView, p.DefaultView)
}

func TestConfigLoad(t *testing.T) {
	cfg, _ := newTestConfig(t, `
portalctl:
  apiURL: http://yaml/api
  ui:
    pageSize: 25
    searchDebounce: 100ms
  export:
    s3Bucket: dumps
`)

	p := cfg.Portalctl
	assert.Equal(t, "http://yaml/api", p.APIURL)
	assert.Equal(t, 25, p.PageSize())
	assert.Equal(t, 100*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, "dumps", p.Export.S3Bucket)

	assert.Error(t, NewConfig(nil).Load(filepath.Join(t.TempDir(), "nope.yaml"), true))
	assert.NoError(t, NewConfig(nil).Load(filepath.Join(t.TempDir(), "nope.yaml"), false))
}

func TestConfigRefine(t *testing.T) {
	uu := map[string]struct {
		flags    func(*data.Flags)
		env      Env
		apiURL   string
		mediaURL string
		token    string
		profile  string
	}{
		"profile-over-yaml": {
			apiURL:   "http://ini-default/api",
			mediaURL: "http://ini-default/api",
			token:    "ini-token",
			profile:  "default",
		},
		"flag-profile": {
			flags:    func(f *data.Flags) { *f.Profile = "staging" },
			apiURL:   "http://staging/api",
			mediaURL: "http://cdn.staging",
			profile:  "staging",
		},
		"env-profile": {
			env:      Env{Profile: "staging", Token: "env-token"},
			apiURL:   "http://staging/api",
			mediaURL: "http://cdn.staging",
			token:    "env-token",
			profile:  "staging",
		},
		"env-over-profile": {
			env:      Env{APIURL: "http://env/api"},
			apiURL:   "http://env/api",
			mediaURL: "http://ini-default/api",
			token:    "ini-token",
			profile:  "default",
		},
		"flag-over-env": {
			flags: func(f *data.Flags) {
				*f.APIURL = "http://flag/api"
				*f.Token = "flag-token"
			},
			env:      Env{APIURL: "http://env/api", Token: "env-token"},
			apiURL:   "http://flag/api",
			mediaURL: "http://ini-default/api",
			token:    "flag-token",
			profile:  "default",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			cfg, _ := newTestConfig(t, "portalctl:\n  apiURL: http://yaml/api\n")
			flags := data.NewFlags()
			if u.flags != nil {
				u.flags(flags)
			}

			require.NoError(t, cfg.Refine(flags, cfg.Settings(), u.env))
			cc := cfg.ClientConfig()
			assert.Equal(t, u.apiURL, cc.BaseURL)
			assert.Equal(t, u.mediaURL, cc.MediaURL)
			assert.Equal(t, u.token, cc.Token)
			assert.Equal(t, u.profile, cc.Profile)
			assert.Equal(t, client.DefaultDataPath, cc.DataPath)
		})
	}
}

func TestConfigRefineUnknownProfile(t *testing.T) {
	cfg, _ := newTestConfig(t, "")
	flags := data.NewFlags()
	*flags.Profile = "prod"

	err := cfg.Refine(flags, cfg.Settings(), Env{})
	assert.ErrorIs(t, err, client.ErrInvalidProfile)
}

func TestConfigRefineNoSettings(t *testing.T) {
	cfg := NewConfig(nil)
	cfg.Portalctl.APIURL = "http://yaml/api"
	cfg.Portalctl.setDir(data.NewDirAt(t.TempDir()))

	require.NoError(t, cfg.Refine(data.NewFlags(), nil, Env{}))
	assert.Equal(t, "http://yaml/api", cfg.ClientConfig().BaseURL)
	assert.Equal(t, client.DefaultProfile, cfg.Portalctl.ActiveProfile())
}

func TestConfigReadOnly(t *testing.T) {
	cfg, _ := newTestConfig(t, "")
	require.NoError(t, cfg.Refine(data.NewFlags(), cfg.Settings(), Env{}))
	assert.False(t, cfg.Portalctl.IsReadOnly())

	ctx := cfg.Portalctl.ActiveConfig().GetContext()
	ctx.SetReadOnly(true)
	ctx.FeatureGates.Merge(data.FeatureGates{BulkDelete: true})
	require.NoError(t, cfg.Portalctl.SaveActive())

	flags := data.NewFlags()
	require.NoError(t, cfg.Refine(flags, cfg.Settings(), Env{}))
	assert.True(t, cfg.Portalctl.IsReadOnly())
	assert.True(t, cfg.Portalctl.Gates().BulkDelete)

	*flags.Write = true
	cfg.Portalctl.Override(flags)
	assert.False(t, cfg.Portalctl.ReadOnly)
}

func TestLoadEnv(t *testing.T) {
	for _, k := range []string{"PORTALCTL_API_URL", "PORTALCTL_TOKEN"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("PORTALCTL_MEDIA_URL", "http://process/media")

	dir := t.TempDir()
	dotenv := writeFile(t, dir, ".env", "PORTALCTL_API_URL=http://dotenv/api\nPORTALCTL_MEDIA_URL=http://dotenv/media\n")

	env, err := LoadEnv(dotenv, filepath.Join(dir, "missing.env"), "")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv/api", env.APIURL)
	assert.Equal(t, "http://process/media", env.MediaURL)
	assert.Empty(t, env.Token)
}

func TestAliases(t *testing.T) {
	a := NewAliases()
	assert.Equal(t, "admin/menu", a.Get("M"))
	assert.Equal(t, "bozo", a.Get("bozo"))
	assert.Equal(t, []string{"n", "notice"}, a.ShortNames("public/notice"))

	path := writeFile(t, t.TempDir(), "aliases.yaml", "aliases:\n  Jobs: admin/faq\n  nt: public/notice\n")
	require.NoError(t, a.LoadFrom(path))

	cmd, ok := a.Resolve("jobs")
	assert.True(t, ok)
	assert.Equal(t, "admin/faq", cmd)
	assert.Contains(t, a.Names(), "nt")
	require.NoError(t, a.LoadFrom(filepath.Join(t.TempDir(), "none.yaml")))
}

func TestHotKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hotkeys.yaml", `
hotKeys:
  notices:
    shortCut: Shift-1
    description: Notices
    command: notice
  broken:
    shortCut: ""
    command: menu
`)

	h := NewHotKeys()
	require.NoError(t, h.LoadFrom(path))
	assert.Equal(t, []string{"notices"}, h.Names())
	hk := h.Get("notices")
	require.NotNil(t, hk)
	assert.Equal(t, "notice", hk.Command)
	assert.Nil(t, h.Get("broken"))

	require.NoError(t, h.LoadFrom(filepath.Join(t.TempDir(), "none.yaml")))
	assert.Empty(t, h.Names())
}
