package config

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/govportal/portalctl/internal/config/data"
)

// Aliases represents the alias configuration.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex      `yaml:"-"`
}

// DefaultAliases are the built-in aliases for portal resources.
var DefaultAliases = map[string]string{
	// Site structure
	"menu":    "admin/menu",
	"m":       "admin/menu",
	"slider":  "admin/slider",
	"sl":      "admin/slider",
	"social":  "admin/social",
	"setting": "admin/setting",
	"set":     "admin/setting",

	// Gallery
	"gallery-category": "gallery/category",
	"gc":               "gallery/category",
	"gallery-image":    "gallery/image",
	"gi":               "gallery/image",
	"gallery":          "public/gallery",

	// Content
	"faq":         "admin/faq",
	"pfaq":        "public/faq",
	"notice":      "public/notice",
	"n":           "public/notice",
	"opportunity": "public/opportunity",
	"jobs":        "public/opportunity",

	"ctx": "profile",
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := Aliases{
		Alias: make(map[string]string, len(DefaultAliases)),
	}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}

	return &a
}

// Load loads aliases from the default config file.
func (a *Aliases) Load() error {
	return a.LoadFrom(AppAliasesFile)
}

// LoadFrom merges the aliases stored at path over the current ones.
// A missing file keeps the defaults.
func (a *Aliases) LoadFrom(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded Aliases
	if err := data.LoadYAML(path, &loaded); err != nil {
		return err
	}

	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range loaded.Alias {
		a.Alias[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	return nil
}

// Resolve returns the command an alias stands for.
func (a *Aliases) Resolve(alias string) (string, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	cmd, ok := a.Alias[strings.ToLower(alias)]
	return cmd, ok
}

// Get returns the resource for an alias, or the original if not found.
func (a *Aliases) Get(alias string) string {
	if cmd, ok := a.Resolve(alias); ok {
		return cmd
	}
	return alias
}

// Set sets an alias.
func (a *Aliases) Set(alias, cmd string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[alias] = cmd
}

// Names returns all alias names sorted.
func (a *Aliases) Names() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	nn := make([]string, 0, len(a.Alias))
	for k := range a.Alias {
		nn = append(nn, k)
	}
	sort.Strings(nn)

	return nn
}

// ShortNames returns the aliases pointing at cmd, shortest first.
func (a *Aliases) ShortNames(cmd string) []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	var nn []string
	for k, v := range a.Alias {
		if v == cmd {
			nn = append(nn, k)
		}
	}
	sort.Slice(nn, func(i, j int) bool {
		if len(nn[i]) != len(nn[j]) {
			return len(nn[i]) < len(nn[j])
		}
		return nn[i] < nn[j]
	})

	return nn
}
