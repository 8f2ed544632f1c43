package config

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/govportal/portalctl/internal/config/data"
)

// HotKey binds a shortcut to a command.
type HotKey struct {
	ShortCut    string `yaml:"shortCut"`
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
}

// HotKeys represents the hotkeys configuration.
type HotKeys struct {
	HotKey map[string]HotKey `yaml:"hotKeys"`
	mx     sync.RWMutex      `yaml:"-"`
}

// NewHotKeys creates an empty HotKeys configuration.
func NewHotKeys() *HotKeys {
	return &HotKeys{
		HotKey: make(map[string]HotKey),
	}
}

// Load loads hotkeys from the default config file.
func (h *HotKeys) Load() error {
	return h.LoadFrom(AppHotkeysFile)
}

// LoadFrom loads hotkeys from path. Entries missing a shortcut or a command
// are dropped.
func (h *HotKeys) LoadFrom(path string) error {
	h.mx.Lock()
	defer h.mx.Unlock()

	h.HotKey = make(map[string]HotKey)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := data.LoadYAML(path, h); err != nil {
		return err
	}
	for name, hk := range h.HotKey {
		hk.ShortCut, hk.Command = strings.TrimSpace(hk.ShortCut), strings.TrimSpace(hk.Command)
		if hk.ShortCut == "" || hk.Command == "" {
			delete(h.HotKey, name)
			continue
		}
		h.HotKey[name] = hk
	}

	return nil
}

// Get returns a hotkey by name, or nil if not found.
func (h *HotKeys) Get(name string) *HotKey {
	h.mx.RLock()
	defer h.mx.RUnlock()

	hk, ok := h.HotKey[name]
	if !ok {
		return nil
	}

	return &hk
}

// Names returns all hotkey names.
func (h *HotKeys) Names() []string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	names := make([]string, 0, len(h.HotKey))
	for name := range h.HotKey {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
