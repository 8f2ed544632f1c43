package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// defaultProfilesDir is set by the config package during initialization.
// This avoids a circular import between data and config packages.
var defaultProfilesDir string

// SetDefaultProfilesDir sets the default profiles directory.
// This should be called by the config package during initialization.
func SetDefaultProfilesDir(dir string) {
	defaultProfilesDir = dir
}

// Dir manages the per profile configuration directories.
type Dir struct {
	root string
	mx   sync.RWMutex
}

// NewDir creates a new Dir using the default profiles directory.
// Note: SetDefaultProfilesDir must be called before using NewDir.
func NewDir() *Dir {
	return &Dir{
		root: defaultProfilesDir,
	}
}

// NewDirAt creates a new Dir at the specified root path.
func NewDirAt(root string) *Dir {
	return &Dir{
		root: root,
	}
}

// ProfilePath returns the path to a profile's configuration directory.
// Returns: {root}/{profile}/
func (d *Dir) ProfilePath(profile string) string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return filepath.Join(d.root, SanitizeFileName(profile))
}

// ConfigPath returns the path to a profile's config.yaml file.
func (d *Dir) ConfigPath(profile string) string {
	return filepath.Join(d.ProfilePath(profile), "config.yaml")
}

// Load loads the configuration for a profile.
// Creates a new default config if the file doesn't exist.
func (d *Dir) Load(profile string) (*Config, error) {
	ctx := NewProfileContext(profile)
	cfg := NewConfig(ctx)

	if err := LoadYAML(d.ConfigPath(profile), ctx); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.Validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load profile config: %w", err)
	}
	ctx.ProfileName = profile
	ctx.Validate()

	return cfg, nil
}

// Save saves the configuration of a profile.
func (d *Dir) Save(cfg *Config) error {
	if cfg == nil || cfg.GetContext() == nil {
		return fmt.Errorf("cannot save nil config or context")
	}
	ctx := cfg.GetContext()

	if _, err := EnsureDirPath(d.ProfilePath(ctx.ProfileName), 0o700); err != nil {
		return fmt.Errorf("failed to ensure profile directory: %w", err)
	}
	if err := SaveYAML(d.ConfigPath(ctx.ProfileName), ctx); err != nil {
		return fmt.Errorf("failed to save profile config: %w", err)
	}

	return nil
}

// ListProfiles returns the names of profiles that have saved configs.
func (d *Dir) ListProfiles() ([]string, error) {
	d.mx.RLock()
	root := d.root
	d.mx.RUnlock()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	var profiles []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, entry.Name(), "config.yaml")); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		profiles = append(profiles, entry.Name())
	}
	sort.Strings(profiles)

	return profiles, nil
}
