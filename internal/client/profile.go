package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"gopkg.in/ini.v1"
)

// DefaultProfile names the fallback API profile.
const DefaultProfile = "default"

// ProfileSettings exposes the known API profiles.
type ProfileSettings interface {
	CurrentProfileName() string
	ProfileNames() []string
	GetProfile(name string) (*Profile, error)
	SetActiveProfile(name string) error
}

// Profile represents an API endpoint and its credentials.
type Profile struct {
	Name      string
	BaseURL   string
	MediaURL  string
	Token     string
	DataPath  string
	TotalPath string
}

// ProfileManager loads API profiles from an ini file.
type ProfileManager struct {
	path     string
	profiles map[string]*Profile
	active   string
	mx       sync.RWMutex
}

// NewProfileManager loads the profiles stored at path. A missing file yields
// an empty manager.
func NewProfileManager(path string) (*ProfileManager, error) {
	m := ProfileManager{
		path:     path,
		profiles: make(map[string]*Profile),
	}
	if path == "" {
		return &m, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &m, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to access profiles file: %w", err)
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles file: %w", err)
	}
	m.load(f)

	if _, ok := m.profiles[DefaultProfile]; ok {
		m.active = DefaultProfile
	}

	return &m, nil
}

func (m *ProfileManager) load(f *ini.File) {
	for _, sec := range f.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			if len(sec.Keys()) == 0 {
				continue
			}
			name = DefaultProfile
		}
		p := Profile{
			Name:      name,
			BaseURL:   sec.Key("base_url").String(),
			MediaURL:  sec.Key("media_url").String(),
			Token:     sec.Key("token").String(),
			DataPath:  sec.Key("data_path").MustString(DefaultDataPath),
			TotalPath: sec.Key("total_path").MustString(DefaultTotalPath),
		}
		if p.MediaURL == "" {
			p.MediaURL = p.BaseURL
		}
		m.profiles[name] = &p
	}
}

// Path returns the profiles file location.
func (m *ProfileManager) Path() string {
	return m.path
}

// CurrentProfileName returns the active profile name.
func (m *ProfileManager) CurrentProfileName() string {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.active
}

// ProfileNames returns the sorted profile names.
func (m *ProfileManager) ProfileNames() []string {
	m.mx.RLock()
	defer m.mx.RUnlock()

	nn := make([]string, 0, len(m.profiles))
	for n := range m.profiles {
		nn = append(nn, n)
	}
	sort.Strings(nn)

	return nn
}

// GetProfile returns a copy of the named profile.
func (m *ProfileManager) GetProfile(name string) (*Profile, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	p, ok := m.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfile, name)
	}
	cp := *p

	return &cp, nil
}

// SetActiveProfile makes the named profile current.
func (m *ProfileManager) SetActiveProfile(name string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if _, ok := m.profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidProfile, name)
	}
	m.active = name

	return nil
}
