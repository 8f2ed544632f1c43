package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/govportal/portalctl/internal/config/data"
)

// Default values
const (
	DefaultAPITimeout     = 30 * time.Second
	DefaultPageSize       = 10
	DefaultSearchDebounce = 250 * time.Millisecond
	DefaultView           = data.DefaultView
)

// Portalctl represents the portalctl global configuration.
type Portalctl struct {
	APIURL         string      `yaml:"apiURL"`
	MediaURL       string      `yaml:"mediaURL"`
	APITimeout     string      `yaml:"apiTimeout"`
	DefaultView    string      `yaml:"defaultView"`
	DefaultProfile string      `yaml:"defaultProfile"`
	ReadOnly       bool        `yaml:"readOnly"`
	UI             data.UI     `yaml:"ui"`
	Export         data.Export `yaml:"export"`
	Print          data.Print  `yaml:"print"`
	Logger         data.Logger `yaml:"logger"`

	token         string
	dsn           string
	activeProfile string
	activeConfig  *data.Config
	dir           *data.Dir
	mx            sync.RWMutex
}

// NewPortalctl creates a Portalctl with default settings.
func NewPortalctl() *Portalctl {
	return &Portalctl{
		APITimeout:  DefaultAPITimeout.String(),
		DefaultView: DefaultView,
		UI: data.UI{
			PageSize:       DefaultPageSize,
			SearchDebounce: DefaultSearchDebounce.String(),
		},
		Print:  data.Print{Open: true},
		Logger: data.Logger{Level: DefaultLogLevel},
		dir:    data.NewDir(),
	}
}

// Validate repairs invalid settings.
func (p *Portalctl) Validate() {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.UI.PageSize <= 0 {
		p.UI.PageSize = DefaultPageSize
	}
	if d, err := time.ParseDuration(p.UI.SearchDebounce); err != nil || d < 0 {
		p.UI.SearchDebounce = DefaultSearchDebounce.String()
	}
	if d, err := time.ParseDuration(p.APITimeout); err != nil || d <= 0 {
		p.APITimeout = DefaultAPITimeout.String()
	}
	if p.DefaultView == "" {
		p.DefaultView = DefaultView
	}
	if p.Logger.Level == "" {
		p.Logger.Level = DefaultLogLevel
	}
}

// ActiveProfile returns the currently active API profile.
func (p *Portalctl) ActiveProfile() string {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return p.activeProfile
}

// ActiveConfig returns the current profile-specific configuration.
func (p *Portalctl) ActiveConfig() *data.Config {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return p.activeConfig
}

// ActivateProfile activates a profile and loads its config.
func (p *Portalctl) ActivateProfile(profile string) (*data.ProfileContext, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile cannot be empty")
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	if p.dir == nil {
		p.dir = data.NewDir()
	}
	cfg, err := p.dir.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for profile %q: %w", profile, err)
	}
	p.activeProfile = profile
	p.activeConfig = cfg

	return cfg.GetContext(), nil
}

// SaveActive persists the active profile configuration.
func (p *Portalctl) SaveActive() error {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if p.activeConfig == nil || p.dir == nil {
		return nil
	}

	return p.dir.Save(p.activeConfig)
}

// Override applies CLI flag overrides to the configuration.
func (p *Portalctl) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	if flags.ReadOnly != nil && *flags.ReadOnly {
		p.ReadOnly = true
	}
	// Write flag overrides ReadOnly
	if flags.Write != nil && *flags.Write {
		p.ReadOnly = false
	}
	if IsStringSet(flags.Profile) {
		p.DefaultProfile = *flags.Profile
	}
	if IsStringSet(flags.APIURL) {
		p.APIURL = *flags.APIURL
	}
	if IsStringSet(flags.MediaURL) {
		p.MediaURL = *flags.MediaURL
	}
	if IsStringSet(flags.Token) {
		p.token = *flags.Token
	}
	if IsStringSet(flags.DSN) {
		p.dsn = *flags.DSN
	}
	if IsStringSet(flags.Command) {
		p.DefaultView = *flags.Command
	}
	if IsStringSet(flags.LogLevel) {
		p.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.LogFile) {
		p.Logger.File = *flags.LogFile
	}
}

// IsReadOnly reports whether mutations are disabled. A profile setting wins
// over the global one unless the global setting is on.
func (p *Portalctl) IsReadOnly() bool {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if p.ReadOnly {
		return true
	}
	if p.activeConfig != nil {
		if ctx := p.activeConfig.GetContext(); ctx != nil {
			return ctx.IsReadOnly()
		}
	}

	return false
}

// Gates returns the active profile feature gates.
func (p *Portalctl) Gates() data.FeatureGates {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if p.activeConfig != nil {
		if ctx := p.activeConfig.GetContext(); ctx != nil {
			return ctx.Gates()
		}
	}

	return data.NewFeatureGates()
}

// Token returns the API bearer token.
func (p *Portalctl) Token() string {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return p.token
}

// DSN returns the database connection string, if any.
func (p *Portalctl) DSN() string {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return p.dsn
}

// GetAPITimeout returns the parsed API timeout duration.
func (p *Portalctl) GetAPITimeout() (time.Duration, error) {
	p.mx.RLock()
	timeoutStr := p.APITimeout
	p.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// SearchDebounce returns the search debounce delay.
func (p *Portalctl) SearchDebounce() time.Duration {
	p.mx.RLock()
	defer p.mx.RUnlock()

	d, err := time.ParseDuration(p.UI.SearchDebounce)
	if err != nil || d < 0 {
		return DefaultSearchDebounce
	}

	return d
}

// PageSize returns the number of rows per page.
func (p *Portalctl) PageSize() int {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if p.UI.PageSize <= 0 {
		return DefaultPageSize
	}

	return p.UI.PageSize
}

func (p *Portalctl) setDir(d *data.Dir) {
	p.mx.Lock()
	defer p.mx.Unlock()

	p.dir = d
}
