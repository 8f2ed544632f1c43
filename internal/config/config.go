package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Portalctl *Portalctl `yaml:"portalctl"`
	conn      client.Connection
	settings  client.ProfileSettings
	profile   *client.Profile
	mx        sync.RWMutex
}

// NewConfig creates a new Config with the given profile settings.
func NewConfig(settings client.ProfileSettings) *Config {
	return &Config{
		Portalctl: NewPortalctl(),
		settings:  settings,
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}
	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Portalctl == nil {
		c.Portalctl = NewPortalctl()
	}
	c.Portalctl.Validate()

	return nil
}

// Save saves the configuration to path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}
	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine resolves the final configuration.
// Profile: --profile > PORTALCTL_PROFILE > defaultProfile > profiles.ini default.
// Endpoint: flags > environment > profiles.ini > portalctl.yaml.
func (c *Config) Refine(flags *data.Flags, settings client.ProfileSettings, env Env) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Portalctl == nil {
		return fmt.Errorf("config.Portalctl is nil")
	}
	c.settings = settings
	p := c.Portalctl

	name, explicit := "", true
	switch {
	case flags != nil && IsStringSet(flags.Profile):
		name = *flags.Profile
	case env.Profile != "":
		name = env.Profile
	case p.DefaultProfile != "":
		name = p.DefaultProfile
	default:
		explicit = false
		if settings != nil {
			name = settings.CurrentProfileName()
		}
		if name == "" {
			name = client.DefaultProfile
		}
	}

	c.profile = nil
	if settings != nil {
		prof, err := settings.GetProfile(name)
		switch {
		case err == nil:
			if err := settings.SetActiveProfile(name); err != nil {
				return err
			}
			c.profile = prof
		case explicit:
			return fmt.Errorf("profile %q not found: %w", name, err)
		}
	} else if explicit && name != client.DefaultProfile {
		return fmt.Errorf("profile %q not found: %w", name, client.ErrInvalidProfile)
	}

	p.mx.Lock()
	if c.profile != nil {
		if c.profile.BaseURL != "" {
			p.APIURL = c.profile.BaseURL
		}
		if c.profile.MediaURL != "" {
			p.MediaURL = c.profile.MediaURL
		}
		if c.profile.Token != "" {
			p.token = c.profile.Token
		}
	}
	if env.APIURL != "" {
		p.APIURL = env.APIURL
	}
	if env.MediaURL != "" {
		p.MediaURL = env.MediaURL
	}
	if env.Token != "" {
		p.token = env.Token
	}
	if env.DSN != "" {
		p.dsn = env.DSN
	}
	p.mx.Unlock()

	if _, err := p.ActivateProfile(name); err != nil {
		return fmt.Errorf("failed to activate profile %q: %w", name, err)
	}
	p.Override(flags)
	p.Validate()

	return nil
}

// ClientConfig returns the API client settings for the active profile.
func (c *Config) ClientConfig() *client.ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()

	p := c.Portalctl
	timeout, err := p.GetAPITimeout()
	if err != nil {
		timeout = DefaultAPITimeout
	}
	cfg := client.ClientConfig{
		Profile:  p.ActiveProfile(),
		BaseURL:  p.APIURL,
		MediaURL: p.MediaURL,
		Token:    p.Token(),
		Timeout:  timeout,
	}
	if c.profile != nil {
		cfg.DataPath, cfg.TotalPath = c.profile.DataPath, c.profile.TotalPath
	}

	return &cfg
}

// SwitchProfile activates another API profile on the connection and config.
func (c *Config) SwitchProfile(name string) error {
	conn := c.Connection()
	if conn == nil {
		return errors.New("no connection")
	}
	if err := conn.SwitchProfile(name); err != nil {
		return err
	}
	_, err := c.Portalctl.ActivateProfile(name)

	return err
}

// Connection returns the API connection.
func (c *Config) Connection() client.Connection {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.conn
}

// SetConnection sets the API connection.
func (c *Config) SetConnection(conn client.Connection) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.conn = conn
}

// Settings returns the API profile settings.
func (c *Config) Settings() client.ProfileSettings {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.settings
}

// SearchDebounce returns the configured search debounce.
func (c *Config) SearchDebounce() time.Duration {
	return c.Portalctl.SearchDebounce()
}
