package data

import "sync"

// ProfileContext holds the settings of one API profile that override the
// global configuration.
type ProfileContext struct {
	ProfileName  string       `yaml:"profile"`
	ReadOnly     *bool        `yaml:"readOnly,omitempty"`
	View         *View        `yaml:"view,omitempty"`
	FeatureGates FeatureGates `yaml:"featureGates,omitempty"`
	mx           sync.RWMutex `yaml:"-"`
}

// NewProfileContext creates a new ProfileContext with default settings.
func NewProfileContext(profile string) *ProfileContext {
	return &ProfileContext{
		ProfileName:  profile,
		FeatureGates: NewFeatureGates(),
	}
}

// Validate ensures the ProfileContext has valid settings.
func (c *ProfileContext) Validate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.View != nil {
		c.View.Validate()
	}
}

// GetView returns the current view, creating a default if nil.
func (c *ProfileContext) GetView() *View {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.View == nil {
		return NewView()
	}
	return c.View
}

// SetView sets the current view.
func (c *ProfileContext) SetView(v *View) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.View = v
}

// IsReadOnly returns whether this context is in read-only mode.
// Returns false if ReadOnly is nil.
func (c *ProfileContext) IsReadOnly() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.ReadOnly == nil {
		return false
	}
	return *c.ReadOnly
}

// HasReadOnly returns true when the profile pins read-only mode.
func (c *ProfileContext) HasReadOnly() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.ReadOnly != nil
}

// SetReadOnly sets the read-only mode for this context.
func (c *ProfileContext) SetReadOnly(ro bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.ReadOnly = &ro
}

// Gates returns the profile feature gates.
func (c *ProfileContext) Gates() FeatureGates {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.FeatureGates
}

// ContextName returns the sanitized profile name.
func (c *ProfileContext) ContextName() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return SanitizeFileName(c.ProfileName)
}
