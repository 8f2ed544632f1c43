// Package data provides configuration data types for the portalctl application.
package data

// Flags represents CLI command-line flags for the portalctl application.
type Flags struct {
	LogLevel *string // Log level (e.g., debug, info, warn, error)
	LogFile  *string // Path to log file
	Command  *string // Initial view command
	ReadOnly *bool   // Run in read-only mode
	Write    *bool   // Enable write operations
	Profile  *string // API profile to use
	APIURL   *string // Portal API base URL
	MediaURL *string // Base URL of uploaded media
	Token    *string // API bearer token
	DSN      *string // Postgres DSN for direct database access
	Demo     *bool   // Serve the fixture API in process
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse    bool   `yaml:"enableMouse"`
	Crumbsless     bool   `yaml:"crumbsless"`
	PageSize       int    `yaml:"pageSize"`
	SearchDebounce string `yaml:"searchDebounce"`
}

// Export represents export sink settings.
type Export struct {
	Dir       string `yaml:"dir"`
	S3Bucket  string `yaml:"s3Bucket"`
	S3Prefix  string `yaml:"s3Prefix"`
	S3Region  string `yaml:"s3Region"`
	S3Profile string `yaml:"s3Profile"`
}

// Print represents print snapshot settings.
type Print struct {
	Open bool `yaml:"open"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Logger configuration constants.
const (
	DefaultLogLevel = "info"
)

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		LogLevel: new(string),
		LogFile:  new(string),
		Command:  new(string),
		ReadOnly: new(bool),
		Write:    new(bool),
		Profile:  new(string),
		APIURL:   new(string),
		MediaURL: new(string),
		Token:    new(string),
		DSN:      new(string),
		Demo:     new(bool),
	}
}
