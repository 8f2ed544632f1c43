package config

import (
	"os"
	"path/filepath"

	"github.com/govportal/portalctl/internal/config/data"
)

const AppName = "portalctl"

var (
	// AppConfigDir is ~/.config/portalctl
	AppConfigDir string

	// AppDataDir is ~/.local/share/portalctl
	AppDataDir string

	// AppStateDir is ~/.local/state/portalctl
	AppStateDir string

	// AppConfigFile is ~/.config/portalctl/portalctl.yaml
	AppConfigFile string

	// AppHotkeysFile is ~/.config/portalctl/hotkeys.yaml
	AppHotkeysFile string

	// AppAliasesFile is ~/.config/portalctl/aliases.yaml
	AppAliasesFile string

	// AppAPIProfilesFile is ~/.config/portalctl/profiles.ini
	AppAPIProfilesFile string

	// AppEnvFile is ~/.config/portalctl/.env
	AppEnvFile string

	// AppProfilesDir is ~/.local/share/portalctl/profiles
	AppProfilesDir string

	// AppLogFile is ~/.local/state/portalctl/portalctl.log
	AppLogFile string

	// AppDumpsDir is ~/.local/state/portalctl/screen-dumps
	AppDumpsDir string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, AppName+".yaml")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")
	AppAPIProfilesFile = filepath.Join(AppConfigDir, "profiles.ini")
	AppEnvFile = filepath.Join(AppConfigDir, ".env")

	AppProfilesDir = filepath.Join(AppDataDir, "profiles")
	AppLogFile = filepath.Join(AppStateDir, AppName+".log")
	AppDumpsDir = filepath.Join(AppStateDir, "screen-dumps")

	// Set default profiles directory in data package to avoid circular import
	data.SetDefaultProfilesDir(AppProfilesDir)

	dirs := []string{
		AppConfigDir,
		AppDataDir,
		AppStateDir,
		AppProfilesDir,
		AppDumpsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}
