package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PORTALCTL"

// Env holds the settings read from the environment.
type Env struct {
	Profile  string
	APIURL   string
	MediaURL string
	Token    string
	DSN      string
}

// LoadEnv loads the given dotenv files, skipping missing ones, and reads the
// PORTALCTL_* variables. Variables already set in the process win over
// dotenv entries.
func LoadEnv(files ...string) (Env, error) {
	present := make([]string, 0, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Env{}, fmt.Errorf("failed to access env file %s: %w", f, err)
		}
		present = append(present, f)
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return Env{}, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return Env{
		Profile:  v.GetString("profile"),
		APIURL:   v.GetString("api_url"),
		MediaURL: v.GetString("media_url"),
		Token:    v.GetString("token"),
		DSN:      v.GetString("dsn"),
	}, nil
}
