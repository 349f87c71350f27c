// Package config loads the layered pt configuration: an ordered list of
// candidate files folded into one Settings value, with environment overrides
// applied last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pivotaltools/pt/internal/tracker"
)

// General holds the [general] section of the config file.
type General struct {
	APIKey         string `mapstructure:"api_key"`
	Me             string `mapstructure:"me"`
	DefaultProject string `mapstructure:"default_project"`
	APIURL         string `mapstructure:"api_url"`
	Timeout        string `mapstructure:"timeout"`
}

// Settings is the merged configuration. It is built once per invocation and
// never mutated afterward.
type Settings struct {
	General  General        `mapstructure:"general"`
	Projects map[string]int `mapstructure:"projects"`
}

// ProjectID looks up a named project. Config keys are folded to lower case by
// the loader, so the match is case-insensitive.
func (s *Settings) ProjectID(name string) (int, bool) {
	if id, ok := s.Projects[name]; ok {
		return id, true
	}
	for k, id := range s.Projects {
		if strings.EqualFold(k, name) {
			return id, true
		}
	}
	return 0, false
}

// RequestTimeout returns the configured request timeout, or the client
// default when unset or unparseable.
func (s *Settings) RequestTimeout() time.Duration {
	if s.General.Timeout == "" {
		return tracker.DefaultTimeout
	}
	d, err := time.ParseDuration(s.General.Timeout)
	if err != nil || d <= 0 {
		return tracker.DefaultTimeout
	}
	return d
}

// Load folds every candidate config file into one Settings value and applies
// environment overrides. No file at all yields empty settings and no error;
// a file that exists but fails to parse is an error.
func Load() (*Settings, error) {
	return LoadFromFiles(candidatePaths()...)
}

// LoadFromFiles folds the given files left-to-right: later files override
// earlier ones key-by-key. Missing files are skipped.
func LoadFromFiles(paths ...string) (*Settings, error) {
	merged := viper.New()
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := merged.MergeConfigMap(v.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging config %s: %w", path, err)
		}
	}

	settings := &Settings{Projects: map[string]int{}}
	if err := merged.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(settings)
	return settings, nil
}

// candidatePaths returns the config sources in merge order, lowest precedence
// first.
func candidatePaths() []string {
	paths := []string{"/etc/pivotal_tracker/config.yaml"}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "pivotal_tracker", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".pivotal_tracker.yml"),
			filepath.Join(home, ".pivotal_tracker.yaml"),
		)
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".pivotal_tracker.yaml"))
	}
	return paths
}

// applyEnvOverrides applies PIVOTAL_* environment variables on top of the
// file-derived settings. A local .env file is honored first.
func applyEnvOverrides(s *Settings) {
	_ = godotenv.Load()

	if v := os.Getenv("PIVOTAL_API_KEY"); v != "" {
		s.General.APIKey = v
	}
	if v := os.Getenv("PIVOTAL_ME"); v != "" {
		s.General.Me = v
	}
	if v := os.Getenv("PIVOTAL_DEFAULT_PROJECT"); v != "" {
		s.General.DefaultProject = v
	}
	if v := os.Getenv("PIVOTAL_API_URL"); v != "" {
		s.General.APIURL = v
	}
	if v := os.Getenv("PIVOTAL_TIMEOUT"); v != "" {
		s.General.Timeout = v
	}
}
