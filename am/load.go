package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/sdlppx/errors"
)

// ProjectConfigName is looked up from the working directory upwards
const ProjectConfigName = "sdlppx.toml"

// NewViper initializes Viper with configuration sources and defaults.
// Precedence (lowest to highest): defaults < user < project < env vars < bound flags.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("SDLPPX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)

	return v
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// ConfigPaths returns the candidate config files in merge order
func ConfigPaths() []string {
	var paths []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".sdlppx", "config.toml"))
	}
	if projectConfig := findProjectConfig(); projectConfig != "" {
		paths = append(paths, projectConfig)
	}
	return paths
}

// findProjectConfig searches for sdlppx.toml by walking up the directory tree
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges every existing config file into v, later files winning.
// Unreadable files are ignored so a broken user config never blocks a conversion.
func mergeConfigFiles(v *viper.Viper) {
	for _, configPath := range ConfigPaths() {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}

		_ = v.MergeConfigMap(tempViper.AllSettings())
	}
}
