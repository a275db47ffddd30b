package am

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sdlppx/errors"
)

// Render serializes the configuration as toml, json or yaml
func Render(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "toml":
		return toml.Marshal(cfg)
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	case "yaml":
		return yaml.Marshal(cfg)
	default:
		return nil, errors.NewUnsupportedf("unsupported config format %q (use toml, json or yaml)", format)
	}
}
