package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the bridge.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Endpoint    string  `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	AuthToken   string  `json:"auth_token" yaml:"auth_token" toml:"auth_token"`
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	InsecureTLS bool    `json:"insecure_tls" yaml:"insecure_tls" toml:"insecure_tls"`
	TimeoutSec  int     `json:"timeout_sec" yaml:"timeout_sec" toml:"timeout_sec"`
	MockAddr    string  `json:"mock_addr" yaml:"mock_addr" toml:"mock_addr"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
