package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFile is picked up from the working directory when no --config is given.
const DefaultFile = "gallery.yaml"

// Load reads the config file at path on top of the reference configuration.
// An empty path falls back to DefaultFile if it exists, else to Default().
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Default(), nil
			}
			return nil, fmt.Errorf("checking %s: %w", DefaultFile, err)
		}
		path = DefaultFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	cfg.File = path
	if !v.IsSet("base_dir") {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// fromViper decodes the settings and fills every unset key from Default().
func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	def := Default()
	fill := func(key string, dst *string, val string) {
		if !v.IsSet(key) {
			*dst = val
		}
	}
	fill("base_dir", &cfg.BaseDir, def.BaseDir)
	fill("template", &cfg.Template, def.Template)
	fill("output", &cfg.Output, def.Output)
	fill("format", &cfg.Format, def.Format)
	fill("marker", &cfg.Marker, def.Marker)
	fill("key_prefix", &cfg.KeyPrefix, def.KeyPrefix)
	fill("snippet", &cfg.Snippet, def.Snippet)

	// File params override individual defaults.
	params := def.Params
	for k, val := range cfg.Params {
		params[k] = val
	}
	cfg.Params = params

	if !v.IsSet("items") && !v.IsSet("discover") {
		cfg.Items = def.Items
	}
	return &cfg, nil
}

// WriteYAML dumps the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
