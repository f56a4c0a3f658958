package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Durations are strings ("10s") so every
// format decodes them the same way.
type fileConfig struct {
	ListenAddr     string `yaml:"listen_addr" toml:"listen_addr" json:"listen_addr"`
	ContentBaseURL string `yaml:"content_base_url" toml:"content_base_url" json:"content_base_url"`
	NodePath       string `yaml:"node_path" toml:"node_path" json:"node_path"`
	RequestTimeout string `yaml:"request_timeout" toml:"request_timeout" json:"request_timeout"`
	MaxBodyBytes   int64  `yaml:"max_body_bytes" toml:"max_body_bytes" json:"max_body_bytes"`
	Template       string `yaml:"template" toml:"template" json:"template"`
	StaticDir      string `yaml:"static_dir" toml:"static_dir" json:"static_dir"`
	LogLevel       string `yaml:"log_level" toml:"log_level" json:"log_level"`
	SSL            *bool  `yaml:"ssl" toml:"ssl" json:"ssl"`
	ReleaseMode    *bool  `yaml:"release_mode" toml:"release_mode" json:"release_mode"`
}

func decodeFile(path string, content []byte) (*fileConfig, error) {
	var fc fileConfig
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(content, &fc)
	case ".toml":
		err = toml.Unmarshal(content, &fc)
	case ".json":
		err = json.Unmarshal(content, &fc)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

func (c *Config) applyFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	fc, err := decodeFile(path, content)
	if err != nil {
		return err
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&c.ListenAddr, fc.ListenAddr)
	setString(&c.ContentBaseURL, fc.ContentBaseURL)
	setString(&c.NodePath, fc.NodePath)
	setString(&c.Template, fc.Template)
	setString(&c.StaticDir, fc.StaticDir)
	setString(&c.LogLevel, fc.LogLevel)

	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if fc.MaxBodyBytes != 0 {
		c.MaxBodyBytes = fc.MaxBodyBytes
	}
	if fc.SSL != nil {
		c.SSL = *fc.SSL
	}
	if fc.ReleaseMode != nil {
		c.ReleaseMode = *fc.ReleaseMode
	}
	return nil
}
