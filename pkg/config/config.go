package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultListenAddr     = ":8080"
	DefaultContentBaseURL = "http://localhost"
	DefaultNodePath       = "/contentasjson/node/"
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxBodyBytes   = int64(4 << 20)
	MaxBodyBytesLimit     = int64(1 << 30)
	DefaultTemplate       = "news.html"
	DefaultLogLevel       = "info"
)

type Config struct {
	ListenAddr     string
	ContentBaseURL string
	NodePath       string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	Template       string
	StaticDir      string
	LogLevel       string
	SSL            bool
	ReleaseMode    bool
}

func Default() *Config {
	return &Config{
		ListenAddr:     DefaultListenAddr,
		ContentBaseURL: DefaultContentBaseURL,
		NodePath:       DefaultNodePath,
		RequestTimeout: DefaultRequestTimeout,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		Template:       DefaultTemplate,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads the configuration and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds the configuration from defaults, an optional config file,
// the .env file and the process environment, in increasing priority.
// The result is not validated; callers that apply further overrides
// validate once they are done.
func Read(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	c.ListenAddr = getEnv("LISTEN_ADDR", c.ListenAddr)
	c.ContentBaseURL = getEnv("CONTENT_BASE_URL", c.ContentBaseURL)
	c.NodePath = getEnv("CONTENT_NODE_PATH", c.NodePath)
	c.Template = getEnv("TEMPLATE_NAME", c.Template)
	c.StaticDir = getEnv("STATIC_DIR", c.StaticDir)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_BODY_BYTES: %w", err)
		}
		c.MaxBodyBytes = n
	}
	if v := os.Getenv("SSL_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SSL_ENABLED: %w", err)
		}
		c.SSL = b
	}
	if v := os.Getenv("RELEASE_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RELEASE_MODE: %w", err)
		}
		c.ReleaseMode = b
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address is required")
	}
	u, err := url.Parse(c.ContentBaseURL)
	if err != nil {
		return fmt.Errorf("content base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("content base url %q must be http or https", c.ContentBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("content base url %q has no host", c.ContentBaseURL)
	}
	if !strings.HasPrefix(c.NodePath, "/") {
		return fmt.Errorf("node path %q must start with /", c.NodePath)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}
	if c.MaxBodyBytes > MaxBodyBytesLimit {
		return fmt.Errorf("max body bytes %d exceeds limit of %d", c.MaxBodyBytes, MaxBodyBytesLimit)
	}
	if c.Template == "" {
		return errors.New("template name is required")
	}
	return nil
}
