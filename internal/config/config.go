package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "appcanvas.json"

	// DefaultPort is the default builder server port.
	DefaultPort = 8080

	// DefaultHost is the default builder server host.
	DefaultHost = "0.0.0.0"

	// DefaultOutputRoot is the default root directory for generated projects.
	DefaultOutputRoot = "generated"

	// DefaultCatalogTTL is how long cached catalog items stay fresh.
	DefaultCatalogTTL = 30 * time.Minute

	// DefaultPollInterval is the preview client's polling interval.
	DefaultPollInterval = 1500 * time.Millisecond
)

// Config represents the complete appcanvas.json configuration.
type Config struct {
	// Name is the installation name, used in logs and generated metadata.
	Name string `json:"name,omitempty"`

	// Server contains builder HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Database contains page store configuration.
	Database DatabaseConfig `json:"database,omitempty"`

	// Redis contains the shared catalog cache configuration.
	Redis RedisConfig `json:"redis,omitempty"`

	// Storefront contains the storefront data source configuration.
	Storefront StorefrontConfig `json:"storefront,omitempty"`

	// Catalog contains catalog cache and sync configuration.
	Catalog CatalogConfig `json:"catalog,omitempty"`

	// Preview contains preview client configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Generate contains code generator configuration.
	Generate GenerateConfig `json:"generate,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains builder HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Metrics exposes /metrics when true.
	Metrics bool `json:"metrics,omitempty"`
}

// DatabaseConfig contains page store settings.
type DatabaseConfig struct {
	// URL is the postgres connection string. Empty selects the in-memory
	// store, which loses pages on restart.
	URL string `json:"url,omitempty"`
}

// RedisConfig contains catalog cache settings.
type RedisConfig struct {
	// Addr is the redis host:port. Empty selects the in-process cache.
	Addr string `json:"addr,omitempty"`

	// Password is the redis password, if any.
	Password string `json:"password,omitempty"`

	// DB is the redis database index.
	DB int `json:"db,omitempty"`
}

// StorefrontConfig contains the storefront data source settings.
type StorefrontConfig struct {
	// BaseURL is the storefront API endpoint.
	BaseURL string `json:"baseUrl,omitempty"`

	// Token authenticates catalog fetches.
	Token string `json:"token,omitempty"`

	// TimeoutSeconds bounds a single catalog fetch.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// CatalogConfig contains catalog cache and sync settings.
type CatalogConfig struct {
	// TTLMinutes is the freshness window for cached catalog items.
	TTLMinutes int `json:"ttlMinutes,omitempty"`

	// SyncSchedule is a cron expression for the background catalog
	// refresh. Empty disables scheduled refresh; fetches then happen
	// lazily on payload assembly.
	SyncSchedule string `json:"syncSchedule,omitempty"`
}

// PreviewConfig contains preview client settings.
type PreviewConfig struct {
	// PollIntervalMillis is the preview polling interval.
	PollIntervalMillis int `json:"pollIntervalMillis,omitempty"`
}

// GenerateConfig contains code generator settings.
type GenerateConfig struct {
	// OutputRoot is the directory generated project trees are written
	// under, one subdirectory per app.
	OutputRoot string `json:"outputRoot,omitempty"`

	// S3Bucket is the bucket generated bundles are uploaded to when the
	// --upload flag is set. Empty disables upload.
	S3Bucket string `json:"s3Bucket,omitempty"`

	// S3Prefix is the key prefix for uploaded bundles.
	S3Prefix string `json:"s3Prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "appcanvas",
		Server: ServerConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Metrics: true,
		},
		Storefront: StorefrontConfig{
			TimeoutSeconds: 10,
		},
		Catalog: CatalogConfig{
			TTLMinutes: int(DefaultCatalogTTL / time.Minute),
		},
		Preview: PreviewConfig{
			PollIntervalMillis: int(DefaultPollInterval / time.Millisecond),
		},
		Generate: GenerateConfig{
			OutputRoot: DefaultOutputRoot,
			S3Prefix:   "bundles/",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for appcanvas.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. A missing
// file is not an error; defaults (plus environment overrides) apply.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetail("Failed to parse appcanvas.json: " + err.Error()).
			WithSuggestion("Check that appcanvas.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Addr returns the host:port the builder server binds to.
func (c *Config) Addr() string {
	return joinHostPort(c.Server.Host, c.Server.Port)
}

// CatalogTTL returns the catalog freshness window.
func (c *Config) CatalogTTL() time.Duration {
	return time.Duration(c.Catalog.TTLMinutes) * time.Minute
}

// PollInterval returns the preview polling interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Preview.PollIntervalMillis) * time.Millisecond
}

// StorefrontTimeout returns the per-fetch storefront timeout.
func (c *Config) StorefrontTimeout() time.Duration {
	return time.Duration(c.Storefront.TimeoutSeconds) * time.Second
}

// applyEnv overlays environment variables onto the configuration.
// Secrets and per-deployment endpoints live in the environment, not in
// the checked-in appcanvas.json.
func (c *Config) applyEnv() {
	if v := os.Getenv("APPCANVAS_DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("APPCANVAS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("APPCANVAS_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("APPCANVAS_STOREFRONT_URL"); v != "" {
		c.Storefront.BaseURL = v
	}
	if v := os.Getenv("APPCANVAS_STOREFRONT_TOKEN"); v != "" {
		c.Storefront.Token = v
	}
	if v := os.Getenv("APPCANVAS_S3_BUCKET"); v != "" {
		c.Generate.S3Bucket = v
	}
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "appcanvas"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Storefront.TimeoutSeconds == 0 {
		c.Storefront.TimeoutSeconds = 10
	}
	if c.Catalog.TTLMinutes == 0 {
		c.Catalog.TTLMinutes = int(DefaultCatalogTTL / time.Minute)
	}
	if c.Preview.PollIntervalMillis == 0 {
		c.Preview.PollIntervalMillis = int(DefaultPollInterval / time.Millisecond)
	}
	if c.Generate.OutputRoot == "" {
		c.Generate.OutputRoot = DefaultOutputRoot
	}
	if c.Generate.S3Prefix == "" {
		c.Generate.S3Prefix = "bundles/"
	}
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
