package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 8080
	defaultEnv             = "development"
	defaultRedisURL        = "redis://localhost:6379/0"
	defaultStoreAPIVersion = "v2024-01-01"
	defaultSessionTTLHours = 24 * 30
	defaultUploadMaxSizeMB = 50
	defaultLiveCacheTTL    = 30
	defaultBackupInterval  = 24
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int          `yaml:"port"`
	Env            string       `yaml:"env"` // "development" | "production"
	RedisURL       string       `yaml:"redis_url"`
	AllowedOrigins []string     `yaml:"allowed_origins"`
	JWTSecret      string       `yaml:"jwt_secret"`
	Store          StoreConfig  `yaml:"store"`
	Site           SiteConfig   `yaml:"site"`
	Auth           AuthConfig   `yaml:"auth"`
	Upload         UploadConfig `yaml:"upload"`
	Live           LiveConfig   `yaml:"live"`
	Backup         BackupConfig `yaml:"backup"`
}

// StoreConfig describes the external headless content store.
type StoreConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	Token      string `yaml:"token"`
}

// SiteConfig holds the public site identity used by the reader surface
// and the sitemap.
type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
	Title   string `yaml:"title"`
}

// AuthConfig is the single-tenant OAuth gate configuration. AdminEmails
// is the authorized principal set; a one-element list in practice.
type AuthConfig struct {
	AdminEmails        []string `yaml:"admin_emails"`
	GoogleClientID     string   `yaml:"google_client_id"`
	GoogleClientSecret string   `yaml:"google_client_secret"`
	SessionTTLHours    int      `yaml:"session_ttl_hours"`
}

type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

type LiveConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

// BackupConfig controls the scheduled content export to S3.
type BackupConfig struct {
	Enable        bool      `yaml:"enable"`
	IntervalHours int       `yaml:"interval_hours"`
	S3            S3Options `yaml:"s3"`
}

type S3Options struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	Prefix          string `yaml:"prefix"`
}

// Load reads and validates the YAML config file.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Store.ProjectID == "" && cfg.Store.Endpoint == "" {
		return nil, fmt.Errorf("store.project_id or store.endpoint is required in %q", path)
	}
	if cfg.Store.Dataset == "" {
		return nil, fmt.Errorf("store.dataset is required in %q", path)
	}
	if len(cfg.Auth.AdminEmails) == 0 {
		return nil, fmt.Errorf("auth.admin_emails must list at least one address in %q", path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		RedisURL: defaultRedisURL,
		Store: StoreConfig{
			APIVersion: defaultStoreAPIVersion,
		},
		Auth: AuthConfig{
			SessionTTLHours: defaultSessionTTLHours,
		},
		Upload: UploadConfig{
			MaxSizeMB: defaultUploadMaxSizeMB,
		},
		Live: LiveConfig{
			CacheTTLSeconds: defaultLiveCacheTTL,
		},
		Backup: BackupConfig{
			IntervalHours: defaultBackupInterval,
		},
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.RedisURL = normalizeRedisURL(cfg.RedisURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	cfg.Store.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Store.Endpoint), "/")
	cfg.Store.ProjectID = strings.TrimSpace(cfg.Store.ProjectID)
	cfg.Store.Dataset = strings.TrimSpace(cfg.Store.Dataset)
	cfg.Store.APIVersion = strings.TrimSpace(cfg.Store.APIVersion)
	if cfg.Store.APIVersion == "" {
		cfg.Store.APIVersion = defaultStoreAPIVersion
	}
	cfg.Store.Token = strings.TrimSpace(cfg.Store.Token)

	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/")
	cfg.Site.Title = strings.TrimSpace(cfg.Site.Title)

	emails := make([]string, 0, len(cfg.Auth.AdminEmails))
	for _, e := range cfg.Auth.AdminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails = append(emails, e)
		}
	}
	cfg.Auth.AdminEmails = emails
	if cfg.Auth.SessionTTLHours <= 0 {
		cfg.Auth.SessionTTLHours = defaultSessionTTLHours
	}

	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = defaultUploadMaxSizeMB
	}
	if cfg.Live.CacheTTLSeconds <= 0 {
		cfg.Live.CacheTTLSeconds = defaultLiveCacheTTL
	}
	if cfg.Backup.IntervalHours <= 0 {
		cfg.Backup.IntervalHours = defaultBackupInterval
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins
}

func normalizeRedisURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultRedisURL
	}
	// "disabled" opts out of Redis entirely; caching and rate
	// limiting then run in pass-through mode.
	if strings.EqualFold(trimmed, "disabled") {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

// Endpoint returns the base URL of the content store API.
func (s StoreConfig) EndpointURL() string {
	if s.Endpoint != "" {
		return s.Endpoint
	}
	return fmt.Sprintf("https://%s.api.sanity.io", s.ProjectID)
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
