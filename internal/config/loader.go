package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// CONFIGURATION LOADER
// ============================================================================

// Loader builds a Config from a hierarchy of sources, lowest priority first:
//  1. Default values (in code)
//  2. The YAML file at path, when set and present
//  3. Environment variables
type Loader struct {
	path   string
	lookup func(string) (string, bool)
}

// NewLoader creates a loader for the YAML file at path. An empty path skips
// the file layer.
func NewLoader(path string) *Loader {
	return &Loader{path: path, lookup: os.LookupEnv}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load builds and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if err := l.loadFile(cfg); err != nil {
		return nil, err
	}
	if err := l.loadEnvironmentVariables(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration from path and the environment.
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

func (l *Loader) loadFile(cfg *Config) error {
	if l.path == "" {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", l.path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", l.path, err)
	}
	return nil
}

// loadEnvironmentVariables overlays the environment. The VITE_ names are the
// ones the site's build already defines, so one .env serves both.
func (l *Loader) loadEnvironmentVariables(cfg *Config) error {
	if val, ok := l.first("ENVIRONMENT", "APP_ENV"); ok {
		cfg.Environment = Environment(strings.ToLower(val))
	}

	// Server
	if val, ok := l.first("HOST"); ok {
		cfg.Server.Host = val
	}
	if val, ok := l.first("PORT", "SERVER_PORT"); ok {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", val, err)
		}
		cfg.Server.Port = port
	}

	// Supabase
	if val, ok := l.first("SUPABASE_URL", "VITE_SUPABASE_URL"); ok {
		cfg.Supabase.URL = val
	}
	if val, ok := l.first("SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY"); ok {
		cfg.Supabase.AnonKey = val
	}
	if val, ok := l.first("SUPABASE_BUCKET"); ok {
		cfg.Supabase.Bucket = val
	}

	// Remote store
	if val, ok := l.first("CONTENT_REMOTE_DRIVER"); ok {
		cfg.Remote.Driver = strings.ToLower(val)
	}
	if val, ok := l.first("DATABASE_URL"); ok {
		cfg.Remote.DatabaseURL = val
	}
	if val, ok := l.first("CONTENT_REMOTE_TIMEOUT"); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid CONTENT_REMOTE_TIMEOUT %q: %w", val, err)
		}
		cfg.Remote.Timeout = d
	}
	if val, ok := l.first("CONTENT_MUTATION_TIMEOUT"); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid CONTENT_MUTATION_TIMEOUT %q: %w", val, err)
		}
		cfg.Server.MutationTimeout = d
	}
	if val, ok := l.first("CONTENT_EMPTY_MEANS_EMPTY"); ok {
		cfg.Content.EmptyMeansEmpty = parseBool(val)
	}

	// Media
	if val, ok := l.first("MEDIA_DRIVER"); ok {
		cfg.Media.Driver = strings.ToLower(val)
	}
	if val, ok := l.first("S3_BUCKET"); ok {
		cfg.Media.S3.Bucket = val
	}
	if val, ok := l.first("S3_REGION", "AWS_REGION"); ok {
		cfg.Media.S3.Region = val
	}
	if val, ok := l.first("S3_ENDPOINT"); ok {
		cfg.Media.S3.Endpoint = val
	}
	if val, ok := l.first("S3_ACCESS_KEY_ID"); ok {
		cfg.Media.S3.AccessKeyID = val
	}
	if val, ok := l.first("S3_SECRET_ACCESS_KEY"); ok {
		cfg.Media.S3.SecretAccessKey = val
	}
	if val, ok := l.first("S3_PUBLIC_BASE_URL"); ok {
		cfg.Media.S3.PublicBaseURL = val
	}
	if val, ok := l.first("S3_USE_PATH_STYLE"); ok {
		cfg.Media.S3.UsePathStyle = parseBool(val)
	}

	// Admin
	if val, ok := l.first("ADMIN_PASSWORD", "VITE_ADMIN_PASSWORD"); ok {
		cfg.Admin.Password = val
	}

	// Observability
	if val, ok := l.first("LOG_LEVEL"); ok {
		cfg.Logging.Level = strings.ToLower(val)
	}
	if val, ok := l.first("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.Tracing.Endpoint = val
		cfg.Tracing.Enabled = true
	}
	if val, ok := l.first("OTEL_SERVICE_NAME"); ok {
		cfg.Tracing.ServiceName = val
	}
	if val, ok := l.first("ENABLE_METRICS"); ok {
		cfg.Metrics.Enabled = parseBool(val)
	}
	if val, ok := l.first("CORS_ALLOWED_ORIGINS"); ok {
		cfg.CORS.AllowedOrigins = splitList(val)
	}
	return nil
}

// first returns the first non-empty variable among keys.
func (l *Loader) first(keys ...string) (string, bool) {
	for _, k := range keys {
		if val, ok := l.lookup(k); ok && val != "" {
			return val, true
		}
	}
	return "", false
}

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

func parseBool(s string) bool {
	val, _ := strconv.ParseBool(s)
	return val
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
