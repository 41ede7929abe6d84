// Package config loads the service configuration from defaults, an optional
// YAML file and the environment, and watches the file for changes.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	appErrors "elevate-backend/internal/errors"
)

// Environment names the deployment stage.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Remote store drivers.
const (
	DriverAuto     = "auto"
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// Config is the complete service configuration.
type Config struct {
	Environment Environment `yaml:"environment" validate:"required,oneof=development staging production"`
	Server      Server      `yaml:"server"`
	Supabase    Supabase    `yaml:"supabase"`
	Remote      Remote      `yaml:"remote"`
	Content     Content     `yaml:"content"`
	Media       Media       `yaml:"media"`
	Admin       Admin       `yaml:"admin"`
	Logging     Logging     `yaml:"logging"`
	Tracing     Tracing     `yaml:"tracing"`
	Metrics     Metrics     `yaml:"metrics"`
	CORS        CORS        `yaml:"cors"`
}

type Server struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout      time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout     time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout      time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	// BootstrapTimeout bounds the initial load. Calls still running when it
	// ends are abandoned and the affected kinds fall back to seed content.
	BootstrapTimeout time.Duration `yaml:"bootstrap_timeout" validate:"gt=0"`
	// MutationTimeout bounds how long an admin request waits for the remote
	// store before answering 202 Accepted. Zero waits for the write timeout.
	MutationTimeout  time.Duration `yaml:"mutation_timeout" validate:"gte=0,ltfield=WriteTimeout"`
	MaxRequestSize   int64         `yaml:"max_request_size" validate:"gt=0"`
}

// Supabase holds the project credentials shared by the remote store and the
// media driver.
type Supabase struct {
	URL     string `yaml:"url" validate:"omitempty,url"`
	AnonKey string `yaml:"anon_key"`
	Bucket  string `yaml:"bucket" validate:"required"`
}

// Configured reports whether both credentials are present.
func (s Supabase) Configured() bool {
	return s.URL != "" && s.AnonKey != ""
}

type Remote struct {
	Driver         string         `yaml:"driver" validate:"oneof=auto supabase postgres sqlite none"`
	DatabaseURL    string         `yaml:"database_url"`
	// Timeout bounds each remote call. A call still running at the bound is
	// abandoned, even when the driver itself ignores cancellation.
	Timeout        time.Duration  `yaml:"timeout" validate:"gte=0"`
	CircuitBreaker CircuitBreaker `yaml:"circuit_breaker"`
}

type CircuitBreaker struct {
	Enabled          bool          `yaml:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests" validate:"gt=0"`
	Interval         time.Duration `yaml:"interval" validate:"gte=0"`
	Timeout          time.Duration `yaml:"timeout" validate:"gt=0"`
	FailureThreshold float64       `yaml:"failure_threshold" validate:"gt=0,lte=1"`
	MinRequests      uint32        `yaml:"min_requests"`
}

type Content struct {
	// EmptyMeansEmpty makes an empty remote table authoritative instead of
	// falling back to the seed content.
	EmptyMeansEmpty bool `yaml:"empty_means_empty"`
}

type Media struct {
	Driver        string `yaml:"driver" validate:"oneof=auto supabase s3 memory none"`
	MaxImageBytes int64  `yaml:"max_image_bytes" validate:"gt=0"`
	MaxVideoBytes int64  `yaml:"max_video_bytes" validate:"gt=0"`
	CacheControl  string `yaml:"cache_control"`
	S3            S3     `yaml:"s3"`
}

type S3 struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicBaseURL   string `yaml:"public_base_url" validate:"omitempty,url"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// Admin configures the editor gate. An empty password disables the admin
// routes.
type Admin struct {
	Password string `yaml:"password"`
}

type Logging struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

type Tracing struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint" validate:"required_if=Enabled true"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name" validate:"required"`
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" validate:"min=1"`
	MaxAge         int      `yaml:"max_age" validate:"gte=0"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: Server{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     90 * time.Second,
			IdleTimeout:      60 * time.Second,
			ShutdownTimeout:  15 * time.Second,
			BootstrapTimeout: 30 * time.Second,
			MutationTimeout:  15 * time.Second,
			MaxRequestSize:   1 << 20,
		},
		Supabase: Supabase{Bucket: "images"},
		Remote: Remote{
			Driver: DriverAuto,
			CircuitBreaker: CircuitBreaker{
				Enabled:          true,
				MaxRequests:      3,
				Interval:         30 * time.Second,
				Timeout:          30 * time.Second,
				FailureThreshold: 0.6,
				MinRequests:      5,
			},
		},
		Media: Media{
			Driver:        DriverAuto,
			MaxImageBytes: 5 << 20,
			MaxVideoBytes: 50 << 20,
			CacheControl:  "3600",
		},
		Logging: Logging{Level: "info"},
		Tracing: Tracing{
			ServiceName: "elevate-backend",
			SampleRatio: 0.1,
		},
		Metrics: Metrics{Enabled: true, Namespace: "elevate"},
		CORS: CORS{
			AllowedOrigins: []string{"*"},
			MaxAge:         300,
		},
	}
}

var validate = validator.New()

// Validate checks the struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return appErrors.Validation(appErrors.CodeConfigInvalid, "invalid configuration").
			WithDetails(describe(err)).
			WithCause(err).
			Build()
	}
	if c.Remote.Driver == DriverSupabase && !c.Supabase.Configured() {
		return appErrors.Validation(appErrors.CodeConfigInvalid, "invalid configuration").
			WithDetails("remote driver supabase needs supabase.url and supabase.anon_key").
			Build()
	}
	if (c.Remote.Driver == DriverPostgres || c.Remote.Driver == DriverSQLite) && c.Remote.DatabaseURL == "" {
		return appErrors.Validation(appErrors.CodeConfigInvalid, "invalid configuration").
			WithDetails("remote driver " + c.Remote.Driver + " needs remote.database_url").
			Build()
	}
	if c.Media.Driver == DriverS3 && c.Media.S3.Bucket == "" {
		return appErrors.Validation(appErrors.CodeConfigInvalid, "invalid configuration").
			WithDetails("media driver s3 needs media.s3.bucket").
			Build()
	}
	return nil
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !appErrors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// RemoteDriver resolves "auto": Supabase when its credentials are set,
// otherwise no remote store.
func (c *Config) RemoteDriver() string {
	if c.Remote.Driver != DriverAuto {
		return c.Remote.Driver
	}
	if c.Supabase.Configured() {
		return DriverSupabase
	}
	return DriverNone
}

// MediaDriver resolves "auto": Supabase Storage when its credentials are
// set, S3 when a bucket is configured, otherwise uploads are disabled.
func (c *Config) MediaDriver() string {
	if c.Media.Driver != DriverAuto {
		return c.Media.Driver
	}
	switch {
	case c.Supabase.Configured():
		return DriverSupabase
	case c.Media.S3.Bucket != "":
		return DriverS3
	}
	return DriverNone
}

// AdminEnabled reports whether the admin routes accept requests.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Password != ""
}
