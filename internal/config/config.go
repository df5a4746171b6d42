// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/pricepi/pkg/logger"
	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

// Config is the top-level application configuration.
type Config struct {
	Pricepi PricepiConfig `yaml:"pricepi"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// PricepiConfig defines Pricepi API credentials and transport settings.
type PricepiConfig struct {
	ClientID   string        `yaml:"client_id"`
	AccountKey string        `yaml:"account_key"`
	Endpoint   string        `yaml:"endpoint"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ServerConfig defines the Echo HTTP gateway settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TracingConfig defines OpenTelemetry span export. An empty endpoint
// disables export. A nil SampleRatio means sample everything; an explicit
// 0 samples nothing.
type TracingConfig struct {
	Endpoint    string   `yaml:"endpoint"` // OTLP/gRPC host:port
	Insecure    bool     `yaml:"insecure"`
	SampleRatio *float64 `yaml:"sample_ratio"`
	ServiceName string   `yaml:"service_name"`
}

// Ratio returns the configured sample ratio, or 1 when unset.
func (t TracingConfig) Ratio() float64 {
	if t.SampleRatio == nil {
		return 1
	}
	return *t.SampleRatio
}

// Ratio returns a pointer to r for setting TracingConfig.SampleRatio.
func Ratio(r float64) *float64 {
	return &r
}

// Read reads and parses a YAML config file with environment variable
// substitution and defaults. Callers overlay flags and then call Validate.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse expands environment variables in data, decodes it and applies
// defaults. It does not validate, so callers can overlay flags first.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// Default returns a Config with only defaults set.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	applyPricepiDefaults(&c.Pricepi)
	applyServerDefaults(&c.Server)
	applyLoggingDefaults(&c.Logging)
	applyTracingDefaults(&c.Tracing)
}

func applyPricepiDefaults(p *PricepiConfig) {
	if p.Endpoint == "" {
		p.Endpoint = pricepi.DefaultEndpoint
	}
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logger.FormatText
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.SampleRatio == nil {
		t.SampleRatio = Ratio(1)
	}
	if t.ServiceName == "" {
		t.ServiceName = "pricepi"
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Pricepi.ClientID == "" {
		errs = append(errs, errors.New("pricepi.client_id is required"))
	}
	if c.Pricepi.AccountKey == "" {
		errs = append(errs, errors.New("pricepi.account_key is required"))
	}
	if u, err := url.Parse(c.Pricepi.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("pricepi.endpoint must be an absolute URL (got %q)", c.Pricepi.Endpoint))
	}
	if c.Pricepi.Timeout < 0 {
		errs = append(errs, fmt.Errorf("pricepi.timeout must not be negative (got %s)", c.Pricepi.Timeout))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)", c.Logging.Level,
		))
	}
	switch c.Logging.Format {
	case logger.FormatText, logger.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", c.Logging.Format,
		))
	}

	if r := c.Tracing.Ratio(); r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf(
			"tracing.sample_ratio must be between 0 and 1 (got %g)", r,
		))
	}

	return errors.Join(errs...)
}
