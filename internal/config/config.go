// Package config handles configuration loading for the zmsoap tool.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows secrets like the
// domain preauth key or an account password to be injected at runtime.
//
// # Configuration Sections
//
//   - server: SOAP endpoint and HTTP settings
//   - auth: how to obtain an auth token (preauth, password or a fixed token)
//   - client: user agent and batch defaults
//   - logging: log level and output format
//
// # Example Configuration
//
//	server:
//	  url: https://mail.example.com/service/soap
//	  timeout: 30s
//	  compressRequests: true
//
//	auth:
//	  account: user@example.com
//	  preauthKey: ${ZIMBRA_PREAUTH_KEY}
//
//	client:
//	  userAgentName: zmsoap
//	  batchOnError: continue
//
//	logging:
//	  level: info
//	  format: text
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Client  ClientConfig  `yaml:"client"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds endpoint and HTTP settings
type ServerConfig struct {
	URL                string        `yaml:"url" validate:"required,url"`
	Timeout            time.Duration `yaml:"timeout" validate:"gte=0"`
	InsecureSkipVerify bool          `yaml:"insecureSkipVerify"`
	// Request bodies of at least CompressionThreshold bytes are gzipped.
	CompressRequests     bool `yaml:"compressRequests"`
	CompressionThreshold int  `yaml:"compressionThreshold" validate:"gte=0"`
}

// AuthConfig holds authentication settings. When AuthToken is set it is
// used as is; otherwise Account with PreAuthKey or Password is used.
type AuthConfig struct {
	Account    string `yaml:"account"`
	By         string `yaml:"by" validate:"omitempty,oneof=name id foreignPrincipal"`
	PreAuthKey string `yaml:"preauthKey"`
	Password   string `yaml:"password"`
	AuthToken  string `yaml:"authToken"`
	Admin      bool   `yaml:"admin"`
	// Expires is the preauth token lifetime; zero uses the server default.
	Expires time.Duration `yaml:"expires" validate:"gte=0"`
}

// Enabled reports whether any authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.AuthToken != "" || a.PreAuthKey != "" || a.Password != ""
}

// ClientConfig holds request defaults
type ClientConfig struct {
	UserAgentName    string `yaml:"userAgentName"`
	UserAgentVersion string `yaml:"userAgentVersion"`
	BatchOnError     string `yaml:"batchOnError" validate:"oneof=stop continue"`
	FirstRequestID   int    `yaml:"firstRequestId" validate:"gte=0"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json logfmt"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse reads configuration from YAML data
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Validate
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.CompressionThreshold == 0 {
		c.Server.CompressionThreshold = 8 * 1024
	}
	if c.Auth.By == "" {
		c.Auth.By = "name"
	}
	if c.Client.UserAgentName == "" {
		c.Client.UserAgentName = "zmsoap"
	}
	if c.Client.BatchOnError == "" {
		c.Client.BatchOnError = "continue"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Auth.AuthToken == "" && (c.Auth.PreAuthKey != "" || c.Auth.Password != "") && c.Auth.Account == "" {
		return fmt.Errorf("auth.account is required when preauthKey or password is set")
	}

	return nil
}
