// Package config provides configuration loading and defaults for the thoth
// client and server processes.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Credentials policies for GraphQLConfig.Credentials.
const (
	CredentialsInclude = "include"
	CredentialsOmit    = "omit"
)

// ServerConfig holds network and authentication settings for the MCP server.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// OAuthConfig holds OAuth2 client-credentials settings. When TokenURL is
// set, tokens are fetched from it instead of using GraphQLConfig.Token.
type OAuthConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	TokenURL     string   `yaml:"token_url"`
	Scopes       []string `yaml:"scopes"`
}

// GraphQLConfig holds connection details for the Thoth GraphQL API.
type GraphQLConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	// Credentials is "include" (default) or "omit".
	Credentials string            `yaml:"credentials"`
	Headers     map[string]string `yaml:"headers"`
	// Timeout is the HTTP request timeout in seconds.
	Timeout int         `yaml:"timeout"`
	OAuth   OAuthConfig `yaml:"oauth"`
}

// DatabaseConfig holds the storage backend connection settings.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

// AuditConfig controls audit logging behaviour.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogPath string `yaml:"log_path"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// TelemetryConfig controls OpenTelemetry tracing. Tracing is disabled when
// Endpoint is empty.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	GraphQL   GraphQLConfig   `yaml:"graphql"`
	Database  DatabaseConfig  `yaml:"database"`
	Audit     AuditConfig     `yaml:"audit"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LoadConfig reads and parses a YAML configuration file from the given path.
// It returns a pointer to the populated Config and any error encountered.
// On error, nil is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a new Config populated with sensible default values.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		GraphQL: GraphQLConfig{
			URL:         "http://localhost:8000/graphql",
			Credentials: CredentialsInclude,
			Timeout:     30,
		},
		Database: DatabaseConfig{
			MaxConns: 10,
		},
		Audit: AuditConfig{
			Enabled: false,
			LogPath: "audit.log",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "thoth",
		},
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none is
// given) into the process environment. Variables already set are not
// overwritten and missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - THOTH_MCP_AUTH_TOKEN overrides cfg.Server.AuthToken
//   - THOTH_GRAPHQL_URL overrides cfg.GraphQL.URL
//   - THOTH_GRAPHQL_TOKEN overrides cfg.GraphQL.Token
//   - THOTH_GRAPHQL_CREDENTIALS overrides cfg.GraphQL.Credentials
//   - THOTH_GRAPHQL_TIMEOUT overrides cfg.GraphQL.Timeout (seconds)
//   - DATABASE_URL overrides cfg.Database.URL
//   - THOTH_LOG_LEVEL and THOTH_LOG_FORMAT override cfg.Log
//   - OTEL_EXPORTER_OTLP_ENDPOINT overrides cfg.Telemetry.Endpoint
//
// Empty values never override. An unparsable timeout is ignored.
func ApplyEnvOverrides(cfg *Config) {
	if token := os.Getenv("THOTH_MCP_AUTH_TOKEN"); token != "" {
		cfg.Server.AuthToken = token
	}
	if url := os.Getenv("THOTH_GRAPHQL_URL"); url != "" {
		cfg.GraphQL.URL = url
	}
	if token := os.Getenv("THOTH_GRAPHQL_TOKEN"); token != "" {
		cfg.GraphQL.Token = token
	}
	if creds := os.Getenv("THOTH_GRAPHQL_CREDENTIALS"); creds != "" {
		cfg.GraphQL.Credentials = creds
	}
	if timeout := os.Getenv("THOTH_GRAPHQL_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.GraphQL.Timeout = n
		}
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if level := os.Getenv("THOTH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("THOTH_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		cfg.Telemetry.Endpoint = endpoint
	}
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.Server.AuthToken is empty. It returns the token (existing or generated)
// and any error encountered during generation.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded cryptographically
// random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
