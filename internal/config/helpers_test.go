package config

import (
	"encoding/hex"
	"os"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// ApplyEnvOverrides
// ---------------------------------------------------------------------------

// overrideVars lists every variable ApplyEnvOverrides reads.
var overrideVars = []string{
	"THOTH_MCP_AUTH_TOKEN",
	"THOTH_GRAPHQL_URL",
	"THOTH_GRAPHQL_TOKEN",
	"THOTH_GRAPHQL_CREDENTIALS",
	"THOTH_GRAPHQL_TIMEOUT",
	"DATABASE_URL",
	"THOTH_LOG_LEVEL",
	"THOTH_LOG_FORMAT",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
}

// clearOverrideVars unsets every override variable for the duration of the test.
func clearOverrideVars(t *testing.T) {
	t.Helper()
	for _, key := range overrideVars {
		// Register cleanup via t.Setenv, then immediately remove
		// the variable so os.LookupEnv returns (_, false).
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func Test_ApplyEnvOverrides_Cases(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		initial  Config
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "auth token env set on empty config",
			env:  map[string]string{"THOTH_MCP_AUTH_TOKEN": "my-token"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Server.AuthToken != "my-token" {
					t.Errorf("AuthToken = %q, want %q", cfg.Server.AuthToken, "my-token")
				}
			},
		},
		{
			name:    "empty env does not override existing values",
			env:     map[string]string{"THOTH_GRAPHQL_URL": "", "DATABASE_URL": ""},
			initial: Config{GraphQL: GraphQLConfig{URL: "http://keep"}, Database: DatabaseConfig{URL: "postgres://keep"}},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.GraphQL.URL != "http://keep" {
					t.Errorf("GraphQL.URL = %q, want %q", cfg.GraphQL.URL, "http://keep")
				}
				if cfg.Database.URL != "postgres://keep" {
					t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://keep")
				}
			},
		},
		{
			name: "graphql settings overridden",
			env: map[string]string{
				"THOTH_GRAPHQL_URL":         "https://api.thoth.pub",
				"THOTH_GRAPHQL_TOKEN":       "tok",
				"THOTH_GRAPHQL_CREDENTIALS": "omit",
				"THOTH_GRAPHQL_TIMEOUT":     "7",
			},
			initial: Config{GraphQL: GraphQLConfig{URL: "http://old", Timeout: 30}},
			validate: func(t *testing.T, cfg *Config) {
				want := GraphQLConfig{URL: "https://api.thoth.pub", Token: "tok", Credentials: "omit", Timeout: 7}
				if cfg.GraphQL.URL != want.URL || cfg.GraphQL.Token != want.Token ||
					cfg.GraphQL.Credentials != want.Credentials || cfg.GraphQL.Timeout != want.Timeout {
					t.Errorf("GraphQL = %+v, want %+v", cfg.GraphQL, want)
				}
			},
		},
		{
			name:    "unparsable timeout is ignored",
			env:     map[string]string{"THOTH_GRAPHQL_TIMEOUT": "soon"},
			initial: Config{GraphQL: GraphQLConfig{Timeout: 30}},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.GraphQL.Timeout != 30 {
					t.Errorf("Timeout = %d, want 30", cfg.GraphQL.Timeout)
				}
			},
		},
		{
			name: "database log and telemetry overridden",
			env: map[string]string{
				"DATABASE_URL":                "postgres://db/thoth",
				"THOTH_LOG_LEVEL":             "debug",
				"THOTH_LOG_FORMAT":            "json",
				"OTEL_EXPORTER_OTLP_ENDPOINT": "collector:4317",
			},
			initial: Config{Server: ServerConfig{Port: 9090}},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Database.URL != "postgres://db/thoth" {
					t.Errorf("Database.URL = %q", cfg.Database.URL)
				}
				if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
					t.Errorf("Log = %+v", cfg.Log)
				}
				if cfg.Telemetry.Endpoint != "collector:4317" {
					t.Errorf("Telemetry.Endpoint = %q", cfg.Telemetry.Endpoint)
				}
				if cfg.Server.Port != 9090 {
					t.Errorf("Port = %d, want 9090 (unchanged)", cfg.Server.Port)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOverrideVars(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			ApplyEnvOverrides(&cfg)
			tt.validate(t, &cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// EnsureAuthToken
// ---------------------------------------------------------------------------

func Test_EnsureAuthToken_Cases(t *testing.T) {
	t.Run("token already set returns existing token unchanged", func(t *testing.T) {
		cfg := &Config{
			Server: ServerConfig{
				AuthToken: "pre-set",
			},
		}

		token, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "pre-set" {
			t.Errorf("returned token = %q, want %q", token, "pre-set")
		}
		if cfg.Server.AuthToken != "pre-set" {
			t.Errorf("cfg.Server.AuthToken = %q, want %q", cfg.Server.AuthToken, "pre-set")
		}
	})

	t.Run("empty token generates and sets new token", func(t *testing.T) {
		cfg := &Config{
			Server: ServerConfig{
				AuthToken: "",
			},
		}

		token, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("returned token is empty, expected a generated value")
		}
		if cfg.Server.AuthToken != token {
			t.Errorf("cfg.Server.AuthToken = %q, want %q (returned token)", cfg.Server.AuthToken, token)
		}
	})

	t.Run("generated token is 32 characters", func(t *testing.T) {
		cfg := &Config{
			Server: ServerConfig{
				AuthToken: "",
			},
		}

		token, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(token) != 32 {
			t.Errorf("len(token) = %d, want 32", len(token))
		}
	})

	t.Run("generated token is valid hex", func(t *testing.T) {
		cfg := &Config{
			Server: ServerConfig{
				AuthToken: "",
			},
		}

		token, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		decoded, err := hex.DecodeString(token)
		if err != nil {
			t.Fatalf("token %q is not valid hex: %v", token, err)
		}
		if len(decoded) != 16 {
			t.Errorf("decoded length = %d, want 16 bytes", len(decoded))
		}
	})

	t.Run("two calls produce different tokens", func(t *testing.T) {
		cfg1 := &Config{Server: ServerConfig{AuthToken: ""}}
		cfg2 := &Config{Server: ServerConfig{AuthToken: ""}}

		token1, err := EnsureAuthToken(cfg1)
		if err != nil {
			t.Fatalf("first call error: %v", err)
		}

		token2, err := EnsureAuthToken(cfg2)
		if err != nil {
			t.Fatalf("second call error: %v", err)
		}

		if token1 == token2 {
			t.Errorf("two generated tokens are identical: %q", token1)
		}
	})
}

// ---------------------------------------------------------------------------
// GenerateRandomToken
// ---------------------------------------------------------------------------

func Test_GenerateRandomToken_Cases(t *testing.T) {
	t.Run("returns 32 character string", func(t *testing.T) {
		token, err := GenerateRandomToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(token) != 32 {
			t.Errorf("len(token) = %d, want 32", len(token))
		}
	})

	t.Run("output is valid hex encoding 16 bytes", func(t *testing.T) {
		token, err := GenerateRandomToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		decoded, err := hex.DecodeString(token)
		if err != nil {
			t.Fatalf("token %q is not valid hex: %v", token, err)
		}
		if len(decoded) != 16 {
			t.Errorf("decoded byte length = %d, want 16", len(decoded))
		}
	})

	t.Run("two calls return different values", func(t *testing.T) {
		token1, err := GenerateRandomToken()
		if err != nil {
			t.Fatalf("first call error: %v", err)
		}

		token2, err := GenerateRandomToken()
		if err != nil {
			t.Fatalf("second call error: %v", err)
		}

		if token1 == token2 {
			t.Errorf("two generated tokens are identical: %q", token1)
		}
	})

	t.Run("concurrent calls all succeed with unique tokens", func(t *testing.T) {
		const goroutines = 100

		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			tokens = make(map[string]struct{}, goroutines)
			errs   []error
		)

		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				token, err := GenerateRandomToken()
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				tokens[token] = struct{}{}
			}()
		}
		wg.Wait()

		if len(errs) > 0 {
			t.Fatalf("got %d errors in concurrent calls; first: %v", len(errs), errs[0])
		}

		if len(tokens) != goroutines {
			t.Errorf("expected %d unique tokens, got %d (collisions detected)", goroutines, len(tokens))
		}
	})
}
