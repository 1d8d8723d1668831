// Package db establishes the PostgreSQL connection pool used by the
// server-side counterpart of the Thoth API.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Environment variables holding the connection string.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTestDatabaseURL = "TEST_DATABASE_URL"
)

// ErrMissingConfig matches every *MissingConfigError via errors.Is.
var ErrMissingConfig = errors.New("missing configuration")

// MissingConfigError reports that a required configuration key is unset.
type MissingConfigError struct {
	Key string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s must be set", e.Key)
}

// Is reports whether target is ErrMissingConfig.
func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// Config holds pool settings.
type Config struct {
	// URL is the PostgreSQL connection string.
	URL string
	// Key names where URL came from, for diagnostics. Defaults to
	// DATABASE_URL.
	Key string
	// MaxConns caps the pool size when positive.
	MaxConns int
}

// FromEnv builds a Config from the environment using getenv (os.Getenv in
// production). When test is true the connection string is read from
// TEST_DATABASE_URL instead of DATABASE_URL. It returns a
// *MissingConfigError naming the variable when it is unset or empty.
func FromEnv(getenv func(string) string, test bool) (Config, error) {
	key := EnvDatabaseURL
	if test {
		key = EnvTestDatabaseURL
	}
	url := getenv(key)
	if url == "" {
		return Config{}, &MissingConfigError{Key: key}
	}
	return Config{URL: url, Key: key}, nil
}

// Pool is a ready-to-use set of reusable database connections.
type Pool struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open creates a connection pool and verifies it with a ping. It never
// returns an unusable pool: a missing URL yields a *MissingConfigError, and
// an unparsable URL or unreachable server yields a wrapped error. The caller
// decides whether the failure is fatal.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	key := cfg.Key
	if key == "" {
		key = EnvDatabaseURL
	}
	if cfg.URL == "" {
		return nil, &MissingConfigError{Key: key}
	}
	if cfg.MaxConns > math.MaxInt32 {
		return nil, fmt.Errorf("max conns %d exceeds %d", cfg.MaxConns, math.MaxInt32)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to database (%s): %w", key, err)
	}

	logger.Info("database pool ready",
		"host", poolConfig.ConnConfig.Host,
		"database", poolConfig.ConnConfig.Database,
		"max_conns", poolConfig.MaxConns,
	)
	return &Pool{pool: pool, logger: logger}, nil
}

// Acquire obtains a connection. The caller must call Release on it.
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	return p.pool.Acquire(ctx)
}

// Ping verifies a connection can be obtained and used.
func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Stats reports current pool usage.
type Stats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}

// Stats returns a snapshot of pool usage.
func (p *Pool) Stats() Stats {
	s := p.pool.Stat()
	return Stats{
		TotalConns:    s.TotalConns(),
		IdleConns:     s.IdleConns(),
		AcquiredConns: s.AcquiredConns(),
		MaxConns:      s.MaxConns(),
	}
}

// Close closes every connection in the pool.
func (p *Pool) Close() {
	p.pool.Close()
	p.logger.Info("database pool closed")
}
