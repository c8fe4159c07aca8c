package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-builder/internal/shared/telemetry"
)

// ErrEmptyURL is returned when no database URL is configured.
var ErrEmptyURL = errors.New("DATABASE_URL is empty")

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DefaultLambdaOptions keeps the pool small since each Lambda instance
// serves one request at a time.
func DefaultLambdaOptions() Options {
	return Options{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxIdleTime: 30 * time.Second,
		ConnMaxLifetime: 15 * time.Minute,
		PingTimeout:     3 * time.Second,
	}
}

// DefaultServerOptions returns defaults for the long-running API and worker.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultMigrateOptions returns defaults for the migrate CLI.
func DefaultMigrateOptions() Options {
	return Options{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}

// OptionsFromEnv overrides defaults with DB_* env vars if present. Invalid
// values are logged and ignored.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	intOverrides := map[string]*int{
		"DB_MAX_OPEN_CONNS": &opts.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &opts.MaxIdleConns,
	}
	for key, dst := range intOverrides {
		if v, ok := envInt(key); ok {
			*dst = v
		}
	}
	durationOverrides := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":  &opts.ConnMaxLifetime,
		"DB_CONN_MAX_IDLE_TIME": &opts.ConnMaxIdleTime,
		"DB_PING_TIMEOUT":       &opts.PingTimeout,
	}
	for key, dst := range durationOverrides {
		if v, ok := envDuration(key); ok {
			*dst = v
		}
	}
	return opts
}

// IsLambdaRuntime reports whether the process runs inside AWS Lambda.
func IsLambdaRuntime() bool {
	return strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != ""
}

var openDB = sql.Open

// Connect opens a pgx-backed *sql.DB and pings it. Callers share the
// returned handle.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrEmptyURL
	}

	conn, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	opts.apply(conn)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logPoolStats(conn, "db.connected")
	return conn, nil
}

// singleton holds the process-wide connection used on Lambda, where
// concurrent cold-start callers must share one pool.
var singleton struct {
	mu       sync.Mutex
	cond     *sync.Cond
	db       *sql.DB
	inFlight bool
}

func init() {
	singleton.cond = sync.NewCond(&singleton.mu)
}

// GetSingleton returns the process-wide *sql.DB, connecting on first use.
// A failed connect is retried by the next caller.
func GetSingleton(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	singleton.mu.Lock()
	for singleton.inFlight && singleton.db == nil {
		singleton.cond.Wait()
	}
	if singleton.db != nil {
		conn := singleton.db
		singleton.mu.Unlock()
		telemetry.Info("db.singleton_reused", nil)
		return conn, nil
	}
	singleton.inFlight = true
	singleton.mu.Unlock()

	conn, err := Connect(ctx, databaseURL, opts)

	singleton.mu.Lock()
	if err == nil {
		singleton.db = conn
	}
	singleton.inFlight = false
	singleton.cond.Broadcast()
	singleton.mu.Unlock()

	if err != nil {
		return nil, err
	}
	telemetry.Info("db.singleton_initialized", nil)
	return conn, nil
}

func resetSingleton() {
	singleton.mu.Lock()
	singleton.db = nil
	singleton.inFlight = false
	singleton.mu.Unlock()
}

func (o Options) apply(conn *sql.DB) {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 10
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 5
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = time.Hour
	}
	conn.SetMaxOpenConns(o.MaxOpenConns)
	conn.SetMaxIdleConns(o.MaxIdleConns)
	conn.SetConnMaxLifetime(o.ConnMaxLifetime)
	if o.ConnMaxIdleTime > 0 {
		conn.SetConnMaxIdleTime(o.ConnMaxIdleTime)
	}
}

func logPoolStats(conn *sql.DB, msg string) {
	stats := conn.Stats()
	telemetry.Info(msg, map[string]any{
		"open":     stats.OpenConnections,
		"in_use":   stats.InUse,
		"idle":     stats.Idle,
		"wait":     stats.WaitCount,
		"max_open": stats.MaxOpenConnections,
	})
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("db.env_invalid", map[string]any{"key": key, "value": raw, "error": err.Error()})
		return 0, false
	}
	return val, true
}

func envDuration(key string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("db.env_invalid", map[string]any{"key": key, "value": raw, "error": err.Error()})
		return 0, false
	}
	return val, true
}
