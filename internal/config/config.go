package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	JWTSecret             string
	JWTAudience           string
	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
	GatewayTimeout        time.Duration
	RedisURL              string
	OrderLockTTL          time.Duration
	OverduePollInterval   time.Duration
	OverdueBatchSize      int
	WorkerPoolSize        int
	ShutdownTimeout       time.Duration
	AllowedOrigins        []string
	LogLevel              string
}

const (
	defaultRunAddress          = ":8080"
	defaultJWTAudience         = "authenticated"
	defaultGatewayTimeout      = 15 * time.Second
	defaultOrderLockTTL        = 30 * time.Second
	defaultOverduePollInterval = time.Minute
	defaultOverdueBatchSize    = 50
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
	defaultAllowedOrigins      = "*"
	defaultLogLevel            = "info"
)

// Load parses configuration from a local .env file, environment variables and flags.
func Load() (*Config, error) {
	// Variables already present in the environment win over .env values.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		JWTSecret:             getString(lookup, "JWT_SECRET", ""),
		JWTAudience:           getString(lookup, "JWT_AUDIENCE", defaultJWTAudience),
		RazorpayKeyID:         getString(lookup, "RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getString(lookup, "RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: getString(lookup, "RAZORPAY_WEBHOOK_SECRET", ""),
		GatewayTimeout:        getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		RedisURL:              getString(lookup, "REDIS_URL", ""),
		OrderLockTTL:          getDuration(lookup, "ORDER_LOCK_TTL", defaultOrderLockTTL),
		OverduePollInterval:   getDuration(lookup, "OVERDUE_POLL_INTERVAL", defaultOverduePollInterval),
		OverdueBatchSize:      getInt(lookup, "OVERDUE_BATCH_SIZE", defaultOverdueBatchSize),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("deliveryportal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		lockTTLStr         = cfg.OrderLockTTL.String()
		pollIntervalStr    = cfg.OverduePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		originsStr         = getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret used by the identity service to sign access tokens")
	fs.StringVar(&cfg.JWTAudience, "jwt-audience", cfg.JWTAudience, "Expected access token audience")
	fs.StringVar(&cfg.RazorpayKeyID, "razorpay-key-id", cfg.RazorpayKeyID, "Razorpay public key id")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout of payment gateway calls")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for order creation locks")
	fs.StringVar(&lockTTLStr, "order-lock-ttl", lockTTLStr, "Order creation lock TTL")
	fs.StringVar(&pollIntervalStr, "overdue-interval", pollIntervalStr, "Interval between overdue invoice sweeps")
	fs.IntVar(&cfg.OverdueBatchSize, "overdue-batch", cfg.OverdueBatchSize, "Maximum invoices per overdue sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent notification workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&originsStr, "allowed-origins", originsStr, "Comma separated list of CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.OrderLockTTL, err = time.ParseDuration(lockTTLStr); err != nil {
		return nil, fmt.Errorf("invalid order lock ttl: %w", err)
	}

	if cfg.OverduePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid overdue interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	secrets := []struct {
		env    string
		target *string
	}{
		{"JWT_SECRET_FILE", &cfg.JWTSecret},
		{"RAZORPAY_KEY_SECRET_FILE", &cfg.RazorpayKeySecret},
		{"RAZORPAY_WEBHOOK_SECRET_FILE", &cfg.RazorpayWebhookSecret},
	}
	for _, s := range secrets {
		if path, ok := lookup(s.env); ok && path != "" {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", strings.ToLower(s.env), err)
			}
			*s.target = strings.TrimSpace(string(content))
		}
	}

	cfg.AllowedOrigins = splitList(originsStr)

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.OrderLockTTL <= 0 {
		cfg.OrderLockTTL = defaultOrderLockTTL
	}

	if cfg.OverduePollInterval <= 0 {
		cfg.OverduePollInterval = defaultOverduePollInterval
	}

	if cfg.OverdueBatchSize <= 0 {
		cfg.OverdueBatchSize = defaultOverdueBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{defaultAllowedOrigins}
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

// GatewayConfigured reports whether orders can be created and checkout payments verified.
func (c *Config) GatewayConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
