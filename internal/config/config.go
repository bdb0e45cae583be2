package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CredentialsFile string        // path to the workspace credentials YAML file
	SessionSecret   string        // HMAC secret for session tokens
	SessionTTL      time.Duration // session token lifetime (default: 24h)
	AuthRequired    bool          // false => protected routes accept unauthenticated requests (local use)

	NotifyInterval time.Duration // reminder re-evaluation interval (default: 60s)
	NotifyWindow   time.Duration // forward-looking due window (default: 30m)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedOrigins []string // CORS origins for the SPA (default: "*")
	AllowedHosts   []string // optional, reject requests whose Host does not match (supports "*.example.com")
	AllowedCIDRS   []string // optional, restrict access to infra endpoints (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst  int // token bucket burst per client IP
	RateLimitPerMin int // refill per client IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("IMPLINK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("IMPLINK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("IMPLINK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("IMPLINK_PRETTY_LOG", true),

		// Auth
		CredentialsFile: requireEnv("IMPLINK_CREDENTIALS_FILE"),
		SessionSecret:   requireEnv("IMPLINK_SESSION_SECRET"),
		SessionTTL:      mustDuration("IMPLINK_SESSION_TTL", 24*time.Hour),
		AuthRequired:    mustBool("IMPLINK_AUTH_REQUIRED", true),

		// Reminder notification
		NotifyInterval: mustDuration("IMPLINK_NOTIFY_INTERVAL", 60*time.Second),
		NotifyWindow:   mustDuration("IMPLINK_NOTIFY_WINDOW", 30*time.Minute),

		// Redis settings
		RedisAddr:             requireEnv("IMPLINK_REDIS_ADDR"),
		RedisUser:             getenv("IMPLINK_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("IMPLINK_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("IMPLINK_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("IMPLINK_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("IMPLINK_ALLOWED_ORIGINS", "*")),
		AllowedHosts:   splitAndTrim(getenv("IMPLINK_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("IMPLINK_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("IMPLINK_TRUST_PROXY", false),

		// Rate limiting
		RateLimitBurst:  getenvInt("IMPLINK_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("IMPLINK_RATE_LIMIT_PER_MIN", 120),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: IMPLINK_REDIS_PASSWORD is required when IMPLINK_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.SessionSecret = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
