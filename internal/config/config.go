// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the database, rate limiting, the outbound
// Wikidata query service, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// WDQSConfig defines how the Wikidata Query Service is called.
type WDQSConfig struct {
	Endpoint  string        // WDQS_ENDPOINT
	UserAgent string        // WDQS_USER_AGENT (WDQS rejects requests without one)
	Timeout   time.Duration // WDQS_TIMEOUT
	RPS       float64       // WDQS_RPS, outbound requests per second (0 = unlimited)
	Burst     int           // WDQS_BURST
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "depicts-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Database
	DBDriver string // sqlite|postgres
	DBPath   string // SQLite path
	DBDSN    string // PostgreSQL DSN (required when DBDriver=postgres)

	// Lookup
	LookupLimit int // max depicts matches returned per lookup

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Outbound SPARQL
	WDQS WDQSConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration from the process environment and panics
// if it is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LookupFunc returns the value of an environment key and whether it is set.
type LookupFunc func(key string) (string, bool)

// LoadFrom reads the configuration through lookup, applies defaults and
// normalization, and validates the result. Unparsable numbers, booleans and
// durations fall back to their defaults. The config is returned even when
// validation fails so callers can report what was read.
func LoadFrom(lookup LookupFunc) (Config, error) {
	e := env(lookup)
	cfg := Config{
		// Server
		Port:              e.str("PORT", "8080"),
		ReadTimeout:       e.dur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: e.dur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      e.dur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       e.dur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    e.int("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(e.str("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(e.str("LOG_LEVEL", "info")),
		LogPretty:      e.bool("LOG_PRETTY", false),
		SwaggerEnabled: e.bool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(e.str("API_BASE_PATH", "/api/v1")),

		// Database
		DBDriver: strings.ToLower(e.str("DB_DRIVER", "sqlite")),
		DBPath:   e.str("DB_PATH", "depicts.db"),
		DBDSN:    e.str("DB_DSN", ""),

		// Lookup
		LookupLimit: e.int("LOOKUP_LIMIT", 20),

		// Rate limiting
		RateRPS:   e.float("RATE_RPS", 5.0),
		RateBurst: e.int("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: e.list("CORS_ALLOWED_ORIGINS"),
		},
		Security: SecurityConfig{
			EnableHSTS: e.bool("ENABLE_HSTS", false),
			HSTSMaxAge: e.dur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Outbound SPARQL
		WDQS: WDQSConfig{
			Endpoint:  e.str("WDQS_ENDPOINT", "https://query.wikidata.org/bigdata/namespace/wdq/sparql"),
			UserAgent: e.str("WDQS_USER_AGENT", "depicts-backend/1.0 (https://www.wikidata.org/wiki/Wikidata:Depicts)"),
			Timeout:   e.dur("WDQS_TIMEOUT", 60*time.Second),
			RPS:       e.float("WDQS_RPS", 1.0),
			Burst:     e.int("WDQS_BURST", 1),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     e.bool("OTEL_ENABLED", false),
			Endpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.str("OTEL_SERVICE_NAME", "depicts-backend"),
			SampleRatio: e.float("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem with c at once, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of: debug, info, warn, error, fatal, panic", c.LogLevel))
	}
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")

	switch c.DBDriver {
	case "sqlite":
		check(strings.TrimSpace(c.DBPath) != "", "DB_PATH must not be empty")
	case "postgres":
		check(strings.TrimSpace(c.DBDSN) != "", "DB_DSN must be set when DB_DRIVER=postgres")
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q must be one of: sqlite, postgres", c.DBDriver))
	}

	check(c.LookupLimit >= 1 && c.LookupLimit <= 100, "LOOKUP_LIMIT must be between 1 and 100")
	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")

	check(strings.HasPrefix(c.WDQS.Endpoint, "http://") || strings.HasPrefix(c.WDQS.Endpoint, "https://"),
		"WDQS_ENDPOINT must be an http(s) URL")
	check(strings.TrimSpace(c.WDQS.UserAgent) != "", "WDQS_USER_AGENT must not be empty")
	check(c.WDQS.Timeout > 0, "WDQS_TIMEOUT must be > 0")
	check(c.WDQS.RPS >= 0 && c.WDQS.Burst >= 1, "WDQS_RPS must be >= 0 and WDQS_BURST >= 1")

	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	return errors.Join(errs...)
}

// env reads typed values; empty strings count as unset.
type env LookupFunc

func (e env) raw(k string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e(k)
	return v, ok && v != ""
}

func (e env) str(k, def string) string {
	if v, ok := e.raw(k); ok {
		return v
	}
	return def
}

func (e env) float(k string, def float64) float64 {
	if v, ok := e.raw(k); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (e env) int(k string, def int) int {
	if v, ok := e.raw(k); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func (e env) bool(k string, def bool) bool {
	v, ok := e.raw(k)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

func (e env) dur(k string, def time.Duration) time.Duration {
	if v, ok := e.raw(k); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

// list splits a comma-separated value, dropping blanks.
func (e env) list(k string) []string {
	v, ok := e.raw(k)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing ones (except root).
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}
