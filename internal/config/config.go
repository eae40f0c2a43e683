// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// JWTSecret signs and verifies identity tokens.
	JWTSecret string `json:"jwt_secret"`

	// TokenTTL is the lifetime of issued tokens and of the auth cookie.
	TokenTTL Duration `json:"token_ttl"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `json:"bcrypt_cost"`

	// StoreTimeout bounds each database operation.
	StoreTimeout Duration `json:"store_timeout"`

	// LogLevel is the minimum level of the application logger.
	LogLevel string `json:"log_level"`

	// RequestLog and ErrorLog are file paths for the request and error
	// sinks. Empty means the application logger.
	RequestLog string `json:"request_log"`
	ErrorLog   string `json:"error_log"`

	// AllowedOrigins lists CORS origins.
	AllowedOrigins []string `json:"allowed_origins"`

	// CookieSecure adds the Secure attribute to the auth cookie.
	CookieSecure bool `json:"cookie_secure"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Duration is a time.Duration that reads "5s"-style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("duration must be a string or an integer")
	}
	*d = Duration(n)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Defaults returns the options used when nothing else is configured.
func Defaults() *Options {
	return &Options{
		Port:           "localhost:3000",
		DatabaseDSN:    "postgres://localhost:5432/mestodb?sslmode=disable",
		JWTSecret:      DevSecret,
		TokenTTL:       Duration(7 * 24 * time.Hour),
		BcryptCost:     10,
		StoreTimeout:   Duration(5 * time.Second),
		LogLevel:       "info",
		RequestLog:     "logs/request.log",
		ErrorLog:       "logs/error.log",
		AllowedOrigins: []string{"*"},
	}
}

// DevSecret is the signing key used when none is configured. It is only fit
// for local development.
const DevSecret = "dev-secret"

// Parse reads a .env file if present, then parses command-line flags, the
// JSON config file and environment variables, in that order of precedence
// from lowest to highest. It exits the process on invalid input.
func Parse() *Options {
	_ = godotenv.Load()

	opts, err := parse(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return opts
}

func parse(args []string, getenv func(string) string) (*Options, error) {
	options := Defaults()

	fs := flag.NewFlagSet("mesto", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", options.Port, "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", options.DatabaseDSN, "db address")
	fs.StringVar(&options.JWTSecret, "s", options.JWTSecret, "jwt signing secret")
	fs.Func("ttl", "token lifetime, e.g. 168h", durationFlag(&options.TokenTTL))
	fs.IntVar(&options.BcryptCost, "bcrypt-cost", options.BcryptCost, "bcrypt work factor")
	fs.Func("store-timeout", "timeout of a single database operation", durationFlag(&options.StoreTimeout))
	fs.StringVar(&options.LogLevel, "l", options.LogLevel, "log level")
	fs.StringVar(&options.RequestLog, "request-log", options.RequestLog, "request log file")
	fs.StringVar(&options.ErrorLog, "error-log", options.ErrorLog, "error log file")
	fs.Func("origins", "comma separated CORS origins", func(s string) error {
		options.AllowedOrigins = splitList(s)
		return nil
	})
	fs.BoolVar(&options.CookieSecure, "cookie-secure", options.CookieSecure, "set Secure on the auth cookie")
	fs.StringVar(&options.TLSCert, "tls-cert", options.TLSCert, "TLS certificate file")
	fs.StringVar(&options.TLSKey, "tls-key", options.TLSKey, "TLS key file")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := applyEnv(options, getenv); err != nil {
		return nil, err
	}
	return options, nil
}

func applyEnv(options *Options, getenv func(string) string) error {
	if port := getenv("PORT"); port != "" {
		options.Port = ":" + port
	}
	if serverAddress := getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if v := getenv("TOKEN_TTL"); v != "" {
		if err := durationFlag(&options.TokenTTL)(v); err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
	}
	if v := getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		options.BcryptCost = cost
	}
	if v := getenv("STORE_TIMEOUT"); v != "" {
		if err := durationFlag(&options.StoreTimeout)(v); err != nil {
			return fmt.Errorf("STORE_TIMEOUT: %w", err)
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		options.LogLevel = v
	}
	if v := getenv("REQUEST_LOG"); v != "" {
		options.RequestLog = v
	}
	if v := getenv("ERROR_LOG"); v != "" {
		options.ErrorLog = v
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		options.AllowedOrigins = splitList(v)
	}
	if v := getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		options.CookieSecure = secure
	}
	if v := getenv("TLS_CERT"); v != "" {
		options.TLSCert = v
	}
	if v := getenv("TLS_KEY"); v != "" {
		options.TLSKey = v
	}
	return nil
}

func durationFlag(dst *Duration) func(string) error {
	return func(s string) error {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*dst = Duration(v)
		return nil
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
