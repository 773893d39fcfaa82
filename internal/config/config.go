// Package config handles runtime configuration for the API server,
// including defaults and environment overlay. The resulting struct is
// built once in main and passed by reference; nothing in this repository
// reads the environment after startup.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - Addr: bind address for the HTTP listener.
//   - DBPath: filename for the SQLite database.
//   - JWTSecret: HMAC secret for signing session tokens (HS256).
//     Do not use the development default in production.
//   - TokenTTL: session token lifetime. Default: 7 days.
//   - BcryptCost: password hashing difficulty (4..31). Typical: 10-14.
//   - Production: enables Secure cookies and hides error details.
//   - LogLevel: logrus level name ("debug", "info", ...).
type Config struct {
	Addr       string
	DBPath     string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Production bool
	LogLevel   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the JWT secret here is insecure and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.Addr = ":3000"
	c.DBPath = "app.db"
	c.JWTSecret = "your-secret-key-change-in-production"
	c.TokenTTL = 7 * 24 * time.Hour
	c.BcryptCost = 10
	c.Production = false
	c.LogLevel = "info"
}

// Load builds a Config by applying defaults and then overlaying values
// from the environment.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	return cfg
}

func (c *Config) parseEnv() {
	if v, ok := os.LookupEnv("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		c.Addr = ":" + v
	}
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		c.DBPath = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.JWTSecret = v
	}
	if v, ok := os.LookupEnv("JWT_EXPIRY"); ok {
		if d, err := time.ParseDuration(v); err == nil && d != 0 {
			c.TokenTTL = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = n
		}
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		c.Production = v == "production"
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
}
