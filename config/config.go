// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required in production).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Competition settings.
	AllowedKringen []string // kringen admitted to the inter-society board
	FinishHour     int      // target hour for the group-board countdown
	FinishMinute   int

	// Kring logo assets.
	LogoDriver   string // fs | s3
	LogoDir      string // driver=fs: directory of <Name>.png files
	LogoBucket   string // driver=s3
	LogoRegion   string
	LogoEndpoint string // optional, for MinIO

	// Dangerous: registers POST /api/dev-reset when true.
	EnableDevReset bool

	// MySQL – used only by cmd/importlegacy.
	MySQLDSN string

	// Google Sheets – used only by cmd/exportsheet.
	SheetsCredentials string
	SpreadsheetID     string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "urenloop")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "urenloop")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "urenloop.app,www.urenloop.app")
	v.SetDefault("DEBUG", false)
	v.SetDefault("KRINGEN_ALLOWED", "VTK,Apolloon")
	v.SetDefault("FINISH_HOUR", 19)
	v.SetDefault("FINISH_MINUTE", 0)
	v.SetDefault("LOGO_DRIVER", "fs")
	v.SetDefault("LOGO_DIR", "./kringen")
	v.SetDefault("LOGO_REGION", "eu-west-1")
	v.SetDefault("ENABLE_DEV_RESET", false)

	cfg := &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBUser:            v.GetString("DB_USER"),
		DBPass:            v.GetString("DB_PASS"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		Debug:             v.GetBool("DEBUG"),
		Port:              v.GetString("PORT"),
		TLSDomains:        splitTrimmed(v.GetString("TLS_DOMAINS")),
		AllowedKringen:    splitTrimmed(v.GetString("KRINGEN_ALLOWED")),
		FinishHour:        v.GetInt("FINISH_HOUR"),
		FinishMinute:      v.GetInt("FINISH_MINUTE"),
		LogoDriver:        v.GetString("LOGO_DRIVER"),
		LogoDir:           v.GetString("LOGO_DIR"),
		LogoBucket:        v.GetString("LOGO_BUCKET"),
		LogoRegion:        v.GetString("LOGO_REGION"),
		LogoEndpoint:      v.GetString("LOGO_ENDPOINT"),
		EnableDevReset:    v.GetBool("ENABLE_DEV_RESET"),
		MySQLDSN:          v.GetString("MYSQL_DSN"),
		SheetsCredentials: v.GetString("SHEETS_CREDENTIALS"),
		SpreadsheetID:     v.GetString("SPREADSHEET_ID"),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	if len(c.AllowedKringen) == 0 {
		log.Fatal("config: KRINGEN_ALLOWED must name at least one kring")
	}
	switch c.LogoDriver {
	case "fs":
	case "s3":
		if c.LogoBucket == "" {
			log.Fatal("config: LOGO_BUCKET required when LOGO_DRIVER=s3")
		}
	default:
		log.Fatalf("config: unknown LOGO_DRIVER %q", c.LogoDriver)
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
