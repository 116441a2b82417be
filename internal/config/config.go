// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port         string        `env:"PORT"          envDefault:"4001"`
	MongoURI     string        `env:"MONGO_URI"     envDefault:"mongodb://localhost:27017"`
	MongoDB      string        `env:"MONGO_DB"      envDefault:"portforyou"`
	MongoTimeout time.Duration `env:"MONGO_TIMEOUT" envDefault:"5s"`

	JWTSecret   string `env:"JWT_SECRET,required,notEmpty"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"portforyou-api"`
	JWTIssuer   string `env:"JWT_ISSUER"   envDefault:"portforyou-auth"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"PortForYou <noreply@portforyou.app>"`
	ResetURL     string `env:"RESET_URL" envDefault:"http://localhost:3000/reset-password"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
		log.Println("Warning: .env file not found")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	if cfg.MongoTimeout <= 0 {
		return Config{}, fmt.Errorf("MONGO_TIMEOUT must be positive, got %s", cfg.MongoTimeout)
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
