package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Log settings shared by every binary.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or console
}

// App configures the guest-facing invitation site.
type App struct {
	Log

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	RemoteMessagesURL    string        `env:"REMOTE_MESSAGES_URL" envDefault:"http://localhost:8081/api/messages"`
	RemotePreferencesURL string        `env:"REMOTE_PREFERENCES_URL" envDefault:"http://localhost:8081/api/preferences"`
	RemoteTimeout        time.Duration `env:"REMOTE_TIMEOUT" envDefault:"5s"`

	LocalStore      string `env:"LOCAL_STORE" envDefault:"file"` // file or sqlite
	LocalDir        string `env:"LOCAL_DIR" envDefault:"data"`
	LocalSQLitePath string `env:"LOCAL_SQLITE_PATH" envDefault:"data/local.db"`
	LocalMaxRecords int    `env:"LOCAL_MAX_RECORDS" envDefault:"0"`

	WeddingDate time.Time `env:"WEDDING_DATE" envDefault:"2025-09-20T10:00:00+02:00"`
	TimeZone    string    `env:"TIME_ZONE" envDefault:"Europe/Paris"`
	Couple      string    `env:"COUPLE" envDefault:"Raïssa & Savio"`
	Venue       string    `env:"VENUE" envDefault:"Chapiteau"`
	OwnerEmail  string    `env:"OWNER_EMAIL"`
}

// API configures the remote store service.
type API struct {
	Log

	HTTPAddr             string   `env:"HTTP_ADDR" envDefault:":8081"`
	DatabaseURL          string   `env:"DATABASE_URL,required,notEmpty"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	InviteSecret       string        `env:"INVITE_SECRET"`
	OwnerEmail         string        `env:"OWNER_EMAIL"`
	WorkerPollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"800ms"`
	ListLimit          int           `env:"LIST_LIMIT" envDefault:"200"`
}

// Link configures the invitation link tool.
type Link struct {
	InviteSecret string `env:"INVITE_SECRET,required,notEmpty"`
	BaseURL      string `env:"INVITE_BASE_URL" envDefault:"http://localhost:8080/"`
}

func LoadApp() (App, error) {
	cfg, err := load[App]()
	if err != nil {
		return cfg, err
	}
	switch cfg.LocalStore {
	case "file", "sqlite":
	default:
		return cfg, fmt.Errorf("LOCAL_STORE must be file or sqlite, got %q", cfg.LocalStore)
	}
	return cfg, nil
}

func LoadAPI() (API, error) {
	cfg, err := load[API]()
	if err != nil {
		return cfg, err
	}
	origins := cfg.CORSAllowedOrigins[:0]
	for _, o := range cfg.CORSAllowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSAllowedOrigins = origins
	return cfg, nil
}

func LoadLink() (Link, error) {
	return load[Link]()
}

// Location resolves TimeZone, falling back to the process zone.
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func load[T any]() (T, error) {
	_ = godotenv.Load()

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
