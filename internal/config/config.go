package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Portal  Portal  `yaml:"portal"`
	Backend Backend `yaml:"backend"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
}

type Portal struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Timezone string `yaml:"timezone"`
}

// Addr is the listen address of the portal's http.Server.
func (p Portal) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// Location resolves the timezone used for calendar days and form dates.
func (p Portal) Location() (*time.Location, error) {
	if p.Timezone == "" || p.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(p.Timezone)
}

type Backend struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Session struct {
	Lifetime    time.Duration `yaml:"lifetime"`
	CookieName  string        `yaml:"cookie_name"`
	Store       string        `yaml:"store"`
	PostgresDSN string        `yaml:"postgres_dsn"`
}

type Log struct {
	Development bool `yaml:"development"`
}

// New returns the built-in defaults.
func New() (*Config, error) {
	return &Config{
		Portal: Portal{
			Host:     "localhost",
			Port:     8123,
			Timezone: "Local",
		},
		Backend: Backend{
			BaseURL: "http://localhost:5000/api",
			Timeout: 10 * time.Second,
		},
		Session: Session{
			Lifetime:   24 * time.Hour,
			CookieName: "portal_session",
			Store:      StoreMemory,
		},
		Log: Log{
			Development: true,
		},
	}, nil
}

// Load applies the yaml file at path and then the environment on top of the
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}

	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Portal.Port <= 0 || c.Portal.Port > 65535 {
		return fmt.Errorf("portal.port out of range: %d", c.Portal.Port)
	}
	if _, err := c.Portal.Location(); err != nil {
		return fmt.Errorf("portal.timezone: %w", err)
	}
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url must not be empty")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be > 0")
	}
	if c.Session.Lifetime <= 0 {
		return errors.New("session.lifetime must be > 0")
	}
	switch c.Session.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Session.PostgresDSN == "" {
			return errors.New("session.postgres_dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("unrecognized session.store %q", c.Session.Store)
	}
	return nil
}
