package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	errConfigFileIsDir = errors.New("config file is dir")
)

func readYAML(path string, out *Config) error {
	if path == "" {
		return nil
	}

	finfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if finfo.IsDir() {
		return errConfigFileIsDir
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(yamlFile, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORTAL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Portal.Port = port
		}
	}
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("SESSION_POSTGRES_DSN"); v != "" {
		cfg.Session.PostgresDSN = v
		cfg.Session.Store = StorePostgres
	}
}
