package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spendlog/internal/store"
)

type Config struct {
	// HTTP Server
	Port string

	// Store
	DataBackend  string
	BoltDBPath   string
	SQLiteDBPath string

	// Export
	ExportBackend string
}

// Export backend names. "excel" produces real .xlsx files; "off" keeps the
// app running with the export capability reported unavailable.
const (
	ExportExcel = "excel"
	ExportOff   = "off"
)

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		DataBackend:  getEnv("DATA_BACKEND", store.BoltBackend.String()),
		BoltDBPath:   getEnv("BOLT_DB_PATH", "./data/spendlog.db"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/spendlog.sqlite"),

		ExportBackend: getEnv("EXPORT_BACKEND", ExportExcel),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	backend := store.Backend(c.DataBackend)
	if !backend.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, store.Backends()))
	}

	switch backend {
	case store.BoltBackend:
		if c.BoltDBPath == "" {
			errs = append(errs, "bolt database path cannot be empty when using bolt backend")
		} else if err := ensureDir(c.BoltDBPath); err != nil {
			errs = append(errs, err.Error())
		}
	case store.SQLiteBackend:
		if c.SQLiteDBPath == "" {
			errs = append(errs, "sqlite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errs = append(errs, err.Error())
		}
	}

	switch c.ExportBackend {
	case ExportExcel, ExportOff:
	default:
		errs = append(errs, fmt.Sprintf("invalid export backend '%s': must be one of [%s %s]", c.ExportBackend, ExportExcel, ExportOff))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// StoreOptions converts the config into store factory options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:    store.Backend(c.DataBackend),
		BoltPath:   c.BoltDBPath,
		SQLitePath: c.SQLiteDBPath,
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create database directory '%s': %v", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
