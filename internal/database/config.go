package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgethub/internal/config"
)

// Config holds database connection settings.
type Config struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// NewConfig derives the database configuration from the application configuration.
func NewConfig(app *config.Config) *Config {
	return &Config{
		Driver:          app.DBDriver,
		Host:            app.DBHost,
		Port:            app.DBPort,
		User:            app.DBUser,
		Password:        app.DBPassword,
		DBName:          app.DBName,
		SSLMode:         app.DBSSLMode,
		Path:            app.DBPath,
		MaxOpenConns:    app.DBMaxOpenConns,
		MaxIdleConns:    app.DBMaxIdleConns,
		ConnMaxLifetime: app.DBConnMaxLifetime,
		LogLevel:        app.DBLogLevel,
	}
}

// DSN returns the connection string understood by the GORM driver.
func (c *Config) DSN() string {
	if c.Driver == config.DriverSQLite {
		// Foreign keys are off by default in SQLite; the ledger relies on them.
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", c.Path)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrationURL returns the database URL understood by golang-migrate.
func (c *Config) MigrationURL() string {
	if c.Driver == config.DriverSQLite {
		return fmt.Sprintf("sqlite3://%s?_foreign_keys=on", c.Path)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// ensureDir creates the parent directory of a SQLite database file.
func (c *Config) ensureDir() error {
	if c.Driver != config.DriverSQLite {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}
