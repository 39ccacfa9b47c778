// Package config loads the server settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Poll     PollConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

type DatabaseConfig struct {
	Type string
	Path string
	URL  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
}

type PollConfig struct {
	WeekPolicy          string
	Timezone            string
	Weekdays            []string
	MeetingTime         string
	LocationPattern     string
	LocationReplacement string
	SeedFile            string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (when present) and then the process environment.
// A missing .env file is reported through envErr and is not fatal.
func Load() (cfg *Config, envErr error) {
	envErr = godotenv.Load()
	return Read(viper.New()), envErr
}

// Read builds the configuration from v, applying defaults for unset keys.
func Read(v *viper.Viper) *Config {
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:        v.GetInt("PORT"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Type:             strings.ToLower(v.GetString("DATABASE_TYPE")),
			Path:             v.GetString("DATABASE_PATH"),
			URL:              v.GetString("DATABASE_URL"),
			PostgresHost:     v.GetString("POSTGRES_HOST"),
			PostgresPort:     v.GetString("POSTGRES_PORT"),
			PostgresUser:     v.GetString("POSTGRES_USER"),
			PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
			PostgresDB:       v.GetString("POSTGRES_DB"),
		},
		Poll: PollConfig{
			WeekPolicy:          v.GetString("WEEK_POLICY"),
			Timezone:            v.GetString("TIMEZONE"),
			Weekdays:            splitList(v.GetString("WEEKDAYS")),
			MeetingTime:         v.GetString("MEETING_TIME"),
			LocationPattern:     v.GetString("LOCATION_SHORTEN_PATTERN"),
			LocationReplacement: v.GetString("LOCATION_SHORTEN_REPLACEMENT"),
			SeedFile:            v.GetString("SEED_FILE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3001)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DATABASE_TYPE", StoreSQLite)
	v.SetDefault("DATABASE_PATH", "boulder.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("POSTGRES_DB", "boulder")
	v.SetDefault("WEEK_POLICY", string(domain.PolicyRollover))
	v.SetDefault("TIMEZONE", "Europe/Vienna")
	v.SetDefault("WEEKDAYS", "Monday,Tuesday,Wednesday,Thursday,Friday")
	v.SetDefault("MEETING_TIME", "18:30")
	v.SetDefault("LOCATION_SHORTEN_PATTERN", "boulderbar")
	v.SetDefault("LOCATION_SHORTEN_REPLACEMENT", "BB")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Database.Type {
	case StoreSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if _, err := url.Parse(c.DSN()); err != nil {
			return fmt.Errorf("invalid postgres connection string: %w", err)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown DATABASE_TYPE %q", c.Database.Type)
	}

	if _, err := domain.ParseWeekPolicy(c.Poll.WeekPolicy); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", c.Poll.MeetingTime); err != nil {
		return fmt.Errorf("MEETING_TIME must be HH:MM, got %q", c.Poll.MeetingTime)
	}
	if len(c.Poll.Weekdays) == 0 {
		return fmt.Errorf("WEEKDAYS must name at least one day")
	}
	return nil
}

// DSN returns DATABASE_URL, or a URL built from the POSTGRES_* keys.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	d := c.Database
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.PostgresUser, d.PostgresPassword),
		Host:     d.PostgresHost + ":" + d.PostgresPort,
		Path:     "/" + d.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Poll.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Poll.Timezone, err)
	}
	return loc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
