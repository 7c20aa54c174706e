package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/topi314/csat-counter/internal/xtime"
	"github.com/topi314/csat-counter/server/countdown"
	"github.com/topi314/csat-counter/server/database"
)

// LoadConfig reads the TOML file at cfgPath on top of the defaults. A missing
// file is not an error, the defaults are enough to run the site.
func LoadConfig(cfgPath string) (Config, error) {
	cfg := defaultConfig()

	file, err := os.Open(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Config file not found, using defaults", slog.String("path", cfgPath))
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr:            ":8085",
			PublicURL:       "http://localhost:8085",
			MinifyHTML:      true,
			ShutdownTimeout: xtime.Duration(5 * time.Second),
		},
		Counter: countdown.DefaultConfig(),
		API: APIConfig{
			Every:          xtime.Duration(100 * time.Millisecond),
			Burst:          50,
			AllowedOrigins: []string{"*"},
		},
		Database: database.Config{
			Enabled:  false,
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Password: "password",
			Database: "csat-counter",
			SSLMode:  "disable",
		},
		Notifications: NotificationsConfig{
			Enabled:  false,
			Schedule: "0 7 * * *",
		},
	}
}

type Config struct {
	Dev           bool                `toml:"dev"`
	Log           LogConfig           `toml:"log"`
	Server        ServerConfig        `toml:"server"`
	Counter       countdown.Config    `toml:"counter"`
	API           APIConfig           `toml:"api"`
	Database      database.Config     `toml:"database"`
	Notifications NotificationsConfig `toml:"notifications"`
}

func (c Config) String() string {
	return fmt.Sprintf("Dev: %t\nLog: %s\nServer: %s\nCounter: %s\nAPI: %s\nDatabase: %s\nNotifications: %s",
		c.Dev,
		c.Log,
		c.Server,
		c.Counter,
		c.API,
		c.Database,
		c.Notifications,
	)
}

func (c Config) Validate() error {
	if err := c.Counter.Validate(); err != nil {
		return err
	}
	switch c.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("unknown log format: %q", c.Log.Format)
	}
	if c.API.Burst <= 0 {
		return fmt.Errorf("api burst must be positive, got %d", c.API.Burst)
	}
	if c.Notifications.Enabled && len(c.Notifications.WebhookURLs) == 0 {
		return errors.New("notifications are enabled but no webhook_urls are configured")
	}
	return nil
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t",
		c.Level,
		c.Format,
		c.AddSource,
	)
}

type ServerConfig struct {
	Addr            string         `toml:"addr"`
	PublicURL       string         `toml:"public_url"`
	MinifyHTML      bool           `toml:"minify_html"`
	ShutdownTimeout xtime.Duration `toml:"shutdown_timeout"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n PublicURL: %s\n MinifyHTML: %t\n ShutdownTimeout: %s",
		c.Addr,
		c.PublicURL,
		c.MinifyHTML,
		c.ShutdownTimeout,
	)
}

type APIConfig struct {
	Every          xtime.Duration `toml:"every"`
	Burst          int            `toml:"burst"`
	AllowedOrigins []string       `toml:"allowed_origins"`
}

func (c APIConfig) String() string {
	return fmt.Sprintf("\n Every: %s\n Burst: %d\n AllowedOrigins: %s",
		c.Every,
		c.Burst,
		strings.Join(c.AllowedOrigins, ", "),
	)
}

type NotificationsConfig struct {
	Enabled     bool     `toml:"enabled"`
	Schedule    string   `toml:"schedule"`
	WebhookURLs []string `toml:"webhook_urls"`
}

func (c NotificationsConfig) String() string {
	return fmt.Sprintf("\n Enabled: %t\n Schedule: %s\n WebhookURLs: %d configured",
		c.Enabled,
		c.Schedule,
		len(c.WebhookURLs),
	)
}
