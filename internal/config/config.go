package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"chessleague/internal/overlay"
	"chessleague/internal/replay"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Log     LogConfig     `yaml:"log"`
	Replay  ReplayConfig  `yaml:"replay"`
	Overlay OverlayConfig `yaml:"overlay"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	ImagesDir string `yaml:"images_dir"`
}

// DataConfig selects where league documents come from. DSN wins over
// BaseURL, which wins over Dir.
type DataConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
	DSN     string `yaml:"dsn"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// ReplayConfig holds autoplay paces.
type ReplayConfig struct {
	FeaturedInterval time.Duration `yaml:"featured_interval"`
	RecentInterval   time.Duration `yaml:"recent_interval"`
}

// OverlayConfig holds school popup settings.
type OverlayConfig struct {
	HideDelay time.Duration `yaml:"hide_delay"`
	Offset    int           `yaml:"offset"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", ImagesDir: "images"},
		Data:   DataConfig{Dir: "data"},
		Log:    LogConfig{Level: "info"},
		Replay: ReplayConfig{
			FeaturedInterval: replay.FeaturedInterval,
			RecentInterval:   replay.RecentInterval,
		},
		Overlay: OverlayConfig{HideDelay: overlay.DefaultHideDelay, Offset: overlay.DefaultOffset},
	}
}

// Load starts from Defaults, then applies an optional YAML file, a .env
// file and CHESSLEAGUE_* environment overrides. Keys present in the YAML
// file win over defaults even when zero. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "CHESSLEAGUE_ADDR")
	setString(&c.Server.ImagesDir, "CHESSLEAGUE_IMAGES_DIR")
	setString(&c.Data.Dir, "CHESSLEAGUE_DATA_DIR")
	setString(&c.Data.BaseURL, "CHESSLEAGUE_DATA_URL")
	setString(&c.Data.DSN, "CHESSLEAGUE_DSN")
	setString(&c.Log.Level, "CHESSLEAGUE_LOG_LEVEL")
	if v := os.Getenv("CHESSLEAGUE_POPUP_OFFSET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHESSLEAGUE_POPUP_OFFSET: %w", err)
		}
		c.Overlay.Offset = n
	}
	if v := os.Getenv("CHESSLEAGUE_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHESSLEAGUE_DEBUG: %w", err)
		}
		c.Log.Debug = b
	}
	for key, dst := range map[string]*time.Duration{
		"CHESSLEAGUE_FEATURED_INTERVAL": &c.Replay.FeaturedInterval,
		"CHESSLEAGUE_RECENT_INTERVAL":   &c.Replay.RecentInterval,
		"CHESSLEAGUE_HIDE_DELAY":        &c.Overlay.HideDelay,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Replay.FeaturedInterval <= 0 || c.Replay.RecentInterval <= 0 {
		return fmt.Errorf("replay intervals must be positive")
	}
	if c.Overlay.HideDelay < 0 {
		return fmt.Errorf("overlay.hide_delay must not be negative")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
