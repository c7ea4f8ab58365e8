package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
)

type Config struct {
	HTTPAddr  string        `yaml:"http_addr"`
	LogLevel  string        `yaml:"log_level"`
	LogFile   string        `yaml:"log_file"`
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	Render    RenderConfig  `yaml:"render"`
}

// RenderConfig holds the options applied to every rendered bill.
//
//	language:    de, fr, it, rm or en
//	font_family: CSS font-family list written into SVG output
//	dpi:         raster resolution for PNG output, 72 to 1200
type RenderConfig struct {
	Language   string `yaml:"language"`
	FontFamily string `yaml:"font_family"`
	DPI        int    `yaml:"dpi"`
}

func Default() *Config {
	return &Config{
		HTTPAddr: ":8080",
		LogLevel: "info",
		CacheTTL: 24 * time.Hour,
		Render: RenderConfig{
			Language:   string(bill.LanguageDE),
			FontFamily: bill.DefaultFontFamily,
			DPI:        bill.DefaultDPI,
		},
	}
}

// Load reads defaults, then the YAML file named by CONFIG_FILE if set,
// then environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.Render.Language = getEnv("QRBILL_LANGUAGE", cfg.Render.Language)
	cfg.Render.FontFamily = getEnv("QRBILL_FONT_FAMILY", cfg.Render.FontFamily)

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", cfg.RedisDB); err != nil {
		return nil, err
	}
	if cfg.Render.DPI, err = getEnvInt("QRBILL_PNG_DPI", cfg.Render.DPI); err != nil {
		return nil, err
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, perr := time.ParseDuration(v)
		if perr != nil {
			return nil, fmt.Errorf("CACHE_TTL: %w", perr)
		}
		cfg.CacheTTL = ttl
	}

	if _, err := cfg.RenderFormat(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) RenderFormat() (bill.Format, error) {
	lang, err := bill.ParseLanguage(c.Render.Language)
	if err != nil {
		return bill.Format{}, fmt.Errorf("render.language: %w", err)
	}
	if c.Render.DPI < bill.MinDPI || c.Render.DPI > bill.MaxDPI {
		return bill.Format{}, fmt.Errorf("render.dpi must be between %d and %d, got %d", bill.MinDPI, bill.MaxDPI, c.Render.DPI)
	}
	font := c.Render.FontFamily
	if font == "" {
		font = bill.DefaultFontFamily
	}
	return bill.Format{Language: lang, FontFamily: font, DPI: c.Render.DPI}, nil
}

func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
