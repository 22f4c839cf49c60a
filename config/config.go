// Package config loads the settings of qb from defaults, an optional
// qianbao.yaml file, a .env file and QB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/card"
	"github.com/etnz/qianbao/storage"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "QB"

// Name of the config file, without extension.
const Name = "qianbao"

// Config is the complete configuration of qb.
type Config struct {
	Store    string `mapstructure:"store"`
	Dir      string `mapstructure:"dir"`
	Key      string `mapstructure:"key"`
	Currency string `mapstructure:"currency"`
	Listen   string `mapstructure:"listen"`

	Redis Redis `mapstructure:"redis"`
	Log   Log   `mapstructure:"log"`
	Card  Card  `mapstructure:"card"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// Card configures the summary card export.
type Card struct {
	Scale   float64       `mapstructure:"scale"`
	Timeout time.Duration `mapstructure:"timeout"`
	Title   string        `mapstructure:"title"`  // empty means the default title
	Footer  string        `mapstructure:"footer"`
	Font    string        `mapstructure:"font"` // TrueType or OpenType file, Go fonts when empty
}

// New returns a viper instance with the defaults, the config file search path
// and the environment bindings of qb.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("store", storage.KindFile)
	v.SetDefault("dir", defaultDir())
	v.SetDefault("key", qianbao.DefaultKey)
	v.SetDefault("currency", qianbao.DefaultCurrency)
	v.SetDefault("listen", "localhost:8080")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", storage.DefaultRedisPrefix)
	v.SetDefault("log.level", "warning")
	v.SetDefault("log.format", "text")
	v.SetDefault("card.scale", float64(card.DefaultScale))
	v.SetDefault("card.timeout", 10*time.Second)
	v.SetDefault("card.title", "")
	v.SetDefault("card.footer", card.DefaultFooter)
	v.SetDefault("card.font", "")

	v.SetConfigName(Name)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", Name))
	}

	// QB_REDIS_ADDR is redis.addr
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the .env file of the working directory if any, then the
// configuration from the usual places.
// QB_CONFIG names an explicit config file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env file: %w", err)
	}
	v := New()
	if file := os.Getenv(EnvPrefix + "_CONFIG"); file != "" {
		v.SetConfigFile(file)
	}
	return Read(v)
}

// Read reads the config file of v, if any, and decodes the result.
func Read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
	}
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks values that would only fail later, deep in a command.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store {
	case storage.KindFile, storage.KindRedis, storage.KindMemory:
	default:
		errs = append(errs, fmt.Errorf("store: unknown kind %q", c.Store))
	}
	if c.Key == "" {
		errs = append(errs, fmt.Errorf("key: must not be empty"))
	}
	if !currencyCode.MatchString(c.Currency) {
		errs = append(errs, fmt.Errorf("currency: %q is not an ISO 4217 code", c.Currency))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: %q is neither text nor json", c.Log.Format))
	}
	if c.Card.Scale <= 0 {
		errs = append(errs, fmt.Errorf("card.scale: must be positive, got %v", c.Card.Scale))
	}
	if c.Card.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("card.timeout: must be positive, got %v", c.Card.Timeout))
	}
	return errors.Join(errs...)
}

// Storage returns the options to open the configured slot.
func (c *Config) Storage() storage.Options {
	return storage.Options{
		Kind:          c.Store,
		Dir:           c.Dir,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
		RedisPrefix:   c.Redis.Prefix,
	}
}

// Fonts loads the configured card fonts.
func (c *Config) Fonts() (*card.Fonts, error) {
	if c.Card.Font == "" {
		return card.GoFonts()
	}
	return card.LoadFonts(c.Card.Font)
}

// NewCard returns the card of total with the configured texts.
func (c *Config) NewCard(total qianbao.Money) card.Card {
	k := card.New(total)
	if c.Card.Title != "" {
		k.Title = c.Card.Title
	}
	if c.Card.Footer != "" {
		k.Footer = c.Card.Footer
	}
	return k
}

// SetupLog configures the standard logrus logger.
func (c *Config) SetupLog() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	switch c.Log.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
	return nil
}

// defaultDir is where file slots live when nothing is configured.
func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, Name)
	}
	return "."
}
