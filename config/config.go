// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configDir          = pflag.String("config-dir", ".", "Directory to search for config.toml")
	validLogLevels     = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers     = []string{"sqlite", "postgres"}
	validSessionStores = []string{"memory", "cookie", "redis"}
)

// ErrNoSessionSecret is returned by Load when no session secret was configured
var ErrNoSessionSecret = errors.New("no session secret provided")

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Host     HostConfig     `mapstructure:"host"`
	DB       DBConfig       `mapstructure:"db"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mail     MailConfig     `mapstructure:"mail"`
	Security SecurityConfig `mapstructure:"security"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type HostConfig struct {
	Port        int       `mapstructure:"port"`
	SSL         SSLConfig `mapstructure:"ssl"`
	CORSOrigins []string  `mapstructure:"cors_origins"`
}

type SSLConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	CertificatePath    string `mapstructure:"certificate_path"`
	CertificateKeyPath string `mapstructure:"certificate_key_path"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Name   string        `mapstructure:"name"`
	Store  string        `mapstructure:"store"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type SecurityConfig struct {
	RateLimit int `mapstructure:"rate_limit"`
}

// Scheme returns the URL scheme that links pointing back at the app should use
func (h HostConfig) Scheme() string {
	if h.SSL.Enabled {
		return "https"
	}

	return "http"
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() (*Config, error) {
	pflag.Parse()

	// A missing .env is fine, real environment variables still apply
	_ = godotenv.Load()

	v := viper.New()
	v.BindPFlags(pflag.CommandLine)
	v.AddConfigPath(*configDir)

	cfg, err := Load(v)
	if errors.Is(err, ErrNoSessionSecret) {
		fmt.Println("WARNING: You haven't set a session secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random session secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	return cfg, err
}

// Load reads the configuration known to v, the environment and an optional
// config.toml file, applies defaults and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT", "PORT")
	v.BindEnv("host.cors_origins", "HOST_CORS")
	v.BindEnv("host.ssl.enabled", "HOST_SSL_ENABLED")
	v.BindEnv("host.ssl.certificate_path", "HOST_SSL_CERTIFICATE_PATH")
	v.BindEnv("host.ssl.certificate_key_path", "HOST_SSL_CERTIFICATE_KEY_PATH")

	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN", "DATABASE_URL")

	v.BindEnv("session.secret", "SESSION_SECRET")
	v.BindEnv("session.name", "SESSION_NAME")
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("session.max_age", "SESSION_MAX_AGE")

	v.BindEnv("redis.url", "REDIS_URL")

	v.BindEnv("mail.host", "MAIL_HOST")
	v.BindEnv("mail.port", "MAIL_PORT")
	v.BindEnv("mail.user", "MAIL_USER", "GMAIL_USER")
	v.BindEnv("mail.password", "MAIL_PASSWORD", "GMAIL_PASS")
	v.BindEnv("mail.from", "MAIL_FROM")

	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 3000)
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "tourbuddy.db")

	v.SetDefault("session.name", "tourbuddy.sid")
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.max_age", time.Hour*24*7)

	v.SetDefault("redis.url", "redis://127.0.0.1:6379/0")

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)

	v.SetDefault("security.rate_limit", 5)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional, everything can come from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config, %w", err)
	}

	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports the first problem found in c
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if c.Host.SSL.Enabled {
		if c.Host.SSL.CertificatePath == "" {
			return errors.New("no ssl certificate path provided")
		}

		if c.Host.SSL.CertificateKeyPath == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(validDBDrivers, c.DB.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.DB.DSN == "" {
		return errors.New("database dsn can't be empty")
	}

	if c.Session.Secret == "" {
		return ErrNoSessionSecret
	}

	if !slices.Contains(validSessionStores, c.Session.Store) {
		return errors.New("invalid session store provided")
	}

	if c.Session.MaxAge <= 0 {
		return errors.New("session max age must be bigger than 0")
	}

	if c.Session.Store == "redis" && c.Redis.URL == "" {
		return errors.New("redis url can't be empty when using the redis session store")
	}

	if c.Mail.Host == "" || c.Mail.Port <= 0 {
		return errors.New("invalid mail server provided")
	}

	if c.Security.RateLimit <= 0 {
		return errors.New("rate limit must be bigger than 0")
	}

	return nil
}
