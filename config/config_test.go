package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{LogLevel: "info"},
		Host:     HostConfig{Port: 3000},
		DB:       DBConfig{Driver: "sqlite", DSN: ":memory:"},
		Session:  SessionConfig{Secret: "secret", Name: "sid", Store: "memory", MaxAge: time.Hour},
		Mail:     MailConfig{Host: "localhost", Port: 25},
		Security: SecurityConfig{RateLimit: 1},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("MAIL_USER", "")
	t.Setenv("GMAIL_USER", "tourbuddy@gmail.com")
	t.Setenv("GMAIL_PASS", "app-password")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Host.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, "tourbuddy.sid", cfg.Session.Name)
	assert.Equal(t, time.Hour*24*7, cfg.Session.MaxAge)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, "tourbuddy@gmail.com", cfg.Mail.User)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, "tourbuddy@gmail.com", cfg.Mail.From, "sender falls back to the mail account")
	assert.Equal(t, "http", cfg.Host.Scheme())
}

func TestLoadNoSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load(viper.New())
	assert.ErrorIs(t, err, ErrNoSessionSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_MAX_AGE", "1h")
	t.Setenv("HOST_PORT", "8081")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, 8081, cfg.Host.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"bad log level", func(c *Config) { c.App.LogLevel = "loud" }, false},
		{"bad port", func(c *Config) { c.Host.Port = 0 }, false},
		{"ssl without cert", func(c *Config) { c.Host.SSL.Enabled = true }, false},
		{"bad driver", func(c *Config) { c.DB.Driver = "mongodb" }, false},
		{"bad store", func(c *Config) { c.Session.Store = "file" }, false},
		{"redis without url", func(c *Config) { c.Session.Store = "redis" }, false},
		{"zero max age", func(c *Config) { c.Session.MaxAge = 0 }, false},
		{"zero rate limit", func(c *Config) { c.Security.RateLimit = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
