// Package internal holds the app wiring shared by the api and main packages
package internal

import (
	"bitwise74/tourbuddy/config"
	"bitwise74/tourbuddy/db"
	"bitwise74/tourbuddy/internal/service"
	"bitwise74/tourbuddy/pkg/security"
	"bitwise74/tourbuddy/pkg/session"
	"errors"
	"fmt"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Argon    *security.ArgonHash
	Accounts *service.Accounts
	Places   *service.Places
	Mailer   service.Mailer
	Sessions ginsessions.Store
}

// NewDeps opens every connection the app needs. Redis is only dialed when it
// backs the session store
func NewDeps(cfg *config.Config) (*Deps, error) {
	d := &Deps{Argon: security.New()}

	conn, err := db.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = conn

	if cfg.Session.Store == "redis" {
		rdb, err := db.NewRedis(cfg.Redis)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to initialize redis, %w", err)
		}
		d.Redis = rdb
	}

	store, err := session.NewStore(cfg.Session, cfg.Host.SSL.Enabled, d.Redis)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to initialize session store, %w", err)
	}
	d.Sessions = store

	d.Accounts = service.NewAccounts(d.DB, d.Argon)
	d.Places = service.NewPlaces(d.DB)
	d.Mailer = service.NewSMTPMailer(cfg.Mail)

	return d, nil
}

// Close releases the database and redis connections
func (d *Deps) Close() error {
	var errs []error

	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}

	if d.Redis != nil {
		errs = append(errs, d.Redis.Close())
	}

	return errors.Join(errs...)
}
