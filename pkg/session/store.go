// Package session wires the session store and the small set of values
// the app keeps in a session: the signed in user, where to go after login
// and flash messages
package session

import (
	"bitwise74/tourbuddy/config"
	"errors"
	"fmt"
	"net/http"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/redis/go-redis/v9"
)

// ErrNoRedis is returned by NewStore when the redis store is selected
// without a redis client
var ErrNoRedis = errors.New("redis session store selected but no redis client provided")

// NewStore builds the store selected by c.Store. rdb is only used by the
// redis store and may be nil otherwise
func NewStore(c config.SessionConfig, secure bool, rdb *redis.Client) (ginsessions.Store, error) {
	var store ginsessions.Store

	switch c.Store {
	case "memory":
		store = memstore.NewStore([]byte(c.Secret))
	case "cookie":
		store = cookie.NewStore([]byte(c.Secret))
	case "redis":
		if rdb == nil {
			return nil, ErrNoRedis
		}

		store = NewRedisStore(rdb, []byte(c.Secret))
	default:
		return nil, fmt.Errorf("unknown session store %q", c.Store)
	}

	store.Options(ginsessions.Options{
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	return store, nil
}
