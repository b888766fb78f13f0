package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
)

func init() {
	// Flashes are stored as []interface{} inside the values map
	gob.Register([]interface{}{})
}

const defaultKeyPrefix = "session:"

// RedisStore keeps session values in redis. The browser only holds the
// signed session ID
type RedisStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
	prefix  string
}

var _ ginsessions.Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		options: &sessions.Options{
			Path:   "/",
			MaxAge: 86400 * 7,
		},
		prefix: defaultKeyPrefix,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Options replaces the cookie options used for new sessions
func (s *RedisStore) Options(o ginsessions.Options) {
	s.options = o.ToGorillaOptions()
}

func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the session referenced by the request cookie, or a fresh one
// when there is no cookie or the session expired
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.codecs...); err != nil {
		// Tampered or signed with an old secret, start over
		session.ID = ""
		return session, nil
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}

	session.IsNew = !found
	if !found {
		session.ID = ""
	}

	return session, nil
}

// Save writes the session to redis and sets the cookie. A negative MaxAge
// deletes the session and clears the cookie
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("failed to delete session, %w", err)
			}
		}

		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		id, err := gonanoid.New(32)
		if err != nil {
			return fmt.Errorf("failed to generate session ID, %w", err)
		}

		session.ID = id
	}

	if err := s.store(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie, %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) store(ctx context.Context, session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("failed to encode session values, %w", err)
	}

	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if ttl <= 0 {
		ttl = time.Duration(s.options.MaxAge) * time.Second
	}

	if err := s.client.Set(ctx, s.key(session.ID), buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session, %w", err)
	}

	return nil
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, s.key(session.ID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to load session, %w", err)
	}

	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		return false, fmt.Errorf("failed to decode session values, %w", err)
	}

	return true, nil
}
