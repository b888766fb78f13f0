package session

import ginsessions "github.com/gin-contrib/sessions"

const (
	userIDKey   = "userID"
	returnToKey = "returnTo"
)

// UserID returns the ID of the signed in user or "" for anonymous sessions
func UserID(s ginsessions.Session) string {
	id, _ := s.Get(userIDKey).(string)
	return id
}

func SetUserID(s ginsessions.Session, id string) {
	s.Set(userIDKey, id)
}

func ClearUserID(s ginsessions.Session) {
	s.Delete(userIDKey)
}

// SetReturnTo remembers the page an anonymous user was sent away from
func SetReturnTo(s ginsessions.Session, path string) {
	s.Set(returnToKey, path)
}

// PopReturnTo returns and forgets the remembered page, falling back to def
func PopReturnTo(s ginsessions.Session, def string) string {
	path, _ := s.Get(returnToKey).(string)
	s.Delete(returnToKey)

	if path == "" {
		return def
	}

	return path
}
