package session

import (
	"time"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

// Session is the authenticated caller of a request.
type Session struct {
	UserID    uint
	SalonID   uint
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func Set(c *gin.Context, s Session) {
	c.Set(contextKey, s)
}

// From returns the session stored by the auth middleware. ok is false on
// routes that are not behind it.
func From(c *gin.Context) (Session, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// MustFrom is for handlers mounted only behind the auth middleware.
func MustFrom(c *gin.Context) Session {
	s, ok := From(c)
	if !ok {
		panic("session: missing from context")
	}
	return s
}

// Actor returns the user id as an audit actor.
func (s Session) Actor() *uint {
	id := s.UserID
	return &id
}
