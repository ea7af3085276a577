package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys for user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyEmail  = "auth_email"
)

// Middleware resolves the session user for each request. Browsing stays
// public; only routes behind RequireAuth demand a signed-in user.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// LoadUser returns a handler that puts the session's user into the Gin
// context when one exists. It never rejects a request.
func (m *Middleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.sessionManager != nil {
			if userID := m.sessionManager.GetUserID(c.Request); userID != 0 {
				if user, err := m.service.GetUserByID(userID); err == nil {
					c.Set(ContextKeyUserID, user.ID)
					c.Set(ContextKeyEmail, user.Email)
				}
			}
		}
		c.Next()
	}
}

// RequireAuth rejects unauthenticated requests. The message matches what the
// client surfaces next to the save button.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "please sign in",
			})
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context. Returns 0
// when the request is anonymous.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetEmail retrieves the authenticated user's email from the context.
func GetEmail(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// IsAuthenticated returns true if the request carries a signed-in user.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != 0
}
