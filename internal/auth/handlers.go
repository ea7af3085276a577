package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shialibrary/hadith-server/internal/config"
)

// Controller handles the authentication JSON endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager, cfg config.Auth) *Controller {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
	}
}

// Stop cleans up the rate limiter's background goroutine.
func (ac *Controller) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

type registerRequest struct {
	Email                string `json:"email" binding:"required"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Register creates an account and signs the new user in.
func (ac *Controller) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if req.Password != req.PasswordConfirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	user, err := ac.service.Register(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEmailInvalid),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		}
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userResponse{ID: user.ID, Email: user.Email}})
}

// Login validates credentials and starts a session.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ip := c.ClientIP()
	if allowed, retryAfter := ac.rateLimiter.Allow(ip, req.Email); !allowed {
		c.Header("Retry-After", retryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many login attempts",
			"retry_after": retryAfter.String(),
		})
		return
	}

	user, err := ac.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAccountLocked) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ac.rateLimiter.RecordFailure(ip, req.Email)
		// One message for unknown email and wrong password alike
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	ac.rateLimiter.RecordSuccess(ip, req.Email)

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse{ID: user.ID, Email: user.Email}})
}

// Logout destroys the session. Logging out while signed out succeeds.
func (ac *Controller) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// Me reports the signed-in user, or authenticated=false for anonymous
// requests. The CSRF token rides along so clients can issue mutations.
func (ac *Controller) Me(c *gin.Context) {
	resp := gin.H{
		"authenticated": false,
	}
	if token := GetCSRFToken(c); token != "" {
		resp["csrf_token"] = token
	}

	if userID := GetUserID(c); userID != 0 {
		resp["authenticated"] = true
		resp["user"] = userResponse{ID: userID, Email: GetEmail(c)}
	}

	c.JSON(http.StatusOK, resp)
}
