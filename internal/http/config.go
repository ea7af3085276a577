package http

import (
	"github.com/shialibrary/hadith-server/internal/auth"
	"github.com/shialibrary/hadith-server/internal/covers"
	"github.com/shialibrary/hadith-server/internal/database"
	"github.com/shialibrary/hadith-server/internal/library"
	"github.com/shialibrary/hadith-server/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Catalog  CatalogStore
	Resolver *library.Resolver
	Reader   *library.Reader
	Searcher Searcher

	// Saved hadith (requires authentication to be wired)
	SavedStore SavedStore

	// Authentication (all nil when running without accounts)
	AuthController *auth.Controller
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Feedback relay
	Auditor         AuditSaver
	EnqueueFeedback func(task tasks.SendFeedbackTask) error

	// Cover caching (optional)
	CoverCache *covers.Cache

	// Application info
	Version string
}
