// Package entrypoint assembles the server: database, repositories, auth,
// search, the feedback pipeline and the HTTP router.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shialibrary/hadith-server/internal/audit"
	"github.com/shialibrary/hadith-server/internal/auth"
	"github.com/shialibrary/hadith-server/internal/config"
	"github.com/shialibrary/hadith-server/internal/covers"
	"github.com/shialibrary/hadith-server/internal/database"
	"github.com/shialibrary/hadith-server/internal/database/catalog"
	"github.com/shialibrary/hadith-server/internal/database/saved"
	"github.com/shialibrary/hadith-server/internal/feedback"
	http_controllers "github.com/shialibrary/hadith-server/internal/http"
	"github.com/shialibrary/hadith-server/internal/library"
	"github.com/shialibrary/hadith-server/internal/scheduler"
	"github.com/shialibrary/hadith-server/internal/search"
	"github.com/shialibrary/hadith-server/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting hadith server v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Catalog reads, bookmarks, and the views built over them
	catalogRepo := catalog.NewRepository(db.DB)
	savedRepo := saved.NewRepository(db.DB)
	resolver := library.NewResolver(catalogRepo)
	reader := library.NewReader(catalogRepo)
	searchService := search.NewService(
		catalogRepo,
		cfg.Search.ResultLimit,
		cfg.Search.CandidateLimit,
		db.FTSAvailable,
	)

	// Auditor for dumping incoming feedback payloads
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	// Cover cache for locally caching book images
	coverCacheDir := cfg.Covers.Dir
	if coverCacheDir == "" {
		coverCacheDir = filepath.Join(filepath.Dir(cfg.Database.Path), "covers")
	}
	coverCache, err := covers.NewCache(coverCacheDir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
	} else {
		log.Printf("Cover cache initialized at %s", coverCacheDir)
	}

	// Feedback relay: SMTP when configured, console mock otherwise
	if cfg.Feedback.SMTPHost == "" {
		log.Printf("WARNING: SMTP host is not set. Feedback emails will be logged, not sent.")
	}
	relay := feedback.NewService(feedback.NewSender(cfg.Feedback), cfg.Feedback)

	// Task queue for feedback delivery and audit retention
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var auditScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewSendFeedbackQueue(relay),
			tasks.NewCleanupAuditFilesQueue(auditor),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Prune old audit files on the configured cron schedule
		auditScheduler = scheduler.NewAuditCleanupScheduler(func(task tasks.CleanupAuditFilesTask) error {
			_, err := taskClient.Add(task).Save()
			return err
		}, cfg.Audit)
		if err := auditScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: Audit cleanup scheduler failed to start: %v", err)
		}
	}

	// Authentication: service, sessions, CSRF secret
	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authMiddleware := auth.NewMiddleware(authService, sessionManager)
	authController := auth.NewController(authService, sessionManager, cfg.Auth)
	defer authController.Stop()

	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist sessions across restarts)")
	}

	var enqueueFeedback func(task tasks.SendFeedbackTask) error
	if taskClient != nil {
		enqueueFeedback = func(task tasks.SendFeedbackTask) error {
			_, err := taskClient.Add(task).Save()
			return err
		}
	} else {
		// No queue: relay inline so feedback still works in minimal setups
		enqueueFeedback = func(task tasks.SendFeedbackTask) error {
			return relay.Relay(&task.Message)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		Catalog:         catalogRepo,
		Resolver:        resolver,
		Reader:          reader,
		Searcher:        searchService,
		SavedStore:      savedRepo,
		AuthController:  authController,
		AuthMiddleware:  authMiddleware,
		SessionManager:  sessionManager,
		CSRFSecret:      csrfSecret,
		SecureCookies:   cfg.Auth.SecureCookies,
		Auditor:         auditor,
		EnqueueFeedback: enqueueFeedback,
		CoverCache:      coverCache,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if auditScheduler != nil {
			auditScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
