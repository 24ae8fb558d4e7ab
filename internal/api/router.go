package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/researchnotes/portal-api/docs"
	"github.com/researchnotes/portal-api/internal/api/handler"
	"github.com/researchnotes/portal-api/internal/api/middleware"
	"github.com/researchnotes/portal-api/internal/api/session"
	"github.com/researchnotes/portal-api/internal/core/ports"
	"github.com/researchnotes/portal-api/internal/core/service"
	"github.com/researchnotes/portal-api/internal/infrastructure/config"
	mongodb "github.com/researchnotes/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/researchnotes/portal-api/internal/infrastructure/db/redis"
	"github.com/researchnotes/portal-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder and service are constructed by the caller so the
// dispatcher's lifecycle stays with main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	auditRecorder ports.AuditRecorder,
	auditService ports.AuditService,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	sessionStore := redisdb.NewSessionStore(rdb)
	flashStore := redisdb.NewFlashStore(rdb)
	sessions := session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL)

	accountService := service.NewAccountService(identityRepo, profileRepo, auditRecorder, cfg.AdminSignupCode, log)
	contentService := service.NewContentService(noteRepo, commentRepo, auditRecorder, log)

	authHandler := handler.NewAuthHandler(accountService, sessions, flashStore, log)
	homeHandler := handler.NewHomeHandler(accountService, flashStore, log)
	noteHandler := handler.NewNoteHandler(contentService)
	commentHandler := handler.NewCommentHandler(contentService)
	auditHandler := handler.NewAuditHandler(auditService)

	withSession := middleware.WithSession(sessions)
	requireSession := middleware.RequireSession()
	requireAdmin := middleware.RequireAdmin(accountService)
	e.Use(withSession)

	// --- Auth flows ---
	e.GET("/signup", authHandler.SignupPage)
	e.POST("/signup", authHandler.Signup)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	// --- Landing pages (role-conditional, never hard-reject) ---
	e.GET("/home", homeHandler.Home)
	e.GET("/admin-home", homeHandler.AdminHome)

	// --- JSON API ---
	notes := e.Group("/api/notes", requireAdmin)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)

	e.GET("/api/comments", commentHandler.List)
	e.POST("/api/comments", commentHandler.Create, requireSession)

	e.GET("/api/audit", auditHandler.List, requireAdmin)

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
