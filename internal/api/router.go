package api

import (
	echoprometheus "github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contractflow/review-api/internal/api/handler"
	"github.com/contractflow/review-api/internal/api/middleware"
	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed in
// main so the sweeper and dispatcher can share them.
type Deps struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	Vector handler.VectorHealthChecker

	Auth      ports.AuthService
	Documents ports.DocumentService
	Clauses   ports.ClauseService
	Chat      ports.ChatService

	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("contractflow"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Auth)
	documentHandler := handler.NewDocumentHandler(deps.Documents)
	clauseHandler := handler.NewClauseHandler(deps.Clauses)
	chatHandler := handler.NewChatHandler(deps.Chat, deps.Log)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Vector)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/", healthHandler.Liveness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth and user routes ---
	e.POST("/token", authHandler.Token)
	e.POST("/users/", authHandler.CreateUser)
	e.GET("/users/:id", userHandler.GetByID)
	e.GET("/users/email/:email", userHandler.GetByEmail)

	// --- Review workflow routes (JWT required) ---
	docs := e.Group("/documents", middleware.Auth(deps.JWTSecret))
	docs.POST("/", documentHandler.Create, middleware.RBAC(string(domain.RoleReviewer)))
	docs.GET("/", documentHandler.List)
	docs.GET("/:id", documentHandler.Get)
	docs.PUT("/:id", documentHandler.Update)
	docs.POST("/:id/approvers", documentHandler.AddApprovers, middleware.RBAC(string(domain.RoleReviewer)))

	// --- Unauthenticated API routes ---
	e.POST("/api/documents/send-email", documentHandler.SendEmail)
	e.GET("/api/clauses", clauseHandler.List)
	e.POST("/api/clauses", clauseHandler.Create)
	e.PUT("/api/clauses/:id", clauseHandler.Update)
	e.DELETE("/api/clauses/:id", clauseHandler.Delete)
	e.POST("/api/chat", chatHandler.Chat)
	e.POST("/api/chat/stream", chatHandler.Stream)

	return e
}
