package api

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentease/rentease/internal/api/handler"
	"github.com/rentease/rentease/internal/api/middleware"
	"github.com/rentease/rentease/internal/core/ports"
	"github.com/rentease/rentease/internal/core/service"
	mongodb "github.com/rentease/rentease/internal/infrastructure/db/mongo"
	redisdb "github.com/rentease/rentease/internal/infrastructure/db/redis"
)

// Options carries the external collaborators and settings the router
// wires together.
type Options struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Media     ports.MediaStore
	Mailer    ports.Mailer
	JWTSecret string
	TokenTTL  time.Duration
	// StaticDir holds the browser pages; non-API paths fall back to its
	// home.html. Empty disables static serving.
	StaticDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rentease"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	propertyRepo := mongodb.NewPropertyRepository(opts.Mongo)
	challenges := redisdb.NewChallengeStore(opts.Redis)

	authService := service.NewAuthService(userRepo, challenges, opts.Mailer, opts.JWTSecret, opts.TokenTTL, opts.Logger)
	propertyService := service.NewPropertyService(propertyRepo, opts.Media, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	authRequired := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/send-signup-otp", authHandler.SendSignupOTP)
	e.POST("/api/verify-signup-otp", authHandler.VerifySignupOTP)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/forgot-password", authHandler.ForgotPassword)
	e.POST("/api/reset-password", authHandler.ResetPassword)

	// --- Property routes ---
	// my-properties is registered as a static path so it wins over :id.
	e.GET("/api/properties", propertyHandler.List)
	e.GET("/api/properties/my-properties", propertyHandler.MyProperties, authRequired)
	e.GET("/api/properties/:id", propertyHandler.Get)
	e.POST("/api/properties/add-property", propertyHandler.Create, authRequired)
	e.PUT("/api/properties/:id", propertyHandler.Update, authRequired)
	e.DELETE("/api/properties/:id", propertyHandler.Delete, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static pages + SPA fallback ---
	if opts.StaticDir != "" {
		e.GET("/*", spaFallback(opts.StaticDir))
	}

	return e
}

// spaFallback serves static pages and falls back to the landing page for
// unknown non-API paths; unknown API paths get a JSON 404, mirroring the
// single-page-app contract.
func spaFallback(staticDir string) echo.HandlerFunc {
	home := filepath.Join(staticDir, "home.html")
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		if strings.HasPrefix(p, "/api") {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "API route not found"})
		}
		if err := c.File(filepath.Join(staticDir, filepath.Clean("/"+p))); err == nil {
			return nil
		}
		return c.File(home)
	}
}
