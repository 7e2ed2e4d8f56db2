package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/referral-api/referral_api/internal/auth"
	"github.com/referral-api/referral_api/internal/config"
	"github.com/referral-api/referral_api/internal/identity"
	"github.com/referral-api/referral_api/internal/middleware"
	"github.com/referral-api/referral_api/internal/notification"
	"github.com/referral-api/referral_api/internal/referral"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories fall back to memory in dev without external stores.
	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}
	var tokenRepo auth.Repository
	if d.DB != nil {
		tokenRepo = auth.NewPostgresRepository(d.DB)
	} else {
		tokenRepo = auth.NewMemoryRepository()
	}

	// Services and handlers
	userSvc := identity.NewService(userRepo)
	sms := notification.NewLoggerSender(d.Logger)
	authSvc := auth.NewService(userSvc, tokenRepo, sms, d.Cfg.SMSDelay)
	authHandler := auth.NewHandler(authSvc)
	referralSvc := referral.NewService(userRepo)
	referralHandler := referral.NewHandler(referralSvc)

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)
	RegisterAuthRoutes(app, authHandler, rateLimiter)

	// Protected routes
	tokenAuth := middleware.TokenAuth(tokenRepo)
	protected := app.Group("", tokenAuth)
	RegisterDataRoutes(protected, referralHandler)

	return nil
}
