package routes

import (
	"time"

	"github.com/civicwatch-app/backend/internal/config"
	"github.com/civicwatch-app/backend/internal/handlers"
	"github.com/civicwatch-app/backend/internal/middleware"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
	moderationHandler *handlers.ModerationHandler,
	tagHandler *handlers.TagHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Query surface: JWT or API key.
	query := api.Group("", middleware.QueryAuth(db, cfg))
	query.Get("/users", userHandler.List)
	query.Get("/users/:id", userHandler.Get)
	query.Get("/reports", reportHandler.List)
	query.Get("/reports/:id", reportHandler.Get)
	query.Get("/tags", tagHandler.List)

	// Authenticated, non-blocked users.
	user := api.Group("", middleware.JWTProtected(cfg), middleware.NotBlocked(db))
	user.Put("/profile", userHandler.UpdateProfile)
	user.Post("/profile/api-key", userHandler.RegenerateAPIKey)
	user.Post("/users/:id/follow", userHandler.ToggleFollow)
	user.Post("/reports", reportHandler.Submit)
	user.Post("/reports/:id/comments", reportHandler.AddComment)
	user.Post("/reactions", reportHandler.ToggleReaction)
	user.Post("/abuse-reports", moderationHandler.FileAbuseReport)
	user.Post("/enrichment/tags", reportHandler.SuggestTags)

	// Resolver workflow.
	staff := api.Group("", middleware.JWTProtected(cfg), middleware.RoleRequired(db, models.RoleResolver, models.RoleAdmin))
	staff.Post("/reports/:id/assign", moderationHandler.Assign)
	staff.Post("/reports/:id/resolve", moderationHandler.Resolve)

	// Admin panel.
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RoleRequired(db, models.RoleAdmin))
	admin.Put("/users/:id/role", userHandler.SetRole)
	admin.Post("/blocks", userHandler.Block)
	admin.Post("/tags", tagHandler.Add)
	admin.Delete("/tags", tagHandler.Remove)
	admin.Get("/moderation/reported-issues", moderationHandler.ReportedIssues)
	admin.Get("/moderation/reported-comments", moderationHandler.ReportedComments)
}
