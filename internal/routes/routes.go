package routes

import (
	"github.com/arnold/activities-api/internal/config"
	"github.com/arnold/activities-api/internal/handlers"
	"github.com/arnold/activities-api/internal/logger"
	"github.com/arnold/activities-api/internal/middleware"
	"github.com/arnold/activities-api/internal/observability"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp builds the fiber application with every router mounted.
func NewApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "activities-api",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.Middleware())
	app.Use(observability.Middleware())

	Setup(app, cfg, db)
	return app
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	app.Get("/metrics", observability.Handler())

	api := app.Group(cfg.APIPrefix, middleware.Session(db))
	protected := middleware.Protected(cfg.JWTSecret)

	login := api.Group("/login")
	login.Post("/access-token", handlers.LoginAccessToken(cfg))
	login.Post("/test-token", protected, handlers.TestToken)

	users := api.Group("/users")
	users.Post("/signup", handlers.Signup)
	users.Get("/me", protected, handlers.GetMe)

	api.Get("/utils/health-check", handlers.HealthCheck)

	activities := api.Group("/activities", protected)
	activities.Get("/", handlers.ListActivities)
	activities.Post("/", handlers.CreateActivity)
	activities.Get("/:id", handlers.GetActivity)
	activities.Put("/:id", handlers.UpdateActivity)
	activities.Delete("/:id", handlers.DeleteActivity)

	api.Get("/tasks", handlers.ListTasks)

	if cfg.IsLocal() {
		private := api.Group("/private")
		private.Post("/users", handlers.CreatePrivateUser)
	}
}
