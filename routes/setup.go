package routes

import (
	"os"
	"strconv"

	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func SetupRoutes(app *fiber.App) {
	isDebug := utils.IsDebug()

	recoverConfig := recover.Config{
		EnableStackTrace: isDebug,
	}

	corsConfig := cors.Config{
		AllowOrigins: os.Getenv("APP_DOMAIN"),
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With, X-Acting-User",
	}

	maxRequests, err := strconv.Atoi(os.Getenv("LIMIT_REQUESTS_MAX"))
	if err != nil {
		maxRequests = 30
	}

	limiterConfig := limiter.Config{
		Max: maxRequests,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(&fiber.Map{"error": []string{"Too many requests received within a short amount of time."}})
		},
	}

	loggerConfig := logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05 -07:00",
		TimeZone:   utils.DefaultTimeZone(),
	}

	// Overwrite configuration when in DEBUG mode
	if isDebug {
		corsConfig.AllowOrigins = "*"
		limiterConfig.Max = 100
	}

	app.Use(recover.New(recoverConfig))
	app.Use(cors.New(corsConfig))
	app.Use(limiter.New(limiterConfig))
	app.Use(idempotency.New())
	app.Use(requestid.New())
	app.Use(logger.New(loggerConfig))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// System
	RegisterSystemRoutes(v1.Group("/system"))

	// Websites
	RegisterWebsiteRoutes(v1.Group("/websites"))

	// Bulk transfer
	RegisterTransferRoutes(v1.Group("/transfer"))

	// Health check
	RegisterHealthCheckRoutes(api)

	// Error handlers
	// Must be the last one!
	RegisterErrorHandlers(app)
}
