package routes

import (
	"alfredoramos.mx/outreach-tracker/controllers"
	"github.com/gofiber/fiber/v2"
)

func RegisterSystemRoutes(g fiber.Router) {
	g.Post("/cache/purge", controllers.PurgeCache).Name("api.system.cache.purge")
}
