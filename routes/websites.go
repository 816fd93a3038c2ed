package routes

import (
	"alfredoramos.mx/outreach-tracker/controllers"
	"github.com/gofiber/fiber/v2"
)

func RegisterWebsiteRoutes(g fiber.Router) {
	g.Post("/add", controllers.PostWebsite).Name("api.websites.add")
	g.Get("/all", controllers.GetAllWebsites).Name("api.websites.index")
	g.Get("/stats", controllers.GetWebsiteStats).Name("api.websites.stats")
	g.Get("/:id", controllers.GetWebsite).Name("api.websites.show")
	g.Post("/:id/update", controllers.PostUpdateWebsite).Name("api.websites.update")
	g.Get("/:id/activity", controllers.GetWebsiteActivity).Name("api.websites.activity")
}
