package routes

import (
	"alfredoramos.mx/outreach-tracker/controllers"
	"github.com/gofiber/fiber/v2"
)

func RegisterTransferRoutes(g fiber.Router) {
	g.Post("/import", controllers.PostImport).Name("api.transfer.import")
	g.Get("/export", controllers.GetExport).Name("api.transfer.export")
}
