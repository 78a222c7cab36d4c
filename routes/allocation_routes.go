package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"repair-app/config"
	"repair-app/controllers"
	"repair-app/middleware"
)

func SetupAllocationRoutes(app *fiber.App, db *gorm.DB) {
	allocationController := controllers.NewAllocationController(db)

	api := app.Group(config.MAIN_ROUTES+"/allocations", middleware.AuthMiddleware)
	api.Post("/run", allocationController.RunAllocation)
	api.Get("/template", allocationController.DownloadTemplate)
	api.Get("/", allocationController.GetAllAllocations)
	api.Get("/:id", allocationController.GetAllocationByID)
	api.Get("/:id/export", allocationController.ExportAllocation)
}
