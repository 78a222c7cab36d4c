package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"repair-app/config"
	"repair-app/controllers"
	"repair-app/middleware"
)

func SetupMaterialRoutes(app *fiber.App, db *gorm.DB) {
	materialController := controllers.NewMaterialController(db)

	api := app.Group(config.MAIN_ROUTES+"/materials", middleware.AuthMiddleware)
	api.Get("/template", materialController.DownloadTemplate)
	api.Post("/upload", materialController.UploadMaterials)
	api.Post("/", materialController.CreateMaterial)
	api.Get("/", materialController.GetAllMaterials)
	api.Get("/:id", materialController.GetMaterialByID)
	api.Put("/:id", materialController.UpdateMaterial)
	api.Delete("/:id", materialController.DeleteMaterial)
}
