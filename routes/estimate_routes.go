package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"repair-app/config"
	"repair-app/controllers"
	"repair-app/middleware"
)

func SetupEstimateRoutes(app *fiber.App, db *gorm.DB) {
	estimateController := controllers.NewEstimateController(db)

	api := app.Group(config.MAIN_ROUTES+"/estimates", middleware.AuthMiddleware)
	api.Post("/check", estimateController.CheckEstimate)
}
