package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"repair-app/config"
	"repair-app/controllers/idgen"
	"repair-app/database"
	"repair-app/routes"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Connect to database
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app, db)
	routes.SetupEstimateRoutes(app, db)
	routes.SetupAllocationRoutes(app, db)
	routes.SetupMaterialRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server berjalan di port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
