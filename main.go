package main

import (
	"log"

	"demandcast/config"
	"demandcast/database"
	"demandcast/forecast"
	"demandcast/handlers"
	"demandcast/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	config.Load()
	if config.AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// Initialize database
	database.InitDB(config.AppConfig.DatabaseURL)
	defer database.CloseDB()
	database.InitSchema()

	// The backend is chosen once at startup and never switched per request.
	backend := forecast.DetectBackend(config.AppConfig.ForecastBackend)
	engine := forecast.NewEngine(backend)
	engine.SetMaxGroups(config.AppConfig.MaxForecastGroups)
	handlers.InitEngine(engine)
	log.Printf("📊 [STARTUP] Forecast backend: %s", backend)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := database.GetDB().Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "backend": engine.Backend().String()})
	})

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
