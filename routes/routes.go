package routes

import (
	"demandcast/handlers"
	"demandcast/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Use(middleware.RequestID)
	app.Use(middleware.Recover)

	api := app.Group("/api/v1")

	// --- Forecasting Routes ---
	api.Get("/forecast", handlers.HandleGetForecast)
	api.Get("/product-forecast", handlers.HandleGetProductForecast)
	api.Get("/customer-forecast", handlers.HandleGetCustomerForecast)
	api.Get("/segments", handlers.HandleGetSegments)
	api.Get("/insights", handlers.HandleGetInsight)

	// --- Dashboard Routes ---
	api.Get("/summary", handlers.HandleGetSummary)
	api.Get("/sales", handlers.HandleListSales)
	api.Get("/sales/:saleId", handlers.HandleGetSaleByID)

	// --- Ingestion Routes ---
	upload := api.Group("/upload")
	upload.Post("/sales", handlers.HandleUploadSales)
	upload.Post("/products", handlers.HandleUploadProducts)
	upload.Post("/customers", handlers.HandleUploadCustomers)

	api.Post("/products", handlers.HandleAddProduct)
	api.Post("/customers", handlers.HandleAddCustomer)
}
