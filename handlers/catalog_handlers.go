package handlers

import (
	"context"
	"log"

	"demandcast/database"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

// HandleAddProduct registers a product and records the initial purchase as a
// same-day sale, so new products show up in forecasts immediately.
func HandleAddProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input models.AddProductRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product name is required"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var productID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`,
		input.Name, input.Price).Scan(&productID); err != nil {
		log.Printf("❌ [CATALOG] Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}

	total := float64(input.Qty) * input.Price
	if _, err := tx.Exec(ctx,
		`INSERT INTO sales (invoice_date, product_id, qty, price, total) VALUES (CURRENT_DATE, $1, $2, $3, $4)`,
		productID, input.Qty, input.Price, total); err != nil {
		log.Printf("❌ [CATALOG] Error recording initial sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record initial sale"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	log.Printf("✅ [CATALOG] Added product %d (%s) with initial sale %.2f", productID, input.Name, total)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "product_id": productID})
}

// HandleAddCustomer registers a customer.
func HandleAddCustomer(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input models.AddCustomerRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Customer name is required"})
	}

	var customerID int64
	if err := db.QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, address, created_at) VALUES ($1, $2, $3, $4, CURRENT_DATE) RETURNING id`,
		input.Name, input.Email, input.Phone, input.Address).Scan(&customerID); err != nil {
		log.Printf("❌ [CATALOG] Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create customer"})
	}

	log.Printf("✅ [CATALOG] Added customer %d (%s)", customerID, input.Name)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "customer_id": customerID})
}
