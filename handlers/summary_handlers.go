package handlers

import (
	"context"
	"log"
	"time"

	"demandcast/database"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetSummary returns the dashboard totals, the top ten products by
// revenue and the month-start revenue series.
func HandleGetSummary(c *fiber.Ctx) error {
	ctx := context.Background()
	db := database.GetDB()

	var resp models.SummaryResponse
	err := db.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0), COUNT(*) FROM sales`).
		Scan(&resp.TotalSales, &resp.TotalOrders)
	if err != nil {
		log.Printf("❌ [SUMMARY] Failed to aggregate sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summary"})
	}

	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&resp.TotalCustomers); err != nil {
		log.Printf("❌ [SUMMARY] Failed to count customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summary"})
	}

	resp.TopProducts = []models.SummaryProduct{}
	rows, err := db.Query(ctx, `
		SELECT s.product_id,
		       COALESCE(p.name, 'Product #' || s.product_id::text) AS description,
		       SUM(s.total) AS sales
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.product_id IS NOT NULL
		GROUP BY s.product_id, p.name
		ORDER BY sales DESC
		LIMIT 10`)
	if err != nil {
		log.Printf("❌ [SUMMARY] Failed to load top products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summary"})
	}
	for rows.Next() {
		var p models.SummaryProduct
		if err := rows.Scan(&p.ProductID, &p.Description, &p.Sales); err != nil {
			log.Printf("⚠️ [SUMMARY] Skipping unreadable product row: %v", err)
			continue
		}
		resp.TopProducts = append(resp.TopProducts, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Printf("❌ [SUMMARY] Top products scan failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summary"})
	}

	resp.Monthly = []models.MonthlySales{}
	rows, err = db.Query(ctx, `
		SELECT date_trunc('month', invoice_date)::date AS month, SUM(total) AS sales
		FROM sales
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		log.Printf("❌ [SUMMARY] Failed to load monthly sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summary"})
	}
	for rows.Next() {
		var month time.Time
		var sales float64
		if err := rows.Scan(&month, &sales); err != nil {
			log.Printf("⚠️ [SUMMARY] Skipping unreadable monthly row: %v", err)
			continue
		}
		resp.Monthly = append(resp.Monthly, models.MonthlySales{
			InvoiceDate: month.Format("2006-01-02"),
			Sales:       sales,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Printf("❌ [SUMMARY] Monthly scan failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summary"})
	}

	return c.JSON(resp)
}
