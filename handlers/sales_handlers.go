package handlers

import (
	"context"
	"fmt"
	"log"

	"demandcast/database"
	"demandcast/forecast"
	"demandcast/models"
	"demandcast/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleListSales lists transactions, newest first, with optional from/to
// date filters and page/pageSize pagination.
func HandleListSales(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	where := "WHERE 1=1"
	args := []any{}
	if raw := c.Query("startDate"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			return respondError(c, &forecast.InvalidParameterError{Name: "startDate", Reason: "must be a date"})
		}
		args = append(args, utils.Day(t))
		where += fmt.Sprintf(" AND invoice_date >= $%d", len(args))
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			return respondError(c, &forecast.InvalidParameterError{Name: "endDate", Reason: "must be a date"})
		}
		args = append(args, utils.Day(t))
		where += fmt.Sprintf(" AND invoice_date <= $%d", len(args))
	}

	log.Printf("📥 [SALES] Listing sales page=%d pageSize=%d filters=%d", page, pageSize, len(args))

	query := fmt.Sprintf(`
		SELECT id, invoice_date, product_id, customer_id, qty, price, total, batch_id, created_at
		FROM sales
		%s
		ORDER BY invoice_date DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := db.Query(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		log.Printf("❌ [SALES] Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}
	defer rows.Close()

	sales := []models.SaleRecord{}
	for rows.Next() {
		var sale models.SaleRecord
		if err := rows.Scan(&sale.ID, &sale.InvoiceDate, &sale.ProductID, &sale.CustomerID, &sale.Qty, &sale.Price, &sale.Total, &sale.BatchID, &sale.CreatedAt); err != nil {
			log.Printf("⚠️ [SALES] Error scanning sale: %v", err)
			continue
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ [SALES] Sales scan failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}

	var totalItems int
	countQuery := "SELECT COUNT(*) FROM sales " + where
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		log.Printf("❌ [SALES] Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count sales"})
	}

	return c.JSON(models.PaginatedSalesResponse{
		Data:       sales,
		Pagination: utils.CreatePagination(totalItems, page, pageSize),
	})
}

// HandleGetSaleByID retrieves a single transaction by its ID.
func HandleGetSaleByID(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	saleID, err := c.ParamsInt("saleId")
	if err != nil {
		return respondError(c, &forecast.InvalidParameterError{Name: "saleId", Reason: "must be an integer"})
	}

	query := `
		SELECT id, invoice_date, product_id, customer_id, qty, price, total, batch_id, created_at
		FROM sales
		WHERE id = $1`
	var sale models.SaleRecord
	if err := db.QueryRow(ctx, query, saleID).Scan(&sale.ID, &sale.InvoiceDate, &sale.ProductID, &sale.CustomerID, &sale.Qty, &sale.Price, &sale.Total, &sale.BatchID, &sale.CreatedAt); err != nil {
		log.Printf("Error getting sale by ID: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	return c.JSON(sale)
}
