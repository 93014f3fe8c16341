package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"demandcast/database"
	"demandcast/forecast"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

var engine *forecast.Engine

// InitEngine wires the forecast engine constructed at startup into the HTTP
// handlers. The engine carries the backend choice; handlers never switch it.
func InitEngine(e *forecast.Engine) {
	engine = e
}

// parseHorizon reads the days query parameter, applying the default horizon
// and rejecting anything that is not a positive integer.
func parseHorizon(c *fiber.Ctx) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return forecast.DefaultHorizon, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &forecast.InvalidParameterError{Name: "days", Reason: "must be an integer"}
	}
	if days < 1 {
		return 0, &forecast.InvalidParameterError{Name: "days", Reason: "must be a positive number of days"}
	}
	return days, nil
}

// statusForError maps engine errors onto HTTP statuses: data and parameter
// problems are the client's fault, fit failures are ours.
func statusForError(err error) int {
	var invalid *forecast.InvalidParameterError
	if errors.Is(err, forecast.ErrNoData) || errors.As(err, &invalid) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	if errors.Is(err, forecast.ErrNoData) {
		msg = "No sales data available"
	}
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": msg})
}

// loadSalesRows reads the full sales snapshot the engine computes over.
// Unreadable rows are skipped rather than failing the whole snapshot.
func loadSalesRows(ctx context.Context) ([]models.SaleRecord, error) {
	db := database.GetDB()
	rows, err := db.Query(ctx, `SELECT invoice_date, product_id, customer_id, qty, price, total FROM sales`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SaleRecord
	for rows.Next() {
		var rec models.SaleRecord
		if err := rows.Scan(&rec.InvoiceDate, &rec.ProductID, &rec.CustomerID, &rec.Qty, &rec.Price, &rec.Total); err != nil {
			log.Printf("⚠️ [FORECAST] Skipping unreadable sales row: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// loadProductNames returns the catalog id → name lookup used for labels.
// A missing catalog is not fatal; synthetic labels cover the gaps.
func loadProductNames(ctx context.Context) map[int64]string {
	db := database.GetDB()
	rows, err := db.Query(ctx, `SELECT id, name FROM products`)
	if err != nil {
		log.Printf("⚠️ [FORECAST] Product catalog unavailable, using synthetic labels: %v", err)
		return map[int64]string{}
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			log.Printf("⚠️ [FORECAST] Skipping unreadable product row: %v", err)
			continue
		}
		names[id] = name
	}
	return names
}

// toForecastPoints converts engine points into their wire representation.
func toForecastPoints(points []forecast.Point) []models.ForecastPoint {
	out := make([]models.ForecastPoint, len(points))
	for i, p := range points {
		out[i] = models.ForecastPoint{Date: p.Date.Format("2006-01-02"), Value: p.Value}
	}
	return out
}

// HandleGetForecast returns the aggregate daily revenue forecast with the
// trend narrative.
func HandleGetForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	days, err := parseHorizon(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := loadSalesRows(ctx)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to load sales rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sales data"})
	}

	result, err := engine.ForecastGlobal(rows, days)
	if err != nil {
		log.Printf("❌ [FORECAST] Global forecast failed: %v", err)
		return respondError(c, err)
	}

	log.Printf("📊 [FORECAST] Global: %d points, trend=%s, pct_change=%.2f", len(result.Points), result.Trend, result.PctChange)

	return c.JSON(models.GlobalForecastResponse{
		Forecast:  toForecastPoints(result.Points),
		Trend:     result.Trend,
		PctChange: result.PctChange,
		Analysis:  result.Analysis,
	})
}

// HandleGetProductForecast returns per-product demand forecasts, ranked by
// mean predicted demand, top ten.
func HandleGetProductForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	days, err := parseHorizon(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := loadSalesRows(ctx)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to load sales rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sales data"})
	}

	results, err := engine.ForecastByProduct(rows, loadProductNames(ctx), days)
	if err != nil {
		log.Printf("❌ [FORECAST] Product forecast failed: %v", err)
		return respondError(c, err)
	}

	log.Printf("📊 [FORECAST] Products ranked: %d", len(results))

	entries := make([]models.ProductForecastEntry, len(results))
	for i, r := range results {
		entries[i] = models.ProductForecastEntry{
			Product:   r.Product,
			ProductID: r.ProductID,
			Forecast:  toForecastPoints(r.Points),
			NextMean:  r.NextMean,
		}
	}
	return c.JSON(models.ProductForecastResponse{ProductForecast: entries})
}

// HandleGetCustomerForecast returns the forecast of distinct active
// customers per day.
func HandleGetCustomerForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	days, err := parseHorizon(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := loadSalesRows(ctx)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to load sales rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sales data"})
	}

	points, err := engine.ForecastCustomers(rows, days)
	if err != nil {
		log.Printf("❌ [FORECAST] Customer forecast failed: %v", err)
		return respondError(c, err)
	}

	return c.JSON(models.CustomerForecastResponse{CustomerForecast: toForecastPoints(points)})
}
