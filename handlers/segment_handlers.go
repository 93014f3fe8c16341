package handlers

import (
	"context"
	"log"

	"demandcast/forecast"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetSegments compares the trailing 30-day revenue window against the
// prior 30 days and tiers products by recent demand.
func HandleGetSegments(c *fiber.Ctx) error {
	ctx := context.Background()

	rows, err := loadSalesRows(ctx)
	if err != nil {
		log.Printf("❌ [SEGMENT] Failed to load sales rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sales data"})
	}

	summary, err := forecast.Segment(rows)
	if err != nil {
		log.Printf("❌ [SEGMENT] Segmentation failed: %v", err)
		return respondError(c, err)
	}

	log.Printf("📊 [SEGMENT] last_30=%.2f prev_30=%.2f", summary.Last30Total, summary.Prev30Total)

	body := models.SegmentSummary{
		Last30Sales: summary.Last30Total,
		Prev30Sales: summary.Prev30Total,
		Ratio:       summary.Ratio,
	}
	if summary.Tiers != nil {
		body.Chart = &models.DemandChart{
			High:   summary.Tiers.High,
			Medium: summary.Tiers.Medium,
			Low:    summary.Tiers.Low,
		}
	}
	return c.JSON(models.SegmentsResponse{Segments: body})
}
