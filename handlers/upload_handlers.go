package handlers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"demandcast/config"
	"demandcast/database"
	"demandcast/ingest"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// saveUpload stores the raw upload under the configured directory. The saved
// name keeps the original filename behind a kind prefix and a timestamp so
// repeated uploads never collide.
func saveUpload(c *fiber.Ctx, fileHeader *multipart.FileHeader, prefix string) (string, error) {
	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s__%s_%s", prefix, time.Now().Format("20060102150405"), filepath.Base(fileHeader.Filename))
	path := filepath.Join(config.AppConfig.UploadDir, name)
	if err := c.SaveFile(fileHeader, path); err != nil {
		return "", err
	}
	return path, nil
}

// recordBatch writes the upload_batches audit row. Failures are logged, not
// fatal; the data rows are already stored.
func recordBatch(ctx context.Context, db *pgxpool.Pool, b models.UploadBatch) {
	_, err := db.Exec(ctx,
		`INSERT INTO upload_batches (id, kind, filename, row_count) VALUES ($1, $2, $3, $4)`,
		b.ID, b.Kind, b.Filename, b.RowCount)
	if err != nil {
		log.Printf("⚠️ [UPLOAD] Failed to record %s batch %s: %v", b.Kind, b.ID, err)
	}
}

// HandleUploadSales ingests a transactions CSV. Rows are bulk-copied into
// the sales table under a fresh batch id.
func HandleUploadSales(c *fiber.Ctx) error {
	ctx := context.Background()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	path, err := saveUpload(c, fileHeader, "sales")
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to save sales upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save uploaded file"})
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to reopen %s: %v", path, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	records, err := ingest.ParseSalesCSV(f)
	f.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	batchID := uuid.NewString()
	copyRows := make([][]any, len(records))
	for i, rec := range records {
		copyRows[i] = []any{rec.InvoiceDate, rec.ProductID, rec.CustomerID, rec.Qty, rec.Price, rec.Total, batchID}
	}

	db := database.GetDB()
	copied, err := db.CopyFrom(ctx,
		pgx.Identifier{"sales"},
		[]string{"invoice_date", "product_id", "customer_id", "qty", "price", "total", "batch_id"},
		pgx.CopyFromRows(copyRows))
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to store sales rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store sales rows"})
	}
	recordBatch(ctx, db, models.UploadBatch{ID: batchID, Kind: "sales", Filename: fileHeader.Filename, RowCount: int(copied)})

	log.Printf("✅ [UPLOAD] Stored %d sales rows from %s (batch %s)", copied, fileHeader.Filename, batchID)
	return c.JSON(fiber.Map{"status": "ok", "rows": copied, "batch_id": batchID})
}

// HandleUploadProducts ingests a product catalog CSV.
func HandleUploadProducts(c *fiber.Ctx) error {
	ctx := context.Background()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	path, err := saveUpload(c, fileHeader, "products")
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to save products upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save uploaded file"})
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to reopen %s: %v", path, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	products, err := ingest.ParseProductsCSV(f)
	f.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	batchID := uuid.NewString()
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`INSERT INTO products (name, category, price) VALUES ($1, $2, $3)`, p.Name, p.Category, p.Price)
	}

	db := database.GetDB()
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		log.Printf("❌ [UPLOAD] Failed to store product rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store product rows"})
	}
	recordBatch(ctx, db, models.UploadBatch{ID: batchID, Kind: "products", Filename: fileHeader.Filename, RowCount: len(products)})

	log.Printf("✅ [UPLOAD] Stored %d product rows from %s (batch %s)", len(products), fileHeader.Filename, batchID)
	return c.JSON(fiber.Map{"status": "ok", "rows": len(products), "batch_id": batchID})
}

// HandleUploadCustomers ingests a customers CSV.
func HandleUploadCustomers(c *fiber.Ctx) error {
	ctx := context.Background()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	path, err := saveUpload(c, fileHeader, "customers")
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to save customers upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save uploaded file"})
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("❌ [UPLOAD] Failed to reopen %s: %v", path, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	customers, err := ingest.ParseCustomersCSV(f, time.Now())
	f.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	batchID := uuid.NewString()
	batch := &pgx.Batch{}
	for _, cust := range customers {
		batch.Queue(`INSERT INTO customers (name, email, phone, address, created_at) VALUES ($1, $2, $3, $4, $5)`,
			cust.Name, cust.Email, cust.Phone, cust.Address, cust.CreatedAt)
	}

	db := database.GetDB()
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		log.Printf("❌ [UPLOAD] Failed to store customer rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store customer rows"})
	}
	recordBatch(ctx, db, models.UploadBatch{ID: batchID, Kind: "customers", Filename: fileHeader.Filename, RowCount: len(customers)})

	log.Printf("✅ [UPLOAD] Stored %d customer rows from %s (batch %s)", len(customers), fileHeader.Filename, batchID)
	return c.JSON(fiber.Map{"status": "ok", "rows": len(customers), "batch_id": batchID})
}
