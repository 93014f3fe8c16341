package models

import "time"

// --- Core Models ---

// SaleRecord is a single transaction row in the append-only sales store.
// Columns absent from the source dataset stay nil; Total is always present
// because ingestion computes it from qty and price when needed.
type SaleRecord struct {
	ID          int64     `json:"id"`
	InvoiceDate time.Time `json:"invoice_date"`
	ProductID   *int64    `json:"product_id,omitempty"`
	CustomerID  *int64    `json:"customer_id,omitempty"`
	Qty         *int64    `json:"qty,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Total       float64   `json:"total"`
	BatchID     *string   `json:"batch_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product is a catalog entry, used mainly to label forecasts.
type Product struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// Customer as registered through upload or the add endpoint.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadBatch records one accepted CSV upload.
type UploadBatch struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// --- API Request Structs ---

// AddProductRequest defines the body for registering a product manually.
// Qty and Price also produce a same-day sale row for the initial purchase.
type AddProductRequest struct {
	Name  string  `json:"name" form:"pname"`
	Qty   int64   `json:"qty" form:"qty"`
	Price float64 `json:"price" form:"price"`
}

// AddCustomerRequest defines the body for registering a customer manually.
type AddCustomerRequest struct {
	Name    string  `json:"name" form:"name"`
	Email   *string `json:"email,omitempty" form:"email"`
	Phone   *string `json:"phone,omitempty" form:"phone"`
	Address *string `json:"address,omitempty" form:"address"`
}

// --- Paginated Responses ---

// Pagination details for paginated responses.
type Pagination struct {
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// PaginatedSalesResponse is the structure for the GET /api/v1/sales endpoint.
type PaginatedSalesResponse struct {
	Data       []SaleRecord `json:"data"`
	Pagination Pagination   `json:"pagination"`
}
