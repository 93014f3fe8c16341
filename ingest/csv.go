package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"demandcast/models"
	"demandcast/utils"
)

// ParseSalesCSV reads transaction rows from an uploaded CSV. The date column
// is required; when the file has no total column, totals are computed as
// qty*price. Row numbers in errors are 1-based and count the header line.
func ParseSalesCSV(r io.Reader) ([]models.SaleRecord, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := mapHeader(header, salesAliases)

	dateIdx, ok := cols["invoice_date"]
	if !ok {
		return nil, fmt.Errorf("no invoice date column found (accepted: %s)", strings.Join(salesAliases["invoice_date"], ", "))
	}
	totalIdx, hasTotal := cols["total"]
	qtyIdx, hasQty := cols["qty"]
	priceIdx, hasPrice := cols["price"]
	if !hasTotal && !(hasQty && hasPrice) {
		return nil, fmt.Errorf("no total column found and no qty/price pair to derive it from")
	}
	productIdx, hasProduct := cols["product_id"]
	customerIdx, hasCustomer := cols["customer_id"]

	var records []models.SaleRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		date, err := utils.ParseDate(strings.TrimSpace(row[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: unparseable date %q", line, row[dateIdx])
		}

		rec := models.SaleRecord{InvoiceDate: utils.Day(date)}
		if hasQty {
			rec.Qty = parseIntCell(row[qtyIdx])
		}
		if hasPrice {
			rec.Price = parseFloatCell(row[priceIdx])
		}
		if hasProduct {
			rec.ProductID = parseIntCell(row[productIdx])
		}
		if hasCustomer {
			rec.CustomerID = parseIntCell(row[customerIdx])
		}

		switch {
		case hasTotal:
			if v := parseFloatCell(row[totalIdx]); v != nil {
				rec.Total = *v
			} else if rec.Qty != nil && rec.Price != nil {
				rec.Total = float64(*rec.Qty) * *rec.Price
			}
		case rec.Qty != nil && rec.Price != nil:
			rec.Total = float64(*rec.Qty) * *rec.Price
		}

		records = append(records, rec)
	}
	return records, nil
}

// ParseProductsCSV reads catalog rows. A name column is required.
func ParseProductsCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := mapHeader(header, productAliases)

	nameIdx, ok := cols["name"]
	if !ok {
		return nil, fmt.Errorf("no product name column found (accepted: %s)", strings.Join(productAliases["name"], ", "))
	}
	categoryIdx, hasCategory := cols["category"]
	priceIdx, hasPrice := cols["price"]

	var products []models.Product
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			return nil, fmt.Errorf("row %d: product name is empty", line)
		}
		p := models.Product{Name: name}
		if hasCategory {
			p.Category = utils.StringPtrOrNil(row[categoryIdx])
		}
		if hasPrice {
			p.Price = parseFloatCell(row[priceIdx])
		}
		products = append(products, p)
	}
	return products, nil
}

// ParseCustomersCSV reads customer rows. A name column is required;
// created_at defaults to the current day when the file does not carry one.
func ParseCustomersCSV(r io.Reader, now time.Time) ([]models.Customer, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := mapHeader(header, customerAliases)

	nameIdx, ok := cols["name"]
	if !ok {
		return nil, fmt.Errorf("no customer name column found (accepted: %s)", strings.Join(customerAliases["name"], ", "))
	}
	emailIdx, hasEmail := cols["email"]
	phoneIdx, hasPhone := cols["phone"]
	addressIdx, hasAddress := cols["address"]
	createdIdx, hasCreated := cols["created_at"]

	var customers []models.Customer
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			return nil, fmt.Errorf("row %d: customer name is empty", line)
		}
		c := models.Customer{Name: name, CreatedAt: utils.Day(now)}
		if hasEmail {
			c.Email = utils.StringPtrOrNil(row[emailIdx])
		}
		if hasPhone {
			c.Phone = utils.StringPtrOrNil(row[phoneIdx])
		}
		if hasAddress {
			c.Address = utils.StringPtrOrNil(row[addressIdx])
		}
		if hasCreated {
			if t, err := utils.ParseDate(strings.TrimSpace(row[createdIdx])); err == nil {
				c.CreatedAt = utils.Day(t)
			}
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// parseIntCell reads an optional integer cell; blank and malformed cells
// stay nil. Spreadsheet exports often write whole numbers as "3.0".
func parseIntCell(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int64(f)
		return &n
	}
	return nil
}

func parseFloatCell(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return &f
	}
	return nil
}
