package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSalesCSVHeaderAliases(t *testing.T) {
	csvData := "InvoiceDate,Sales,ProductID\n2024-01-05,120.5,3\n2024-01-06,80,4\n"

	records, err := ParseSalesCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), records[0].InvoiceDate)
	assert.Equal(t, 120.5, records[0].Total)
	if records[0].ProductID == nil || *records[0].ProductID != 3 {
		t.Fatalf("expected product id 3, got %v", records[0].ProductID)
	}
	assert.Nil(t, records[0].Qty)
	assert.Nil(t, records[0].CustomerID)
}

func TestParseSalesCSVComputesTotalFromQtyPrice(t *testing.T) {
	csvData := "date,qty,price\n2024-02-01,3,2.5\n"

	records, err := ParseSalesCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 7.5, records[0].Total)
	assert.Equal(t, int64(3), *records[0].Qty)
	assert.Equal(t, 2.5, *records[0].Price)
}

func TestParseSalesCSVSpreadsheetQty(t *testing.T) {
	// Spreadsheet exports write whole numbers as floats.
	csvData := "date,qty,price\n2024-02-01,3.0,2.0\n"

	records, err := ParseSalesCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), *records[0].Qty)
	assert.Equal(t, 6.0, records[0].Total)
}

func TestParseSalesCSVCustomerColumn(t *testing.T) {
	csvData := "ds,revenue,customer\n2024-02-01,10,42\n"

	records, err := ParseSalesCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Equal(t, int64(42), *records[0].CustomerID)
	assert.Equal(t, 10.0, records[0].Total)
}

func TestParseSalesCSVRejectsMissingDateColumn(t *testing.T) {
	csvData := "qty,price\n3,2.5\n"

	_, err := ParseSalesCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected an error")
	}
	assert.Contains(t, err.Error(), "invoice date")
}

func TestParseSalesCSVRejectsMissingTotal(t *testing.T) {
	csvData := "date,productid\n2024-02-01,1\n"

	_, err := ParseSalesCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected an error")
	}
	assert.Contains(t, err.Error(), "no total column")
}

func TestParseSalesCSVReportsBadDateRow(t *testing.T) {
	csvData := "date,total\n2024-02-01,10\nnot-a-date,20\n"

	_, err := ParseSalesCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected an error")
	}
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "not-a-date")
}

func TestParseProductsCSV(t *testing.T) {
	csvData := "product_name,cat,mrp\nWidget,Toys,19.99\nGadget,,\n"

	products, err := ParseProductsCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "Toys", *products[0].Category)
	assert.Equal(t, 19.99, *products[0].Price)

	assert.Equal(t, "Gadget", products[1].Name)
	assert.Nil(t, products[1].Category)
	assert.Nil(t, products[1].Price)
}

func TestParseProductsCSVRejectsEmptyName(t *testing.T) {
	csvData := "name,price\n,10\n"

	_, err := ParseProductsCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected an error")
	}
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseCustomersCSVDefaultsCreatedAt(t *testing.T) {
	csvData := "customername,mail,mobile,addr\nAda,ada@example.com,555,Main St\n"
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	customers, err := ParseCustomersCSV(strings.NewReader(csvData), now)
	assert.NoError(t, err)
	assert.Len(t, customers, 1)

	c := customers[0]
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, "ada@example.com", *c.Email)
	assert.Equal(t, "555", *c.Phone)
	assert.Equal(t, "Main St", *c.Address)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), c.CreatedAt)
}

func TestParseCustomersCSVKeepsCreatedAt(t *testing.T) {
	csvData := "name,created_at\nAda,2023-11-02\n"

	customers, err := ParseCustomersCSV(strings.NewReader(csvData), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), customers[0].CreatedAt)
}

func TestMapHeaderFirstAliasWins(t *testing.T) {
	// Both "sales" and "total" are present; "sales" is listed first.
	cols := mapHeader([]string{"Total", "Sales", "Date"}, salesAliases)
	assert.Equal(t, 1, cols["total"])
	assert.Equal(t, 2, cols["invoice_date"])
}
