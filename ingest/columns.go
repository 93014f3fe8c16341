package ingest

import "strings"

// Alias tables map the canonical column names onto the spellings found in
// real exports. Matching is case-insensitive; the first alias present in the
// header wins.
var salesAliases = map[string][]string{
	"invoice_date": {"invoicedate", "invoice_date", "date", "ds"},
	"total":        {"sales", "sale", "total", "amount", "revenue"},
	"qty":          {"qty", "quantity"},
	"price":        {"price", "unitprice", "unit_price"},
	"product_id":   {"productid", "product_id", "product", "pid"},
	"customer_id":  {"customerid", "customer_id", "customer", "cid"},
}

var productAliases = map[string][]string{
	"name":     {"name", "product", "productname", "product_name"},
	"category": {"category", "cat"},
	"price":    {"price", "mrp", "cost"},
}

var customerAliases = map[string][]string{
	"name":       {"name", "customername", "customer_name"},
	"email":      {"email", "mail"},
	"phone":      {"phone", "mobile"},
	"address":    {"address", "addr"},
	"created_at": {"createdat", "created_at"},
}

// mapHeader resolves raw CSV headers to canonical column indexes.
func mapHeader(header []string, aliases map[string][]string) map[string]int {
	lower := make(map[string]int, len(header))
	for i, h := range header {
		lower[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int)
	for canonical, names := range aliases {
		for _, name := range names {
			if idx, ok := lower[name]; ok {
				cols[canonical] = idx
				break
			}
		}
	}
	return cols
}
