package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
)

// samplegen writes three CSV fixtures shaped like real exports, ready to
// feed the upload endpoints: sample_sales.csv, sample_products.csv and
// sample_customers.csv.

var categories = []string{"Electronics", "Home", "Toys", "Books", "Clothing"}

func main() {
	days := flag.Int("days", 180, "number of days of sales history")
	products := flag.Int("products", 5, "number of products")
	customers := flag.Int("customers", 100, "number of customers")
	out := flag.String("out", "uploads", "output directory")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	rng := rand.New(rand.NewSource(*seed))

	if err := genSales(*out, *days, *products, rng); err != nil {
		log.Fatalf("generate sales: %v", err)
	}
	if err := genProducts(*out, *products); err != nil {
		log.Fatalf("generate products: %v", err)
	}
	if err := genCustomers(*out, *customers, rng); err != nil {
		log.Fatalf("generate customers: %v", err)
	}
}

func genSales(out string, days, products int, rng *rand.Rand) error {
	f, err := os.Create(filepath.Join(out, "sample_sales.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"InvoiceDate", "product_id", "qty", "price", "total"}); err != nil {
		return err
	}

	bar := progressbar.Default(int64(days))
	start := time.Now().AddDate(0, 0, -(days - 1))
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		for p := 1; p <= products; p++ {
			qty := poisson(rng, 5)
			if qty == 0 {
				continue
			}
			price := float64(100 + p*10)
			total := float64(qty) * price
			row := []string{
				date,
				strconv.Itoa(p),
				strconv.Itoa(qty),
				fmt.Sprintf("%.1f", price),
				fmt.Sprintf("%.1f", total),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		_ = bar.Add(1)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	fmt.Println("sample_sales.csv generated")
	return nil
}

func genProducts(out string, products int) error {
	f, err := os.Create(filepath.Join(out, "sample_products.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "category", "price"}); err != nil {
		return err
	}
	for p := 1; p <= products; p++ {
		row := []string{
			productName(p),
			categories[(p-1)%len(categories)],
			fmt.Sprintf("%.1f", float64(100+p*10)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	fmt.Println("sample_products.csv generated")
	return nil
}

func genCustomers(out string, n int, rng *rand.Rand) error {
	f, err := os.Create(filepath.Join(out, "sample_customers.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "email", "phone", "address", "created_at"}); err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		created := time.Now().AddDate(0, 0, -rng.Intn(365)).Format("2006-01-02")
		row := []string{
			fmt.Sprintf("Customer %d", i),
			fmt.Sprintf("user%d@example.com", i),
			fmt.Sprintf("999000%03d", i),
			"City",
			created,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	fmt.Println("sample_customers.csv generated")
	return nil
}

// productName labels products A, B, C... and falls back to numbers past Z.
func productName(p int) string {
	if p <= 26 {
		return fmt.Sprintf("Product %c", 'A'+p-1)
	}
	return fmt.Sprintf("Product %d", p)
}

// poisson draws from Poisson(lambda) by multiplying uniforms (Knuth).
func poisson(rng *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= rng.Float64()
		if p <= l {
			return k - 1
		}
	}
}
