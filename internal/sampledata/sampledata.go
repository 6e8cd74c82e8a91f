// Package sampledata builds deterministic synthetic sale records for demos and tests.
package sampledata

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// namespace seeds the name-based record ids so the same seed always yields the same ids.
var namespace = uuid.MustParse("6f1c2a52-8f7e-4b8e-9a51-2f0d3c6b7e10")

var products = map[models.Category][]string{
	models.CategoryElectronics: {"Wireless Headphones", "Laptop Stand", "USB-C Hub", "Smart Watch", "Bluetooth Speaker"},
	models.CategoryClothing:    {"Denim Jacket", "Running Shoes", "Wool Sweater", "Rain Coat", "Cotton T-Shirt"},
	models.CategoryBooks:       {"The Go Programming Language", "Data Pipelines Pocket Reference", "Designing Data-Intensive Applications", "Clean Architecture", "The Pragmatic Programmer"},
	models.CategoryHome:        {"Ceramic Vase", "Desk Lamp", "Throw Blanket", "Coffee Grinder", "Wall Clock"},
	models.CategorySports:      {"Yoga Mat", "Tennis Racket", "Dumbbell Set", "Cycling Helmet", "Water Bottle"},
}

var customers = []string{
	"Jane Smith", "John Doe", "Maria Garcia", "Wei Chen", "Aisha Khan",
	"Lucas Martin", "Emma Johnson", "Kenji Tanaka", "Olivia Brown", "Noah Wilson",
}

var reps = []string{"Alice Cooper", "Bob Martinez", "Carol White", "David Lee"}

// Generate returns n records dated across the twelve months of year. Categories
// and regions rotate with the record index so any n >= 20 covers every category
// and region, and any n >= 12 covers every month.
func Generate(n int, seed uint64, year int) []models.SaleRecord {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	records := make([]models.SaleRecord, 0, n)
	for i := range n {
		category := models.Categories[i%len(models.Categories)]
		region := models.Regions[i%len(models.Regions)]
		month := time.Month(i%12 + 1)
		names := products[category]

		quantity := 1 + rng.IntN(5)
		unitPrice := decimal.New(int64(500+rng.IntN(49500)), -2)

		records = append(records, models.SaleRecord{
			ID:           uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%d-%d", seed, i))).String(),
			Date:         time.Date(year, month, 1+rng.IntN(28), 0, 0, 0, 0, time.UTC),
			CustomerName: customers[rng.IntN(len(customers))],
			ProductName:  names[rng.IntN(len(names))],
			Category:     category,
			Region:       region,
			Quantity:     quantity,
			UnitPrice:    unitPrice,
			TotalAmount:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
			SalesRep:     reps[rng.IntN(len(reps))],
		})
	}
	return records
}
