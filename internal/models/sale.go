package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date layout used for record dates and filter boundaries.
const DateLayout = "2006-01-02"

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
)

// Categories lists the category enumeration in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategorySports,
}

type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Regions lists the region enumeration in display order.
var Regions = []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// SaleRecord is one sales transaction. Records are built once at load time and never mutated.
type SaleRecord struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	ProductName  string          `json:"product_name"`
	Category     Category        `json:"category"`
	Region       Region          `json:"region"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SalesRep     string          `json:"sales_rep"`
}

func (r SaleRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("record %s: date is required", r.ID)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("record %s: quantity must be positive, got %d", r.ID, r.Quantity)
	}
	if r.UnitPrice.IsNegative() {
		return fmt.Errorf("record %s: unit price must be non-negative", r.ID)
	}
	if r.TotalAmount.IsNegative() {
		return fmt.Errorf("record %s: total amount must be non-negative", r.ID)
	}
	return nil
}

type MonthlyDatum struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type CategoryDatum struct {
	Category Category `json:"category"`
	Revenue  float64  `json:"revenue"`
	Orders   int      `json:"orders"`
}

type RegionDatum struct {
	Region     Region  `json:"region"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// Metrics is the scalar summary of a record sequence.
type Metrics struct {
	TotalSales         float64 `json:"total_sales"`
	TotalOrders        int     `json:"total_orders"`
	AverageOrderValue  float64 `json:"average_order_value"`
	TopPerformingMonth string  `json:"top_performing_month"`
}
