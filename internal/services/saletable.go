package services

import (
	"strconv"
	"time"

	"golang.org/x/text/language"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/table"
)

// Sale record field ids, shared by the table schema, query parameters and the CLI.
const (
	FieldID          = "id"
	FieldDate        = "date"
	FieldCustomer    = "customer_name"
	FieldProduct     = "product_name"
	FieldCategory    = "category"
	FieldRegion      = "region"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unit_price"
	FieldTotalAmount = "total_amount"
	FieldSalesRep    = "sales_rep"
)

// SaleFields is the table schema of a sale record. Every text field takes
// part in free-text search.
func SaleFields() []table.Field[models.SaleRecord] {
	return []table.Field[models.SaleRecord]{
		table.TextField(FieldID, func(r models.SaleRecord) string { return r.ID }),
		table.DateField(FieldDate, func(r models.SaleRecord) time.Time { return r.Date }),
		table.TextField(FieldCustomer, func(r models.SaleRecord) string { return r.CustomerName }),
		table.TextField(FieldProduct, func(r models.SaleRecord) string { return r.ProductName }),
		table.TextField(FieldCategory, func(r models.SaleRecord) string { return string(r.Category) }),
		table.TextField(FieldRegion, func(r models.SaleRecord) string { return string(r.Region) }),
		table.NumberField(FieldQuantity, func(r models.SaleRecord) float64 { return float64(r.Quantity) }),
		table.NumberField(FieldUnitPrice, func(r models.SaleRecord) float64 { return r.UnitPrice.InexactFloat64() }),
		table.NumberField(FieldTotalAmount, func(r models.SaleRecord) float64 { return r.TotalAmount.InexactFloat64() }),
		table.OptionalTextField(FieldSalesRep, func(r models.SaleRecord) (string, bool) { return r.SalesRep, r.SalesRep != "" }),
	}
}

// SaleColumns are the records table columns in display order.
func SaleColumns() []table.Column[models.SaleRecord] {
	return []table.Column[models.SaleRecord]{
		{Field: FieldDate, Label: "Date", Sortable: true, Width: "110px"},
		{Field: FieldCustomer, Label: "Customer", Sortable: true},
		{Field: FieldProduct, Label: "Product", Sortable: true},
		{Field: FieldCategory, Label: "Category", Sortable: true},
		{Field: FieldRegion, Label: "Region", Sortable: true},
		{Field: FieldQuantity, Label: "Qty", Sortable: true, Width: "60px", Format: formatQuantity},
		{Field: FieldTotalAmount, Label: "Amount", Sortable: true, Format: formatAmount},
		{Field: FieldSalesRep, Label: "Sales Rep"},
	}
}

// NewSaleTable builds the records table engine collating text in locale.
func NewSaleTable(locale language.Tag) *table.Engine[models.SaleRecord] {
	return table.MustNew(SaleFields(), SaleColumns(), table.WithLocale(locale))
}

func formatQuantity(_ any, r models.SaleRecord) string {
	return strconv.Itoa(r.Quantity)
}

func formatAmount(_ any, r models.SaleRecord) string {
	return format.USD().Currency(r.TotalAmount.InexactFloat64())
}
