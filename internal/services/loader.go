package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

var requiredColumns = []string{
	FieldID, FieldDate, FieldCustomer, FieldProduct,
	FieldCategory, FieldRegion, FieldQuantity, FieldUnitPrice,
}

// LoadFromCSV replaces the record set with the valid rows of a CSV file.
// Rows that fail to parse or validate are skipped and counted.
func (a *Analytics) LoadFromCSV(ctx context.Context, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	a.logger.Info("processing CSV file", "filename", filename)

	records, skipped, err := ReadCSV(ctx, file)
	if err != nil {
		return fmt.Errorf("process csv: %w", err)
	}

	duration := time.Since(start)
	a.logger.Info("csv processing complete",
		"records", len(records),
		"skipped", skipped,
		"duration", duration)

	a.replace(records, filename)
	return nil
}

// ReadCSV parses sale records from r. The header row names the columns, in
// any order; total_amount and sales_rep may be omitted. Rows are parsed in
// batches by a bounded worker pool and returned in file order.
func ReadCSV(ctx context.Context, r io.Reader) ([]models.SaleRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("empty file: %w", ErrNoRecords)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		records []models.SaleRecord
		skipped int
		batch   = make([][]string, 0, batchSize)
	)

	flush := func() error {
		parsed, bad, err := parseBatch(ctx, cols, batch)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		skipped += bad
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read row: %w", err)
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, 0, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, 0, err
		}
	}

	if len(records) == 0 {
		return nil, skipped, ErrNoRecords
	}
	return records, skipped, nil
}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func (c columnIndex) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseBatch parses rows concurrently. Results keep row order; invalid rows
// are counted, not returned.
func parseBatch(ctx context.Context, cols columnIndex, rows [][]string) ([]models.SaleRecord, int, error) {
	type result struct {
		record models.SaleRecord
		valid  bool
	}
	results := make([]result, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := parseRecord(cols, row)
			if err != nil {
				return nil
			}
			results[i] = result{record: record, valid: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	records := make([]models.SaleRecord, 0, len(rows))
	for _, res := range results {
		if res.valid {
			records = append(records, res.record)
		}
	}
	return records, len(rows) - len(records), nil
}

func parseRecord(cols columnIndex, row []string) (models.SaleRecord, error) {
	date, err := time.Parse(models.DateLayout, cols.get(row, FieldDate))
	if err != nil {
		return models.SaleRecord{}, err
	}

	category, err := models.ParseCategory(cols.get(row, FieldCategory))
	if err != nil {
		return models.SaleRecord{}, err
	}

	region, err := models.ParseRegion(cols.get(row, FieldRegion))
	if err != nil {
		return models.SaleRecord{}, err
	}

	quantity, err := strconv.Atoi(cols.get(row, FieldQuantity))
	if err != nil {
		return models.SaleRecord{}, err
	}

	unitPrice, err := decimal.NewFromString(cols.get(row, FieldUnitPrice))
	if err != nil {
		return models.SaleRecord{}, err
	}

	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if raw := cols.get(row, FieldTotalAmount); raw != "" {
		if total, err = decimal.NewFromString(raw); err != nil {
			return models.SaleRecord{}, err
		}
	}

	record := models.SaleRecord{
		ID:           cols.get(row, FieldID),
		Date:         date,
		CustomerName: cols.get(row, FieldCustomer),
		ProductName:  cols.get(row, FieldProduct),
		Category:     category,
		Region:       region,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  total,
		SalesRep:     cols.get(row, FieldSalesRep),
	}
	return record, record.Validate()
}
