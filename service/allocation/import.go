package allocation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ImportOptions controls the CSV bulk import.
type ImportOptions struct {
	Operator string
}

// ImportResult reports what a CSV import did.
type ImportResult struct {
	Rows     int
	Imported int
	Skipped  int
	Warnings []string
}

var importColumns = []string{
	"date", "order_number", "tracking_number", "shipment_id",
	"freight_unit_price", "box_count", "total_settle_weight",
	"actual_weight_with_box", "merchant_name", "pieces", "weight",
}

// importGroup buffers the rows of one order number until flush.
type importGroup struct {
	req  SubmitRequest
	line int
}

// ImportAllocations reads CSV rows (one per merchant, grouped by
// order_number) and submits each group through the normal calculate+upsert
// path. A group that fails validation is skipped with a warning; the rest of
// the file still imports.
func ImportAllocations(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"date", "order_number", "freight_unit_price", "merchant_name", "weight"} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	res := &ImportResult{}
	groups := make(map[string]*importGroup)
	order := []string{} // keep file order for deterministic flushing

	field := func(row []string, name string) string {
		ci, ok := colIndex[name]
		if !ok || ci >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[ci])
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		res.Rows++

		orderNumber := field(row, "order_number")
		if orderNumber == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: empty order_number", line))
			continue
		}

		g, ok := groups[orderNumber]
		if !ok {
			price, err := strconv.ParseFloat(field(row, "freight_unit_price"), 64)
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("line %d (%s): invalid freight_unit_price", line, orderNumber))
				continue
			}
			g = &importGroup{line: line}
			g.req = SubmitRequest{
				Date:             field(row, "date"),
				OrderNumber:      orderNumber,
				TrackingNumber:   field(row, "tracking_number"),
				ShipmentID:       field(row, "shipment_id"),
				FreightUnitPrice: &price,
				Operator:         opts.Operator,
			}
			if v := field(row, "box_count"); v != "" {
				g.req.BoxCount, _ = strconv.Atoi(v)
			}
			if v := field(row, "total_settle_weight"); v != "" {
				g.req.TotalSettleWeight, _ = strconv.ParseFloat(v, 64)
			}
			if v := field(row, "actual_weight_with_box"); v != "" {
				g.req.ActualWeightWithBox, _ = strconv.ParseFloat(v, 64)
			}
			groups[orderNumber] = g
			order = append(order, orderNumber)
		}

		weight, err := strconv.ParseFloat(field(row, "weight"), 64)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d (%s): invalid weight", line, orderNumber))
			continue
		}
		pieces := 0
		if v := field(row, "pieces"); v != "" {
			pieces, _ = strconv.Atoi(v)
		}
		g.req.Merchants = append(g.req.Merchants, MerchantInput{
			MerchantName: field(row, "merchant_name"),
			Pieces:       pieces,
			ActualWeight: weight,
		})
	}

	for _, orderNumber := range order {
		g := groups[orderNumber]
		if _, err := Submit(db, g.req); err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("order %s (line %d): %v", orderNumber, g.line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}
