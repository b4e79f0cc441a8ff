package helpers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
)

// ============================================================================
// LOADER — Spreadsheet bytes → []sales.RawRow
// ============================================================================
// The consumer fetches the bytes (local disk, S3, R2). The helpers only
// decode them. Both formats share the header check and the per-cell
// conversion below, so a CSV export and the source workbook load into
// identical rows.
// ============================================================================

var errNotInteger = errors.New("not a whole number")

// Load decodes a dataset, picking the format from the file extension.
func Load(name string, data []byte) ([]sales.RawRow, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return ParseCSV(data)
	case ".xlsx", ".xlsm":
		return ParseXLSX(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .csv or .xlsx)", ext)
	}
}

// rowDecoder converts one record into a RawRow using the header index.
type rowDecoder struct {
	index map[string]int
}

func newRowDecoder(headers []string) (*rowDecoder, error) {
	index, err := schema.ValidateHeaders(headers)
	if err != nil {
		return nil, err
	}
	return &rowDecoder{index: index}, nil
}

func (d *rowDecoder) cell(record []string, key string) string {
	i := d.index[key]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (d *rowDecoder) decode(line int, record []string) (sales.RawRow, error) {
	row := sales.RawRow{
		Line:             line,
		OrderDate:        d.cell(record, schema.OrderDate),
		OrderTime:        d.cell(record, schema.OrderTime),
		PizzaName:        d.cell(record, schema.PizzaName),
		PizzaCategory:    d.cell(record, schema.PizzaCategory),
		PizzaSize:        d.cell(record, schema.PizzaSize),
		PizzaIngredients: d.cell(record, schema.PizzaIngredients),
	}

	var err error
	if row.OrderID, err = d.integer(line, record, schema.OrderID); err != nil {
		return sales.RawRow{}, err
	}
	if row.Quantity, err = d.integer(line, record, schema.Quantity); err != nil {
		return sales.RawRow{}, err
	}

	price := d.cell(record, schema.TotalPrice)
	row.TotalPrice, err = decimal.NewFromString(price)
	if err != nil {
		return sales.RawRow{}, &sales.MalformedRowError{Line: line, Field: schema.TotalPrice, Value: price, Err: err}
	}
	return row, nil
}

// integer accepts "12" as well as "12.0", which spreadsheets emit for
// numeric cells.
func (d *rowDecoder) integer(line int, record []string, key string) (int64, error) {
	raw := d.cell(record, key)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, &sales.MalformedRowError{Line: line, Field: key, Value: raw, Err: err}
	}
	if !v.IsInteger() {
		return 0, &sales.MalformedRowError{Line: line, Field: key, Value: raw, Err: errNotInteger}
	}
	return v.IntPart(), nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
