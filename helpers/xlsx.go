package helpers

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
)

// ParseXLSX parses the first sheet of a workbook into raw pizza-sales rows.
//
// Cells are read raw, so date and time cells arrive as Excel serials. They
// are rewritten as "2006-01-02" and "15:04:05" text before decoding. Cells
// already holding text pass through unchanged.
func ParseXLSX(data []byte) ([]sales.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read sheet %q headers: empty sheet", sheets[0])
	}

	dec, err := newRowDecoder(records[0])
	if err != nil {
		return nil, err
	}
	dateCol := dec.index[schema.OrderDate]
	timeCol := dec.index[schema.OrderTime]

	rows := make([]sales.RawRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		if dateCol < len(record) {
			record[dateCol] = serialToText(record[dateCol], "2006-01-02")
		}
		if timeCol < len(record) {
			record[timeCol] = fractionToClock(record[timeCol])
		}

		// Sheet rows are 1-based and the header is row 1.
		row, err := dec.decode(i+2, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// serialToText formats an Excel serial with layout. Values that are not
// numbers are returned as-is for the deriver to parse.
func serialToText(cell, layout string) string {
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil || serial < 0 {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return t.Round(time.Second).Format(layout)
}

// fractionToClock formats the fractional-day part of an Excel serial as a
// wall-clock time.
func fractionToClock(cell string) string {
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil || serial < 0 {
		return cell
	}
	_, frac := math.Modf(serial)
	secs := int(math.Round(frac * 86400))
	if secs >= 86400 {
		secs = 86399
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
