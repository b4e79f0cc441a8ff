package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
)

// ParseCSV parses CSV bytes into raw pizza-sales rows.
// The header row must carry every raw column; extra columns are ignored.
// A row that cannot be decoded fails the whole parse.
func ParseCSV(data []byte) ([]sales.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to read CSV headers: empty file")
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	dec, err := newRowDecoder(headers)
	if err != nil {
		return nil, err
	}

	var rows []sales.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if blank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		row, err := dec.decode(line, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}
