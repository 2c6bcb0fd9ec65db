package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// historyHeader is the exact column layout expected in history uploads.
var historyHeader = []string{"period", "quantity", "unit_price"}

// LoadHistoryCSV parses a product sales history from CSV. The expected
// header is "period,quantity,unit_price". Malformed rows are an error, never
// silently dropped, so a bad upload cannot skew the demand fit.
func LoadHistoryCSV(r io.Reader) ([]SaleRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("history CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history CSV header: %w", err)
	}
	if err := validateHistoryHeader(header); err != nil {
		return nil, err
	}

	var records []SaleRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read history CSV line %d: %w", line, err)
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("history CSV line %d: invalid quantity %q: %w", line, row[1], err)
		}
		unitPrice, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("history CSV line %d: invalid unit price %q: %w", line, row[2], err)
		}

		record := SaleRecord{
			Period:    strings.TrimSpace(row[0]),
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("history CSV line %d: %w", line, err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("history CSV contains no data rows")
	}
	return records, nil
}

func validateHistoryHeader(header []string) error {
	if len(header) != len(historyHeader) {
		return fmt.Errorf("history CSV header has %d columns, expected %d (%s)",
			len(header), len(historyHeader), strings.Join(historyHeader, ","))
	}
	for i, column := range header {
		if !strings.EqualFold(strings.TrimSpace(column), historyHeader[i]) {
			return fmt.Errorf("history CSV header column %d is %q, expected %q",
				i+1, column, historyHeader[i])
		}
	}
	return nil
}
