package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nutricalc/models"
)

// Row is one nutrition CSV record keyed by slugged header.
type Row struct {
	Line   int
	Values map[string]string
}

// ReadCSV reads a headed CSV into rows. Headers are slugged, so "Total Fat (g)"
// becomes total_fat_g.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headerRecord, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, err
	}
	header := make([]string, len(headerRecord))
	for idx, key := range headerRecord {
		header[idx] = slug(key)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		line, _ := reader.FieldPos(0)
		values := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(record) {
				continue
			}
			values[key] = strings.TrimSpace(record[idx])
		}
		rows = append(rows, Row{Line: line, Values: values})
	}
	return rows, nil
}

// MaterialCode returns the row's material code from the first recognised column.
func (r Row) MaterialCode() string {
	for _, key := range materialCodeHeaders {
		if value := strings.TrimSpace(r.Values[key]); value != "" {
			return value
		}
	}
	return ""
}

// Nutrition converts the row into per-100 g facts. Aliases are tried in order and
// the first non-blank cell wins. Blank or "N/A" cells stay unreported; other
// non-numeric cells are an error.
func (r Row) Nutrition() (models.MaterialNutrition, error) {
	var facts models.MaterialNutrition
	for idx := range nutrientColumns {
		column := &nutrientColumns[idx]
		for _, header := range column.headers {
			raw, ok := r.Values[header]
			if !ok {
				continue
			}
			value, err := parseCell(raw)
			if err != nil {
				return models.MaterialNutrition{}, fmt.Errorf("line %d column %s: %w", r.Line, header, err)
			}
			if value == nil {
				continue
			}
			column.set(&facts, value)
			break
		}
	}
	return facts, nil
}

func parseCell(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "N/A") || raw == "-" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	if value < 0 {
		return nil, fmt.Errorf("negative value %q", raw)
	}
	return &value, nil
}
