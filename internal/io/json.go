package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/series"
)

// Read reads JSON data and returns a Table. Variables are ordered by name.
func (r *JSONReader) Read() (*dataframe.Table, error) {
	switch r.options.Format {
	case JSONArray:
		return r.readJSONArray()
	case JSONLines:
		return r.readJSONLines()
	case JSONColumns:
		return r.readJSONColumns()
	default:
		return nil, fmt.Errorf("unsupported JSON format: %d", r.options.Format)
	}
}

func (r *JSONReader) readJSONArray() (*dataframe.Table, error) {
	var records []map[string]any
	if err := json.NewDecoder(r.reader).Decode(&records); err != nil {
		return nil, fmt.Errorf("unmarshaling JSON array: %w", err)
	}
	if r.options.MaxRecords > 0 && len(records) > r.options.MaxRecords {
		records = records[:r.options.MaxRecords]
	}
	return r.recordsToTable(records)
}

func (r *JSONReader) readJSONLines() (*dataframe.Table, error) {
	scanner := bufio.NewScanner(r.reader)
	var records []map[string]any

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("unmarshaling JSON line %d: %w", lineNum, err)
		}
		records = append(records, record)

		if r.options.MaxRecords > 0 && len(records) >= r.options.MaxRecords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning JSON lines: %w", err)
	}
	return r.recordsToTable(records)
}

func (r *JSONReader) readJSONColumns() (*dataframe.Table, error) {
	var columns map[string][]any
	if err := json.NewDecoder(r.reader).Decode(&columns); err != nil {
		return nil, fmt.Errorf("unmarshaling JSON columns: %w", err)
	}

	b := dataframe.NewBuilderWithAllocator(r.mem)
	for _, name := range sortedKeys(columns) {
		values := columns[name]
		if r.options.MaxRecords > 0 && len(values) > r.options.MaxRecords {
			values = values[:r.options.MaxRecords]
		}
		b.Put(dataframe.NewOrigin(name), toCells(values))
	}
	return b.Build()
}

// recordsToTable pivots records into columns. Keys missing from a record
// read as null.
func (r *JSONReader) recordsToTable(records []map[string]any) (*dataframe.Table, error) {
	if len(records) == 0 {
		return dataframe.Empty(), nil
	}

	keys := map[string]bool{}
	for _, record := range records {
		for key := range record {
			keys[key] = true
		}
	}

	b := dataframe.NewBuilderWithAllocator(r.mem)
	for _, name := range sortedKeys(keys) {
		cells := make([]series.Cell, len(records))
		for i, record := range records {
			cells[i] = series.FromAny(record[name])
		}
		b.Put(dataframe.NewOrigin(name), cells)
	}
	return b.Build()
}

func toCells(values []any) []series.Cell {
	cells := make([]series.Cell, len(values))
	for i, v := range values {
		cells[i] = series.FromAny(v)
	}
	return cells
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Write writes the Table in JSON format. NaN and infinite values are
// written as null.
func (w *JSONWriter) Write(data *dataframe.Table) error {
	switch w.options.Format {
	case JSONArray:
		return w.encode(tableRecords(data))
	case JSONLines:
		for _, record := range tableRecords(data) {
			if err := w.encode(record); err != nil {
				return err
			}
		}
		return nil
	case JSONColumns:
		return w.encode(tableColumns(data))
	default:
		return fmt.Errorf("unsupported JSON format: %d", w.options.Format)
	}
}

func (w *JSONWriter) encode(v any) error {
	if err := json.NewEncoder(w.writer).Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func tableRecords(data *dataframe.Table) []map[string]any {
	columns := tableColumns(data)
	records := make([]map[string]any, data.RowCount())
	for i := range records {
		record := make(map[string]any, len(columns))
		for name, values := range columns {
			record[name] = values[i]
		}
		records[i] = record
	}
	return records
}

// tableColumns maps every variable name to its values as plain Go values.
func tableColumns(data *dataframe.Table) map[string][]any {
	columns := make(map[string][]any, data.Width())
	for _, v := range data.Variables() {
		cells, err := data.Get(v)
		if err != nil {
			continue
		}
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c.Any()
		}
		columns[v.Name] = values
	}
	return columns
}
