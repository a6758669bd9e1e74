package io

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/series"
)

const (
	// Boolean string constants
	trueStr  = "true"
	falseStr = "false"
)

// Read reads CSV data and returns a Table
func (r *CSVReader) Read() (*dataframe.Table, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return dataframe.Empty(), nil
	}

	var headers []string
	dataRows := records
	if r.options.Header {
		headers, dataRows = records[0], records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i)
		}
	}

	nulls := make(map[string]bool, len(r.options.NullValues))
	for _, v := range r.options.NullValues {
		nulls[v] = true
	}

	b := dataframe.NewBuilderWithAllocator(r.mem)
	for i, header := range headers {
		column := make([]string, len(dataRows))
		for j, row := range dataRows {
			if i < len(row) {
				column[j] = row[i]
			}
		}
		v := dataframe.NewOrigin(header)
		cells, numeric := parseColumn(column, nulls)
		if numeric {
			b.PutNumeric(v, cells)
		} else {
			b.PutDiscrete(v, cells)
		}
	}
	return b.Build()
}

// parseColumn infers the type of a column of fields: numeric when every
// non-null field is a number, boolean when every one is true/false, text
// otherwise. A column of nulls only is numeric.
func parseColumn(fields []string, nulls map[string]bool) ([]series.Cell, bool) {
	canBeNumber, canBeBool := true, true
	for _, f := range fields {
		if nulls[f] {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			canBeNumber = false
		}
		if !isBoolString(f) {
			canBeBool = false
		}
	}

	cells := make([]series.Cell, len(fields))
	for i, f := range fields {
		switch {
		case nulls[f]:
			cells[i] = series.Null()
		case canBeNumber:
			v, _ := strconv.ParseFloat(strings.TrimSpace(f), 64)
			cells[i] = series.Num(v)
		case canBeBool:
			cells[i] = series.Bool(strings.EqualFold(f, trueStr))
		default:
			cells[i] = series.Text(f)
		}
	}
	return cells, canBeNumber
}

func isBoolString(s string) bool {
	return strings.EqualFold(s, trueStr) || strings.EqualFold(s, falseStr)
}

// Write writes the Table in CSV format. Nulls are written as empty fields.
func (w *CSVWriter) Write(data *dataframe.Table) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter

	columns := make([][]series.Cell, 0, data.Width())
	for _, v := range data.Variables() {
		cells, err := data.Get(v)
		if err != nil {
			return err
		}
		columns = append(columns, cells)
	}

	if w.options.Header {
		if err := csvWriter.Write(data.Names()); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	record := make([]string, len(columns))
	for row := 0; row < data.RowCount(); row++ {
		for i, cells := range columns {
			if cells[row].IsNull() {
				record[i] = ""
			} else {
				record[i] = cells[row].String()
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", row, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
