package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/plot"
)

// ResultDocument is the JSON form of a processed plot. Error is set instead
// of the data fields when processing failed.
type ResultDocument struct {
	Data                map[string][]any `json:"data,omitempty"`
	Layers              []LayerDocument  `json:"layers,omitempty"`
	ComputationMessages []string         `json:"computation_messages,omitempty"`
	Error               string           `json:"error,omitempty"`
}

// LayerDocument is the JSON form of one processed layer.
type LayerDocument struct {
	Geom       string           `json:"geom"`
	Stat       string           `json:"stat"`
	Data       map[string][]any `json:"data,omitempty"`
	GroupSizes []int            `json:"group_sizes,omitempty"`
}

// NewResultDocument converts a processing result to its JSON form.
func NewResultDocument(result plot.Result) ResultDocument {
	if result.Failed() {
		return ResultDocument{Error: result.Failure.Message}
	}
	doc := ResultDocument{ComputationMessages: result.Messages}
	if result.SharedData != nil {
		doc.Data = tableColumns(result.SharedData)
	}
	for _, l := range result.Layers {
		ld := LayerDocument{Geom: l.Geom, Stat: l.Stat, GroupSizes: l.GroupSizes}
		if l.Data != nil {
			ld.Data = tableColumns(l.Data)
		}
		doc.Layers = append(doc.Layers, ld)
	}
	return doc
}

// WriteResult encodes the result document of a processed plot.
func WriteResult(w io.Writer, result plot.Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewResultDocument(result)); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// ReadTableFile reads a Table from path, choosing the reader by extension:
// .csv, .tsv, .json (records), .jsonl/.ndjson or .parquet.
func ReadTableFile(path string, mem memory.Allocator) (*dataframe.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	var reader DataReader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		reader = NewCSVReader(f, DefaultCSVOptions(), mem)
	case ".tsv":
		opts := DefaultCSVOptions()
		opts.Delimiter = '\t'
		reader = NewCSVReader(f, opts, mem)
	case ".json":
		reader = NewJSONReader(f, DefaultJSONOptions(), mem)
	case ".jsonl", ".ndjson":
		reader = NewJSONReader(f, JSONOptions{Format: JSONLines}, mem)
	case ".parquet":
		reader = NewParquetReader(f, DefaultParquetOptions(), mem)
	default:
		return nil, fmt.Errorf("unsupported data file format: %s", ext)
	}

	table, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}
