// Package plotframe turns plot data and a declarative plot job into the
// per-layer data a renderer draws: stats, facets, orderings and samplings are
// applied to every layer.
//
// This package is the sole public API for the library.
//
//	data, _ := plotframe.ReadTable("sales.csv")
//	job, _ := plotframe.DecodeJob(strings.NewReader(`
//	layers:
//	  - geom: bar
//	    stat: count
//	    mapping: {x: region}
//	`))
//	result, err := plotframe.Process(ctx, data, job, plotframe.NewConfig())
package plotframe

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/config"
	"github.com/paveg/plotframe/internal/dataframe"
	pio "github.com/paveg/plotframe/internal/io"
	"github.com/paveg/plotframe/internal/plot"
	"github.com/paveg/plotframe/internal/series"
)

// Config controls parallelism, sampling seeds and logging.
type Config = config.Config

// NewConfig returns the default configuration.
func NewConfig() Config {
	return config.NewConfig()
}

// LoadConfig reads a .json, .yaml or .yml configuration file.
func LoadConfig(path string) (Config, error) {
	return config.LoadFromFile(path)
}

// Job is the declarative form of a plot.
type Job = plot.Job

// DecodeJob reads a YAML plot job. Unknown fields are rejected.
func DecodeJob(r io.Reader) (Job, error) {
	return plot.DecodeJob(r)
}

// Table is the public type for plot data.
// It wraps the internal table to hide implementation details.
type Table struct {
	t *dataframe.Table
}

// ReadTable reads a .csv, .tsv, .json, .jsonl or .parquet file.
func ReadTable(path string) (*Table, error) {
	t, err := pio.ReadTableFile(path, memory.NewGoAllocator())
	if err != nil {
		return nil, err
	}
	return &Table{t: t}, nil
}

// Names returns the variable names in order.
func (t *Table) Names() []string {
	return t.t.Names()
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.t.RowCount()
}

// Width returns the number of variables.
func (t *Table) Width() int {
	return t.t.Width()
}

// Values returns the values of the variable called name as plain Go values:
// float64, string, bool or nil.
func (t *Table) Values(name string) ([]any, bool) {
	v, ok := t.t.Find(name)
	if !ok {
		return nil, false
	}
	cells, err := t.t.Get(v)
	if err != nil {
		return nil, false
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c.Any()
	}
	return values, true
}

// String returns a string representation of the Table.
func (t *Table) String() string {
	return t.t.String()
}

// WriteCSV writes the table as CSV with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	return pio.NewCSVWriter(w, pio.DefaultCSVOptions()).Write(t.t)
}

// TableBuilder assembles a Table column by column.
type TableBuilder struct {
	b *dataframe.Builder
}

// NewTableBuilder creates an empty TableBuilder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{b: dataframe.NewBuilder()}
}

// Add sets the column name. Columns of numbers and nils are continuous,
// anything else is discrete.
func (b *TableBuilder) Add(name string, values ...any) *TableBuilder {
	cells := make([]series.Cell, len(values))
	for i, v := range values {
		cells[i] = series.FromAny(v)
	}
	b.b.Put(dataframe.NewOrigin(name), cells)
	return b
}

// Build validates that all columns have the same length.
func (b *TableBuilder) Build() (*Table, error) {
	t, err := b.b.Build()
	if err != nil {
		return nil, err
	}
	return &Table{t: t}, nil
}

// ProcessOption configures Process.
type ProcessOption func(*processOptions)

type processOptions struct {
	layerData map[string]*Table
}

// WithLayerData supplies the table for a layer whose job names source as its
// data. Sources without a table are read from disk with ReadTable.
func WithLayerData(source string, t *Table) ProcessOption {
	return func(o *processOptions) {
		o.layerData[source] = t
	}
}

// LayerResult is the processed data of one layer.
type LayerResult struct {
	Geom string
	Stat string
	// Data is nil when the layer reads the shared data unchanged.
	Data       *Table
	GroupSizes []int
}

// Result is the outcome of Process.
type Result struct {
	r plot.Result
}

// Failed reports whether processing produced no plot.
func (r *Result) Failed() bool {
	return r.r.Failed()
}

// Error returns the failure message, or "" when processing succeeded.
func (r *Result) Error() string {
	if !r.r.Failed() {
		return ""
	}
	return r.r.Failure.Message
}

// Messages returns the computation messages in layer order.
func (r *Result) Messages() []string {
	return r.r.Messages
}

// SharedData returns the pruned shared data.
func (r *Result) SharedData() *Table {
	if r.r.SharedData == nil {
		return nil
	}
	return &Table{t: r.r.SharedData}
}

// Layers returns the processed layers.
func (r *Result) Layers() []LayerResult {
	layers := make([]LayerResult, len(r.r.Layers))
	for i, l := range r.r.Layers {
		layers[i] = LayerResult{Geom: l.Geom, Stat: l.Stat, GroupSizes: l.GroupSizes}
		if l.Data != nil {
			layers[i].Data = &Table{t: l.Data}
		}
	}
	return layers
}

// WriteJSON writes the result document.
func (r *Result) WriteJSON(w io.Writer, indent bool) error {
	return pio.WriteResult(w, r.r, indent)
}

// Process resolves job against data and processes every layer. Errors in the
// job itself are returned; failures while processing are reported by the
// Result.
func Process(ctx context.Context, data *Table, job Job, cfg Config, opts ...ProcessOption) (*Result, error) {
	if data == nil {
		return nil, fmt.Errorf("plotframe: nil data table")
	}
	o := processOptions{layerData: map[string]*Table{}}
	for _, opt := range opts {
		opt(&o)
	}

	spec, err := job.Spec(data.t, cfg, func(source string) (*dataframe.Table, error) {
		if t, ok := o.layerData[source]; ok {
			return t.t, nil
		}
		t, err := ReadTable(source)
		if err != nil {
			return nil, err
		}
		return t.t, nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{r: plot.Process(ctx, spec, cfg)}, nil
}
