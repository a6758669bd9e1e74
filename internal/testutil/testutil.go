// Package testutil provides common testing utilities shared by the package
// tests: allocator setup, standard test tables and table assertions.
package testutil

import (
	"fmt"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// defaultRowCount is the default number of rows in test tables.
	defaultRowCount = 4
)

// TestMemoryContext provides a memory allocator with automatic cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator for tests. Columns share their
// buffers across tables, so memory is left to the garbage collector.
//
//	mem := testutil.SetupMemoryTest(t)
//	defer mem.Release()
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	return &TestMemoryContext{
		Allocator: memory.NewGoAllocator(),
		cleanup:   func() {},
	}
}

// Column is a named list of cells for NewTable.
type Column struct {
	Name  string
	Cells []series.Cell
}

// Col is shorthand for a Column literal.
func Col(name string, cells ...series.Cell) Column {
	return Column{Name: name, Cells: cells}
}

// NewTable builds a table of origin variables.
func NewTable(tb testing.TB, columns ...Column) *dataframe.Table {
	tb.Helper()
	b := dataframe.NewBuilder()
	for _, c := range columns {
		b.Put(dataframe.NewOrigin(c.Name), c.Cells)
	}
	data, err := b.Build()
	require.NoError(tb, err)
	return data
}

// TestTableOption configures test table creation.
type TestTableOption func(*testTableConfig)

type testTableConfig struct {
	includeNulls bool
	rowCount     int
}

// WithNulls makes every fourth price null.
func WithNulls() TestTableOption {
	return func(cfg *testTableConfig) {
		cfg.includeNulls = true
	}
}

// WithRowCount sets the number of rows in test data.
func WithRowCount(count int) TestTableOption {
	return func(cfg *testTableConfig) {
		cfg.rowCount = count
	}
}

// CreateTestTable creates the standard produce table:
//   - fruit (discrete): apple, pear, apple, plum, ...
//   - region (discrete): north, south, alternating
//   - price (numeric): 1.5, 2.5, 3.5, ...
//   - qty (numeric): 10, 20, 30, ...
func CreateTestTable(tb testing.TB, opts ...TestTableOption) *dataframe.Table {
	tb.Helper()
	cfg := &testTableConfig{rowCount: defaultRowCount}
	for _, opt := range opts {
		opt(cfg)
	}

	fruits := []string{"apple", "pear", "apple", "plum"}
	regions := []string{"north", "south"}
	fruit := make([]series.Cell, cfg.rowCount)
	region := make([]series.Cell, cfg.rowCount)
	price := make([]series.Cell, cfg.rowCount)
	qty := make([]series.Cell, cfg.rowCount)
	for i := 0; i < cfg.rowCount; i++ {
		fruit[i] = series.Text(fruits[i%len(fruits)])
		region[i] = series.Text(regions[i%len(regions)])
		price[i] = series.Num(float64(i) + 1.5)
		if cfg.includeNulls && i%4 == 3 {
			price[i] = series.Null()
		}
		qty[i] = series.Num(float64(10 * (i + 1)))
	}

	return NewTable(tb,
		Column{"fruit", fruit},
		Column{"region", region},
		Column{"price", price},
		Column{"qty", qty},
	)
}

// CellsOf returns the cells of the variable called name.
func CellsOf(tb testing.TB, data *dataframe.Table, name string) []series.Cell {
	tb.Helper()
	v, err := data.FindOrFail(name)
	require.NoError(tb, err)
	cells, err := data.Get(v)
	require.NoError(tb, err)
	return cells
}

// StringsOf renders the cells of name as strings, "<nil>" for nulls.
func StringsOf(tb testing.TB, data *dataframe.Table, name string) []string {
	tb.Helper()
	cells := CellsOf(tb, data, name)
	result := make([]string, len(cells))
	for i, c := range cells {
		if c.IsNull() {
			result[i] = "<nil>"
			continue
		}
		result[i] = c.String()
	}
	return result
}

// AssertTableEqual compares variables, row order and cell values.
func AssertTableEqual(tb testing.TB, expected, actual *dataframe.Table) {
	tb.Helper()

	require.NotNil(tb, expected, "expected table should not be nil")
	require.NotNil(tb, actual, "actual table should not be nil")

	assert.Equal(tb, expected.RowCount(), actual.RowCount(), "row counts should match")
	assert.Equal(tb, expected.Names(), actual.Names(), "variables should match")

	for _, name := range expected.Names() {
		if !actual.HasName(name) {
			continue
		}
		assert.Equal(tb, StringsOf(tb, expected, name), StringsOf(tb, actual, name),
			fmt.Sprintf("variable %s data should match", name))
	}
}

// AssertTableHasVariables verifies that a table has exactly the given variables.
func AssertTableHasVariables(tb testing.TB, data *dataframe.Table, expected []string) {
	tb.Helper()

	require.NotNil(tb, data, "table should not be nil")
	assert.ElementsMatch(tb, expected, data.Names())
}

// AssertTableNotEmpty verifies that a table has rows and variables.
func AssertTableNotEmpty(tb testing.TB, data *dataframe.Table) {
	tb.Helper()

	require.NotNil(tb, data, "table should not be nil")
	assert.Positive(tb, data.RowCount(), "table should not be empty")
	assert.Positive(tb, data.Width(), "table should have variables")
}
