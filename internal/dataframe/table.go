// Package dataframe provides the immutable, column-oriented Table every stage
// of plot data processing reads and produces.
package dataframe

import (
	"fmt"
	"strings"

	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/series"
)

// Table is an immutable set of equally long columns keyed by variable name.
// Tables share column storage; every transform builds a new Table through a
// Builder instead of mutating one in place.
type Table struct {
	columns    map[string]*series.Column
	variables  map[string]Variable
	order      []string // Maintains column order
	rows       int
	orderSpecs []OrderSpec
}

// Empty returns a table with no variables.
func Empty() *Table {
	return &Table{
		columns:   map[string]*series.Column{},
		variables: map[string]Variable{},
	}
}

// Variables returns the table's variables in insertion order
func (t *Table) Variables() []Variable {
	result := make([]Variable, 0, len(t.order))
	for _, name := range t.order {
		result = append(result, t.variables[name])
	}
	return result
}

// Names returns the names of all variables in order
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return t.rows
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.order)
}

// IsEmpty reports whether the table has no variables. A table with variables
// but zero rows is not empty.
func (t *Table) IsEmpty() bool {
	return len(t.order) == 0
}

// Has checks if a variable with the same name exists
func (t *Table) Has(v Variable) bool {
	return t.HasName(v.Name)
}

// HasName checks if a variable with the given name exists
func (t *Table) HasName(name string) bool {
	_, exists := t.columns[name]
	return exists
}

// Find returns the table's variable with the given name.
func (t *Table) Find(name string) (Variable, bool) {
	v, ok := t.variables[name]
	return v, ok
}

// FindOrFail returns the variable with the given name or an UndefinedVariableError.
func (t *Table) FindOrFail(name string) (Variable, error) {
	v, ok := t.variables[name]
	if !ok {
		return Variable{}, errors.NewUndefinedVariableError("Find", name)
	}
	return v, nil
}

// Column returns the column backing v.
func (t *Table) Column(v Variable) (*series.Column, error) {
	col, ok := t.columns[v.Name]
	if !ok {
		return nil, errors.NewUndefinedVariableError("Get", v.Name)
	}
	return col, nil
}

// Get returns the cells of v.
func (t *Table) Get(v Variable) ([]series.Cell, error) {
	col, err := t.Column(v)
	if err != nil {
		return nil, err
	}
	return col.Cells(), nil
}

// IsNumeric reports whether v is present and numeric.
func (t *Table) IsNumeric(v Variable) bool {
	col, ok := t.columns[v.Name]
	return ok && col.IsNumeric()
}

// Range returns the finite min and max of a numeric variable. ok is false if
// the variable is absent, discrete or has no finite values.
func (t *Table) Range(v Variable) (lo, hi float64, ok bool) {
	col, exists := t.columns[v.Name]
	if !exists {
		return 0, 0, false
	}
	return col.Range()
}

// OrderSpecs returns the ordering metadata attached to the table.
func (t *Table) OrderSpecs() []OrderSpec {
	return append([]OrderSpec(nil), t.orderSpecs...)
}

// Builder returns a builder preloaded with this table's columns and order specs.
func (t *Table) Builder() *Builder {
	b := NewBuilder()
	for _, name := range t.order {
		b.PutColumn(t.variables[name], t.columns[name])
	}
	b.orderSpecs = append(b.orderSpecs, t.orderSpecs...)
	return b
}

// String returns a string representation of the Table
func (t *Table) String() string {
	if len(t.order) == 0 {
		return "Table[empty]"
	}

	parts := []string{fmt.Sprintf("Table[%dx%d]", t.rows, t.Width())}
	for _, name := range t.order {
		col := t.columns[name]
		parts = append(parts, fmt.Sprintf("  %s (%s): %s", name, t.variables[name].Source, col.DataType()))
	}
	return strings.Join(parts, "\n")
}
