package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/series"
)

// Pick returns a table holding the rows at indices, in order. Each column keeps
// its numeric or discrete nature.
func Pick(t *Table, indices []int, mem memory.Allocator) (*Table, error) {
	b := NewBuilderWithAllocator(mem)
	for _, name := range t.order {
		b.PutColumn(t.variables[name], t.columns[name].Pick(indices, b.mem))
	}
	return b.Build()
}

// Concat appends tables row-wise, column by column, in argument order. The
// result carries the union of the variable sets; no padding is performed, so a
// variable missing from some inputs makes Build fail with a SchemaError.
func Concat(mem memory.Allocator, tables ...*Table) (*Table, error) {
	b := NewBuilderWithAllocator(mem)
	parts := map[string][]*series.Column{}
	for _, t := range tables {
		for _, name := range t.order {
			if _, seen := parts[name]; !seen {
				b.PutColumn(t.variables[name], t.columns[name])
			}
			parts[name] = append(parts[name], t.columns[name])
		}
	}
	for _, name := range b.order {
		cols := parts[name]
		if len(cols) > 1 {
			b.PutColumn(b.variables[name], cols[0].Concat(b.mem, cols[1:]...))
		}
	}
	return b.Build()
}

// RemoveAllExcept returns a table keeping only the named variables.
func RemoveAllExcept(t *Table, keep map[string]bool) *Table {
	b := NewBuilder()
	for _, name := range t.order {
		if keep[name] {
			b.PutColumn(t.variables[name], t.columns[name])
		}
	}
	b.orderSpecs = append(b.orderSpecs, t.orderSpecs...)
	result, _ := b.Build() // a subset of a valid table is valid
	return result
}

// VariablesByName indexes the variables of t by name.
func VariablesByName(t *Table) map[string]Variable {
	result := make(map[string]Variable, len(t.order))
	for name, v := range t.variables {
		result[name] = v
	}
	return result
}

// Equal reports whether two tables hold the same variables with the same
// per-row values in the same order.
func Equal(a, b *Table) bool {
	if a.rows != b.rows || len(a.order) != len(b.order) {
		return false
	}
	for _, name := range a.order {
		other, ok := b.columns[name]
		if !ok {
			return false
		}
		col := a.columns[name]
		if col.IsNumeric() != other.IsNumeric() {
			return false
		}
		for i := 0; i < a.rows; i++ {
			if !col.Cell(i).Equal(other.Cell(i)) {
				return false
			}
		}
	}
	return true
}
