package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/series"
)

// Builder accumulates columns and validates them into a Table.
type Builder struct {
	columns    map[string]*series.Column
	variables  map[string]Variable
	order      []string
	orderSpecs []OrderSpec
	mem        memory.Allocator
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return NewBuilderWithAllocator(nil)
}

// NewBuilderWithAllocator creates an empty builder allocating column memory from mem.
func NewBuilderWithAllocator(mem memory.Allocator) *Builder {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Builder{
		columns:   map[string]*series.Column{},
		variables: map[string]Variable{},
		mem:       mem,
	}
}

// Put adds or replaces v, inferring whether the cells are numeric.
func (b *Builder) Put(v Variable, cells []series.Cell) *Builder {
	return b.PutColumn(v, series.New(v.Name, cells, b.mem))
}

// PutNumeric adds or replaces v as a numeric column.
func (b *Builder) PutNumeric(v Variable, cells []series.Cell) *Builder {
	return b.PutColumn(v, series.NewNumeric(v.Name, cells, b.mem))
}

// PutFloats adds or replaces v with plain float values.
func (b *Builder) PutFloats(v Variable, values []float64) *Builder {
	return b.PutColumn(v, series.FromFloats(v.Name, values, b.mem))
}

// PutDiscrete adds or replaces v as a discrete column.
func (b *Builder) PutDiscrete(v Variable, cells []series.Cell) *Builder {
	return b.PutColumn(v, series.NewDiscrete(v.Name, cells, b.mem))
}

// PutColumn adds or replaces v with an existing column. A replaced variable
// keeps its position.
func (b *Builder) PutColumn(v Variable, col *series.Column) *Builder {
	if col.Name() != v.Name {
		col = col.Rename(v.Name)
	}
	if _, exists := b.columns[v.Name]; !exists {
		b.order = append(b.order, v.Name)
	}
	b.columns[v.Name] = col
	b.variables[v.Name] = v
	return b
}

// Remove drops v if present.
func (b *Builder) Remove(v Variable) *Builder {
	if _, exists := b.columns[v.Name]; !exists {
		return b
	}
	delete(b.columns, v.Name)
	delete(b.variables, v.Name)
	for i, name := range b.order {
		if name == v.Name {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
	return b
}

// AddOrderSpecs attaches ordering metadata to the table being built.
func (b *Builder) AddOrderSpecs(specs ...OrderSpec) *Builder {
	b.orderSpecs = append(b.orderSpecs, specs...)
	return b
}

// Build validates that all columns have one row count and returns the Table.
func (b *Builder) Build() (*Table, error) {
	rows := 0
	for i, name := range b.order {
		n := b.columns[name].Len()
		if i == 0 {
			rows = n
			continue
		}
		if n != rows {
			return nil, errors.NewSchemaError("Build", name, rows, n)
		}
	}

	columns := make(map[string]*series.Column, len(b.columns))
	variables := make(map[string]Variable, len(b.variables))
	for name, col := range b.columns {
		columns[name] = col
		variables[name] = b.variables[name]
	}

	return &Table{
		columns:    columns,
		variables:  variables,
		order:      append([]string(nil), b.order...),
		rows:       rows,
		orderSpecs: append([]OrderSpec(nil), b.orderSpecs...),
	}, nil
}
