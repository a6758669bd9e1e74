package series

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/exp/constraints"
)

// Column is an immutable, Arrow-backed sequence of cells.
//
// Storage follows the cell kinds found at construction time: all-number
// columns use a Float64 array, all-bool columns a Boolean array and anything
// else a String array. Whether the column is numeric is decided once at build
// time and cached; a column of numbers can still be forced discrete.
type Column struct {
	name    string
	numeric bool
	array   arrow.Array
}

// New creates a column and infers whether it is numeric: it is when every
// non-null cell is a number (an empty or all-null column is numeric).
func New(name string, cells []Cell, mem memory.Allocator) *Column {
	return build(name, cells, inferNumeric(cells), mem)
}

// NewNumeric creates a numeric column. Non-number cells are stored as null.
func NewNumeric(name string, cells []Cell, mem memory.Allocator) *Column {
	return build(name, cells, true, mem)
}

// NewDiscrete creates a discrete column regardless of the cell kinds.
func NewDiscrete(name string, cells []Cell, mem memory.Allocator) *Column {
	return build(name, cells, false, mem)
}

// FromFloats creates a numeric column from plain float values.
func FromFloats(name string, values []float64, mem memory.Allocator) *Column {
	return NewNumeric(name, Nums(values...), mem)
}

func inferNumeric(cells []Cell) bool {
	for _, c := range cells {
		if c.kind != KindNull && c.kind != KindNumber {
			return false
		}
	}
	return true
}

func build(name string, cells []Cell, numeric bool, mem memory.Allocator) *Column {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	var arr arrow.Array
	switch storageKind(cells, numeric) {
	case KindNumber:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		builder.Reserve(len(cells))
		for _, c := range cells {
			if c.kind == KindNumber {
				builder.Append(c.num)
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	case KindBool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		builder.Reserve(len(cells))
		for _, c := range cells {
			if c.kind == KindBool {
				builder.Append(c.b)
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	default:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		builder.Reserve(len(cells))
		for _, c := range cells {
			if c.kind == KindNull {
				builder.AppendNull()
			} else {
				builder.Append(c.String())
			}
		}
		arr = builder.NewArray()
	}

	return &Column{
		name:    name,
		numeric: numeric,
		array:   arr,
	}
}

// storageKind picks the Arrow representation for the given cells.
func storageKind(cells []Cell, numeric bool) CellKind {
	if numeric {
		return KindNumber
	}
	kind := KindNull
	for _, c := range cells {
		if c.kind == KindNull {
			continue
		}
		if kind == KindNull {
			kind = c.kind
			continue
		}
		if kind != c.kind {
			return KindText
		}
	}
	if kind == KindNull {
		return KindText
	}
	return kind
}

// Name returns the column name
func (c *Column) Name() string {
	return c.name
}

// Len returns the length of the column
func (c *Column) Len() int {
	return c.array.Len()
}

// IsNumeric reports whether the column holds numeric data.
func (c *Column) IsNumeric() bool {
	return c.numeric
}

// DataType returns the Arrow data type
func (c *Column) DataType() arrow.DataType {
	return c.array.DataType()
}

// IsNull checks if the value at index is null
func (c *Column) IsNull(index int) bool {
	return c.array.IsNull(index)
}

// Cell returns the value at index, or null when index is out of range.
func (c *Column) Cell(index int) Cell {
	if index < 0 || index >= c.array.Len() || c.array.IsNull(index) {
		return Null()
	}
	switch arr := c.array.(type) {
	case *array.Float64:
		return Num(arr.Value(index))
	case *array.Boolean:
		return Bool(arr.Value(index))
	case *array.String:
		return Text(arr.Value(index))
	default:
		panic(fmt.Sprintf("unsupported array type: %T", arr))
	}
}

// Cells returns all values as a new slice.
func (c *Column) Cells() []Cell {
	result := make([]Cell, c.array.Len())
	for i := range result {
		result[i] = c.Cell(i)
	}
	return result
}

// Float returns the numeric value at index and whether it is present.
func (c *Column) Float(index int) (float64, bool) {
	return c.Cell(index).Float()
}

// Floats returns the numeric values with nulls and non-numbers skipped.
func (c *Column) Floats() []float64 {
	arr, ok := c.array.(*array.Float64)
	if !ok {
		return nil
	}
	values := make([]float64, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if !arr.IsNull(i) {
			values = append(values, arr.Value(i))
		}
	}
	return values
}

// Range returns the minimum and maximum finite values of a numeric column.
// ok is false for discrete columns and columns without finite values.
func (c *Column) Range() (lo, hi float64, ok bool) {
	if !c.numeric {
		return 0, 0, false
	}
	return Bounds(c.Floats())
}

// Bounds returns the minimum and maximum finite values in xs.
func Bounds[T constraints.Float](xs []T) (lo, hi T, ok bool) {
	for _, x := range xs {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if !ok {
			lo, hi, ok = x, x, true
			continue
		}
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi, ok
}

// Pick returns a new column holding the values at the given indices, in order.
func (c *Column) Pick(indices []int, mem memory.Allocator) *Column {
	cells := make([]Cell, len(indices))
	for i, idx := range indices {
		cells[i] = c.Cell(idx)
	}
	return build(c.name, cells, c.numeric, mem)
}

// Concat appends the values of others after c. The result is numeric only if
// every input column is numeric.
func (c *Column) Concat(mem memory.Allocator, others ...*Column) *Column {
	total := c.Len()
	numeric := c.numeric
	for _, o := range others {
		total += o.Len()
		numeric = numeric && o.numeric
	}
	cells := make([]Cell, 0, total)
	cells = append(cells, c.Cells()...)
	for _, o := range others {
		cells = append(cells, o.Cells()...)
	}
	return build(c.name, cells, numeric, mem)
}

// Rename returns a column sharing the same data under a new name.
func (c *Column) Rename(name string) *Column {
	c.array.Retain()
	return &Column{name: name, numeric: c.numeric, array: c.array}
}

// String returns a string representation of the column
func (c *Column) String() string {
	kind := "discrete"
	if c.numeric {
		kind = "numeric"
	}
	return fmt.Sprintf("Column[%s]: %s (len=%d)", kind, c.name, c.Len())
}

// Array returns the underlying Arrow array (retains a reference)
func (c *Column) Array() arrow.Array {
	if c.array != nil {
		c.array.Retain()
		return c.array
	}
	return nil
}

// Release releases the underlying Arrow memory
func (c *Column) Release() {
	if c.array != nil {
		c.array.Release()
	}
}
