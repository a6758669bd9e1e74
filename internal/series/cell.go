// Package series provides the cell and column types that back every table
package series

import (
	"fmt"
	"math"
	"strconv"
)

// CellKind tags the dynamic type held by a Cell.
type CellKind uint8

const (
	KindNull CellKind = iota
	KindNumber
	KindText
	KindBool
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("unknown_kind(%d)", uint8(k))
	}
}

// Cell is a single dynamically typed table value.
type Cell struct {
	kind CellKind
	num  float64
	str  string
	b    bool
}

// Null returns the null cell.
func Null() Cell { return Cell{} }

// Num returns a numeric cell.
func Num(v float64) Cell { return Cell{kind: KindNumber, num: v} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{kind: KindText, str: s} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{kind: KindBool, b: b} }

// FromAny converts a decoded Go value (JSON, YAML, literals) into a Cell.
// Unknown types are stored as their fmt representation.
func FromAny(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Null()
	case Cell:
		return x
	case float64:
		return Num(x)
	case float32:
		return Num(float64(x))
	case int:
		return Num(float64(x))
	case int32:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case uint32:
		return Num(float64(x))
	case uint64:
		return Num(float64(x))
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case *float64:
		if x == nil {
			return Null()
		}
		return Num(*x)
	default:
		return Text(fmt.Sprint(x))
	}
}

// Kind returns the dynamic type of the cell.
func (c Cell) Kind() CellKind { return c.kind }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Float returns the numeric value and whether the cell is a number.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindNumber {
		return math.NaN(), false
	}
	return c.num, true
}

// Any returns the cell as a plain Go value suitable for encoding.
func (c Cell) Any() any {
	switch c.kind {
	case KindNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return nil
		}
		return c.num
	case KindText:
		return c.str
	case KindBool:
		return c.b
	default:
		return nil
	}
}

// String formats the cell for display and text storage.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return c.str
	case KindBool:
		return strconv.FormatBool(c.b)
	default:
		return "null"
	}
}

// Key returns a canonical string that is equal for equal cells and differs
// across kinds, so Num(1) and Text("1") never share a key.
func (c Cell) Key() string {
	switch c.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return "s:" + c.str
	case KindBool:
		if c.b {
			return "b:1"
		}
		return "b:0"
	default:
		return "_"
	}
}

// Equal reports whether two cells hold the same kind and value.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNumber:
		return c.num == o.num || (math.IsNaN(c.num) && math.IsNaN(o.num))
	case KindText:
		return c.str == o.str
	case KindBool:
		return c.b == o.b
	default:
		return true
	}
}

// Nums converts float values into numeric cells.
func Nums(values ...float64) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Num(v)
	}
	return cells
}

// Texts converts strings into text cells.
func Texts(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return cells
}

// Repeat returns n copies of c.
func Repeat(c Cell, n int) []Cell {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = c
	}
	return cells
}
