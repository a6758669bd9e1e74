package series

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInfersNumeric(t *testing.T) {
	mem := memory.NewGoAllocator()

	tests := []struct {
		name     string
		cells    []Cell
		numeric  bool
		dataType arrow.Type
	}{
		{"numbers", Nums(1, 2, 3), true, arrow.FLOAT64},
		{"numbers with null", []Cell{Num(1), Null(), Num(3)}, true, arrow.FLOAT64},
		{"empty", nil, true, arrow.FLOAT64},
		{"text", Texts("a", "b"), false, arrow.STRING},
		{"bools", []Cell{Bool(true), Null(), Bool(false)}, false, arrow.BOOL},
		{"mixed", []Cell{Num(1), Text("a")}, false, arrow.STRING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := New("c", tt.cells, mem)
			assert.Equal(t, tt.numeric, col.IsNumeric())
			assert.Equal(t, tt.dataType, col.DataType().ID())
			assert.Equal(t, len(tt.cells), col.Len())
		})
	}
}

func TestColumnRoundTripsCells(t *testing.T) {
	cells := []Cell{Num(1.5), Null(), Num(-2)}
	col := New("x", cells, nil)

	got := col.Cells()
	require.Len(t, got, 3)
	for i := range cells {
		assert.True(t, cells[i].Equal(got[i]), "cell %d", i)
	}
	assert.True(t, col.IsNull(1))
	assert.Equal(t, Null(), col.Cell(10))
}

func TestNewDiscreteKeepsNumbers(t *testing.T) {
	col := NewDiscrete("g", Nums(0, 1, 1), nil)

	assert.False(t, col.IsNumeric())
	v, ok := col.Float(1)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestColumnRange(t *testing.T) {
	col := New("x", []Cell{Num(3), Null(), Num(-1), Num(math.NaN()), Num(7)}, nil)

	lo, hi, ok := col.Range()
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	_, _, ok = New("s", Texts("a"), nil).Range()
	assert.False(t, ok)

	_, _, ok = New("e", nil, nil).Range()
	assert.False(t, ok)
}

func TestColumnPickAndConcat(t *testing.T) {
	col := New("x", Nums(10, 20, 30, 40), nil)

	picked := col.Pick([]int{3, 1}, nil)
	assert.Equal(t, []float64{40, 20}, picked.Floats())
	assert.True(t, picked.IsNumeric())

	other := New("x", Texts("a"), nil)
	joined := picked.Concat(nil, other)
	assert.False(t, joined.IsNumeric())
	assert.Equal(t, 3, joined.Len())
	assert.Equal(t, "a", joined.Cell(2).String())
}

func TestCellKey(t *testing.T) {
	assert.NotEqual(t, Num(1).Key(), Text("1").Key())
	assert.Equal(t, Num(2).Key(), Num(2).Key())
	assert.NotEqual(t, Bool(true).Key(), Bool(false).Key())
	assert.Equal(t, Null().Key(), FromAny(nil).Key())
}

func TestFromAny(t *testing.T) {
	assert.Equal(t, Num(3), FromAny(3))
	assert.Equal(t, Num(2.5), FromAny(2.5))
	assert.Equal(t, Text("a"), FromAny("a"))
	assert.Equal(t, Bool(true), FromAny(true))
	assert.True(t, FromAny(nil).IsNull())
}
