//nolint:testpackage // requires internal access to unexported types and functions
package dataframe

import (
	stderrors "errors"
	"testing"

	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	cat := NewOrigin("cat")
	val := NewOrigin("val")

	table, err := NewBuilder().
		Put(cat, series.Texts("A", "A", "B", "B")).
		Put(val, series.Nums(1, 2, 3, 4)).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 4, table.RowCount())
	assert.Equal(t, []string{"cat", "val"}, table.Names())
	assert.True(t, table.Has(cat))
	assert.False(t, table.IsNumeric(cat))
	assert.True(t, table.IsNumeric(val))
	assert.False(t, table.IsEmpty())

	lo, hi, ok := table.Range(val)
	require.True(t, ok)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestBuilderSchemaError(t *testing.T) {
	_, err := NewBuilder().
		Put(NewOrigin("a"), series.Nums(1, 2, 3)).
		Put(NewOrigin("b"), series.Nums(1, 2)).
		Build()

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrSchema))
}

func TestEmptyVersusZeroRows(t *testing.T) {
	empty := Empty()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, empty.RowCount())

	zeroRows, err := NewBuilder().Put(NewOrigin("x"), nil).Build()
	require.NoError(t, err)
	assert.False(t, zeroRows.IsEmpty())
	assert.Equal(t, 0, zeroRows.RowCount())
}

func TestGetUndefinedVariable(t *testing.T) {
	table, err := NewBuilder().Put(NewOrigin("x"), series.Nums(1)).Build()
	require.NoError(t, err)

	_, err = table.Get(NewOrigin("y"))
	assert.True(t, stderrors.Is(err, errors.ErrUndefinedVariable))
}

func TestTableIsImmutable(t *testing.T) {
	x := NewOrigin("x")
	original, err := NewBuilder().Put(x, series.Nums(1, 2)).Build()
	require.NoError(t, err)

	changed, err := original.Builder().PutFloats(x, []float64{9, 9}).Build()
	require.NoError(t, err)

	before, _ := original.Get(x)
	after, _ := changed.Get(x)
	assert.Equal(t, series.Nums(1, 2), before)
	assert.Equal(t, series.Nums(9, 9), after)
}

func TestBuilderReplaceKeepsPositionAndRemove(t *testing.T) {
	a, b, c := NewOrigin("a"), NewOrigin("b"), NewOrigin("c")
	table, err := NewBuilder().
		Put(a, series.Nums(1)).
		Put(b, series.Nums(2)).
		Put(c, series.Nums(3)).
		Put(a, series.Nums(4)).
		Remove(b).
		Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, table.Names())
}

func TestPickConcatAndRemoveAllExcept(t *testing.T) {
	g := NewOrigin("g")
	v := NewOrigin("v")
	table, err := NewBuilder().
		PutDiscrete(g, series.Nums(0, 1, 0)).
		Put(v, series.Nums(10, 20, 30)).
		Build()
	require.NoError(t, err)

	picked, err := Pick(table, []int{0, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, picked.RowCount())
	assert.False(t, picked.IsNumeric(g))

	joined, err := Concat(nil, picked, table)
	require.NoError(t, err)
	assert.Equal(t, 5, joined.RowCount())
	cells, _ := joined.Get(v)
	assert.Equal(t, series.Nums(10, 30, 10, 20, 30), cells)

	kept := RemoveAllExcept(table, map[string]bool{"v": true})
	assert.Equal(t, []string{"v"}, kept.Names())
	assert.Equal(t, 3, kept.RowCount())
}

func TestConcatMissingVariableFails(t *testing.T) {
	a, err := NewBuilder().Put(NewOrigin("x"), series.Nums(1)).Put(NewOrigin("y"), series.Nums(2)).Build()
	require.NoError(t, err)
	b, err := NewBuilder().Put(NewOrigin("x"), series.Nums(3)).Build()
	require.NoError(t, err)

	_, err = Concat(nil, a, b)
	assert.True(t, stderrors.Is(err, errors.ErrSchema))
}

func TestEqual(t *testing.T) {
	build := func(vals ...float64) *Table {
		table, err := NewBuilder().PutFloats(NewOrigin("x"), vals).Build()
		require.NoError(t, err)
		return table
	}
	assert.True(t, Equal(build(1, 2), build(1, 2)))
	assert.False(t, Equal(build(1, 2), build(2, 1)))
	assert.False(t, Equal(build(1), build(1, 2)))
}
