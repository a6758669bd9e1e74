package facet

import (
	"testing"

	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, columns map[string][]series.Cell, order ...string) *dataframe.Table {
	t.Helper()
	b := dataframe.NewBuilder()
	for _, name := range order {
		b.Put(dataframe.NewOrigin(name), columns[name])
	}
	data, err := b.Build()
	require.NoError(t, err)
	return data
}

func labels(tiles []Tile) []string {
	result := make([]string, len(tiles))
	for i, tile := range tiles {
		result[i] = tile.Label()
	}
	return result
}

func TestNoFacets(t *testing.T) {
	data := build(t, map[string][]series.Cell{"x": series.Nums(1, 2)}, "x")
	f := NoFacets()

	tiles, err := f.Tiles([]*dataframe.Table{data})
	require.NoError(t, err)
	require.Len(t, tiles, 1)

	byTile, err := f.DataByTile(data, tiles)
	require.NoError(t, err)
	assert.Same(t, data, byTile[0])
}

func TestWrapLevelOrder(t *testing.T) {
	data := build(t, map[string][]series.Cell{
		"panel": series.Texts("b", "a", "b", "c"),
		"x":     series.Nums(1, 2, 3, 4),
	}, "panel", "x")

	tests := []struct {
		name  string
		order int
		want  []string
	}{
		{"appearance", 0, []string{"b", "a", "c"}},
		{"ascending", 1, []string{"a", "b", "c"}},
		{"descending", -1, []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewWrap([]string{"panel"}, []int{tt.order})
			require.NoError(t, err)
			tiles, err := f.Tiles([]*dataframe.Table{data})
			require.NoError(t, err)
			assert.Equal(t, tt.want, labels(tiles))
		})
	}
}

func TestWrapKeepsPresentCombinationsOnly(t *testing.T) {
	data := build(t, map[string][]series.Cell{
		"a": series.Texts("p", "p", "q"),
		"b": series.Nums(1, 2, 1),
	}, "a", "b")

	f, err := NewWrap([]string{"a", "b"}, nil)
	require.NoError(t, err)
	tiles, err := f.Tiles([]*dataframe.Table{data})
	require.NoError(t, err)
	assert.Equal(t, []string{"p, 1", "p, 2", "q, 1"}, labels(tiles))
}

func TestGridIncludesEmptyTiles(t *testing.T) {
	data := build(t, map[string][]series.Cell{
		"col": series.Texts("l", "r", "l"),
		"row": series.Texts("top", "top", "bottom"),
		"v":   series.Nums(1, 2, 3),
	}, "col", "row", "v")

	f, err := NewGrid("col", "row", 0, 0)
	require.NoError(t, err)
	tiles, err := f.Tiles([]*dataframe.Table{data})
	require.NoError(t, err)
	assert.Equal(t, []string{"l, top", "l, bottom", "r, top", "r, bottom"}, labels(tiles))

	byTile, err := f.DataByTile(data, tiles)
	require.NoError(t, err)
	rows := make([]int, len(byTile))
	for i, tile := range byTile {
		rows[i] = tile.RowCount()
	}
	assert.Equal(t, []int{1, 1, 1, 0}, rows)

	v, _ := byTile[1].Find("v")
	cells, err := byTile[1].Get(v)
	require.NoError(t, err)
	assert.Equal(t, series.Nums(3), cells)
}

func TestLayerWithoutFacetVariableIsRepeated(t *testing.T) {
	faceted := build(t, map[string][]series.Cell{"panel": series.Texts("a", "b")}, "panel")
	plain := build(t, map[string][]series.Cell{"y": series.Nums(5, 6, 7)}, "y")

	f, err := NewWrap([]string{"panel"}, nil)
	require.NoError(t, err)
	tiles, err := f.Tiles([]*dataframe.Table{faceted, plain})
	require.NoError(t, err)
	require.Len(t, tiles, 2)

	byTile, err := f.DataByTile(plain, tiles)
	require.NoError(t, err)
	for _, tile := range byTile {
		assert.Same(t, plain, tile)
	}
}

func TestFacetErrors(t *testing.T) {
	_, err := NewWrap(nil, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = NewGrid("", "", 0, 0)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	f, err := NewWrap([]string{"missing"}, nil)
	require.NoError(t, err)
	data := build(t, map[string][]series.Cell{"x": series.Nums(1)}, "x")
	_, err = f.Tiles([]*dataframe.Table{data})
	assert.ErrorIs(t, err, errors.ErrUndefinedVariable)
}

func TestLessOrdersNumbersBeforeText(t *testing.T) {
	levels := []series.Cell{series.Text("b"), series.Num(10), series.Null(), series.Num(2), series.Text("a")}
	sortLevels(levels, 1)
	assert.Equal(t, []series.Cell{series.Num(2), series.Num(10), series.Text("a"), series.Text("b"), series.Null()}, levels)
}
