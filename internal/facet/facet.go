// Package facet splits layer data into the tiles (panels) of a faceted plot.
package facet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/series"
)

// Kind selects how facet levels are laid out.
type Kind int

const (
	// None puts all data into one tile.
	None Kind = iota
	// Wrap creates one tile per level combination present in the data.
	Wrap
	// Grid creates one tile per cell of the X-level by Y-level grid,
	// including empty cells.
	Grid
)

// Facets describes the faceting of a plot.
type Facets struct {
	kind   Kind
	vars   []string
	orders []int
}

// NoFacets returns the single-tile faceting.
func NoFacets() Facets {
	return Facets{kind: None}
}

// NewWrap facets by the given variables. orders holds one direction per
// variable: 1 ascending, -1 descending, 0 keeps the order of appearance.
func NewWrap(vars []string, orders []int) (Facets, error) {
	if len(vars) == 0 {
		return Facets{}, errors.NewInvalidInputError("NewWrap", "at least one facet variable is required")
	}
	return Facets{kind: Wrap, vars: append([]string(nil), vars...), orders: normalizeOrders(orders, len(vars))}, nil
}

// NewGrid facets by a column variable x and a row variable y. Either may be
// empty but not both.
func NewGrid(x, y string, xOrder, yOrder int) (Facets, error) {
	var vars []string
	var orders []int
	if x != "" {
		vars, orders = append(vars, x), append(orders, xOrder)
	}
	if y != "" {
		vars, orders = append(vars, y), append(orders, yOrder)
	}
	if len(vars) == 0 {
		return Facets{}, errors.NewInvalidInputError("NewGrid", "at least one of x and y is required")
	}
	return Facets{kind: Grid, vars: vars, orders: normalizeOrders(orders, len(vars))}, nil
}

func normalizeOrders(orders []int, n int) []int {
	result := make([]int, n)
	for i := range result {
		if i < len(orders) {
			switch {
			case orders[i] > 0:
				result[i] = 1
			case orders[i] < 0:
				result[i] = -1
			}
		}
	}
	return result
}

// Kind returns the layout kind.
func (f Facets) Kind() Kind { return f.kind }

// IsDefined reports whether data is split at all.
func (f Facets) IsDefined() bool { return f.kind != None }

// Variables returns the names of the facet variables.
func (f Facets) Variables() []string { return append([]string(nil), f.vars...) }

// Tile identifies one panel by the level of each facet variable.
type Tile struct {
	Levels []series.Cell
}

// Label joins the tile's levels for display.
func (t Tile) Label() string {
	parts := make([]string, len(t.Levels))
	for i, l := range t.Levels {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// Tiles computes the panels for the data of all layers. Levels are collected
// from every table that has the facet variable; it is an error if no table has it.
func (f Facets) Tiles(tables []*dataframe.Table) ([]Tile, error) {
	if !f.IsDefined() {
		return []Tile{{}}, nil
	}

	levels := make([][]series.Cell, len(f.vars))
	for i, name := range f.vars {
		found := false
		for _, t := range tables {
			v, ok := t.Find(name)
			if !ok {
				continue
			}
			found = true
			cells, err := t.Get(v)
			if err != nil {
				return nil, err
			}
			levels[i] = appendDistinct(levels[i], cells)
		}
		if !found {
			return nil, errors.NewUndefinedVariableError("Tiles", name)
		}
		sortLevels(levels[i], f.orders[i])
	}

	all := product(levels)
	if f.kind == Grid {
		return all, nil
	}

	present := make(map[string]bool)
	for _, t := range tables {
		if err := f.collectPresent(t, present); err != nil {
			return nil, err
		}
	}
	var tiles []Tile
	for _, tile := range all {
		if present[tileKey(tile.Levels)] {
			tiles = append(tiles, tile)
		}
	}
	return tiles, nil
}

// collectPresent records the level combinations occurring in t. Tables that
// lack some facet variable contribute nothing.
func (f Facets) collectPresent(t *dataframe.Table, present map[string]bool) error {
	columns := make([][]series.Cell, len(f.vars))
	for i, name := range f.vars {
		v, ok := t.Find(name)
		if !ok {
			return nil
		}
		cells, err := t.Get(v)
		if err != nil {
			return err
		}
		columns[i] = cells
	}
	key := make([]series.Cell, len(f.vars))
	for row := 0; row < t.RowCount(); row++ {
		for i := range columns {
			key[i] = columns[i][row]
		}
		present[tileKey(key)] = true
	}
	return nil
}

// DataByTile returns, for each tile, the rows of data that belong to it. Data
// without a facet variable is not filtered by it, so a layer lacking all facet
// variables appears in every tile.
func (f Facets) DataByTile(data *dataframe.Table, tiles []Tile) ([]*dataframe.Table, error) {
	if !f.IsDefined() {
		return []*dataframe.Table{data}, nil
	}

	columns := make([][]series.Cell, len(f.vars))
	for i, name := range f.vars {
		v, ok := data.Find(name)
		if !ok {
			continue
		}
		cells, err := data.Get(v)
		if err != nil {
			return nil, err
		}
		columns[i] = cells
	}

	result := make([]*dataframe.Table, len(tiles))
	for ti, tile := range tiles {
		if len(tile.Levels) != len(f.vars) {
			return nil, errors.NewInvalidInputError("DataByTile", fmt.Sprintf("tile has %d levels, want %d", len(tile.Levels), len(f.vars)))
		}
		var rows []int
		for row := 0; row < data.RowCount(); row++ {
			if matches(columns, row, tile.Levels) {
				rows = append(rows, row)
			}
		}
		if len(rows) == data.RowCount() {
			result[ti] = data
			continue
		}
		picked, err := dataframe.Pick(data, rows, nil)
		if err != nil {
			return nil, err
		}
		result[ti] = picked
	}
	return result, nil
}

func matches(columns [][]series.Cell, row int, levels []series.Cell) bool {
	for i, cells := range columns {
		if cells != nil && !cells[row].Equal(levels[i]) {
			return false
		}
	}
	return true
}

func appendDistinct(levels []series.Cell, cells []series.Cell) []series.Cell {
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		seen[l.Key()] = true
	}
	for _, c := range cells {
		if !seen[c.Key()] {
			seen[c.Key()] = true
			levels = append(levels, c)
		}
	}
	return levels
}

func sortLevels(levels []series.Cell, order int) {
	if order == 0 {
		return
	}
	sort.SliceStable(levels, func(i, j int) bool {
		if order > 0 {
			return less(levels[i], levels[j])
		}
		return less(levels[j], levels[i])
	})
}

// less orders numbers numerically, then everything else by its text form.
// Nulls sort last when ascending.
func less(a, b series.Cell) bool {
	if a.IsNull() || b.IsNull() {
		return !a.IsNull() && b.IsNull()
	}
	av, aNum := a.Float()
	bv, bNum := b.Float()
	switch {
	case aNum && bNum:
		return av < bv
	case aNum != bNum:
		return aNum
	default:
		return a.String() < b.String()
	}
}

func product(levels [][]series.Cell) []Tile {
	tiles := []Tile{{}}
	for _, vals := range levels {
		next := make([]Tile, 0, len(tiles)*len(vals))
		for _, t := range tiles {
			for _, v := range vals {
				combined := append(append([]series.Cell(nil), t.Levels...), v)
				next = append(next, Tile{Levels: combined})
			}
		}
		tiles = next
	}
	return tiles
}

func tileKey(levels []series.Cell) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = l.Key()
	}
	return strings.Join(parts, "\x1f")
}
