// Package grouping computes which group each table row belongs to.
//
// Group ids come from the discrete variables a layer binds to non-positional
// aesthetics, an explicit grouping variable and an optional path-id variable.
// Each variable contributes first-seen-wins level ids; successive level
// sequences are combined through a pairing encoding and renumbered so that
// final ids are contiguous from 0.
package grouping

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/series"
)

// Limit bounds the number of distinct ids on either side of one pairing step.
const Limit = 1000

// Mapper assigns a group id to each row index.
type Mapper struct {
	ids    []int
	single bool
}

// SingleGroup maps every row to group 0 and tells callers that per-group
// splitting can be skipped.
var SingleGroup = Mapper{single: true}

// Wrap creates a mapper from explicit per-row group ids.
func Wrap(ids []int) Mapper {
	return Mapper{ids: append([]int(nil), ids...)}
}

// IsSingle reports whether m is the single-group sentinel.
func (m Mapper) IsSingle() bool {
	return m.single
}

// GroupOf returns the group id of row. Rows outside the mapped range belong to group 0.
func (m Mapper) GroupOf(row int) int {
	if m.single || row < 0 || row >= len(m.ids) {
		return 0
	}
	return m.ids[row]
}

// IndicesByGroup partitions [0, rowCount) by group id. Groups are returned in
// order of first appearance and rows keep their original order within a group.
func IndicesByGroup(rowCount int, m Mapper) [][]int {
	slot := map[int]int{}
	var groups [][]int
	for row := 0; row < rowCount; row++ {
		g := m.GroupOf(row)
		i, ok := slot[g]
		if !ok {
			i = len(groups)
			slot[g] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], row)
	}
	return groups
}

// DummyEncode pairs two level sequences into one: prior*Limit + current.
// It fails with a TooManyGroupsError when either sequence reaches Limit.
func DummyEncode(prior, current []int) ([]int, error) {
	if len(prior) != len(current) {
		return nil, errors.NewInconsistentGroupSizeError("DummyEncode", len(prior), len(current))
	}
	if len(prior) == 0 {
		return []int{}, nil
	}

	maxID := 0
	for i := range prior {
		maxID = max(maxID, prior[i], current[i])
	}
	if maxID >= Limit {
		return nil, errors.NewTooManyGroupsError("DummyEncode", maxID, Limit)
	}

	dummies := make([]int, len(prior))
	for i := range prior {
		dummies[i] = prior[i]*Limit + current[i]
	}
	return dummies, nil
}

// Combine computes group ids from the given grouping series. All series must
// have the same length. With no series it returns SingleGroup.
func Combine(seriesList ...[]series.Cell) (Mapper, error) {
	var current []int
	for _, cells := range seriesList {
		levels := Levels(cells)
		if current == nil {
			current = levels
			continue
		}
		if len(current) != len(levels) {
			return Mapper{}, errors.NewInconsistentGroupSizeError("ComputeGroups", len(current), len(levels))
		}
		dummies, err := DummyEncode(current, levels)
		if err != nil {
			return Mapper{}, err
		}
		current = renumber(dummies)
	}
	if current == nil {
		return SingleGroup, nil
	}
	return Mapper{ids: current}, nil
}

// ComputeGroups derives group ids for data. Contributing variables are, in
// order: the explicit grouping variable, every origin variable bound to a
// non-positional aesthetic whose data is discrete (or that is the explicit
// grouping variable), and the path-id variable.
func ComputeGroups(
	data *dataframe.Table,
	bindings []aes.Binding,
	groupingVar, pathIDVar *dataframe.Variable,
) (Mapper, error) {
	var seriesList [][]series.Cell

	if groupingVar != nil {
		cells, err := data.Get(*groupingVar)
		if err != nil {
			return Mapper{}, err
		}
		seriesList = append(seriesList, cells)
	}

	vars := groupingVariables(data, bindings, groupingVar)
	if pathIDVar != nil {
		vars = append(vars, *pathIDVar)
	}
	for _, v := range vars {
		cells, err := data.Get(v)
		if err != nil {
			return Mapper{}, err
		}
		seriesList = append(seriesList, cells)
	}

	return Combine(seriesList...)
}

func groupingVariables(data *dataframe.Table, bindings []aes.Binding, explicit *dataframe.Variable) []dataframe.Variable {
	seen := map[string]bool{}
	var result []dataframe.Variable
	for _, b := range bindings {
		v := b.Variable
		if seen[v.Name] || !v.IsOrigin() {
			continue
		}
		if (explicit != nil && v.Name == explicit.Name) || IsDefaultGroupingVariable(data, b.Aes, v) {
			seen[v.Name] = true
			result = append(result, v)
		}
	}
	return result
}

// IsDefaultGroupingVariable reports whether a binding groups data implicitly:
// the aesthetic is not positional and the variable's data is discrete.
func IsDefaultGroupingVariable(data *dataframe.Table, a aes.Aes, v dataframe.Variable) bool {
	return !(aes.IsPositional(a) || data.IsNumeric(v))
}
