package sampling

import (
	"sort"

	"github.com/paveg/plotframe/internal/grouping"
)

// GroupRandom keeps N whole groups chosen by a seeded hash.
type GroupRandom struct {
	N        int
	Seed     int64
	showSeed bool
}

// ExpressionText returns "sampling_group_random(n=N[, seed=S])".
func (s GroupRandom) ExpressionText() string {
	return expression("group_random", s.N, s.Seed, s.showSeed)
}

// Select applies when there are more than N groups.
func (s GroupRandom) Select(rows int, groups grouping.Mapper) ([]int, bool) {
	byGroup := grouping.IndicesByGroup(rows, groups)
	if len(byGroup) <= s.N {
		return nil, false
	}
	return rowsOf(byGroup, rank(len(byGroup), s.N, s.Seed)), true
}

// GroupSystematic keeps every k-th group so that at most N groups remain.
type GroupSystematic struct {
	N int
}

// ExpressionText returns "sampling_group_systematic(n=N)".
func (s GroupSystematic) ExpressionText() string {
	return expression("group_systematic", s.N, 0, false)
}

// Select applies when there are more than N groups and the stride is at least 2.
func (s GroupSystematic) Select(rows int, groups grouping.Mapper) ([]int, bool) {
	byGroup := grouping.IndicesByGroup(rows, groups)
	if len(byGroup) <= s.N {
		return nil, false
	}
	k := step(len(byGroup), s.N)
	if k < 2 {
		return nil, false
	}
	return rowsOf(byGroup, everyNth(len(byGroup), k)), true
}

// rowsOf collects the rows of the chosen groups in ascending row order.
func rowsOf(byGroup [][]int, chosen []int) []int {
	var result []int
	for _, g := range chosen {
		result = append(result, byGroup[g]...)
	}
	sort.Ints(result)
	return result
}
