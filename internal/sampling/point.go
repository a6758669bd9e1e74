package sampling

import "github.com/paveg/plotframe/internal/grouping"

// Random keeps N rows chosen by a seeded hash.
type Random struct {
	N        int
	Seed     int64
	showSeed bool
}

// ExpressionText returns "sampling_random(n=N[, seed=S])".
func (s Random) ExpressionText() string { return expression("random", s.N, s.Seed, s.showSeed) }

// Select applies when there are more than N rows.
func (s Random) Select(rows int, _ grouping.Mapper) ([]int, bool) {
	if rows <= s.N {
		return nil, false
	}
	return rank(rows, s.N, s.Seed), true
}

// Pick keeps the first N rows.
type Pick struct {
	N int
}

// ExpressionText returns "sampling_pick(n=N)".
func (s Pick) ExpressionText() string { return expression("pick", s.N, 0, false) }

// Select applies when there are more than N rows.
func (s Pick) Select(rows int, _ grouping.Mapper) ([]int, bool) {
	if rows <= s.N {
		return nil, false
	}
	indices := make([]int, s.N)
	for i := range indices {
		indices[i] = i
	}
	return indices, true
}

// Systematic keeps every k-th row so that at most N rows remain.
type Systematic struct {
	N int
}

// ExpressionText returns "sampling_systematic(n=N)".
func (s Systematic) ExpressionText() string { return expression("systematic", s.N, 0, false) }

// Select applies when there are more than N rows and the stride is at least 2.
func (s Systematic) Select(rows int, _ grouping.Mapper) ([]int, bool) {
	if rows <= s.N {
		return nil, false
	}
	k := step(rows, s.N)
	if k < 2 {
		return nil, false
	}
	return everyNth(rows, k), true
}
