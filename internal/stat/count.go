package stat

import (
	"sort"

	"github.com/aclements/go-moremath/vec"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// Count counts (weighted) occurrences of each distinct X value.
type Count struct {
	mappings
}

// NewCount creates a count stat mapping X to ..x.. and Y to ..count...
func NewCount() *Count {
	return &Count{mappings: mappings{aes.X: VarX, aes.Y: VarCount}}
}

// Name returns "count".
func (*Count) Name() string { return "count" }

// Apply emits one row per distinct X in ascending order.
func (s *Count) Apply(data *dataframe.Table, _ Context, _ MessageSink) (*dataframe.Table, error) {
	if !hasInput(data, aes.X) {
		return empty(VarX, VarCount, VarProp)
	}
	obs, err := read(data, true, false)
	if err != nil {
		return nil, err
	}

	counts := make(map[float64]float64)
	for i, x := range obs.xs {
		counts[x] += obs.weight(i)
	}
	xs := make([]float64, 0, len(counts))
	for x := range counts {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	ns := make([]float64, len(xs))
	for i, x := range xs {
		ns[i] = counts[x]
	}
	total := vec.Sum(ns)
	props := make([]float64, len(ns))
	for i, n := range ns {
		if total != 0 {
			props[i] = n / total
		}
	}
	return output(col(VarX, xs), col(VarCount, ns), col(VarProp, props))
}
