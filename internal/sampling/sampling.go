// Package sampling reduces the rows of a layer's stat output. Point samplings
// pick individual rows; group-aware samplings keep or drop whole groups.
package sampling

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/grouping"
)

// Sampling chooses which rows of a table to keep.
type Sampling interface {
	// ExpressionText describes the sampling in computation messages,
	// e.g. "sampling_random(n=100, seed=7)".
	ExpressionText() string
	// Select returns the ascending indices of the rows to keep, or false when
	// the sampling does not apply to a table of this size and grouping.
	Select(rows int, groups grouping.Mapper) ([]int, bool)
}

// Apply runs samplings in sequence. Each sampling that applies reports its
// expression text to messages. The returned context is aligned with the
// returned table.
func Apply(
	data *dataframe.Table,
	ctx *grouping.Context,
	samplings []Sampling,
	messages func(string),
) (*dataframe.Table, *grouping.Context, error) {
	if ctx == nil {
		ctx = grouping.WithOrderedGroups([]int{data.RowCount()})
	}
	for _, s := range samplings {
		indices, ok := s.Select(data.RowCount(), ctx.Mapper())
		if !ok {
			continue
		}
		picked, err := dataframe.Pick(data, indices, nil)
		if err != nil {
			return nil, nil, err
		}
		picked, err = picked.Builder().AddOrderSpecs(data.OrderSpecs()...).Build()
		if err != nil {
			return nil, nil, err
		}
		data = picked
		ctx = ctx.Select(indices)
		if messages != nil {
			messages(s.ExpressionText())
		}
	}
	return data, ctx, nil
}

// Spec is the declarative form of a sampling.
type Spec struct {
	Name string `json:"name" yaml:"name"`
	N    int    `json:"n" yaml:"n"`
	// Seed is used by the random samplings; nil selects the default seed.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// New builds the sampling described by spec. defaultSeed is used when a
// random sampling has no explicit seed.
func New(spec Spec, defaultSeed int64) (Sampling, error) {
	if spec.N <= 0 {
		return nil, errors.NewInvalidInputError("NewSampling", fmt.Sprintf("%s: sample size must be positive, got %d", spec.Name, spec.N))
	}
	seed, explicit := defaultSeed, false
	if spec.Seed != nil {
		seed, explicit = *spec.Seed, true
	}
	switch spec.Name {
	case "random":
		return Random{N: spec.N, Seed: seed, showSeed: explicit}, nil
	case "pick":
		return Pick{N: spec.N}, nil
	case "systematic":
		return Systematic{N: spec.N}, nil
	case "group_random":
		return GroupRandom{N: spec.N, Seed: seed, showSeed: explicit}, nil
	case "group_systematic":
		return GroupSystematic{N: spec.N}, nil
	default:
		return nil, errors.NewInvalidInputError("NewSampling", "unknown sampling: "+spec.Name)
	}
}

func expression(name string, n int, seed int64, showSeed bool) string {
	if showSeed {
		return fmt.Sprintf("sampling_%s(n=%d, seed=%d)", name, n, seed)
	}
	return fmt.Sprintf("sampling_%s(n=%d)", name, n)
}

// rank orders 0..count-1 by a seeded hash and keeps the first n, ascending.
// The same seed always selects the same items.
func rank(count, n int, seed int64) []int {
	type scored struct {
		index int
		score uint64
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	items := make([]scored, count)
	for i := range items {
		binary.LittleEndian.PutUint64(buf[8:], uint64(i))
		items[i] = scored{index: i, score: xxhash.Sum64(buf[:])}
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].score != items[b].score {
			return items[a].score < items[b].score
		}
		return items[a].index < items[b].index
	})

	picked := make([]int, n)
	for i := range picked {
		picked[i] = items[i].index
	}
	sort.Ints(picked)
	return picked
}

// step returns the stride that keeps about n of count items.
func step(count, n int) int {
	return int(math.Ceil(float64(count) / float64(n)))
}

// everyNth returns 0, s, 2s, ... below count.
func everyNth(count, s int) []int {
	var result []int
	for i := 0; i < count; i += s {
		result = append(result, i)
	}
	return result
}
