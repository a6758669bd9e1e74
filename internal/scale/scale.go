// Package scale describes the per-aesthetic transforms the pipeline consults
// to move values between data space and scale space.
package scale

import (
	"fmt"
	"math"

	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/series"
)

// Scale is a read-only transform descriptor for one aesthetic.
type Scale interface {
	// Name identifies the scale for diagnostics.
	Name() string
	// IsContinuousDomain reports whether the scale maps a numeric domain.
	IsContinuousDomain() bool
	// Apply maps a data-space value into scale space.
	Apply(v float64) float64
	// Inverse maps a scale-space value back into data space.
	Inverse(v float64) float64
}

// Trans is a named invertible function pair.
type Trans struct {
	name    string
	apply   func(float64) float64
	inverse func(float64) float64
}

var (
	// Identity leaves values unchanged.
	Identity = Trans{"identity", func(v float64) float64 { return v }, func(v float64) float64 { return v }}
	// Log10 maps values to their base-10 logarithm.
	Log10 = Trans{"log10", math.Log10, func(v float64) float64 { return math.Pow(10, v) }}
	// Sqrt maps values to their square root.
	Sqrt = Trans{"sqrt", math.Sqrt, func(v float64) float64 { return v * v }}
	// Reverse negates values.
	Reverse = Trans{"reverse", func(v float64) float64 { return -v }, func(v float64) float64 { return -v }}
)

// ParseTrans resolves a transform by name; the empty name is Identity.
func ParseTrans(name string) (Trans, error) {
	switch name {
	case "", "identity":
		return Identity, nil
	case "log10":
		return Log10, nil
	case "sqrt":
		return Sqrt, nil
	case "reverse":
		return Reverse, nil
	default:
		return Trans{}, fmt.Errorf("unknown scale transform: %q", name)
	}
}

// Continuous is a scale over a numeric domain with an optional transform.
type Continuous struct {
	Trans Trans
}

// NewContinuous creates a continuous scale using t.
func NewContinuous(t Trans) Continuous {
	return Continuous{Trans: t}
}

// Name returns the transform name prefixed by the scale kind.
func (c Continuous) Name() string { return "continuous/" + c.trans().name }

// IsContinuousDomain always returns true.
func (c Continuous) IsContinuousDomain() bool { return true }

// Apply maps v into scale space.
func (c Continuous) Apply(v float64) float64 { return c.trans().apply(v) }

// Inverse maps v back to data space.
func (c Continuous) Inverse(v float64) float64 { return c.trans().inverse(v) }

func (c Continuous) trans() Trans {
	if c.Trans.apply == nil {
		return Identity
	}
	return c.Trans
}

// Discrete is a scale over an ordered set of levels. In scale space a level
// is represented by its index.
type Discrete struct {
	Levels []series.Cell
}

// NewDiscrete creates a discrete scale over levels in the given order.
func NewDiscrete(levels []series.Cell) Discrete {
	return Discrete{Levels: levels}
}

// DiscreteFromData creates a discrete scale whose levels are the distinct
// non-null values of cells in order of first appearance.
func DiscreteFromData(cells ...[]series.Cell) Discrete {
	seen := make(map[string]bool)
	var levels []series.Cell
	for _, list := range cells {
		for _, c := range list {
			if c.IsNull() || seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			levels = append(levels, c)
		}
	}
	return Discrete{Levels: levels}
}

// Name returns "discrete".
func (Discrete) Name() string { return "discrete" }

// IsContinuousDomain always returns false.
func (Discrete) IsContinuousDomain() bool { return false }

// Apply returns v unchanged; levels are indexed by TransformSeries.
func (Discrete) Apply(v float64) float64 { return v }

// Inverse returns v unchanged; indices are resolved by InverseTransform.
func (Discrete) Inverse(v float64) float64 { return v }

func (d Discrete) indexOf(c series.Cell) (int, bool) {
	for i, level := range d.Levels {
		if level.Equal(c) {
			return i, true
		}
	}
	return 0, false
}

func (d Discrete) levelAt(v float64) (series.Cell, bool) {
	i := int(math.Round(v))
	if i < 0 || i >= len(d.Levels) || math.Abs(v-float64(i)) > 1e-9 {
		return series.Null(), false
	}
	return d.Levels[i], true
}

// Map holds the scale of each aesthetic. Aesthetics without an explicit scale
// resolve to an identity continuous scale.
type Map struct {
	scales map[aes.Aes]Scale
}

// NewMap creates a map from explicit scales.
func NewMap(scales map[aes.Aes]Scale) Map {
	m := Map{scales: make(map[aes.Aes]Scale, len(scales))}
	for a, s := range scales {
		m.scales[a] = s
	}
	return m
}

// Get returns the scale of a.
func (m Map) Get(a aes.Aes) Scale {
	if s, ok := m.scales[a]; ok {
		return s
	}
	return Continuous{Trans: Identity}
}

// Has reports whether a has an explicit scale.
func (m Map) Has(a aes.Aes) bool {
	_, ok := m.scales[a]
	return ok
}

// With returns a copy of m with a bound to s.
func (m Map) With(a aes.Aes, s Scale) Map {
	result := NewMap(m.scales)
	result.scales[a] = s
	return result
}

// TransformSeries maps cells into scale space. Continuous scales transform
// numbers and pass nulls and non-numbers through; discrete scales replace
// each level with its index, and values outside the domain become null.
func TransformSeries(cells []series.Cell, s Scale) []series.Cell {
	d, ok := s.(Discrete)
	if !ok {
		return mapNumeric(cells, s.Apply)
	}
	if len(d.Levels) == 0 {
		d = DiscreteFromData(cells)
	}
	result := make([]series.Cell, len(cells))
	for i, c := range cells {
		if idx, found := d.indexOf(c); found {
			result[i] = series.Num(float64(idx))
		}
	}
	return result
}

// InverseTransform maps scale-space cells back into data space. Discrete
// scales resolve level indices; anything that is not a valid index passes
// through unchanged.
func InverseTransform(cells []series.Cell, s Scale) []series.Cell {
	if s.IsContinuousDomain() {
		return mapNumeric(cells, s.Inverse)
	}
	result := append([]series.Cell(nil), cells...)
	d, ok := s.(Discrete)
	if !ok {
		return result
	}
	for i, c := range cells {
		if v, isNum := c.Float(); isNum {
			if level, found := d.levelAt(v); found {
				result[i] = level
			}
		}
	}
	return result
}

func mapNumeric(cells []series.Cell, fn func(float64) float64) []series.Cell {
	result := make([]series.Cell, len(cells))
	for i, c := range cells {
		if v, ok := c.Float(); ok {
			result[i] = series.Num(fn(v))
		} else {
			result[i] = c
		}
	}
	return result
}
