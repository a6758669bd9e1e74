// Package stat defines the statistical transform contract applied to layer
// data, the reserved variables stats produce and a set of concrete stats.
package stat

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// MessageSink receives human-readable diagnostics produced while a stat runs.
type MessageSink func(message string)

// Context exposes data-wide facts to a stat that is applied to one group or
// tile slice at a time.
type Context interface {
	// OverallXRange returns the scale-space X range of the whole layer data.
	OverallXRange() (lo, hi float64, ok bool)
	// OverallYRange returns the scale-space Y range of the whole layer data.
	OverallYRange() (lo, hi float64, ok bool)
}

// Stat maps an input table to a table of derived variables.
//
// Input values are read from the transform variables (see aes.TransformVar)
// of the aesthetics the stat consumes. Output variables are stat variables.
// A stat must not retain or mutate its input.
type Stat interface {
	// Name is the short lower-case stat name, e.g. "count".
	Name() string
	// Apply computes the stat over data. An output with zero rows means the
	// stat produced nothing for this slice.
	Apply(data *dataframe.Table, ctx Context, messages MessageSink) (*dataframe.Table, error)
	// HasDefaultMapping reports whether the stat maps a by default.
	HasDefaultMapping(a aes.Aes) bool
	// DefaultMapping returns the stat variable a is mapped to by default.
	DefaultMapping(a aes.Aes) (dataframe.Variable, bool)
}

// IsIdentity reports whether s leaves data untouched.
func IsIdentity(s Stat) bool {
	_, ok := s.(Identity)
	return ok
}

// Identity passes data through unchanged.
type Identity struct{}

// Name returns "identity".
func (Identity) Name() string { return "identity" }

// Apply returns data.
func (Identity) Apply(data *dataframe.Table, _ Context, _ MessageSink) (*dataframe.Table, error) {
	return data, nil
}

// HasDefaultMapping always returns false.
func (Identity) HasDefaultMapping(aes.Aes) bool { return false }

// DefaultMapping always returns false.
func (Identity) DefaultMapping(aes.Aes) (dataframe.Variable, bool) { return dataframe.Variable{}, false }

// mappings implements the default-mapping half of Stat.
type mappings map[aes.Aes]dataframe.Variable

func (m mappings) HasDefaultMapping(a aes.Aes) bool {
	_, ok := m[a]
	return ok
}

func (m mappings) DefaultMapping(a aes.Aes) (dataframe.Variable, bool) {
	v, ok := m[a]
	return v, ok
}

// DefaultMappings lists every default mapping of s in aesthetic order.
func DefaultMappings(s Stat) []aes.Binding {
	var result []aes.Binding
	for _, a := range aes.Values() {
		if v, ok := s.DefaultMapping(a); ok {
			result = append(result, aes.Bind(a, v))
		}
	}
	return result
}
