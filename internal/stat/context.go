package stat

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// SimpleContext answers range queries from one transformed table.
type SimpleContext struct {
	data *dataframe.Table
}

// NewSimpleContext creates a context over data, which is expected to carry
// the transform variables of the layer's bindings.
func NewSimpleContext(data *dataframe.Table) SimpleContext {
	return SimpleContext{data: data}
}

// OverallXRange returns the range of the X transform variable.
func (c SimpleContext) OverallXRange() (lo, hi float64, ok bool) {
	return c.data.Range(aes.TransformVar(aes.X))
}

// OverallYRange returns the range of the Y transform variable.
func (c SimpleContext) OverallYRange() (lo, hi float64, ok bool) {
	return c.data.Range(aes.TransformVar(aes.Y))
}

// CombinedContext unions the ranges of several contexts, typically one per layer.
type CombinedContext []Context

// OverallXRange returns the union of the X ranges.
func (c CombinedContext) OverallXRange() (lo, hi float64, ok bool) {
	return union(c, Context.OverallXRange)
}

// OverallYRange returns the union of the Y ranges.
func (c CombinedContext) OverallYRange() (lo, hi float64, ok bool) {
	return union(c, Context.OverallYRange)
}

func union(contexts []Context, get func(Context) (float64, float64, bool)) (lo, hi float64, ok bool) {
	for _, ctx := range contexts {
		l, h, found := get(ctx)
		if !found {
			continue
		}
		if !ok || l < lo {
			lo = l
		}
		if !ok || h > hi {
			hi = h
		}
		ok = true
	}
	return lo, hi, ok
}
