package processing

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/scale"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/stat"
)

// applyStat runs the stat over one slice of layer data and regenerates the
// bound input variables so every output row can still be mapped.
func applyStat(data *dataframe.Table, req *Request, messages stat.MessageSink) (*dataframe.Table, error) {
	statData, err := req.Stat.Apply(data, req.StatContext, messages)
	if err != nil {
		return nil, err
	}
	if statData.IsEmpty() {
		return statData, nil
	}

	inverse, err := inverseTransformContinuousStatData(statData, req.Stat, req.Bindings, req.Scales)
	if err != nil {
		return nil, err
	}

	size := statData.RowCount()
	b := statData.Builder()

	facetVars := make(map[string]bool, len(req.FacetVariables))
	for _, name := range req.FacetVariables {
		v, err := data.FindOrFail(name)
		if err != nil {
			return nil, err
		}
		facetVars[name] = true
		if data.RowCount() > 0 {
			col, err := data.Column(v)
			if err != nil {
				return nil, err
			}
			b.Put(v, series.Repeat(col.Cell(0), size))
		}
	}

	if len(req.Bindings) == 0 {
		return b.Build()
	}

	inputs := newSeriesSet()
	addConstant := func(v dataframe.Variable) error {
		col, err := data.Column(v)
		if err != nil {
			return err
		}
		inputs.put(v, series.Repeat(representative(col), size))
		return nil
	}

	for _, binding := range req.Bindings {
		v := binding.Variable
		if v.IsStat() || facetVars[v.Name] {
			continue
		}
		if statVar, ok := req.Stat.DefaultMapping(binding.Aes); ok {
			cells, transformed := inverse[statVar.Name]
			if !transformed {
				raw, err := statData.Get(statVar)
				if err != nil {
					return nil, err
				}
				cells = scale.InverseTransform(raw, req.Scales.Get(binding.Aes))
			}
			inputs.put(v, cells)
			continue
		}
		if !inputs.has(v) {
			if err := addConstant(v); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range req.VarsWithoutBinding {
		if stat.IsStatVarName(name) {
			continue
		}
		v, err := data.FindOrFail(name)
		if err != nil {
			return nil, err
		}
		if !inputs.has(v) {
			if err := addConstant(v); err != nil {
				return nil, err
			}
		}
	}

	for _, entry := range inputs.entries {
		b.Put(entry.v, entry.cells)
	}
	for _, v := range statData.Variables() {
		if cells, ok := inverse[v.Name]; ok {
			b.PutNumeric(v, cells)
		}
	}
	return b.Build()
}

// representative is the value a constant input series is filled with: the
// mean of a numeric column, else its first non-null value.
func representative(col *series.Column) series.Cell {
	if col.IsNumeric() {
		values := col.Floats()
		if len(values) == 0 {
			return series.Null()
		}
		return series.Num(stats.Mean(values))
	}
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			return col.Cell(i)
		}
	}
	return series.Null()
}

// seriesSet keeps regenerated series in first-put order.
type seriesSet struct {
	index   map[string]int
	entries []seriesEntry
}

type seriesEntry struct {
	v     dataframe.Variable
	cells []series.Cell
}

func newSeriesSet() *seriesSet {
	return &seriesSet{index: make(map[string]int)}
}

func (s *seriesSet) has(v dataframe.Variable) bool {
	_, ok := s.index[v.Name]
	return ok
}

func (s *seriesSet) put(v dataframe.Variable, cells []series.Cell) {
	if i, ok := s.index[v.Name]; ok {
		s.entries[i] = seriesEntry{v: v, cells: cells}
		return
	}
	s.index[v.Name] = len(s.entries)
	s.entries = append(s.entries, seriesEntry{v: v, cells: cells})
}
