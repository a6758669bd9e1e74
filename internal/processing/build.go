// Package processing applies a layer's stat to its data: per-group splitting,
// stat application, group-id renumbering, carrier propagation, inverse
// transform of stat outputs and re-merging.
package processing

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/grouping"
	"github.com/paveg/plotframe/internal/parallel"
	"github.com/paveg/plotframe/internal/scale"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/stat"
)

// Request bundles the inputs of BuildStatData for one layer tile.
type Request struct {
	// Data is the tile's layer data after TransformOriginals.
	Data     *dataframe.Table
	Stat     stat.Stat
	Bindings []aes.Binding
	Scales   scale.Map
	Grouping *grouping.Context
	// FacetVariables are broadcast into the stat output.
	FacetVariables []string
	StatContext    stat.Context
	// VarsWithoutBinding are kept as constant series (tooltips, order-by).
	VarsWithoutBinding []string
	OrderOptions       []OrderOption
	Aggregate          dataframe.AggregateFunc
	Messages           stat.MessageSink

	// Pool, when set, applies the stat to groups concurrently once there are
	// at least ParallelThreshold groups. Output is identical to a sequential run.
	Pool              *parallel.WorkerPool
	ParallelThreshold int
	Allocator         memory.Allocator
}

// DataAndGroupingContext is the stat output of a layer tile and the grouping
// that is positionally aligned with its rows.
type DataAndGroupingContext struct {
	Data     *dataframe.Table
	Grouping *grouping.Context
}

// BuildStatData applies req.Stat to every group of req.Data and merges the
// results. The identity stat returns the input unchanged.
func BuildStatData(req Request) (DataAndGroupingContext, error) {
	if stat.IsIdentity(req.Stat) {
		return DataAndGroupingContext{Data: req.Data, Grouping: req.Grouping}, nil
	}
	if req.StatContext == nil {
		req.StatContext = stat.NewSimpleContext(req.Data)
	}

	mapper := grouping.SingleGroup
	if req.Grouping != nil {
		mapper = req.Grouping.Mapper()
	}

	var (
		merged *dataframe.Table
		sizes  []int
		err    error
	)
	if mapper.IsSingle() {
		merged, err = applyStat(req.Data, &req, req.Messages)
		if err != nil {
			return DataAndGroupingContext{}, err
		}
		sizes = []int{merged.RowCount()}
	} else {
		merged, sizes, err = applyPerGroup(&req, mapper)
		if err != nil {
			return DataAndGroupingContext{}, err
		}
	}

	specs, err := createOrderSpecs(merged.Variables(), req.Bindings, req.OrderOptions, req.Aggregate)
	if err != nil {
		return DataAndGroupingContext{}, err
	}
	result, err := merged.Builder().AddOrderSpecs(specs...).Build()
	if err != nil {
		return DataAndGroupingContext{}, err
	}
	return DataAndGroupingContext{Data: result, Grouping: grouping.WithOrderedGroups(sizes)}, nil
}

type groupOutput struct {
	data     *dataframe.Table
	messages []string
}

func applyPerGroup(req *Request, mapper grouping.Mapper) (*dataframe.Table, []int, error) {
	groups, err := splitByGroup(req.Data, mapper, req.Allocator)
	if err != nil {
		return nil, nil, err
	}

	apply := func(_ int, group *dataframe.Table) (groupOutput, error) {
		var out groupOutput
		data, err := applyStat(group, req, func(m string) { out.messages = append(out.messages, m) })
		out.data = data
		return out, err
	}

	var outputs []groupOutput
	if req.Pool != nil && req.ParallelThreshold > 0 && len(groups) >= req.ParallelThreshold {
		outputs, err = parallel.ProcessIndexed(req.Pool, groups, apply)
		if err != nil {
			return nil, nil, err
		}
	} else {
		outputs = make([]groupOutput, len(groups))
		for i, group := range groups {
			if outputs[i], err = apply(i, group); err != nil {
				return nil, nil, err
			}
		}
	}

	var groupingVar *dataframe.Variable
	if req.Grouping != nil {
		if v, ok := req.Grouping.GroupingVar(); ok {
			groupingVar = &v
		}
	}

	merger := &GroupMerger{}
	lastStatGroupEnd := -1
	for i, out := range outputs {
		if req.Messages != nil {
			for _, m := range out.messages {
				req.Messages(m)
			}
		}
		statData := out.data
		if statData.RowCount() == 0 {
			continue
		}

		if statData.Has(stat.VarGroup) {
			statData, lastStatGroupEnd, err = renumberStatGroups(statData, lastStatGroupEnd)
		} else if groupingVar != nil {
			statData, err = broadcastFirst(statData, groups[i], *groupingVar)
		}
		if err != nil {
			return nil, nil, err
		}
		merger.AddGroup(statData)
	}

	merged, err := merger.Result(req.Allocator)
	if err != nil {
		return nil, nil, err
	}
	return merged, merger.GroupSizes(), nil
}

// renumberStatGroups shifts the ..group.. ids of one group's output so they
// start right after lastEnd, and returns the new last id.
func renumberStatGroups(statData *dataframe.Table, lastEnd int) (*dataframe.Table, int, error) {
	lo, hi, ok := statData.Range(stat.VarGroup)
	if !ok {
		return statData, lastEnd, nil
	}
	offset := lastEnd + 1 - int(lo)
	newEnd := int(hi) + offset
	if offset == 0 {
		return statData, newEnd, nil
	}

	cells, err := statData.Get(stat.VarGroup)
	if err != nil {
		return nil, lastEnd, err
	}
	shifted := make([]series.Cell, len(cells))
	for i, c := range cells {
		if g, ok := c.Float(); ok && !math.IsNaN(g) {
			shifted[i] = series.Num(g + float64(offset))
		}
	}
	result, err := statData.Builder().PutNumeric(stat.VarGroup, shifted).Build()
	if err != nil {
		return nil, lastEnd, err
	}
	return result, newEnd, nil
}

// broadcastFirst fills v in statData with the first value v has in group.
func broadcastFirst(statData, group *dataframe.Table, v dataframe.Variable) (*dataframe.Table, error) {
	col, err := group.Column(v)
	if err != nil {
		return nil, err
	}
	return statData.Builder().Put(v, series.Repeat(col.Cell(0), statData.RowCount())).Build()
}

func splitByGroup(data *dataframe.Table, mapper grouping.Mapper, mem memory.Allocator) ([]*dataframe.Table, error) {
	indices := grouping.IndicesByGroup(data.RowCount(), mapper)
	groups := make([]*dataframe.Table, len(indices))
	for i, rows := range indices {
		group, err := dataframe.Pick(data, rows, mem)
		if err != nil {
			return nil, err
		}
		groups[i] = group
	}
	return groups, nil
}
