// Package plot runs the data side of a whole plot: every layer's stat is
// applied per facet tile, samplings reduce the results, tiles are merged back
// and variables no layer needs are pruned before the plot is handed to a
// renderer.
package plot

import (
	"strings"

	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/facet"
	"github.com/paveg/plotframe/internal/processing"
	"github.com/paveg/plotframe/internal/sampling"
	"github.com/paveg/plotframe/internal/scale"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/stat"
)

// Layer describes one layer of a plot.
type Layer struct {
	Geom string
	// RenderedAes lists the aesthetics the geom draws. Bindings of other
	// aesthetics are dropped from the output. Nil means every bound aesthetic.
	RenderedAes []aes.Aes
	// Stat defaults to identity.
	Stat      stat.Stat
	Bindings  []aes.Binding
	Samplings []sampling.Sampling

	GroupingVar string
	// PathIDVar splits the rows of path-like geoms into separate paths.
	PathIDVar string
	// Tooltips names the variables shown in tooltips.
	Tooltips     []string
	OrderOptions []processing.OrderOption
	Aggregate    dataframe.AggregateFunc

	// GeometryVar and MapJoinVars survive pruning for map layers.
	GeometryVar string
	MapJoinVars []string

	// Data is the layer's own data. Nil means the layer uses the shared data.
	Data *dataframe.Table
}

// Spec is a plot to process.
type Spec struct {
	// Data is shared by every layer without own data.
	Data   *dataframe.Table
	Layers []Layer
	// Scales holds explicit scales. Aesthetics bound to discrete data get
	// a discrete scale when none is given.
	Scales map[aes.Aes]scale.Scale
	Facets facet.Facets
}

func (l Layer) stat() stat.Stat {
	if l.Stat == nil {
		return stat.Identity{}
	}
	return l.Stat
}

// tag formats the layer for computation messages, e.g. "point/count stat".
func (l Layer) tag() string {
	return strings.ToLower(l.Geom) + "/" + l.stat().Name() + " stat"
}

// varsWithoutBinding returns the tooltip and order-by variables, which stats
// keep as constant series.
func (l Layer) varsWithoutBinding() []string {
	names := append([]string(nil), l.Tooltips...)
	for _, o := range l.OrderOptions {
		if o.ByVariable != "" {
			names = append(names, o.ByVariable)
		}
	}
	return names
}

// combinedData overlays the layer's own columns on the shared data when both
// have the same row count. Otherwise the own data stands alone.
func combinedData(shared, own *dataframe.Table) (*dataframe.Table, error) {
	switch {
	case own == nil:
		return shared, nil
	case shared.Width() == 0 || shared.RowCount() != own.RowCount():
		return own, nil
	}
	b := shared.Builder()
	for _, v := range own.Variables() {
		col, err := own.Column(v)
		if err != nil {
			return nil, err
		}
		b.PutColumn(v, col)
	}
	return b.Build()
}

// buildScales completes the explicit scales with discrete scales for
// aesthetics bound to non-numeric data. Levels are collected across layers so
// every layer maps a level to the same index.
func buildScales(explicit map[aes.Aes]scale.Scale, layers []Layer, data []*dataframe.Table) (scale.Map, error) {
	scales := make(map[aes.Aes]scale.Scale, len(explicit))
	for a, s := range explicit {
		scales[a] = s
	}

	discrete := map[aes.Aes][][]series.Cell{}
	var order []aes.Aes
	for i, layer := range layers {
		for _, b := range layer.Bindings {
			v := b.Variable
			if !v.IsOrigin() || !data[i].Has(v) {
				continue
			}
			s, isExplicit := explicit[b.Aes]
			d, isDiscrete := s.(scale.Discrete)
			switch {
			case isDiscrete && len(d.Levels) > 0:
				continue
			case isExplicit && !isDiscrete:
				continue
			case !isExplicit && data[i].IsNumeric(v):
				continue
			}
			cells, err := data[i].Get(v)
			if err != nil {
				return scale.Map{}, err
			}
			if _, seen := discrete[b.Aes]; !seen {
				order = append(order, b.Aes)
			}
			discrete[b.Aes] = append(discrete[b.Aes], cells)
		}
	}
	for _, a := range order {
		scales[a] = scale.DiscreteFromData(discrete[a]...)
	}
	return scale.NewMap(scales), nil
}
