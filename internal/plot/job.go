package plot

import (
	"fmt"
	"io"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/config"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/facet"
	"github.com/paveg/plotframe/internal/processing"
	"github.com/paveg/plotframe/internal/sampling"
	"github.com/paveg/plotframe/internal/scale"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/stat"
	"gopkg.in/yaml.v3"
)

// Job is the declarative form of a plot, as read from YAML:
//
//	scales:
//	  x: log10
//	facets:
//	  wrap: [region]
//	layers:
//	  - geom: bar
//	    stat: count
//	    mapping: {x: category}
//	    sampling: [{name: pick, n: 50}]
type Job struct {
	// Scales maps an aesthetic to "identity", "log10", "sqrt", "reverse"
	// or "discrete".
	Scales map[string]string `yaml:"scales"`
	Facets *FacetJob         `yaml:"facets"`
	Layers []LayerJob        `yaml:"layers"`
}

// FacetJob selects wrap faceting (Wrap) or grid faceting (X and/or Y).
type FacetJob struct {
	Wrap   []string `yaml:"wrap"`
	Order  []int    `yaml:"order"`
	X      string   `yaml:"x"`
	Y      string   `yaml:"y"`
	XOrder int      `yaml:"x_order"`
	YOrder int      `yaml:"y_order"`
}

// LayerJob is the declarative form of a Layer.
type LayerJob struct {
	Geom        string                   `yaml:"geom"`
	Stat        string                   `yaml:"stat"`
	StatOptions stat.Options             `yaml:"stat_options"`
	Mapping     map[string]string        `yaml:"mapping"`
	Rendered    []string                 `yaml:"rendered"`
	Sampling    []sampling.Spec          `yaml:"sampling"`
	Group       string                   `yaml:"group"`
	PathID      string                   `yaml:"path_id"`
	Tooltips    []string                 `yaml:"tooltips"`
	Order       []processing.OrderOption `yaml:"order"`
	// Aggregate combines duplicate order-by keys: mean, min, max or sum.
	Aggregate string   `yaml:"aggregate"`
	Geometry  string   `yaml:"geometry"`
	MapJoin   []string `yaml:"map_join"`
	// Data names the layer's own data source, resolved by the caller.
	Data string `yaml:"data"`
}

// DecodeJob reads a YAML job. Unknown fields are rejected.
func DecodeJob(r io.Reader) (Job, error) {
	var job Job
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		if err == io.EOF {
			return Job{}, errors.NewInvalidInputError("DecodeJob", "empty plot job")
		}
		return Job{}, &errors.PlotError{Op: "DecodeJob", Kind: errors.KindInvalidInput, Message: err.Error(), Cause: err}
	}
	return job, nil
}

// DataLoader resolves a layer's data source.
type DataLoader func(source string) (*dataframe.Table, error)

// Spec resolves the job against the shared data. Random samplings without a
// seed use cfg.DefaultSamplingSeed. load may be nil when no layer has its own
// data.
func (j Job) Spec(shared *dataframe.Table, cfg config.Config, load DataLoader) (Spec, error) {
	cfg = cfg.WithDefaults()
	spec := Spec{Data: shared, Scales: map[aes.Aes]scale.Scale{}, Facets: facet.NoFacets()}

	for name, kind := range j.Scales {
		a, err := parseAes(name)
		if err != nil {
			return Spec{}, err
		}
		if kind == "discrete" {
			spec.Scales[a] = scale.Discrete{}
			continue
		}
		t, err := scale.ParseTrans(kind)
		if err != nil {
			return Spec{}, errors.NewInvalidInputError("JobSpec", err.Error())
		}
		spec.Scales[a] = scale.NewContinuous(t)
	}

	if f := j.Facets; f != nil {
		var err error
		if len(f.Wrap) > 0 {
			spec.Facets, err = facet.NewWrap(f.Wrap, f.Order)
		} else {
			spec.Facets, err = facet.NewGrid(f.X, f.Y, f.XOrder, f.YOrder)
		}
		if err != nil {
			return Spec{}, err
		}
	}

	for i, lj := range j.Layers {
		layer, err := lj.layer(cfg, load)
		if err != nil {
			return Spec{}, fmt.Errorf("layer %d: %w", i, err)
		}
		spec.Layers = append(spec.Layers, layer)
	}
	return spec, nil
}

func (lj LayerJob) layer(cfg config.Config, load DataLoader) (Layer, error) {
	s, err := stat.New(lj.Stat, lj.StatOptions)
	if err != nil {
		return Layer{}, err
	}
	layer := Layer{
		Geom:         lj.Geom,
		Stat:         s,
		GroupingVar:  lj.Group,
		PathIDVar:    lj.PathID,
		Tooltips:     lj.Tooltips,
		OrderOptions: lj.Order,
		GeometryVar:  lj.Geometry,
		MapJoinVars:  lj.MapJoin,
	}
	if layer.Geom == "" {
		layer.Geom = "point"
	}

	// Bindings follow aesthetic declaration order so processing is reproducible.
	for name, varName := range lj.Mapping {
		a, err := parseAes(name)
		if err != nil {
			return Layer{}, err
		}
		v, isStat := stat.VarByName(varName)
		if !isStat {
			v = dataframe.NewOrigin(varName)
		}
		layer.Bindings = append(layer.Bindings, aes.Bind(a, v))
	}
	sort.Slice(layer.Bindings, func(i, k int) bool { return layer.Bindings[i].Aes < layer.Bindings[k].Aes })

	for _, name := range lj.Rendered {
		a, err := parseAes(name)
		if err != nil {
			return Layer{}, err
		}
		layer.RenderedAes = append(layer.RenderedAes, a)
	}

	for _, spec := range lj.Sampling {
		smp, err := sampling.New(spec, cfg.DefaultSamplingSeed)
		if err != nil {
			return Layer{}, err
		}
		layer.Samplings = append(layer.Samplings, smp)
	}

	if lj.Aggregate != "" {
		layer.Aggregate, err = AggregateByName(lj.Aggregate)
		if err != nil {
			return Layer{}, err
		}
	}

	if lj.Data != "" {
		if load == nil {
			return Layer{}, errors.NewInvalidInputError("JobSpec", "no loader for layer data "+lj.Data)
		}
		layer.Data, err = load(lj.Data)
		if err != nil {
			return Layer{}, err
		}
	}
	return layer, nil
}

func parseAes(name string) (aes.Aes, error) {
	a, err := aes.Parse(name)
	if err != nil {
		return 0, errors.NewInvalidInputError("JobSpec", err.Error())
	}
	return a, nil
}

// AggregateByName returns the order-by aggregation registered under name.
// Aggregations ignore non-numeric cells and yield null when none remain.
func AggregateByName(name string) (dataframe.AggregateFunc, error) {
	var fn func(xs []float64) float64
	switch name {
	case "mean":
		fn = stats.Mean
	case "sum":
		fn = vec.Sum
	case "min":
		fn = func(xs []float64) float64 { lo, _ := stats.Bounds(xs); return lo }
	case "max":
		fn = func(xs []float64) float64 { _, hi := stats.Bounds(xs); return hi }
	default:
		return nil, errors.NewInvalidInputError("AggregateByName", "unknown aggregate operation: "+name)
	}
	return func(values []series.Cell) series.Cell {
		xs := make([]float64, 0, len(values))
		for _, c := range values {
			if v, ok := c.Float(); ok {
				xs = append(xs, v)
			}
		}
		if len(xs) == 0 {
			return series.Null()
		}
		return series.Num(fn(xs))
	}, nil
}
