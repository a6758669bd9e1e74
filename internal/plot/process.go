package plot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/config"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/facet"
	"github.com/paveg/plotframe/internal/grouping"
	"github.com/paveg/plotframe/internal/monitoring"
	"github.com/paveg/plotframe/internal/parallel"
	"github.com/paveg/plotframe/internal/processing"
	"github.com/paveg/plotframe/internal/sampling"
	"github.com/paveg/plotframe/internal/scale"
	"github.com/paveg/plotframe/internal/stat"
	"golang.org/x/sync/errgroup"
)

// LayerResult is the processed form of one layer.
type LayerResult struct {
	Geom string
	Stat string
	// Data is the layer's own data after processing, or nil when the layer
	// reads the shared data.
	Data *dataframe.Table
	// GroupSizes lists the post-stat group sizes, tile after tile, aligned
	// with the rows of the layer's stat output.
	GroupSizes []int
}

// Result is either a processed plot or a Failure.
type Result struct {
	SharedData *dataframe.Table
	Layers     []LayerResult
	// Messages describe samplings and stat adjustments, layer by layer.
	Messages []string
	Failure  *errors.Failure
	// Metrics holds stage timings when Config.CollectMetrics is set.
	Metrics []monitoring.StageMetrics
}

// Failed reports whether processing produced no plot.
func (r Result) Failed() bool { return r.Failure != nil }

// Process applies every layer's stat and samplings to spec. It never returns a
// partial result: any error, including a panic in a stat, becomes a Failure.
// Internal failures are logged at error level.
func Process(ctx context.Context, spec Spec, cfg config.Config) (result Result) {
	cfg = cfg.WithDefaults()
	log := cfg.Log()
	defer func() {
		if r := recover(); r != nil {
			if cfg.FailOnInternalPanic {
				panic(r)
			}
			result = failed(log, errors.FromPanic("Process", r))
		}
	}()

	p := &processor{
		spec:    spec,
		cfg:     cfg,
		log:     log,
		mem:     memory.NewGoAllocator(),
		metrics: monitoring.NewMetricsCollector(cfg.CollectMetrics),
	}
	result, err := p.run(ctx)
	if err != nil {
		return failed(log, err)
	}
	return result
}

func failed(log *slog.Logger, err error) Result {
	f := errors.FailureOf(err)
	if f.Internal {
		log.Error("plot processing failed", "error", err)
	}
	return Result{Failure: &f}
}

type processor struct {
	spec Spec
	cfg  config.Config
	log  *slog.Logger
	mem  memory.Allocator

	scales    scale.Map
	statCtx   stat.Context
	tiles     []facet.Tile
	facetVars []string
	pool      *parallel.WorkerPool
	metrics   *monitoring.MetricsCollector
}

// layerOutput is a layer's stat output with tiles merged back together.
type layerOutput struct {
	data       *dataframe.Table
	groupSizes []int
	messages   []string
	sampled    bool
}

func (p *processor) run(ctx context.Context) (Result, error) {
	shared := p.spec.Data
	if shared == nil {
		shared = dataframe.Empty()
	}
	layers := p.spec.Layers

	combined := make([]*dataframe.Table, len(layers))
	for i, layer := range layers {
		data, err := combinedData(shared, layer.Data)
		if err != nil {
			return Result{}, err
		}
		combined[i] = data
	}

	var err error
	p.scales, err = buildScales(p.spec.Scales, layers, combined)
	if err != nil {
		return Result{}, err
	}

	transformed := make([]*dataframe.Table, len(layers))
	contexts := make(stat.CombinedContext, len(layers))
	for i, layer := range layers {
		err = p.metrics.Record("transform", i, combined[i].RowCount(), func() (int, error) {
			var err error
			transformed[i], err = processing.TransformOriginals(combined[i], layer.Bindings, p.scales)
			if err != nil {
				return 0, err
			}
			return transformed[i].RowCount(), nil
		})
		if err != nil {
			return Result{}, err
		}
		contexts[i] = stat.NewSimpleContext(transformed[i])
	}
	p.statCtx = contexts

	p.tiles, err = p.spec.Facets.Tiles(transformed)
	if err != nil {
		return Result{}, err
	}
	p.facetVars = p.spec.Facets.Variables()

	p.pool = parallel.NewWorkerPoolWithContext(ctx, p.cfg.Workers())
	defer p.pool.Close()

	outputs, err := p.processLayers(ctx, transformed)
	if err != nil {
		return Result{}, err
	}

	result := Result{Layers: make([]LayerResult, len(layers))}
	own := make([]*dataframe.Table, len(layers))
	keep := make([]map[string]bool, len(layers))
	seen := map[string]bool{}
	for i, layer := range layers {
		out := outputs[i]
		own[i] = layer.Data
		// Identity layers that were not sampled still match their input.
		if !stat.IsIdentity(layer.stat()) || out.sampled {
			own[i] = out.data
		}
		keep[i] = variablesToKeep(layer, p.facetVars)
		for _, msg := range out.messages {
			if !seen[msg] {
				seen[msg] = true
				result.Messages = append(result.Messages, msg)
			}
		}
		result.Layers[i] = LayerResult{
			Geom:       layer.Geom,
			Stat:       layer.stat().Name(),
			GroupSizes: out.groupSizes,
		}
	}

	err = p.metrics.Record("prune", monitoring.PlotWide, shared.RowCount(), func() (int, error) {
		result.SharedData, own = prune(shared, own, keep)
		return result.SharedData.RowCount(), nil
	})
	if err != nil {
		return Result{}, err
	}
	for i := range own {
		result.Layers[i].Data = own[i]
	}
	result.Metrics = p.metrics.Metrics()
	return result, nil
}

// processLayers runs the layers concurrently, at most MaxParallelism at a
// time. On failure the error of the lowest failing layer is returned.
func (p *processor) processLayers(ctx context.Context, data []*dataframe.Table) ([]layerOutput, error) {
	outputs := make([]layerOutput, len(data))
	errs := make([]error, len(data))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxParallelism)
	for i := range data {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					if p.cfg.FailOnInternalPanic {
						panic(r)
					}
					err = errors.FromPanic("ProcessLayer", r)
				}
				errs[i] = err
			}()
			return p.metrics.Record("stat", i, data[i].RowCount(), func() (int, error) {
				out, err := p.processLayer(gctx, i, data[i])
				if err != nil {
					return 0, err
				}
				outputs[i] = out
				if out.data == nil {
					return 0, nil
				}
				return out.data.RowCount(), nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for _, layerErr := range errs {
			if layerErr != nil && !errors.Is(layerErr, context.Canceled) {
				return nil, layerErr
			}
		}
		return nil, err
	}
	return outputs, nil
}

func (p *processor) processLayer(ctx context.Context, index int, data *dataframe.Table) (layerOutput, error) {
	layer := p.spec.Layers[index]
	s := layer.stat()
	tag := layer.tag()

	var out layerOutput
	statMessages := func(msg string) {
		out.messages = append(out.messages, fmt.Sprintf("%s in [%s] layer", msg, tag))
	}
	samplingMessages := func(msg string) {
		out.sampled = true
		out.messages = append(out.messages, fmt.Sprintf("%s was applied to [%s] layer", msg, tag))
	}

	var facetVars []string
	for _, name := range p.facetVars {
		if data.HasName(name) {
			facetVars = append(facetVars, name)
		}
	}

	byTile, err := p.spec.Facets.DataByTile(data, p.tiles)
	if err != nil {
		return layerOutput{}, err
	}

	tables := make([]*dataframe.Table, 0, len(byTile))
	for t, tileData := range byTile {
		if err := ctx.Err(); err != nil {
			return layerOutput{}, err
		}

		groups, err := grouping.NewContext(tileData, layer.Bindings, grouping.ContextOptions{
			GroupingVarName: layer.GroupingVar,
			PathIDVarName:   layer.PathIDVar,
			ExpectMultiple:  true,
		})
		if err != nil {
			return layerOutput{}, err
		}

		statData, err := processing.BuildStatData(processing.Request{
			Data:               tileData,
			Stat:               s,
			Bindings:           layer.Bindings,
			Scales:             p.scales,
			Grouping:           groups,
			FacetVariables:     facetVars,
			StatContext:        p.statCtx,
			VarsWithoutBinding: layer.varsWithoutBinding(),
			OrderOptions:       layer.OrderOptions,
			Aggregate:          layer.Aggregate,
			Messages:           statMessages,
			Pool:               p.pool,
			ParallelThreshold:  p.cfg.ParallelGroupThreshold,
			Allocator:          p.mem,
		})
		if err != nil {
			return layerOutput{}, err
		}

		sampled, sampledGroups, err := sampling.Apply(statData.Data, statData.Grouping, layer.Samplings, samplingMessages)
		if err != nil {
			return layerOutput{}, err
		}
		tables = append(tables, sampled)
		out.groupSizes = append(out.groupSizes, sampledGroups.GroupSizes()...)

		if p.cfg.DebugLog {
			p.log.Debug("layer tile processed",
				"layer", index,
				"geom", layer.Geom,
				"stat", s.Name(),
				"tile", p.tiles[t].Label(),
				"rows_in", tileData.RowCount(),
				"rows_out", sampled.RowCount())
		}
	}

	out.data, err = mergeTiles(tables, p.mem)
	if err != nil {
		return layerOutput{}, err
	}
	return out, nil
}

// mergeTiles concatenates the tile tables of a layer in tile order. Tables
// without variables are skipped.
func mergeTiles(tables []*dataframe.Table, mem memory.Allocator) (*dataframe.Table, error) {
	parts := make([]*dataframe.Table, 0, len(tables))
	for _, t := range tables {
		if t.Width() > 0 {
			parts = append(parts, t)
		}
	}
	switch len(parts) {
	case 0:
		return dataframe.Empty(), nil
	case 1:
		return parts[0], nil
	}
	merged, err := dataframe.Concat(mem, parts...)
	if err != nil {
		return nil, err
	}
	return merged.Builder().AddOrderSpecs(parts[0].OrderSpecs()...).Build()
}
