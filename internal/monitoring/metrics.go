// Package monitoring records timings of plot processing stages.
package monitoring

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"
)

// PlotWide is the Layer of stages that are not tied to one layer.
const PlotWide = -1

// StageMetrics represents the cost of one processing stage.
type StageMetrics struct {
	Stage    string        `json:"stage"`
	Layer    int           `json:"layer"`
	Duration time.Duration `json:"duration"`
	RowsIn   int           `json:"rows_in"`
	RowsOut  int           `json:"rows_out"`
	Failed   bool          `json:"failed,omitempty"`
}

// MetricsCollector collects stage metrics. It is safe for concurrent use.
// A nil or disabled collector runs stages without recording them.
type MetricsCollector struct {
	mu      sync.Mutex
	metrics []StageMetrics
	enabled bool
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector(enabled bool) *MetricsCollector {
	return &MetricsCollector{enabled: enabled}
}

// IsEnabled returns whether metrics collection is enabled.
func (mc *MetricsCollector) IsEnabled() bool {
	return mc != nil && mc.enabled
}

// Record runs fn and stores its duration under stage. fn returns the number
// of rows it produced.
func (mc *MetricsCollector) Record(stage string, layer, rowsIn int, fn func() (int, error)) error {
	if !mc.IsEnabled() {
		_, err := fn()
		return err
	}

	start := time.Now()
	rowsOut, err := fn()
	m := StageMetrics{
		Stage:    stage,
		Layer:    layer,
		Duration: time.Since(start),
		RowsIn:   rowsIn,
		RowsOut:  rowsOut,
		Failed:   err != nil,
	}

	mc.mu.Lock()
	mc.metrics = append(mc.metrics, m)
	mc.mu.Unlock()
	return err
}

// Metrics returns the collected metrics ordered by layer, plot-wide stages
// first, then by recording order.
func (mc *MetricsCollector) Metrics() []StageMetrics {
	if mc == nil {
		return nil
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()

	result := make([]StageMetrics, len(mc.metrics))
	copy(result, mc.metrics)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Layer < result[j].Layer })
	return result
}

// Summary aggregates stage metrics.
type Summary struct {
	Stages        int                      `json:"stages"`
	TotalDuration time.Duration            `json:"total_duration"`
	ByStage       map[string]time.Duration `json:"by_stage"`
	Slowest       StageMetrics             `json:"slowest"`
}

// Summarize aggregates metrics by stage name.
func Summarize(metrics []StageMetrics) Summary {
	s := Summary{Stages: len(metrics), ByStage: map[string]time.Duration{}}
	for _, m := range metrics {
		s.TotalDuration += m.Duration
		s.ByStage[m.Stage] += m.Duration
		if m.Duration > s.Slowest.Duration {
			s.Slowest = m
		}
	}
	return s
}

// WriteTable prints metrics as an aligned table.
func WriteTable(w io.Writer, metrics []StageMetrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tLAYER\tROWS IN\tROWS OUT\tDURATION")
	for _, m := range metrics {
		layer := "-"
		if m.Layer != PlotWide {
			layer = fmt.Sprint(m.Layer)
		}
		stage := m.Stage
		if m.Failed {
			stage += " (failed)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", stage, layer, m.RowsIn, m.RowsOut, m.Duration)
	}
	return tw.Flush()
}
