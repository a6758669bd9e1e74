package monitoring

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector(t *testing.T) {
	t.Run("disabled collector runs stages without recording", func(t *testing.T) {
		collector := NewMetricsCollector(false)

		calls := 0
		err := collector.Record("stat", 0, 10, func() (int, error) {
			calls++
			return 3, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, collector.Metrics())
	})

	t.Run("nil collector", func(t *testing.T) {
		var collector *MetricsCollector
		assert.False(t, collector.IsEnabled())
		require.NoError(t, collector.Record("stat", 0, 0, func() (int, error) { return 0, nil }))
		assert.Nil(t, collector.Metrics())
	})

	t.Run("records rows and failures", func(t *testing.T) {
		collector := NewMetricsCollector(true)

		require.NoError(t, collector.Record("stat", 1, 10, func() (int, error) { return 3, nil }))
		err := collector.Record("transform", PlotWide, 10, func() (int, error) { return 0, errors.New("boom") })
		assert.EqualError(t, err, "boom")

		metrics := collector.Metrics()
		require.Len(t, metrics, 2)
		assert.Equal(t, "transform", metrics[0].Stage)
		assert.True(t, metrics[0].Failed)
		assert.Equal(t, StageMetrics{Stage: "stat", Layer: 1, Duration: metrics[1].Duration, RowsIn: 10, RowsOut: 3}, metrics[1])
	})

	t.Run("concurrent recording", func(t *testing.T) {
		collector := NewMetricsCollector(true)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(layer int) {
				defer wg.Done()
				_ = collector.Record("stat", layer, 1, func() (int, error) { return 1, nil })
			}(i)
		}
		wg.Wait()

		metrics := collector.Metrics()
		require.Len(t, metrics, 20)
		for i, m := range metrics {
			assert.Equal(t, i, m.Layer)
		}
	})
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]StageMetrics{
		{Stage: "stat", Layer: 0, Duration: 2 * time.Millisecond},
		{Stage: "stat", Layer: 1, Duration: 5 * time.Millisecond},
		{Stage: "prune", Layer: PlotWide, Duration: time.Millisecond},
	})

	assert.Equal(t, 3, summary.Stages)
	assert.Equal(t, 8*time.Millisecond, summary.TotalDuration)
	assert.Equal(t, 7*time.Millisecond, summary.ByStage["stat"])
	assert.Equal(t, 1, summary.Slowest.Layer)

	assert.Equal(t, 0, Summarize(nil).Stages)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []StageMetrics{
		{Stage: "transform", Layer: PlotWide, RowsIn: 4, RowsOut: 4},
		{Stage: "stat", Layer: 0, RowsIn: 4, RowsOut: 3, Failed: true},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "STAGE"))
	assert.Contains(t, lines[1], "transform")
	assert.Contains(t, lines[1], " - ")
	assert.Contains(t, lines[2], "stat (failed)")
}
