package io_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/io"
	"github.com/paveg/plotframe/internal/plot"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResult(t *testing.T) {
	own := testutil.NewTable(t,
		testutil.Col("fruit", series.Texts("apple", "pear")...),
		testutil.Col("..count..", series.Nums(2, 1)...),
	)
	result := plot.Result{
		SharedData: testutil.NewTable(t, testutil.Col("price", series.Nums(1.5, 2.5)...)),
		Layers:     []plot.LayerResult{{Geom: "bar", Stat: "count", Data: own, GroupSizes: []int{2}}},
		Messages:   []string{"sampling_pick(n=2) was applied to [bar/count stat] layer"},
	}

	var buf bytes.Buffer
	require.NoError(t, io.WriteResult(&buf, result, true))

	var doc io.ResultDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Error)
	assert.Equal(t, []any{1.5, 2.5}, doc.Data["price"])
	require.Len(t, doc.Layers, 1)
	assert.Equal(t, "count", doc.Layers[0].Stat)
	assert.Equal(t, []any{"apple", "pear"}, doc.Layers[0].Data["fruit"])
	assert.Equal(t, []int{2}, doc.Layers[0].GroupSizes)
	assert.Equal(t, result.Messages, doc.ComputationMessages)
}

func TestWriteResultFailure(t *testing.T) {
	failure := errors.FailureOf(errors.NewInvalidInputError("Process", "bad layer"))
	result := plot.Result{Failure: &failure}

	var buf bytes.Buffer
	require.NoError(t, io.WriteResult(&buf, result, false))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, result.Failure.Message, doc["error"])
	assert.NotContains(t, doc, "layers")
}

func TestReadTableFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"csv", write("d.csv", "x,g\n1,a\n2,b\n")},
		{"tsv", write("d.tsv", "x\tg\n1\ta\n2\tb\n")},
		{"json", write("d.json", `[{"x":1,"g":"a"},{"x":2,"g":"b"}]`)},
		{"jsonl", write("d.jsonl", "{\"x\":1,\"g\":\"a\"}\n{\"x\":2,\"g\":\"b\"}\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := io.ReadTableFile(tt.path, nil)
			require.NoError(t, err)
			testutil.AssertTableHasVariables(t, data, []string{"x", "g"})
			assert.Equal(t, []string{"1", "2"}, testutil.StringsOf(t, data, "x"))
		})
	}

	t.Run("parquet", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, io.NewParquetWriter(&buf, io.DefaultParquetOptions()).Write(testutil.CreateTestTable(t)))
		path := filepath.Join(dir, "d.parquet")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		data, err := io.ReadTableFile(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, data.RowCount())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := io.ReadTableFile(write("d.xml", "<x/>"), nil)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := io.ReadTableFile(filepath.Join(dir, "nope.csv"), nil)
		assert.Error(t, err)
	})
}
