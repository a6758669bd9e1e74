package io_test

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/io"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParquetRoundTrip(t *testing.T) {
	for _, compression := range []string{"snappy", "gzip", "zstd", "uncompressed"} {
		t.Run(compression, func(t *testing.T) {
			data := testutil.CreateTestTable(t, testutil.WithNulls())

			options := io.DefaultParquetOptions()
			options.Compression = compression

			var buf bytes.Buffer
			require.NoError(t, io.NewParquetWriter(&buf, options).Write(data))
			require.Positive(t, buf.Len())

			back, err := io.NewParquetReader(&buf, options, memory.NewGoAllocator()).Read()
			require.NoError(t, err)
			testutil.AssertTableEqual(t, data, back)

			price, _ := back.FindOrFail("price")
			fruit, _ := back.FindOrFail("fruit")
			assert.True(t, back.IsNumeric(price))
			assert.False(t, back.IsNumeric(fruit))
		})
	}
}

func TestParquetBooleans(t *testing.T) {
	data := testutil.NewTable(t, testutil.Col("flag", series.Bool(true), series.Null(), series.Bool(false)))

	var buf bytes.Buffer
	require.NoError(t, io.NewParquetWriter(&buf, io.DefaultParquetOptions()).Write(data))

	back, err := io.NewParquetReader(&buf, io.DefaultParquetOptions(), nil).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "<nil>", "false"}, testutil.StringsOf(t, back, "flag"))
}

func TestParquetReaderRejectsGarbage(t *testing.T) {
	_, err := io.NewParquetReader(bytes.NewReader([]byte("not parquet")), io.DefaultParquetOptions(), nil).Read()
	assert.Error(t, err)
}
