package io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/series"
)

// Read reads Parquet data and returns a Table. Integer and floating point
// columns become numeric variables, everything else discrete.
func (r *ParquetReader) Read() (*dataframe.Table, error) {
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}
	defer pqReader.Close()

	mem := r.mem
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer table.Release()

	b := dataframe.NewBuilderWithAllocator(mem)
	schema := table.Schema()
	for i := range int(table.NumCols()) {
		field := schema.Field(i)
		cells, numeric, err := chunkedCells(table.Column(i).Data())
		if err != nil {
			return nil, fmt.Errorf("converting column %s: %w", field.Name, err)
		}
		v := dataframe.NewOrigin(field.Name)
		if numeric {
			b.PutNumeric(v, cells)
		} else {
			b.PutDiscrete(v, cells)
		}
	}
	return b.Build()
}

// chunkedCells flattens every chunk of a column into cells.
func chunkedCells(chunked *arrow.Chunked) ([]series.Cell, bool, error) {
	numeric := isNumericType(chunked.DataType())
	cells := make([]series.Cell, 0, chunked.Len())
	for _, chunk := range chunked.Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				cells = append(cells, series.Null())
				continue
			}
			c, err := arrowCell(chunk, i)
			if err != nil {
				return nil, false, err
			}
			cells = append(cells, c)
		}
	}
	return cells, numeric, nil
}

func isNumericType(dt arrow.DataType) bool {
	//nolint:exhaustive // Only handling supported types for now
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64:
		return true
	default:
		return false
	}
}

func arrowCell(arr arrow.Array, i int) (series.Cell, error) {
	switch a := arr.(type) {
	case *array.Float64:
		return series.Num(a.Value(i)), nil
	case *array.Float32:
		return series.Num(float64(a.Value(i))), nil
	case *array.Int64:
		return series.Num(float64(a.Value(i))), nil
	case *array.Int32:
		return series.Num(float64(a.Value(i))), nil
	case *array.Int16:
		return series.Num(float64(a.Value(i))), nil
	case *array.Int8:
		return series.Num(float64(a.Value(i))), nil
	case *array.Uint64:
		return series.Num(float64(a.Value(i))), nil
	case *array.Uint32:
		return series.Num(float64(a.Value(i))), nil
	case *array.Uint16:
		return series.Num(float64(a.Value(i))), nil
	case *array.Uint8:
		return series.Num(float64(a.Value(i))), nil
	case *array.String:
		return series.Text(a.Value(i)), nil
	case *array.LargeString:
		return series.Text(a.Value(i)), nil
	case *array.Boolean:
		return series.Bool(a.Value(i)), nil
	default:
		return series.Null(), fmt.Errorf("unsupported Arrow type: %s", arr.DataType())
	}
}

// Write writes the Table in Parquet format.
func (w *ParquetWriter) Write(data *dataframe.Table) error {
	table, err := tableToArrow(data)
	if err != nil {
		return fmt.Errorf("converting Table to Arrow table: %w", err)
	}
	defer table.Release()

	var compression compress.Compression
	switch w.options.Compression {
	case "gzip":
		compression = compress.Codecs.Gzip
	case "lz4":
		compression = compress.Codecs.Lz4Raw
	case "zstd":
		compression = compress.Codecs.Zstd
	case "uncompressed":
		compression = compress.Codecs.Uncompressed
	default:
		compression = compress.Codecs.Snappy
	}

	batchSize := w.options.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	props := parquet.NewWriterProperties(
		parquet.WithCompression(compression),
		parquet.WithBatchSize(int64(batchSize)),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(memory.NewGoAllocator()))

	writer, err := pqarrow.NewFileWriter(table.Schema(), w.writer, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}
	if err := writer.WriteTable(table, int64(batchSize)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing table: %w", err)
	}
	return writer.Close()
}

// tableToArrow assembles an Arrow table from the columns' backing arrays.
func tableToArrow(data *dataframe.Table) (arrow.Table, error) {
	fields := make([]arrow.Field, 0, data.Width())
	columns := make([]arrow.Column, 0, data.Width())
	for _, v := range data.Variables() {
		col, err := data.Column(v)
		if err != nil {
			return nil, err
		}
		arr := col.Array()
		field := arrow.Field{Name: v.Name, Type: arr.DataType(), Nullable: true}
		chunked := arrow.NewChunked(arr.DataType(), []arrow.Array{arr})
		arr.Release()
		column := arrow.NewColumn(field, chunked)
		chunked.Release()
		fields = append(fields, field)
		columns = append(columns, *column)
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewTable(schema, columns, int64(data.RowCount())), nil
}
