package processing

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/plotframe/internal/dataframe"
)

// GroupMerger concatenates per-group stat outputs in the order they are added
// and records each group's row count.
type GroupMerger struct {
	tables []*dataframe.Table
	sizes  []int
}

// AddGroup appends one group's output.
func (m *GroupMerger) AddGroup(data *dataframe.Table) {
	m.tables = append(m.tables, data)
	m.sizes = append(m.sizes, data.RowCount())
}

// GroupSizes returns the row counts of the added groups in order.
func (m *GroupMerger) GroupSizes() []int {
	return append([]int(nil), m.sizes...)
}

// Result concatenates the added groups column by column. A variable produced
// by only some of the groups yields a SchemaError.
func (m *GroupMerger) Result(mem memory.Allocator) (*dataframe.Table, error) {
	return dataframe.Concat(mem, m.tables...)
}
