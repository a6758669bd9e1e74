package dataframe

import "github.com/paveg/plotframe/internal/series"

// AggregateFunc reduces the order-by values sharing one key to a single value.
type AggregateFunc func(values []series.Cell) series.Cell

// OrderSpec declares that values of Variable are to be ordered by OrderBy.
// It is metadata only; tables are never sorted by it here.
type OrderSpec struct {
	Variable  Variable
	OrderBy   Variable
	Direction int // 1 ascending, -1 descending
	Aggregate AggregateFunc
}
