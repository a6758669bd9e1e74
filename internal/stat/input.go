package stat

import (
	"math"

	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// observations holds the finite values read from transform variables.
type observations struct {
	xs      []float64
	ys      []float64
	weights []float64
}

// hasInput reports whether every aesthetic in required has a transform variable.
func hasInput(data *dataframe.Table, required ...aes.Aes) bool {
	for _, a := range required {
		if !data.Has(aes.TransformVar(a)) {
			return false
		}
	}
	return true
}

// read collects the rows where every requested aesthetic holds a finite
// number. Missing optional columns (Y for x-only stats, Weight) are treated as
// absent rather than null.
func read(data *dataframe.Table, withX, withY bool) (observations, error) {
	var obs observations
	var xs, ys, ws []float64
	var hasX, hasY, hasW bool
	var err error

	if withX {
		if xs, hasX, err = floats(data, aes.X); err != nil {
			return obs, err
		}
	}
	if withY {
		if ys, hasY, err = floats(data, aes.Y); err != nil {
			return obs, err
		}
	}
	if ws, hasW, err = floats(data, aes.Weight); err != nil {
		return obs, err
	}

	for i := 0; i < data.RowCount(); i++ {
		if (hasX && math.IsNaN(xs[i])) || (hasY && math.IsNaN(ys[i])) {
			continue
		}
		w := 1.0
		if hasW {
			if math.IsNaN(ws[i]) {
				continue
			}
			w = ws[i]
		}
		if hasX {
			obs.xs = append(obs.xs, xs[i])
		}
		if hasY {
			obs.ys = append(obs.ys, ys[i])
		}
		obs.weights = append(obs.weights, w)
	}
	if !hasW {
		obs.weights = nil
	}
	return obs, nil
}

// floats returns one value per row, NaN where the cell is null or not finite.
func floats(data *dataframe.Table, a aes.Aes) ([]float64, bool, error) {
	v := aes.TransformVar(a)
	if !data.Has(v) {
		return nil, false, nil
	}
	col, err := data.Column(v)
	if err != nil {
		return nil, false, err
	}
	result := make([]float64, col.Len())
	for i := range result {
		f, ok := col.Float(i)
		if !ok || math.IsInf(f, 0) {
			f = math.NaN()
		}
		result[i] = f
	}
	return result, true, nil
}

func (o observations) weight(i int) float64 {
	if o.weights == nil {
		return 1
	}
	return o.weights[i]
}

// output builds a stat table from float columns of equal length.
func output(columns ...column) (*dataframe.Table, error) {
	b := dataframe.NewBuilder()
	for _, c := range columns {
		b.PutFloats(c.v, c.values)
	}
	return b.Build()
}

// empty builds a zero-row table carrying the given stat variables.
func empty(vars ...dataframe.Variable) (*dataframe.Table, error) {
	columns := make([]column, len(vars))
	for i, v := range vars {
		columns[i] = column{v: v}
	}
	return output(columns...)
}

type column struct {
	v      dataframe.Variable
	values []float64
}

func col(v dataframe.Variable, values []float64) column {
	return column{v: v, values: values}
}
