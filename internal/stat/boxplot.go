package stat

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// DefaultWhiskerCoef is the whisker length as a multiple of the IQR.
const DefaultWhiskerCoef = 1.5

// Boxplot computes quartiles and whiskers of Y for each distinct X.
type Boxplot struct {
	mappings
	Coef float64
}

// NewBoxplot creates a boxplot stat with whiskers at coef times the IQR.
func NewBoxplot(coef float64) *Boxplot {
	if coef <= 0 {
		coef = DefaultWhiskerCoef
	}
	return &Boxplot{
		mappings: mappings{
			aes.X:      VarX,
			aes.YMin:   VarYMin,
			aes.Lower:  VarLower,
			aes.Middle: VarMiddle,
			aes.Upper:  VarUpper,
			aes.YMax:   VarYMax,
		},
		Coef: coef,
	}
}

// Name returns "boxplot".
func (*Boxplot) Name() string { return "boxplot" }

// Apply emits one row per distinct X. Without an X input all values share x=0.
func (s *Boxplot) Apply(data *dataframe.Table, _ Context, _ MessageSink) (*dataframe.Table, error) {
	outputVars := []dataframe.Variable{VarX, VarYMin, VarLower, VarMiddle, VarUpper, VarYMax, VarCount}
	if !hasInput(data, aes.Y) {
		return empty(outputVars...)
	}
	obs, err := read(data, hasInput(data, aes.X), true)
	if err != nil {
		return nil, err
	}

	byX := make(map[float64][]float64)
	for i, y := range obs.ys {
		x := 0.0
		if obs.xs != nil {
			x = obs.xs[i]
		}
		byX[x] = append(byX[x], y)
	}
	xs := make([]float64, 0, len(byX))
	for x := range byX {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	cols := make([][]float64, len(outputVars))
	for _, x := range xs {
		ys := byX[x]
		sort.Float64s(ys)
		sample := stats.Sample{Xs: ys, Sorted: true}
		q1, med, q3 := sample.Quantile(0.25), sample.Quantile(0.5), sample.Quantile(0.75)
		iqr := q3 - q1
		lowFence, highFence := q1-s.Coef*iqr, q3+s.Coef*iqr

		ymin, ymax := med, med
		for _, y := range ys {
			if y >= lowFence {
				ymin = y
				break
			}
		}
		for i := len(ys) - 1; i >= 0; i-- {
			if ys[i] <= highFence {
				ymax = ys[i]
				break
			}
		}
		row := []float64{x, ymin, q1, med, q3, ymax, float64(len(ys))}
		for i, v := range row {
			cols[i] = append(cols[i], v)
		}
	}

	columns := make([]column, len(outputVars))
	for i, v := range outputVars {
		columns[i] = col(v, cols[i])
	}
	return output(columns...)
}
