package stat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

const (
	// DefaultBinCount is used when neither a bin count nor a width is given.
	DefaultBinCount = 30
	// MaxBinCount bounds the number of bins an explicit width may produce.
	MaxBinCount = 500
)

// Bin divides the X range into equal-width bins and counts the values in each.
// All groups share the bin layout when the context knows the overall X range.
type Bin struct {
	mappings
	Bins     int
	BinWidth float64
}

// NewBin creates a histogram stat. A positive width takes precedence over bins.
func NewBin(bins int, binWidth float64) *Bin {
	return &Bin{
		mappings: mappings{aes.X: VarX, aes.Y: VarCount, aes.Width: VarBinWidth},
		Bins:     bins,
		BinWidth: binWidth,
	}
}

// Name returns "bin".
func (*Bin) Name() string { return "bin" }

// Apply emits one row per bin with its center, count and density.
func (s *Bin) Apply(data *dataframe.Table, ctx Context, messages MessageSink) (*dataframe.Table, error) {
	outputVars := []dataframe.Variable{VarX, VarCount, VarDensity, VarBinWidth}
	if !hasInput(data, aes.X) {
		return empty(outputVars...)
	}
	obs, err := read(data, true, false)
	if err != nil {
		return nil, err
	}
	if len(obs.xs) == 0 {
		return empty(outputVars...)
	}

	lo, hi, ok := ctx.OverallXRange()
	if !ok {
		lo, hi = stats.Bounds(obs.xs)
	}
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}

	n, width := s.layout(hi-lo, messages)
	centers := make([]float64, n)
	for i := range centers {
		centers[i] = lo + width*(float64(i)+0.5)
	}
	counts := make([]float64, n)
	for i, x := range obs.xs {
		idx := int(math.Floor((x - lo) / width))
		if idx < 0 || idx > n {
			continue
		}
		if idx == n {
			idx = n - 1
		}
		counts[idx] += obs.weight(i)
	}

	total := vec.Sum(counts)
	densities := make([]float64, n)
	widths := make([]float64, n)
	for i, c := range counts {
		if total > 0 {
			densities[i] = c / (total * width)
		}
		widths[i] = width
	}
	return output(col(VarX, centers), col(VarCount, counts), col(VarDensity, densities), col(VarBinWidth, widths))
}

func (s *Bin) layout(span float64, messages MessageSink) (int, float64) {
	if s.BinWidth > 0 {
		n := int(math.Ceil(span / s.BinWidth))
		if n < 1 {
			n = 1
		}
		if n <= MaxBinCount {
			return n, s.BinWidth
		}
		width := span / MaxBinCount
		if messages != nil {
			messages(fmt.Sprintf("bin width adjusted to %g", width))
		}
		return MaxBinCount, width
	}
	n := s.Bins
	if n <= 0 {
		n = DefaultBinCount
	}
	if n > MaxBinCount {
		n = MaxBinCount
	}
	return n, span / float64(n)
}
