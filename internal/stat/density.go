package stat

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// DefaultDensityPoints is the number of points the density is evaluated at.
const DefaultDensityPoints = 512

// Density estimates the X distribution with a Gaussian kernel.
type Density struct {
	mappings
	// N is the number of evaluation points.
	N int
	// Bandwidth is the kernel bandwidth; zero selects Scott's rule.
	Bandwidth float64
	// Adjust multiplies the bandwidth.
	Adjust float64
	// Trim evaluates over the group's own range instead of the overall range.
	Trim bool
}

// NewDensity creates a density stat with default settings.
func NewDensity() *Density {
	return &Density{
		mappings: mappings{aes.X: VarX, aes.Y: VarDensity},
		N:        DefaultDensityPoints,
		Adjust:   1,
	}
}

// Name returns "density".
func (*Density) Name() string { return "density" }

// Apply evaluates the kernel density estimate on an evenly spaced grid.
func (s *Density) Apply(data *dataframe.Table, ctx Context, _ MessageSink) (*dataframe.Table, error) {
	outputVars := []dataframe.Variable{VarX, VarDensity, VarCount, VarScaled}
	if !hasInput(data, aes.X) {
		return empty(outputVars...)
	}
	obs, err := read(data, true, false)
	if err != nil {
		return nil, err
	}
	if len(obs.xs) < 2 {
		return empty(outputVars...)
	}

	sample := stats.Sample{Xs: obs.xs, Weights: obs.weights}
	bandwidth := s.Bandwidth
	if bandwidth <= 0 {
		bandwidth = stats.BandwidthScott(sample)
	}
	if s.Adjust > 0 {
		bandwidth *= s.Adjust
	}
	if bandwidth <= 0 {
		return empty(outputVars...)
	}

	lo, hi, ok := ctx.OverallXRange()
	if s.Trim || !ok {
		lo, hi = stats.Bounds(obs.xs)
	}
	n := s.N
	if n <= 0 {
		n = DefaultDensityPoints
	}

	kde := stats.KDE{Sample: sample, Kernel: stats.GaussianKernel, Bandwidth: bandwidth}
	xs := vec.Linspace(lo, hi, n)
	densities := vec.Map(kde.PDF, xs)

	total := sample.Weight()
	_, peak := stats.Bounds(densities)
	counts := make([]float64, n)
	scaled := make([]float64, n)
	for i, d := range densities {
		counts[i] = d * total
		if peak > 0 {
			scaled[i] = d / peak
		}
	}
	return output(col(VarX, xs), col(VarDensity, densities), col(VarCount, counts), col(VarScaled, scaled))
}
