package stat

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

const (
	// DefaultSmoothPoints is the number of points the fit is evaluated at.
	DefaultSmoothPoints = 80
	// DefaultConfidenceLevel is the level of the confidence band.
	DefaultConfidenceLevel = 0.95
)

// SmoothMethod selects the fitting procedure.
type SmoothMethod string

const (
	// SmoothLinear is an ordinary least-squares line with a confidence band.
	SmoothLinear SmoothMethod = "lm"
	// SmoothLOESS is a local polynomial regression without a band.
	SmoothLOESS SmoothMethod = "loess"
)

// Smooth fits a curve through (X, Y).
type Smooth struct {
	mappings
	Method SmoothMethod
	N      int
	Level  float64
	// Span is the LOESS neighbourhood size in (0, 1].
	Span float64
}

// NewSmooth creates a smoothing stat using method.
func NewSmooth(method SmoothMethod) *Smooth {
	if method == "" {
		method = SmoothLinear
	}
	return &Smooth{
		mappings: mappings{aes.X: VarX, aes.Y: VarY, aes.YMin: VarYMin, aes.YMax: VarYMax},
		Method:   method,
		N:        DefaultSmoothPoints,
		Level:    DefaultConfidenceLevel,
		Span:     0.5,
	}
}

// Name returns "smooth".
func (*Smooth) Name() string { return "smooth" }

// Apply evaluates the fit over the X range of data.
func (s *Smooth) Apply(data *dataframe.Table, _ Context, _ MessageSink) (*dataframe.Table, error) {
	outputVars := []dataframe.Variable{VarX, VarY, VarYMin, VarYMax, VarSE}
	if !hasInput(data, aes.X, aes.Y) {
		return empty(outputVars...)
	}
	obs, err := read(data, true, true)
	if err != nil {
		return nil, err
	}
	n := len(obs.xs)
	if n < 2 {
		return empty(outputVars...)
	}

	points := s.N
	if points <= 0 {
		points = DefaultSmoothPoints
	}
	lo, hi := stats.Bounds(obs.xs)
	xs := vec.Linspace(lo, hi, points)

	if s.Method == SmoothLOESS {
		span := s.Span
		if span <= 0 || span > 1 {
			span = 0.5
		}
		ys := vec.Map(fit.LOESS(obs.xs, obs.ys, 2, span), xs)
		return output(col(VarX, xs), col(VarY, ys), col(VarYMin, ys), col(VarYMax, ys), col(VarSE, make([]float64, points)))
	}

	mx := stats.Mean(obs.xs)
	var sxx float64
	for _, x := range obs.xs {
		sxx += (x - mx) * (x - mx)
	}
	if sxx == 0 {
		return empty(outputVars...)
	}
	line := fit.PolynomialRegression(obs.xs, obs.ys, nil, 1)

	var residualVar float64
	if n > 2 {
		var sse float64
		for i, x := range obs.xs {
			r := obs.ys[i] - line.F(x)
			sse += r * r
		}
		residualVar = sse / float64(n-2)
	}

	level := s.Level
	if level <= 0 || level >= 1 {
		level = DefaultConfidenceLevel
	}
	z := stats.StdNormal.InvCDF((1 + level) / 2)

	ys := vec.Map(line.F, xs)
	ymin := make([]float64, points)
	ymax := make([]float64, points)
	se := make([]float64, points)
	for i, x := range xs {
		dx := x - mx
		se[i] = math.Sqrt(residualVar * (1/float64(n) + dx*dx/sxx))
		ymin[i] = ys[i] - z*se[i]
		ymax[i] = ys[i] + z*se[i]
	}
	return output(col(VarX, xs), col(VarY, ys), col(VarYMin, ymin), col(VarYMax, ymax), col(VarSE, se))
}
