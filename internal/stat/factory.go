package stat

import (
	"github.com/paveg/plotframe/internal/errors"
)

// Options tunes the stats built by New. Zero fields select each stat's defaults.
type Options struct {
	Bins      int     `json:"bins,omitempty" yaml:"bins,omitempty"`
	BinWidth  float64 `json:"binwidth,omitempty" yaml:"binwidth,omitempty"`
	N         int     `json:"n,omitempty" yaml:"n,omitempty"`
	Bandwidth float64 `json:"bw,omitempty" yaml:"bw,omitempty"`
	Adjust    float64 `json:"adjust,omitempty" yaml:"adjust,omitempty"`
	Trim      bool    `json:"trim,omitempty" yaml:"trim,omitempty"`
	Coef      float64 `json:"coef,omitempty" yaml:"coef,omitempty"`
	Method    string  `json:"method,omitempty" yaml:"method,omitempty"`
	Level     float64 `json:"level,omitempty" yaml:"level,omitempty"`
	Span      float64 `json:"span,omitempty" yaml:"span,omitempty"`
}

// New builds the stat registered under name. The empty name is identity.
func New(name string, opts Options) (Stat, error) {
	switch name {
	case "", "identity":
		return Identity{}, nil
	case "count":
		return NewCount(), nil
	case "bin":
		return NewBin(opts.Bins, opts.BinWidth), nil
	case "density":
		s := NewDensity()
		if opts.N > 0 {
			s.N = opts.N
		}
		if opts.Adjust > 0 {
			s.Adjust = opts.Adjust
		}
		s.Bandwidth = opts.Bandwidth
		s.Trim = opts.Trim
		return s, nil
	case "boxplot":
		return NewBoxplot(opts.Coef), nil
	case "smooth":
		method := SmoothMethod(opts.Method)
		if method != "" && method != SmoothLinear && method != SmoothLOESS {
			return nil, errors.NewInvalidInputError("NewStat", "unknown smoothing method: "+opts.Method)
		}
		s := NewSmooth(method)
		if opts.N > 0 {
			s.N = opts.N
		}
		if opts.Level > 0 {
			s.Level = opts.Level
		}
		if opts.Span > 0 {
			s.Span = opts.Span
		}
		return s, nil
	default:
		return nil, errors.NewInvalidInputError("NewStat", "unknown stat: "+name)
	}
}
