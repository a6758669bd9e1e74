package dataframe

import "fmt"

// Source records where a variable comes from.
type Source int

const (
	// Origin variables are present in the raw input.
	Origin Source = iota
	// Stat variables are produced by a statistical transform.
	Stat
	// Carrier variables are propagated through a transform unchanged
	// (facet, grouping and path-id columns).
	Carrier
	// Transform variables hold a bound variable's values in scale space,
	// keyed by aesthetic. Stats read their input from them.
	Transform
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case Origin:
		return "origin"
	case Stat:
		return "stat"
	case Carrier:
		return "carrier"
	case Transform:
		return "transform"
	default:
		return fmt.Sprintf("unknown_source(%d)", int(s))
	}
}

// Variable identifies a table column. Identity is by name.
type Variable struct {
	Name   string
	Source Source
	Label  string
}

// NewOrigin creates a variable for a column of the raw input.
func NewOrigin(name string) Variable {
	return Variable{Name: name, Source: Origin, Label: name}
}

// NewStat creates a variable produced by a statistical transform.
func NewStat(name, label string) Variable {
	return Variable{Name: name, Source: Stat, Label: label}
}

// NewCarrier creates a variable that is propagated through a transform.
func NewCarrier(name string) Variable {
	return Variable{Name: name, Source: Carrier, Label: name}
}

// NewTransform creates a scale-space variable.
func NewTransform(name string) Variable {
	return Variable{Name: name, Source: Transform, Label: name}
}

// IsOrigin reports whether the variable comes from the raw input.
func (v Variable) IsOrigin() bool { return v.Source == Origin }

// IsStat reports whether the variable was produced by a stat.
func (v Variable) IsStat() bool { return v.Source == Stat }

// IsCarrier reports whether the variable is a propagated carrier column.
func (v Variable) IsCarrier() bool { return v.Source == Carrier }

// IsTransform reports whether the variable holds scale-space values.
func (v Variable) IsTransform() bool { return v.Source == Transform }

// String returns the variable name
func (v Variable) String() string {
	return v.Name
}
