package processing

import (
	"fmt"
	"strings"

	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
)

// OrderOption asks for the values of one variable to be ordered, either by
// themselves or by another variable.
type OrderOption struct {
	VariableName string `json:"name" yaml:"name"`
	ByVariable   string `json:"by,omitempty" yaml:"by,omitempty"`
	// Order is 1 for ascending and -1 for descending; zero means ascending.
	Order int `json:"order,omitempty" yaml:"order,omitempty"`
}

// Direction returns the normalized sort direction.
func (o OrderOption) Direction() int {
	if o.Order < 0 {
		return -1
	}
	return 1
}

// CreateOrderSpec resolves o against the variables of a stat result. Names
// missing from the result are looked up among the bindings.
func CreateOrderSpec(
	variables []dataframe.Variable,
	bindings []aes.Binding,
	o OrderOption,
	aggregate dataframe.AggregateFunc,
) (dataframe.OrderSpec, error) {
	lookup := func(name string) (dataframe.Variable, error) {
		for _, v := range variables {
			if v.Name == name {
				return v, nil
			}
		}
		for _, b := range bindings {
			if b.Variable.Name == name {
				return b.Variable, nil
			}
		}
		names := make([]string, len(variables))
		for i, v := range variables {
			names[i] = fmt.Sprintf("'%s'", v.Name)
		}
		return dataframe.Variable{}, &errors.PlotError{
			Op:       "CreateOrderSpec",
			Variable: name,
			Kind:     errors.KindUndefinedVariable,
			Message:  fmt.Sprintf("undefined variable in order options, variables: [%s]", strings.Join(names, ", ")),
		}
	}

	v, err := lookup(o.VariableName)
	if err != nil {
		return dataframe.OrderSpec{}, err
	}
	by := v
	if o.ByVariable != "" {
		if by, err = lookup(o.ByVariable); err != nil {
			return dataframe.OrderSpec{}, err
		}
	}
	return dataframe.OrderSpec{Variable: v, OrderBy: by, Direction: o.Direction(), Aggregate: aggregate}, nil
}

func createOrderSpecs(
	variables []dataframe.Variable,
	bindings []aes.Binding,
	options []OrderOption,
	aggregate dataframe.AggregateFunc,
) ([]dataframe.OrderSpec, error) {
	specs := make([]dataframe.OrderSpec, 0, len(options))
	for _, o := range options {
		spec, err := CreateOrderSpec(variables, bindings, o, aggregate)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
