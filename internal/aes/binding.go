package aes

import "github.com/paveg/plotframe/internal/dataframe"

// Binding maps an aesthetic of one layer to a data variable.
type Binding struct {
	Aes      Aes
	Variable dataframe.Variable
}

// Bind creates a binding.
func Bind(a Aes, v dataframe.Variable) Binding {
	return Binding{Aes: a, Variable: v}
}

// String returns "aes=variable".
func (b Binding) String() string {
	return b.Aes.String() + "=" + b.Variable.Name
}

// TransformVar returns the scale-space variable of a. Stats read their input
// from these variables rather than from the bound data columns.
func TransformVar(a Aes) dataframe.Variable {
	return dataframe.NewTransform("transform." + a.String())
}
