package processing

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/errors"
	"github.com/paveg/plotframe/internal/scale"
)

// TransformOriginals adds, for every binding of an origin variable, the
// scale-space transform variable of the binding's aesthetic. The bound
// columns themselves are left untouched.
func TransformOriginals(data *dataframe.Table, bindings []aes.Binding, scales scale.Map) (*dataframe.Table, error) {
	b := data.Builder()
	for _, binding := range bindings {
		v := binding.Variable
		if !v.IsOrigin() {
			continue
		}
		if !data.Has(v) {
			return nil, errors.NewUndefinedVariableError("TransformOriginals", v.Name)
		}
		cells, err := data.Get(v)
		if err != nil {
			return nil, err
		}

		s := scales.Get(binding.Aes)
		if s.IsContinuousDomain() && !data.IsNumeric(v) {
			s = scale.DiscreteFromData(cells)
		}
		b.PutNumeric(aes.TransformVar(binding.Aes), scale.TransformSeries(cells, s))
	}
	return b.Build()
}
