package processing

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/scale"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/stat"
)

// inverseTransformContinuousStatData maps the stat variables that are
// default-mapped (or explicitly bound) to an aesthetic with a continuous
// scale back into data space. The result is keyed by variable name.
func inverseTransformContinuousStatData(
	statData *dataframe.Table,
	st stat.Stat,
	bindings []aes.Binding,
	scales scale.Map,
) (map[string][]series.Cell, error) {
	continuousByAes := make(map[aes.Aes]scale.Scale)
	aesByStatVar := make(map[string]aes.Aes)
	for _, a := range aes.Values() {
		if v, ok := st.DefaultMapping(a); ok {
			aesByStatVar[v.Name] = a
		}
	}

	for _, b := range bindings {
		if b.Variable.IsStat() {
			// Bound stat variables are inverse-transformed with the scale of
			// their aesthetic but never provide a scale for the X/Y fallback.
			aesByStatVar[b.Variable.Name] = b.Aes
			continue
		}
		s := scales.Get(b.Aes)
		if !s.IsContinuousDomain() {
			continue
		}
		continuousByAes[b.Aes] = s
		if _, ok := continuousByAes[aes.X]; aes.IsPositionalX(b.Aes) && !ok {
			continuousByAes[aes.X] = s
		} else if _, ok := continuousByAes[aes.Y]; aes.IsPositionalY(b.Aes) && !ok {
			continuousByAes[aes.Y] = s
		}
	}

	result := make(map[string][]series.Cell)
	for _, v := range statData.Variables() {
		a, mapped := aesByStatVar[v.Name]
		if !mapped {
			continue
		}
		s, ok := continuousByAes[a]
		if !ok {
			switch {
			case aes.IsPositionalX(a):
				s, ok = continuousByAes[aes.X]
			case aes.IsPositionalY(a):
				s, ok = continuousByAes[aes.Y]
			}
		}
		if !ok {
			continue
		}
		cells, err := statData.Get(v)
		if err != nil {
			return nil, err
		}
		result[v.Name] = scale.InverseTransform(cells, s)
	}
	return result, nil
}
