package scale

import (
	"math"
	"testing"

	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseTransformRoundTrip(t *testing.T) {
	domain := []float64{0.5, 1, 2, 10, 123.456, 1e6}

	for _, trans := range []Trans{Identity, Log10, Sqrt, Reverse} {
		t.Run(trans.name, func(t *testing.T) {
			s := NewContinuous(trans)
			forward := TransformSeries(series.Nums(domain...), s)
			back := InverseTransform(forward, s)
			require.Len(t, back, len(domain))
			for i, x := range domain {
				got, ok := back[i].Float()
				require.True(t, ok)
				assert.InDelta(t, x, got, 1e-9*math.Max(1, x))
			}
		})
	}
}

func TestInverseTransformPassesThroughNulls(t *testing.T) {
	cells := []series.Cell{series.Num(2), series.Null(), series.Text("a")}
	got := InverseTransform(cells, NewContinuous(Log10))

	v, _ := got[0].Float()
	assert.InDelta(t, 100.0, v, 1e-9)
	assert.True(t, got[1].IsNull())
	assert.Equal(t, series.Text("a"), got[2])
}

func TestDiscreteInverseIsIdentity(t *testing.T) {
	cells := series.Nums(1, 2)
	assert.Equal(t, cells, InverseTransform(cells, Discrete{}))
	assert.False(t, Discrete{}.IsContinuousDomain())
}

func TestMapDefaults(t *testing.T) {
	m := NewMap(map[aes.Aes]Scale{aes.Y: NewContinuous(Log10)})

	assert.True(t, m.Has(aes.Y))
	assert.False(t, m.Has(aes.X))
	assert.Equal(t, "continuous/identity", m.Get(aes.X).Name())
	assert.Equal(t, "continuous/log10", m.Get(aes.Y).Name())

	m2 := m.With(aes.Color, Discrete{})
	assert.False(t, m.Has(aes.Color))
	assert.True(t, m2.Has(aes.Color))
}

func TestParseTrans(t *testing.T) {
	tr, err := ParseTrans("")
	require.NoError(t, err)
	assert.Equal(t, "identity", tr.name)

	_, err = ParseTrans("cube")
	assert.Error(t, err)
}

func TestDiscreteRoundTrip(t *testing.T) {
	cells := series.Texts("b", "a", "b", "c")
	d := DiscreteFromData(cells)
	require.Len(t, d.Levels, 3)

	indices := TransformSeries(cells, d)
	assert.Equal(t, series.Nums(0, 1, 0, 2), indices)
	assert.Equal(t, cells, InverseTransform(indices, d))

	// unknown levels become null; out-of-range indices pass through
	assert.True(t, TransformSeries(series.Texts("z"), d)[0].IsNull())
	assert.Equal(t, series.Nums(7), InverseTransform(series.Nums(7), d))
}
