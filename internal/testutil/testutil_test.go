package testutil_test

import (
	"testing"

	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/series"
	"github.com/paveg/plotframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMemoryTest(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	require.NotNil(t, mem.Allocator)

	b := dataframe.NewBuilderWithAllocator(mem.Allocator)
	data, err := b.PutFloats(dataframe.NewOrigin("x"), []float64{1, 2}).Build()
	require.NoError(t, err)
	assert.Equal(t, 2, data.RowCount())
}

func TestCreateTestTable(t *testing.T) {
	t.Run("default configuration", func(t *testing.T) {
		data := testutil.CreateTestTable(t)

		assert.Equal(t, 4, data.RowCount())
		testutil.AssertTableHasVariables(t, data, []string{"fruit", "region", "price", "qty"})
		assert.Equal(t, []string{"apple", "pear", "apple", "plum"}, testutil.StringsOf(t, data, "fruit"))
		assert.True(t, data.IsNumeric(dataframe.NewOrigin("price")))
		assert.False(t, data.IsNumeric(dataframe.NewOrigin("region")))
	})

	t.Run("with custom row count", func(t *testing.T) {
		data := testutil.CreateTestTable(t, testutil.WithRowCount(10))
		assert.Equal(t, 10, data.RowCount())
	})

	t.Run("with nulls", func(t *testing.T) {
		data := testutil.CreateTestTable(t, testutil.WithNulls())
		assert.Equal(t, []string{"1.5", "2.5", "3.5", "<nil>"}, testutil.StringsOf(t, data, "price"))
	})
}

func TestAssertTableEqual(t *testing.T) {
	a := testutil.NewTable(t, testutil.Col("x", series.Nums(1, 2)...), testutil.Col("c", series.Texts("a", "b")...))
	b := testutil.NewTable(t, testutil.Col("x", series.Nums(1, 2)...), testutil.Col("c", series.Texts("a", "b")...))

	testutil.AssertTableEqual(t, a, b)
	testutil.AssertTableNotEmpty(t, a)
}
