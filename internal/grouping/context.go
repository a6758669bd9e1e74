package grouping

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
)

// Context carries the grouping inputs of one layer tile and the mapper they produce.
type Context struct {
	groupingVar *dataframe.Variable
	pathIDVar   *dataframe.Variable
	mapper      Mapper
	groupSizes  []int
	rows        int
}

// ContextOptions names the optional grouping inputs of a layer.
type ContextOptions struct {
	GroupingVarName string
	PathIDVarName   string
	ExpectMultiple  bool
}

// NewContext computes the grouping of data. Named variables must exist in data.
// When ExpectMultiple is false the single-group sentinel is used.
func NewContext(data *dataframe.Table, bindings []aes.Binding, opts ContextOptions) (*Context, error) {
	groupingVar, err := findOptionalVariable(data, opts.GroupingVarName)
	if err != nil {
		return nil, err
	}
	pathIDVar, err := findOptionalVariable(data, opts.PathIDVarName)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		groupingVar: groupingVar,
		pathIDVar:   pathIDVar,
		mapper:      SingleGroup,
		rows:        data.RowCount(),
	}
	if opts.ExpectMultiple {
		ctx.mapper, err = ComputeGroups(data, bindings, groupingVar, pathIDVar)
		if err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// WithOrderedGroups rebuilds a context from consecutive group sizes: the
// first sizes[0] rows are group 0, the next sizes[1] rows group 1, and so on.
func WithOrderedGroups(sizes []int) *Context {
	ctx := &Context{
		mapper:     SingleGroup,
		groupSizes: append([]int(nil), sizes...),
	}
	for _, size := range sizes {
		ctx.rows += size
	}
	if len(sizes) <= 1 {
		return ctx
	}
	var ids []int
	for g, size := range sizes {
		for i := 0; i < size; i++ {
			ids = append(ids, g)
		}
	}
	ctx.mapper = Mapper{ids: ids}
	return ctx
}

func findOptionalVariable(data *dataframe.Table, name string) (*dataframe.Variable, error) {
	if name == "" {
		return nil, nil
	}
	v, err := data.FindOrFail(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Mapper returns the row to group mapping.
func (c *Context) Mapper() Mapper {
	return c.mapper
}

// GroupingVar returns the explicit grouping variable, if any.
func (c *Context) GroupingVar() (dataframe.Variable, bool) {
	if c.groupingVar == nil {
		return dataframe.Variable{}, false
	}
	return *c.groupingVar, true
}

// PathIDVar returns the path-id variable, if any.
func (c *Context) PathIDVar() (dataframe.Variable, bool) {
	if c.pathIDVar == nil {
		return dataframe.Variable{}, false
	}
	return *c.pathIDVar, true
}

// GroupSizes returns the per-group row counts in group-id order.
func (c *Context) GroupSizes() []int {
	if c.groupSizes != nil {
		return append([]int(nil), c.groupSizes...)
	}
	if c.mapper.IsSingle() {
		if c.rows == 0 {
			return nil
		}
		return []int{c.rows}
	}
	var sizes []int
	for row := 0; row < c.rows; row++ {
		g := c.mapper.GroupOf(row)
		for len(sizes) <= g {
			sizes = append(sizes, 0)
		}
		sizes[g]++
	}
	return sizes
}

// RowCount returns the number of rows the context describes.
func (c *Context) RowCount() int {
	return c.rows
}

// Select returns the context of the rows at indices, which must be ascending.
// Group ids are renumbered in order of first appearance and groups left
// without rows disappear.
func (c *Context) Select(indices []int) *Context {
	result := &Context{
		groupingVar: c.groupingVar,
		pathIDVar:   c.pathIDVar,
		mapper:      SingleGroup,
		rows:        len(indices),
	}
	if c.mapper.IsSingle() {
		return result
	}
	ids := make([]int, len(indices))
	for i, row := range indices {
		ids[i] = c.mapper.GroupOf(row)
	}
	result.mapper = Mapper{ids: renumber(ids)}
	return result
}
