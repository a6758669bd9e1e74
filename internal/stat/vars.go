package stat

import "github.com/paveg/plotframe/internal/dataframe"

// Reserved stat variables.
var (
	VarX        = dataframe.NewStat("..x..", "x")
	VarY        = dataframe.NewStat("..y..", "y")
	VarCount    = dataframe.NewStat("..count..", "count")
	VarProp     = dataframe.NewStat("..prop..", "prop")
	VarDensity  = dataframe.NewStat("..density..", "density")
	VarScaled   = dataframe.NewStat("..scaled..", "scaled")
	VarYMin     = dataframe.NewStat("..ymin..", "y min")
	VarYMax     = dataframe.NewStat("..ymax..", "y max")
	VarLower    = dataframe.NewStat("..lower..", "lower")
	VarMiddle   = dataframe.NewStat("..middle..", "middle")
	VarUpper    = dataframe.NewStat("..upper..", "upper")
	VarSE       = dataframe.NewStat("..se..", "standard error")
	VarBinWidth = dataframe.NewStat("..binwidth..", "bin width")

	// VarGroup is emitted by stats that subdivide their input. The
	// orchestrator renumbers it so ids never collide across groups.
	VarGroup = dataframe.NewStat("..group..", "group")
)

var byName = func() map[string]dataframe.Variable {
	m := make(map[string]dataframe.Variable)
	for _, v := range []dataframe.Variable{
		VarX, VarY, VarCount, VarProp, VarDensity, VarScaled, VarYMin, VarYMax,
		VarLower, VarMiddle, VarUpper, VarSE, VarBinWidth, VarGroup,
	} {
		m[v.Name] = v
	}
	return m
}()

// IsStatVarName reports whether name is a reserved stat variable name.
func IsStatVarName(name string) bool {
	_, ok := byName[name]
	return ok
}

// VarByName returns the reserved stat variable with the given name.
func VarByName(name string) (dataframe.Variable, bool) {
	v, ok := byName[name]
	return v, ok
}
