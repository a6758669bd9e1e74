package plot

import (
	"github.com/paveg/plotframe/internal/aes"
	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/stat"
)

// variablesToKeep returns the names of the variables a layer still needs
// after processing.
func variablesToKeep(layer Layer, facetVars []string) map[string]bool {
	s := layer.stat()
	keep := map[string]bool{}
	for _, b := range stat.DefaultMappings(s) {
		keep[b.Variable.Name] = true
	}
	// Default-mapped stat variables overridden by a binding are not needed.
	for _, b := range layer.Bindings {
		if v, ok := s.DefaultMapping(b.Aes); ok {
			delete(keep, v.Name)
		}
		keep[b.Variable.Name] = true
	}

	if layer.RenderedAes != nil {
		rendered := make(map[aes.Aes]bool, len(layer.RenderedAes))
		for _, a := range layer.RenderedAes {
			rendered[a] = true
		}
		renderedVars := map[string]bool{}
		for _, b := range layer.Bindings {
			if rendered[b.Aes] {
				renderedVars[b.Variable.Name] = true
			} else {
				delete(keep, b.Variable.Name)
			}
		}
		for name := range renderedVars {
			keep[name] = true
		}
	}

	keep[stat.VarGroup.Name] = true
	if layer.GeometryVar != "" {
		keep[layer.GeometryVar] = true
	}
	for _, name := range []string{layer.GroupingVar, layer.PathIDVar} {
		if name != "" {
			keep[name] = true
		}
	}
	for _, names := range [][]string{layer.MapJoinVars, facetVars, layer.varsWithoutBinding()} {
		for _, name := range names {
			keep[name] = true
		}
	}
	return keep
}

// prune drops the shared variables that no layer reads from the shared data
// and reduces each own table to its layer's keep-set. A layer reads a shared
// variable only when its own data does not carry one of the same name.
func prune(shared *dataframe.Table, own []*dataframe.Table, keep []map[string]bool) (*dataframe.Table, []*dataframe.Table) {
	sharedKeep := map[string]bool{}
	for _, name := range shared.Names() {
		for i := range own {
			if own[i] != nil && own[i].HasName(name) {
				continue
			}
			if keep[i][name] {
				sharedKeep[name] = true
				break
			}
		}
	}
	if len(sharedKeep) < shared.Width() {
		shared = dataframe.RemoveAllExcept(shared, sharedKeep)
	}

	pruned := make([]*dataframe.Table, len(own))
	for i, data := range own {
		if data != nil {
			pruned[i] = dataframe.RemoveAllExcept(data, keep[i])
		}
	}
	return shared, pruned
}
