package disassembler

import (
	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/mbrown1415/polycube/internal/grid"
)

// extract performs the recursive DFS that turns the solved DAG into
// concrete disassembly sequences. stateIDs are the currently
// independent sub-assemblies still needing disassembly; stepsSoFar are
// the steps accumulated on the path taken to reach this state.
func (d *Disassembler) extract(stateIDs []string, stepsSoFar []Step, out *[]Disassembly) {
	if len(stateIDs) == 0 {
		rec := make([]Step, len(stepsSoFar))
		copy(rec, stepsSoFar)
		*out = append(*out, Disassembly{Steps: rec})
		return
	}

	choices := make([][]*core.Vertex, len(stateIDs))
	for i, id := range stateIDs {
		for _, mv := range d.graph.Neighbors(id) {
			if d.edgeIsSolving(mv) {
				choices[i] = append(choices[i], mv)
			}
		}
		if len(choices[i]) == 0 {
			return
		}
	}

	var recurse func(i int, chosen []*core.Vertex)
	recurse = func(i int, chosen []*core.Vertex) {
		if i == len(stateIDs) {
			steps := make([]Step, len(stepsSoFar))
			copy(steps, stepsSoFar)
			var next []string
			for _, mv := range chosen {
				steps = append(steps, Step{
					MovedPieces: mv.Metadata["movedPieces"].([]string),
					Transform:   mv.Metadata["transform"].(grid.Transform),
					Repeat:      mv.Metadata["repeat"].(int),
					Separates:   mv.Metadata["separates"].(bool),
				})
				children := mv.Metadata["children"].([2]string)
				for _, c := range children {
					if c != noChild {
						next = append(next, c)
					}
				}
			}
			d.extract(next, steps, out)
			return
		}
		for _, mv := range choices[i] {
			recurse(i+1, append(chosen, mv))
		}
	}
	recurse(0, nil)
}
