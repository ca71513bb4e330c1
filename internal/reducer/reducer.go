// Package reducer turns an abstract assembly problem into a cover-matrix
// instance, invokes the cover solver, and lifts the chosen rows back
// into geometric placements.
package reducer

import (
	"fmt"
	"sort"

	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/cover"
	"github.com/mbrown1415/polycube/internal/corerr"
	"github.com/mbrown1415/polycube/internal/grid"
	"github.com/mbrown1415/polycube/internal/placement"
)

// AssemblySolution is one way to fill the goal: a set of placements
// whose union covers every required goal voxel exactly once.
type AssemblySolution struct {
	Placements []assembly.Placement
}

// Result is the reducer's output.
type Result struct {
	Solutions []AssemblySolution
	Stats     cover.SolveStats
	Symmetry  *placement.SymmetryInfo
}

// Options configures a Reduce call.
type Options struct {
	SolveOptions *cover.SolveOptions
}

// Reduce builds a cover matrix from problem, solves it, and lifts every
// solution back to the placements it selects.
func Reduce(g grid.Grid, problem assembly.Problem, opts Options) (*Result, error) {
	if len(problem.PieceCounts) == 0 {
		return nil, corerr.New(corerr.InputShape, "problem has no candidate pieces")
	}
	goal, ok := problem.Pieces[problem.GoalPieceID]
	if !ok {
		return nil, corerr.New(corerr.InputShape, "goal piece id %q has no matching definition", problem.GoalPieceID)
	}
	if len(goal.Voxels) == 0 {
		return nil, corerr.New(corerr.InputShape, "problem's goal has no voxels")
	}

	pieceIDs := make([]string, 0, len(problem.PieceCounts))
	for id := range problem.PieceCounts {
		pieceIDs = append(pieceIDs, id)
	}
	sort.Strings(pieceIDs)

	specs := make([]placement.Spec, 0, len(pieceIDs))
	for _, id := range pieceIDs {
		p, ok := problem.Pieces[id]
		if !ok {
			return nil, corerr.New(corerr.InputShape, "piece %q has a count range but no definition", id)
		}
		if len(p.Optional) > 0 {
			return nil, corerr.New(corerr.Unsupported, "piece %q has optional voxels; only the goal piece may", id)
		}
		specs = append(specs, placement.Spec{Piece: p, Range: problem.PieceCounts[id]})
	}

	gen, err := placement.Generate(g, goal, specs, placement.Options{RemoveSymmetries: problem.RemoveSymmetries})
	if err != nil {
		return nil, err
	}

	matrix, err := buildMatrix(g, problem, goal, gen)
	if err != nil {
		return nil, err
	}

	solutions, stats := matrix.Solve(opts.SolveOptions)

	result := &Result{Stats: stats, Symmetry: gen.Symmetry}
	for _, rows := range solutions {
		var raw []assembly.Placement
		for _, row := range rows {
			for _, p := range row {
				if p.Instance.Piece.ID != "" {
					raw = append(raw, p)
				}
			}
		}
		result.Solutions = append(result.Solutions, AssemblySolution{Placements: assignInstanceIndices(raw)})
	}
	return result, nil
}

// assignInstanceIndices labels each placement in an already-chosen
// solution with a distinct occurrence index per piece ID, in row order.
// Generation never gives a multi-use piece's occurrences separate
// identities — every occurrence shares the same placement list and the
// same PieceInstance with Index 0 — so the solver's chosen row set is the
// first point at which distinct physical occurrences actually exist.
func assignInstanceIndices(placements []assembly.Placement) []assembly.Placement {
	counts := map[string]int{}
	out := make([]assembly.Placement, len(placements))
	for i, p := range placements {
		id := p.Instance.Piece.ID
		idx := counts[id]
		counts[id]++
		out[i] = assembly.Placement{
			Instance:  assembly.PieceInstance{Piece: p.Instance.Piece, Index: idx},
			Transform: p.Transform,
		}
	}
	return out
}

// buildMatrix assembles the cover matrix described in the reducer's
// column scheme: one column per goal voxel, one per piece, one per
// group constraint, plus one trailing "row identity" column per
// candidate placement whose sole job is to carry that placement back
// out of Solve's column-datum reporting (Solve reports, for a chosen
// row, the data of every column it touches — so the placement rides
// along on the one column that exists only for its own row).
func buildMatrix(g grid.Grid, problem assembly.Problem, goal assembly.Piece, gen *placement.Result) (*cover.Solver[assembly.Placement], error) {
	goalVoxels := goal.Voxels
	goalOptional := grid.NewVoxelSet(goal.Optional)

	voxelCol := make(map[grid.Voxel]int, len(goalVoxels))
	for i, v := range goalVoxels {
		voxelCol[v] = i
	}

	pieceIDs := make([]string, 0, len(problem.PieceCounts))
	for id := range problem.PieceCounts {
		pieceIDs = append(pieceIDs, id)
	}
	sort.Strings(pieceIDs)
	pieceCol := make(map[string]int, len(pieceIDs))
	for i, id := range pieceIDs {
		pieceCol[id] = len(goalVoxels) + i
	}

	groupCol := make(map[int]int, len(problem.Constraints))
	groupBase := len(goalVoxels) + len(pieceIDs)
	for i := range problem.Constraints {
		groupCol[i] = groupBase + i
	}

	var placements []assembly.Placement
	for _, p := range gen.Pieces {
		placements = append(placements, gen.PlacementsByPiece[p.ID]...)
	}

	nStructural := groupBase + len(problem.Constraints)
	columnData := make([]assembly.Placement, nStructural+len(placements))
	copy(columnData[nStructural:], placements)

	solver := cover.New(columnData, len(placements))

	for i, v := range goalVoxels {
		if goalOptional.Contains(v) {
			if err := solver.SetColumnRange(i, 0, 1); err != nil {
				return nil, fmt.Errorf("reducer: internal invariant violated setting voxel column range: %w", err)
			}
		}
	}
	for _, id := range pieceIDs {
		r := problem.PieceCounts[id]
		if err := solver.SetColumnRange(pieceCol[id], r.Min, r.Max); err != nil {
			return nil, fmt.Errorf("reducer: internal invariant violated setting piece column range: %w", err)
		}
	}
	for i, c := range problem.Constraints {
		if err := solver.SetColumnRange(groupCol[i], c.Count, c.Count); err != nil {
			return nil, fmt.Errorf("reducer: internal invariant violated setting group column range: %w", err)
		}
	}

	for i, p := range placements {
		mask := make([]bool, nStructural+len(placements))
		for _, v := range p.Voxels(g) {
			col, ok := voxelCol[v]
			if !ok {
				return nil, corerr.New(corerr.Infeasible, "placement of %q covers voxel outside the goal", p.Instance.Piece.ID)
			}
			mask[col] = true
		}
		mask[pieceCol[p.Instance.Piece.ID]] = true
		for gi, c := range problem.Constraints {
			if containsID(c.PieceIDs, p.Instance.Piece.ID) {
				mask[groupCol[gi]] = true
			}
		}
		mask[nStructural+i] = true
		if err := solver.AddRow(mask); err != nil {
			return nil, fmt.Errorf("reducer: internal invariant violated adding row: %w", err)
		}
	}

	return solver, nil
}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
