package disassembler

import (
	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/grid"
)

// Movement is a single candidate rigid move: a subset of pieces sliding
// together along a unit transform, repeated Repeat times, possibly
// separating the assembly into two spatially disjoint groups. Transform
// holds the whole displacement (the unit move scaled by Repeat), not the
// unit move itself.
type Movement struct {
	MovedPieces []string
	Transform   grid.Transform
	Repeat      int
	Separates   bool
}

// legalMovements enumerates every legal movement of one piece at a time
// out of placements. A piece can slide along any unit disassembly
// transform as many repeats as keep it collision-free with the rest of
// the assembly; only the maximal collision-free slide in each direction
// is reported, since a shorter slide never enables anything a longer
// one doesn't. Multi-piece subset movements (two or more pieces rigidly
// locked together) are not enumerated; see the package doc.
func legalMovements(g grid.Grid, placements []assembly.Placement) []Movement {
	var moves []Movement
	for i, moving := range placements {
		others := otherVoxels(g, placements, i)
		pieceVoxels := moving.Voxels(g)

		for _, unit := range g.DisassemblyTransforms() {
			repeat := 0
			var extent []grid.Voxel
			for {
				next := translateBy(g, pieceVoxels, unit.Translation, repeat+1)
				if overlaps(next, others) {
					break
				}
				repeat++
				extent = next
				if repeat > maxSlideSteps {
					break
				}
				if g.IsSeparate(next, others) {
					break
				}
			}
			if repeat == 0 {
				continue
			}
			moves = append(moves, Movement{
				MovedPieces: []string{moving.Instance.ID()},
				Transform:   grid.Transform{Rotation: grid.Identity.Rotation, Translation: unit.Translation.Scale(float64(repeat))},
				Repeat:      repeat,
				Separates:   g.IsSeparate(extent, others),
			})
		}
	}
	return moves
}

// maxSlideSteps bounds how far a single movement can slide a piece,
// guarding against an unbounded loop if a grid implementation's
// disassembly transforms ever fail to make progress toward separation.
const maxSlideSteps = 64

func translateBy(g grid.Grid, voxels []grid.Voxel, unit grid.Voxel, times int) []grid.Voxel {
	return g.Apply(grid.Transform{Rotation: grid.Identity.Rotation, Translation: unit.Scale(float64(times))}, voxels)
}

func otherVoxels(g grid.Grid, placements []assembly.Placement, exclude int) []grid.Voxel {
	var out []grid.Voxel
	for i, p := range placements {
		if i == exclude {
			continue
		}
		out = append(out, p.Voxels(g)...)
	}
	return out
}

func overlaps(a, b []grid.Voxel) bool {
	set := grid.NewVoxelSet(b)
	for _, v := range a {
		if set.Contains(v) {
			return true
		}
	}
	return false
}

// applySeparationShortcut keeps only the first separating movement when
// any movement separates, and every movement otherwise: separations never
// constrain future moves, so exploring alternatives in parallel with one
// is wasted work. All movements here already move exactly one piece, so
// "prefer one that peels off a single piece" is automatically satisfied.
func applySeparationShortcut(moves []Movement) []Movement {
	for _, m := range moves {
		if m.Separates {
			return []Movement{m}
		}
	}
	return moves
}
