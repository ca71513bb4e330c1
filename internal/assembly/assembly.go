// Package assembly holds the data model shared by the placement
// generator, the reducer, and the disassembler: pieces, piece
// instances, placements, and the problem a puzzle poses.
package assembly

import (
	"fmt"

	"github.com/mbrown1415/polycube/internal/grid"
)

// Range is an inclusive [Min, Max] usage count.
type Range struct {
	Min, Max int
}

// Piece is a shape identity plus its unordered voxel set. Voxel
// attributes such as "optional" are carried in Optional, a subset of
// Voxels.
type Piece struct {
	ID       string
	Voxels   []grid.Voxel
	Optional []grid.Voxel
}

// PieceInstance is one occurrence of a piece within a problem. Instance
// k of piece P carries the derived identity "P#k".
type PieceInstance struct {
	Piece Piece
	Index int // k, zero-based
}

// ID returns the instance's derived identity, e.g. "A#0".
func (pi PieceInstance) ID() string {
	return fmt.Sprintf("%s#%d", pi.Piece.ID, pi.Index)
}

// Placement is a piece instance plus the rigid transform that positions
// it, such that every transformed voxel lies in the goal's voxel set.
type Placement struct {
	Instance  PieceInstance
	Transform grid.Transform
}

// Voxels returns the placement's transformed voxels.
func (p Placement) Voxels(g grid.Grid) []grid.Voxel {
	return g.Apply(p.Transform, p.Instance.Piece.Voxels)
}

// GroupConstraint requires exactly Count placements drawn from the
// pieces named in PieceIDs to appear in a solution.
type GroupConstraint struct {
	PieceIDs []string
	Count    int
}

// Problem is the abstract puzzle: a goal shape named by GoalPieceID (a
// key into Pieces, resolved by the reducer rather than carried as its
// own field), a multiset of candidate pieces with min/max usage,
// optional group constraints, and whether to apply symmetry reduction.
type Problem struct {
	GoalPieceID      string
	Pieces           map[string]Piece
	PieceCounts      map[string]Range
	Constraints      []GroupConstraint
	RemoveSymmetries bool
}
