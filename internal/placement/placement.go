// Package placement enumerates every legal placement of each candidate
// piece inside a goal shape, modulo the goal's own symmetry.
package placement

import (
	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/corerr"
	"github.com/mbrown1415/polycube/internal/grid"
)

// Options configures placement generation.
type Options struct {
	// RemoveSymmetries applies the symmetry-breaking reduction (step 4)
	// to the single piece whose orbit gives the largest reduction.
	RemoveSymmetries bool
	// IncludeMirrors widens rotation enumeration to the full 48-element
	// group, not just the 24 proper rotations. Off by default: most
	// physical puzzle pieces cannot be reflected.
	IncludeMirrors bool
}

// Spec names a candidate piece and how many instances of it a problem
// allows.
type Spec struct {
	Piece assembly.Piece
	Range assembly.Range
}

// SymmetryInfo reports which piece's placements were restricted to a
// single coset representative, and by what factor.
type SymmetryInfo struct {
	PieceID         string
	ReductionFactor int
}

// Result is the generator's output: every candidate piece's legal
// placements, plus symmetry-reduction diagnostics if requested. A piece
// with Range.Max > 1 still gets exactly one placement list, shared by
// every occurrence the reducer's matrix allows through the piece's own
// ranged column — occurrences are only told apart once a solution is
// chosen, not at generation time.
type Result struct {
	Pieces           []assembly.Piece
	PlacementsByPiece map[string][]assembly.Placement
	Symmetry         *SymmetryInfo
}

// Generate runs the full algorithm: orbit + translation enumeration,
// the voxel-count sanity check, optional symmetry reduction, and the
// minimum-placement feasibility check.
func Generate(g grid.Grid, goal assembly.Piece, specs []Spec, opts Options) (*Result, error) {
	if len(goal.Voxels) == 0 {
		return nil, corerr.New(corerr.InputShape, "goal piece has no voxels")
	}
	if len(specs) == 0 {
		return nil, corerr.New(corerr.InputShape, "no candidate pieces supplied")
	}

	goalSet := grid.NewVoxelSet(goal.Voxels)
	requiredGoal := len(goal.Voxels) - len(goal.Optional)
	totalGoal := len(goal.Voxels)

	if err := sanityCheckVoxelCounts(specs, requiredGoal, totalGoal); err != nil {
		return nil, err
	}

	type pieceTemplate struct {
		spec       Spec
		transforms []grid.Transform
	}
	templates := make([]pieceTemplate, len(specs))
	for i, spec := range specs {
		shapes := enumerateRotatedShapes(g, spec.Piece.Voxels, opts.IncludeMirrors)
		var transforms []grid.Transform
		for _, sh := range shapes {
			transforms = append(transforms, translationsFor(sh.voxels, sh.rotation, goalSet)...)
		}
		templates[i] = pieceTemplate{spec: spec, transforms: transforms}
	}

	result := &Result{PlacementsByPiece: map[string][]assembly.Placement{}}

	var symmetry *SymmetryInfo
	if opts.RemoveSymmetries {
		stab := stabilizerOf(g, goal.Voxels)
		bestIdx := -1
		bestFactor := 1
		var bestReps []grid.Transform
		for i, tmpl := range templates {
			if tmpl.spec.Range.Max <= 0 || len(tmpl.transforms) == 0 {
				continue
			}
			reps, orbits := symmetryOrbits(g, stab, tmpl.spec.Piece.Voxels, tmpl.transforms)
			if orbits == 0 {
				continue
			}
			factor := len(tmpl.transforms) / orbits
			if factor > bestFactor {
				bestFactor = factor
				bestIdx = i
				bestReps = reps
			}
		}
		if bestIdx >= 0 {
			templates[bestIdx].transforms = bestReps
			symmetry = &SymmetryInfo{PieceID: templates[bestIdx].spec.Piece.ID, ReductionFactor: bestFactor}
		}
	}
	result.Symmetry = symmetry

	for _, tmpl := range templates {
		if tmpl.spec.Range.Min >= 1 && len(tmpl.transforms) == 0 {
			return nil, corerr.New(corerr.Infeasible, "piece %q has no legal placements inside the goal", tmpl.spec.Piece.ID)
		}
		// One row per geometric placement, not one per occurrence: the
		// reducer's ranged piece column already allows the matrix solver
		// to pick this row up to Range.Max times, and the cover solver's
		// cursor suppresses reorderings of identical rows on that column.
		// Expanding instances here instead would give every occurrence
		// its own full copy of the placement list and let the solver
		// treat {A#0@x, A#1@y} and {A#1@x, A#0@y} as distinct solutions.
		placements := make([]assembly.Placement, len(tmpl.transforms))
		inst := assembly.PieceInstance{Piece: tmpl.spec.Piece}
		for i, tr := range tmpl.transforms {
			placements[i] = assembly.Placement{Instance: inst, Transform: tr}
		}
		result.Pieces = append(result.Pieces, tmpl.spec.Piece)
		result.PlacementsByPiece[tmpl.spec.Piece.ID] = placements
	}

	return result, nil
}

func sanityCheckVoxelCounts(specs []Spec, requiredGoal, totalGoal int) error {
	sumMin, sumMax := 0, 0
	for _, spec := range specs {
		n := len(spec.Piece.Voxels)
		sumMin += spec.Range.Min * n
		sumMax += spec.Range.Max * n
	}
	if sumMax < requiredGoal || sumMin > totalGoal {
		return corerr.New(corerr.Infeasible,
			"piece voxel counts [%d,%d] cannot fill the goal's [%d,%d] voxel range",
			sumMin, sumMax, requiredGoal, totalGoal)
	}
	return nil
}

type rotatedShape struct {
	rotation grid.Transform
	voxels   []grid.Voxel
}

// enumerateRotatedShapes returns one entry per distinct voxel set the
// piece's rotation orbit produces, deduplicating rotations that give an
// identical shape up to translation (e.g. any rotation about an axis of
// symmetry of the piece itself).
func enumerateRotatedShapes(g grid.Grid, voxels []grid.Voxel, includeMirrors bool) []rotatedShape {
	seen := map[string]bool{}
	var out []rotatedShape
	for _, rot := range g.Rotations(includeMirrors) {
		rv := g.Apply(grid.Transform{Rotation: rot.Rotation}, voxels)
		key := grid.Key(g.Apply(g.OriginTranslation(rv), rv))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rotatedShape{rotation: rot, voxels: rv})
	}
	return out
}

// translationsFor enumerates every translation of rotatedVoxels that
// keeps all of them inside goalSet, anchoring each candidate translation
// on a goal voxel (an O(1) hash lookup) rather than scanning a bounding
// box.
func translationsFor(rotatedVoxels []grid.Voxel, rotation grid.Transform, goalSet *grid.VoxelSet) []grid.Transform {
	if len(rotatedVoxels) == 0 {
		return nil
	}
	anchor := rotatedVoxels[0]
	seen := map[grid.Voxel]bool{}
	var out []grid.Transform
	for _, gv := range goalSet.Slice() {
		delta := gv.Sub(anchor)
		if seen[delta] {
			continue
		}
		seen[delta] = true
		ok := true
		for _, v := range rotatedVoxels {
			if !goalSet.Contains(v.Add(delta)) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, grid.Transform{Rotation: rotation.Rotation, Translation: delta})
		}
	}
	return out
}

// stabilizerOf computes the subgroup of g's rotations under which
// voxels maps onto itself (the rotation is taken about voxels' bounding
// box center, so it keeps voxels in place rather than moving it
// elsewhere in the grid).
func stabilizerOf(g grid.Grid, voxels []grid.Voxel) []grid.Transform {
	set := grid.NewVoxelSet(voxels)
	b := g.VoxelBounds(voxels)
	center := b.Min.Add(b.Max).Scale(0.5)

	var stab []grid.Transform
	for _, rot := range g.Rotations(false) {
		rotOnly := grid.Transform{Rotation: rot.Rotation}
		rotatedCenter := g.Apply(rotOnly, []grid.Voxel{center})[0]
		full := grid.Transform{Rotation: rot.Rotation, Translation: center.Sub(rotatedCenter)}
		mapped := g.Apply(full, voxels)
		if voxelSetEqual(set, mapped) {
			stab = append(stab, full)
		}
	}
	return stab
}

func voxelSetEqual(set *grid.VoxelSet, voxels []grid.Voxel) bool {
	if len(voxels) != set.Len() {
		return false
	}
	for _, v := range voxels {
		if !set.Contains(v) {
			return false
		}
	}
	return true
}

// symmetryOrbits partitions transforms into orbits under stab acting on
// the placed piece, returning one representative per orbit.
func symmetryOrbits(g grid.Grid, stab []grid.Transform, pieceVoxels []grid.Voxel, transforms []grid.Transform) ([]grid.Transform, int) {
	placed := make([][]grid.Voxel, len(transforms))
	keyToIndex := map[string]int{}
	for i, t := range transforms {
		v := g.Apply(t, pieceVoxels)
		placed[i] = v
		keyToIndex[grid.Key(v)] = i
	}

	visited := make([]bool, len(transforms))
	var reps []grid.Transform
	orbits := 0
	for i := range transforms {
		if visited[i] {
			continue
		}
		visited[i] = true
		reps = append(reps, transforms[i])
		orbits++
		for _, s := range stab {
			mapped := g.Apply(s, placed[i])
			if j, ok := keyToIndex[grid.Key(mapped)]; ok {
				visited[j] = true
			}
		}
	}
	return reps, orbits
}
