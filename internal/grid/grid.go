// Package grid defines the abstract Grid collaborator the core consumes
// for coordinate arithmetic (rotations, translations, adjacency, voxel
// enumeration), plus Cubic, a concrete cubic-lattice implementation used
// by tests and the cmd/ demos. Cubic is not part
// of the core's public contract, the same way the teacher's concrete
// board/puzzle model sits outside its solver's contract.
package grid

import "gonum.org/v1/gonum/spatial/r3"

// Voxel is an opaque grid-addressed cell. Cubic represents it as an
// integer-valued r3.Vec; equality is the struct equality r3.Vec already
// gives for free, which is exact as long as every component holds a
// small integer exactly representable in float64.
type Voxel = r3.Vec

// Bounds is an axis-aligned bounding box over voxels.
type Bounds = r3.Box

// Transform is a rigid transform: an integer rotation matrix (a signed
// permutation matrix for Cubic, i.e. a member of the octahedral group)
// followed by a translation.
type Transform struct {
	Rotation    [3][3]int
	Translation Voxel
}

// Identity is the no-op transform.
var Identity = Transform{Rotation: [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}

// Grid is the abstract collaborator the core consumes for all coordinate
// arithmetic. Nothing in internal/cover, internal/placement,
// internal/reducer, or internal/disassembler depends on Cubic directly;
// they depend on this interface.
type Grid interface {
	// VoxelsInBounds enumerates every voxel contained in bounds.
	VoxelsInBounds(bounds Bounds) []Voxel
	// VoxelBounds returns the smallest bounding box containing voxels.
	VoxelBounds(voxels []Voxel) Bounds
	// Rotations enumerates the grid's rotation group. If includeMirrors
	// is true, orientation-reversing transforms are included too.
	Rotations(includeMirrors bool) []Transform
	// Translation returns the transform that moves from to to.
	Translation(from, to Voxel) Transform
	// Apply applies t to every voxel in voxels.
	Apply(t Transform, voxels []Voxel) []Voxel
	// OriginTranslation returns the transform that canonicalizes voxels'
	// position (moves their bounding box's minimum corner to the origin).
	OriginTranslation(voxels []Voxel) Transform
	// DisassemblyTransforms returns the grid's unit disassembly moves.
	DisassemblyTransforms() []Transform
	// IsSeparate reports whether group1 and group2 are spatially
	// disjoint (a bounding-box disjointness test).
	IsSeparate(group1, group2 []Voxel) bool
}
