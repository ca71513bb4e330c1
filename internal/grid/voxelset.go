package grid

import "github.com/mbrown1415/polycube/internal/set"

// VoxelSet is a hash-based membership set for voxels, replacing the
// O(n) list-containment scan the source used for "is this voxel inside
// the goal" checks (see the placement generator's Open Questions note).
// It is built on the module's generic Set, since a Voxel (an [3]float64
// array) is comparable like any other hashable element.
type VoxelSet struct {
	s *set.Set[Voxel]
}

// NewVoxelSet builds a VoxelSet from voxels.
func NewVoxelSet(voxels []Voxel) *VoxelSet {
	return &VoxelSet{s: set.NewSet(voxels...)}
}

// Contains reports whether v is in the set.
func (vs *VoxelSet) Contains(v Voxel) bool {
	return vs.s.Contains(v)
}

// Len returns the number of distinct voxels in the set.
func (vs *VoxelSet) Len() int {
	return vs.s.Size()
}

// Slice returns the set's members in unspecified order.
func (vs *VoxelSet) Slice() []Voxel {
	return vs.s.Values()
}
