package grid

import (
	"fmt"
	"sort"
)

// Key returns a canonical string key for a voxel set: sorted, so two
// calls with the same set in different orders produce the same key.
// Used wherever a voxel set needs to be compared or hashed, such as
// deduplicating rotation orbits or canonicalizing disassembly states.
func Key(voxels []Voxel) string {
	sorted := append([]Voxel(nil), voxels...)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	out := make([]byte, 0, len(sorted)*12)
	for _, v := range sorted {
		out = append(out, fmt.Sprintf("%.0f,%.0f,%.0f;", v[0], v[1], v[2])...)
	}
	return string(out)
}

func less(a, b Voxel) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}
