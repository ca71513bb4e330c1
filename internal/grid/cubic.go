package grid

import "math"

// Cubic is the reference Grid implementation over the integer cubic
// lattice. Rotations are the exact integer signed-permutation matrices
// of the octahedral group rather than gonum's quaternion-based
// r3.Rotation: quaternion composition introduces floating-point error
// that exact voxel-set equality cannot tolerate.
type Cubic struct {
	rotations       []Transform // 24 proper rotations
	mirrorRotations []Transform // all 48, proper + improper
}

// NewCubic builds a Cubic grid, precomputing its rotation group.
func NewCubic() *Cubic {
	c := &Cubic{}
	c.rotations, c.mirrorRotations = signedPermutationMatrices()
	return c
}

// signedPermutationMatrices enumerates all 48 signed permutation
// matrices (every row/column has exactly one nonzero entry, ±1),
// splitting them into the 24 with determinant +1 (proper rotations)
// and the full 48 (proper plus improper, i.e. with mirrors).
func signedPermutationMatrices() (proper []Transform, all []Transform) {
	perms := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	signs := [8][3]int{
		{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
		{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	}
	for _, perm := range perms {
		permParity := permutationSign(perm)
		for _, sign := range signs {
			var m [3][3]int
			for row, col := range perm {
				m[row][col] = sign[row]
			}
			det := permParity * sign[0] * sign[1] * sign[2]
			t := Transform{Rotation: m}
			all = append(all, t)
			if det == 1 {
				proper = append(proper, t)
			}
		}
	}
	return proper, all
}

func permutationSign(perm [3]int) int {
	sign := 1
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if perm[i] > perm[j] {
				sign = -sign
			}
		}
	}
	return sign
}

// Rotations returns the grid's rotation group.
func (c *Cubic) Rotations(includeMirrors bool) []Transform {
	if includeMirrors {
		out := make([]Transform, len(c.mirrorRotations))
		copy(out, c.mirrorRotations)
		return out
	}
	out := make([]Transform, len(c.rotations))
	copy(out, c.rotations)
	return out
}

// Apply applies t to every voxel: a matrix-vector product followed by
// the translation.
func (c *Cubic) Apply(t Transform, voxels []Voxel) []Voxel {
	out := make([]Voxel, len(voxels))
	for i, v := range voxels {
		var r Voxel
		for row := 0; row < 3; row++ {
			sum := 0.0
			for col := 0; col < 3; col++ {
				if t.Rotation[row][col] != 0 {
					sum += float64(t.Rotation[row][col]) * v[col]
				}
			}
			r[row] = sum
		}
		out[i] = r.Add(t.Translation)
	}
	return out
}

// Translation returns the pure-translation transform moving from to to.
func (c *Cubic) Translation(from, to Voxel) Transform {
	return Transform{Rotation: Identity.Rotation, Translation: to.Sub(from)}
}

// OriginTranslation returns the transform that moves voxels' bounding
// box minimum corner to the origin.
func (c *Cubic) OriginTranslation(voxels []Voxel) Transform {
	if len(voxels) == 0 {
		return Identity
	}
	b := c.VoxelBounds(voxels)
	return Transform{Rotation: Identity.Rotation, Translation: Voxel{}.Sub(b.Min)}
}

// DisassemblyTransforms returns the six unit axis-aligned moves.
func (c *Cubic) DisassemblyTransforms() []Transform {
	return []Transform{
		{Rotation: Identity.Rotation, Translation: Voxel{1, 0, 0}},
		{Rotation: Identity.Rotation, Translation: Voxel{-1, 0, 0}},
		{Rotation: Identity.Rotation, Translation: Voxel{0, 1, 0}},
		{Rotation: Identity.Rotation, Translation: Voxel{0, -1, 0}},
		{Rotation: Identity.Rotation, Translation: Voxel{0, 0, 1}},
		{Rotation: Identity.Rotation, Translation: Voxel{0, 0, -1}},
	}
}

// VoxelsInBounds enumerates every integer-lattice voxel inside bounds,
// inclusive of both corners.
func (c *Cubic) VoxelsInBounds(bounds Bounds) []Voxel {
	x0, x1 := int(math.Round(bounds.Min.X())), int(math.Round(bounds.Max.X()))
	y0, y1 := int(math.Round(bounds.Min.Y())), int(math.Round(bounds.Max.Y()))
	z0, z1 := int(math.Round(bounds.Min.Z())), int(math.Round(bounds.Max.Z()))

	var out []Voxel
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				out = append(out, Voxel{float64(x), float64(y), float64(z)})
			}
		}
	}
	return out
}

// VoxelBounds returns the smallest axis-aligned box containing voxels.
func (c *Cubic) VoxelBounds(voxels []Voxel) Bounds {
	if len(voxels) == 0 {
		return Bounds{}
	}
	min, max := voxels[0], voxels[0]
	for _, v := range voxels[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return Bounds{Min: min, Max: max}
}

// IsSeparate reports whether group1 and group2's bounding boxes are
// disjoint on at least one axis. Voxels are unit cubes, so two boxes
// that merely touch face-to-face (a gap of zero) still count as
// connected; a full empty cube must separate them on some axis.
func (c *Cubic) IsSeparate(group1, group2 []Voxel) bool {
	if len(group1) == 0 || len(group2) == 0 {
		return true
	}
	b1 := c.VoxelBounds(group1)
	b2 := c.VoxelBounds(group2)
	for i := 0; i < 3; i++ {
		if b1.Max[i]+1 < b2.Min[i] || b2.Max[i]+1 < b1.Min[i] {
			return true
		}
	}
	return false
}
