package grid

import "testing"

func TestRotationCounts(t *testing.T) {
	c := NewCubic()
	if got := len(c.Rotations(false)); got != 24 {
		t.Errorf("proper rotations = %d, want 24", got)
	}
	if got := len(c.Rotations(true)); got != 48 {
		t.Errorf("all rotations = %d, want 48", got)
	}
}

func TestRotationsArePermutationsOfAxes(t *testing.T) {
	c := NewCubic()
	v := Voxel{1, 2, 3}
	seen := map[Voxel]bool{}
	for _, rot := range c.Rotations(true) {
		out := c.Apply(rot, []Voxel{v})[0]
		mag := out[0]*out[0] + out[1]*out[1] + out[2]*out[2]
		if mag != 14 { // 1+4+9, preserved by any orthogonal integer transform
			panic("rotation did not preserve vector magnitude")
		}
		seen[out] = true
	}
	if len(seen) == 0 {
		t.Fatal("no distinct rotated vectors produced")
	}
}

func TestVoxelsInBounds(t *testing.T) {
	c := NewCubic()
	b := Bounds{Min: Voxel{0, 0, 0}, Max: Voxel{1, 1, 0}}
	voxels := c.VoxelsInBounds(b)
	if len(voxels) != 4 {
		t.Fatalf("expected 4 voxels, got %d", len(voxels))
	}
}

func TestVoxelBoundsAndOriginTranslation(t *testing.T) {
	c := NewCubic()
	voxels := []Voxel{{2, 3, 4}, {2, 5, 4}, {3, 3, 6}}
	b := c.VoxelBounds(voxels)
	if b.Min != (Voxel{2, 3, 4}) || b.Max != (Voxel{3, 5, 6}) {
		t.Fatalf("unexpected bounds %+v", b)
	}

	tr := c.OriginTranslation(voxels)
	moved := c.Apply(tr, voxels)
	mb := c.VoxelBounds(moved)
	if mb.Min != (Voxel{0, 0, 0}) {
		t.Fatalf("origin translation did not zero the minimum corner, got %+v", mb.Min)
	}
}

func TestTranslation(t *testing.T) {
	c := NewCubic()
	tr := c.Translation(Voxel{1, 1, 1}, Voxel{4, 2, 0})
	got := c.Apply(tr, []Voxel{{1, 1, 1}})[0]
	if got != (Voxel{4, 2, 0}) {
		t.Fatalf("translation produced %+v, want {4 2 0}", got)
	}
}

func TestIsSeparate(t *testing.T) {
	c := NewCubic()
	a := []Voxel{{0, 0, 0}, {1, 0, 0}}
	b := []Voxel{{5, 0, 0}, {6, 0, 0}}
	if !c.IsSeparate(a, b) {
		t.Error("expected disjoint bounding boxes to be separate")
	}

	overlapping := []Voxel{{1, 0, 0}, {2, 0, 0}}
	if c.IsSeparate(a, overlapping) {
		t.Error("expected overlapping bounding boxes to not be separate")
	}

	touching := []Voxel{{1, 0, 0}}
	single := []Voxel{{0, 0, 0}}
	if c.IsSeparate(single, touching) {
		t.Error("expected face-touching voxels to not be separate")
	}
	oneGapApart := []Voxel{{2, 0, 0}}
	if !c.IsSeparate(single, oneGapApart) {
		t.Error("expected voxels with an empty cube between them to be separate")
	}
}

func TestDisassemblyTransformsAreUnit(t *testing.T) {
	c := NewCubic()
	transforms := c.DisassemblyTransforms()
	if len(transforms) != 6 {
		t.Fatalf("expected 6 unit moves, got %d", len(transforms))
	}
	for _, tr := range transforms {
		d := tr.Translation
		nonZero := 0
		for i := 0; i < 3; i++ {
			if d[i] != 0 {
				nonZero++
				if d[i] != 1 && d[i] != -1 {
					t.Errorf("unit move has non-unit component %v", d)
				}
			}
		}
		if nonZero != 1 {
			t.Errorf("unit move %v does not move along exactly one axis", d)
		}
	}
}
