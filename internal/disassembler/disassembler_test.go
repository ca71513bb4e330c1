package disassembler

import (
	"testing"

	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/grid"
)

func instance(id string, voxels []grid.Voxel) assembly.PieceInstance {
	return assembly.PieceInstance{Piece: assembly.Piece{ID: id, Voxels: voxels}, Index: 0}
}

func placementAt(inst assembly.PieceInstance) assembly.Placement {
	return assembly.Placement{Instance: inst, Transform: grid.Identity}
}

func TestDisassembleOneMove(t *testing.T) {
	g := grid.NewCubic()
	a := instance("A", []grid.Voxel{{0, 0, 0}})
	b := instance("B", []grid.Voxel{{1, 0, 0}})
	initial := []assembly.Placement{placementAt(a), placementAt(b)}

	d := New(g, initial, Options{})
	results, err := d.Disassemble()
	if err != nil {
		t.Fatalf("Disassemble returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 disassembly, got %d", len(results))
	}
	steps := results[0].Steps
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	step := steps[0]
	if step.Repeat != 1 {
		t.Errorf("step repeat = %d, want 1", step.Repeat)
	}
	if !step.Separates {
		t.Error("expected the single step to separate the assembly")
	}
	if len(step.MovedPieces) != 1 {
		t.Fatalf("expected exactly one moved piece, got %v", step.MovedPieces)
	}
	if step.MovedPieces[0] != a.ID() && step.MovedPieces[0] != b.ID() {
		t.Errorf("unexpected moved piece %q", step.MovedPieces[0])
	}
}

func TestDisassembleReuseFails(t *testing.T) {
	g := grid.NewCubic()
	a := instance("A", []grid.Voxel{{0, 0, 0}})
	b := instance("B", []grid.Voxel{{1, 0, 0}})
	d := New(g, []assembly.Placement{placementAt(a), placementAt(b)}, Options{})

	if _, err := d.Disassemble(); err != nil {
		t.Fatalf("first Disassemble call failed: %v", err)
	}
	if _, err := d.Disassemble(); err == nil {
		t.Fatal("expected second Disassemble call to fail")
	}
}

func TestDisassembleTrapped(t *testing.T) {
	g := grid.NewCubic()
	interior := instance("I", []grid.Voxel{{0, 0, 0}})
	frame := instance("F", []grid.Voxel{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	})
	initial := []assembly.Placement{placementAt(interior), placementAt(frame)}

	d := New(g, initial, Options{})
	results, err := d.Disassemble()
	if err != nil {
		t.Fatalf("Disassemble returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no disassemblies for a trapped piece, got %d", len(results))
	}
}
