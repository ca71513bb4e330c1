package reducer

import (
	"testing"

	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/corerr"
	"github.com/mbrown1415/polycube/internal/grid"
)

// TestOneDimensionalAssembler is the 1-D assembler scenario: a goal 3
// voxels wide, piece A one voxel wide with counts [1,3], piece B two
// voxels wide with counts [0,1]. The only exact covers are {A,A,A} and
// {A,B} in both placements of B, for 3 solutions total.
func TestOneDimensionalAssembler(t *testing.T) {
	g := grid.NewCubic()
	goal := assembly.Piece{ID: "goal", Voxels: []grid.Voxel{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}
	pieceA := assembly.Piece{ID: "A", Voxels: []grid.Voxel{{0, 0, 0}}}
	pieceB := assembly.Piece{ID: "B", Voxels: []grid.Voxel{{0, 0, 0}, {1, 0, 0}}}

	problem := assembly.Problem{
		GoalPieceID: "goal",
		Pieces:      map[string]assembly.Piece{"goal": goal, "A": pieceA, "B": pieceB},
		PieceCounts: map[string]assembly.Range{
			"A": {Min: 1, Max: 3},
			"B": {Min: 0, Max: 1},
		},
	}

	result, err := Reduce(g, problem, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Solutions) != 3 {
		t.Fatalf("expected 3 solutions, got %d: %+v", len(result.Solutions), result.Solutions)
	}

	for _, sol := range result.Solutions {
		covered := map[grid.Voxel]int{}
		for _, p := range sol.Placements {
			for _, v := range p.Voxels(g) {
				covered[v]++
			}
		}
		if len(covered) != 3 {
			t.Errorf("solution %+v does not cover all 3 goal voxels", sol)
		}
		for v, n := range covered {
			if n != 1 {
				t.Errorf("voxel %v covered %d times, want exactly 1", v, n)
			}
		}
	}
}

func TestEmptyProblemErrors(t *testing.T) {
	g := grid.NewCubic()
	goal := assembly.Piece{ID: "goal", Voxels: []grid.Voxel{{0, 0, 0}}}
	problem := assembly.Problem{GoalPieceID: "goal", Pieces: map[string]assembly.Piece{"goal": goal}}
	_, err := Reduce(g, problem, Options{})
	if !corerr.Is(err, corerr.InputShape) {
		t.Fatalf("expected an InputShape error, got %v", err)
	}
}

func TestPieceWithOptionalVoxelsIsUnsupported(t *testing.T) {
	g := grid.NewCubic()
	goal := assembly.Piece{ID: "goal", Voxels: []grid.Voxel{{0, 0, 0}}}
	odd := assembly.Piece{ID: "odd", Voxels: []grid.Voxel{{0, 0, 0}}, Optional: []grid.Voxel{{0, 0, 0}}}

	problem := assembly.Problem{
		GoalPieceID: "goal",
		Pieces:      map[string]assembly.Piece{"goal": goal, "odd": odd},
		PieceCounts: map[string]assembly.Range{"odd": {Min: 1, Max: 1}},
	}
	_, err := Reduce(g, problem, Options{})
	if !corerr.Is(err, corerr.Unsupported) {
		t.Fatalf("expected an Unsupported error, got %v", err)
	}
}

// TestGroupConstraint checks that a piece-group constraint restricts
// solutions to those using exactly the required count from the group.
func TestGroupConstraint(t *testing.T) {
	g := grid.NewCubic()
	goal := assembly.Piece{ID: "goal", Voxels: []grid.Voxel{{0, 0, 0}, {1, 0, 0}}}
	pieceA := assembly.Piece{ID: "A", Voxels: []grid.Voxel{{0, 0, 0}}}
	pieceC := assembly.Piece{ID: "C", Voxels: []grid.Voxel{{0, 0, 0}}}

	problem := assembly.Problem{
		GoalPieceID: "goal",
		Pieces:      map[string]assembly.Piece{"goal": goal, "A": pieceA, "C": pieceC},
		PieceCounts: map[string]assembly.Range{
			"A": {Min: 0, Max: 2},
			"C": {Min: 0, Max: 2},
		},
		Constraints: []assembly.GroupConstraint{
			{PieceIDs: []string{"A"}, Count: 1},
		},
	}

	result, err := Reduce(g, problem, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, sol := range result.Solutions {
		aCount := 0
		for _, p := range sol.Placements {
			if p.Instance.Piece.ID == "A" {
				aCount++
			}
		}
		if aCount != 1 {
			t.Errorf("solution uses A %d times, want exactly 1 per the group constraint", aCount)
		}
	}
	if len(result.Solutions) == 0 {
		t.Fatal("expected at least one solution satisfying the group constraint")
	}
}
