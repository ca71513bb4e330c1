package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/grid"
	"github.com/mbrown1415/polycube/internal/reducer"
)

func main() {
	fmt.Println("Polycube Assembler Demonstration")
	fmt.Println("================================")

	g := grid.NewCubic()

	scenarios := []struct {
		name    string
		problem assembly.Problem
	}{
		{name: "One-Dimensional Line", problem: lineProblem()},
		{name: "2x2x2 Cube, Domino Pieces", problem: cubeOfDominoesProblem()},
	}

	for i, sc := range scenarios {
		fmt.Printf("\n%s %d: %s\n", color.HiBlueString("Scenario"), i+1, color.HiYellowString(sc.name))

		start := time.Now()
		result, err := reducer.Reduce(g, sc.problem, reducer.Options{})
		duration := time.Since(start)

		if err != nil {
			fmt.Printf("%s: %v\n", color.HiRedString("✗ Failed to reduce"), err)
			continue
		}

		fmt.Printf("%s (%.3fms)\n", color.HiGreenString("✓ Reduced and solved"), float64(duration.Nanoseconds())/1e6)
		fmt.Printf("Solutions found: %s\n", color.HiGreenString("%d", len(result.Solutions)))
		if result.Symmetry != nil {
			fmt.Printf("Symmetry reduction applied to %s (factor %dx)\n",
				color.HiCyanString(result.Symmetry.PieceID), result.Symmetry.ReductionFactor)
		}

		for j, sol := range result.Solutions {
			if j >= 3 {
				fmt.Printf("  ... %d more solution(s)\n", len(result.Solutions)-3)
				break
			}
			fmt.Printf("  Solution %d:\n", j+1)
			printSolution(g, sc.problem.Pieces[sc.problem.GoalPieceID], sol)
		}

		result.Stats.PrintStats()
		fmt.Println(color.HiBlackString("─────────────────────────────────────"))
	}
}

func lineProblem() assembly.Problem {
	goal := assembly.Piece{ID: "goal", Voxels: []grid.Voxel{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}
	return assembly.Problem{
		GoalPieceID: goal.ID,
		Pieces: map[string]assembly.Piece{
			"goal": goal,
			"A":    {ID: "A", Voxels: []grid.Voxel{{0, 0, 0}}},
			"B":    {ID: "B", Voxels: []grid.Voxel{{0, 0, 0}, {1, 0, 0}}},
		},
		PieceCounts: map[string]assembly.Range{
			"A": {Min: 0, Max: 3},
			"B": {Min: 0, Max: 1},
		},
	}
}

func cubeOfDominoesProblem() assembly.Problem {
	var cube []grid.Voxel
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				cube = append(cube, grid.Voxel{float64(x), float64(y), float64(z)})
			}
		}
	}
	goal := assembly.Piece{ID: "goal", Voxels: cube}
	return assembly.Problem{
		GoalPieceID: goal.ID,
		Pieces: map[string]assembly.Piece{
			"goal": goal,
			"D":    {ID: "D", Voxels: []grid.Voxel{{0, 0, 0}, {1, 0, 0}}},
		},
		PieceCounts: map[string]assembly.Range{
			"D": {Min: 4, Max: 4},
		},
		RemoveSymmetries: true,
	}
}

// printSolution renders a z-slice ASCII view of the goal, coloring each
// voxel by which piece instance fills it.
func printSolution(g grid.Grid, goal assembly.Piece, sol reducer.AssemblySolution) {
	owner := make(map[grid.Voxel]string)
	for _, p := range sol.Placements {
		for _, v := range p.Voxels(g) {
			owner[v] = p.Instance.ID()
		}
	}

	colorFor := assignColors(sol)
	bounds := g.VoxelBounds(goal.Voxels)
	for z := int(bounds.Min[2]); z <= int(bounds.Max[2]); z++ {
		fmt.Printf("    z=%d:\n", z)
		for y := int(bounds.Min[1]); y <= int(bounds.Max[1]); y++ {
			fmt.Print("    ")
			for x := int(bounds.Min[0]); x <= int(bounds.Max[0]); x++ {
				v := grid.Voxel{float64(x), float64(y), float64(z)}
				id, ok := owner[v]
				if !ok {
					fmt.Print(color.HiBlackString("· "))
					continue
				}
				fmt.Print(colorFor[id]("%s ", id))
			}
			fmt.Println()
		}
	}
}

func assignColors(sol reducer.AssemblySolution) map[string]func(string, ...interface{}) string {
	palette := []func(string, ...interface{}) string{
		color.HiGreenString, color.HiYellowString, color.HiMagentaString,
		color.HiCyanString, color.HiBlueString, color.HiRedString,
	}
	ids := make([]string, 0, len(sol.Placements))
	for _, p := range sol.Placements {
		ids = append(ids, p.Instance.ID())
	}
	sort.Strings(ids)
	out := make(map[string]func(string, ...interface{}) string, len(ids))
	for i, id := range ids {
		out[id] = palette[i%len(palette)]
	}
	return out
}
