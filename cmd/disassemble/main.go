package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/disassembler"
	"github.com/mbrown1415/polycube/internal/grid"
)

func main() {
	if isStdoutTTY() {
		fmt.Println("Polycube Disassembler Demonstration")
		fmt.Println("====================================")
	}

	g := grid.NewCubic()

	scenarios := []struct {
		name   string
		pieces []assembly.Placement
	}{
		{name: "Two Pieces Side By Side", pieces: sideBySide()},
		{name: "Trapped Interior Piece", pieces: trapped()},
	}

	for i, sc := range scenarios {
		fmt.Printf("\n%s %d: %s\n", color.HiBlueString("Scenario"), i+1, color.HiYellowString(sc.name))

		d := disassembler.New(g, sc.pieces, disassembler.Options{
			LogCallback: func(msg string) { fmt.Println(color.HiBlackString(msg)) },
		})
		results, err := d.Disassemble()
		if err != nil {
			fmt.Printf("%s: %v\n", color.HiRedString("✗ Error"), err)
			continue
		}
		if len(results) == 0 {
			fmt.Println(color.HiRedString("✗ No disassembly exists — the pieces are permanently interlocked"))
			continue
		}
		fmt.Printf("%s\n", color.HiGreenString("✓ Found %d disassembly sequence(s)", len(results)))
		printDisassembly(results[0])
	}
}

func printDisassembly(d disassembler.Disassembly) {
	for i, step := range d.Steps {
		sep := ""
		if step.Separates {
			sep = color.HiMagentaString(" (separates)")
		}
		fmt.Printf("  %d. move %v by %v x%d%s\n",
			i+1, step.MovedPieces, step.Transform.Translation, step.Repeat, sep)
	}
}

func sideBySide() []assembly.Placement {
	return []assembly.Placement{
		placementAt(instance("A", []grid.Voxel{{0, 0, 0}})),
		placementAt(instance("B", []grid.Voxel{{1, 0, 0}})),
	}
}

func trapped() []assembly.Placement {
	return []assembly.Placement{
		placementAt(instance("I", []grid.Voxel{{0, 0, 0}})),
		placementAt(instance("F", []grid.Voxel{
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
		})),
	}
}

func instance(id string, voxels []grid.Voxel) assembly.PieceInstance {
	return assembly.PieceInstance{Piece: assembly.Piece{ID: id, Voxels: voxels}, Index: 0}
}

func placementAt(inst assembly.PieceInstance) assembly.Placement {
	return assembly.Placement{Instance: inst, Transform: grid.Identity}
}

func isStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
