package cover

import (
	"fmt"

	"github.com/fatih/color"
)

// SolveOptions configures a single Solve call. The core never schedules
// workers or renders progress itself (see the concurrency notes in the
// package doc); these hooks are the only way a caller observes a long
// search from the top-level loop.
type SolveOptions struct {
	// ProgressCallback is invoked once per top-level row tried for the
	// first chosen column, with fraction in [0,1) and an optional
	// message. It must not mutate solver state.
	ProgressCallback func(fraction float64, message string)
	// LogCallback receives human-readable status lines.
	LogCallback func(message string)
	// MaxSolutions stops the search once this many solutions have been
	// found. Zero means unbounded — return every exact cover.
	MaxSolutions int
}

// DefaultSolveOptions returns options that search to exhaustion with no
// callbacks.
func DefaultSolveOptions() *SolveOptions {
	return &SolveOptions{}
}

// SolveStats tracks search statistics for one Solve call, the same shape
// of diagnostic a long-running search would want to log or assert against
// in a test.
type SolveStats struct {
	NodesVisited   int
	BacktrackCount int
	SolutionsFound int
	MatrixSize     MatrixInfo
}

// MatrixInfo describes the constraint matrix's static shape.
type MatrixInfo struct {
	Columns    int
	Rows       int
	TotalNodes int
	Density    float64 // percentage of non-zero cells
}

// PrintStats writes a colorized summary of stats to stdout, for use by the
// cmd/ demos.
func (stats SolveStats) PrintStats() {
	fmt.Printf("%s\n", color.HiCyanString("Cover Solver Statistics"))
	fmt.Printf("  Columns:         %s\n", color.HiYellowString("%d", stats.MatrixSize.Columns))
	fmt.Printf("  Rows:            %s\n", color.HiYellowString("%d", stats.MatrixSize.Rows))
	fmt.Printf("  Density:         %s\n", color.HiYellowString("%.2f%%", stats.MatrixSize.Density))
	fmt.Printf("  Nodes Visited:   %s\n", color.HiGreenString("%d", stats.NodesVisited))
	fmt.Printf("  Backtracks:      %s\n", color.HiRedString("%d", stats.BacktrackCount))
	fmt.Printf("  Solutions Found: %s\n", color.HiGreenString("%d", stats.SolutionsFound))
}
