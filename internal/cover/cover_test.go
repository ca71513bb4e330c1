package cover

import (
	"sort"
	"testing"
)

// solutionKeys flattens each solution's rows into a sorted, comparable key
// so test assertions don't have to care about row or column order.
func solutionKeys(t *testing.T, solutions [][][]string) []string {
	t.Helper()
	keys := make([]string, len(solutions))
	for i, sol := range solutions {
		rowKeys := make([]string, len(sol))
		for j, row := range sol {
			cp := append([]string(nil), row...)
			sort.Strings(cp)
			rowKeys[j] = fmtRow(cp)
		}
		sort.Strings(rowKeys)
		keys[i] = fmtRow(rowKeys)
	}
	return keys
}

func fmtRow(parts []string) string {
	out := "["
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out + "]"
}

// TestKnuthExample is the canonical example from Knuth's "Dancing Links"
// paper: columns A..G, six rows, exactly one exact cover.
func TestKnuthExample(t *testing.T) {
	cols := []string{"A", "B", "C", "D", "E", "F", "G"}
	s := New(cols, 0)

	rows := [][]string{
		{"C", "E", "F"},
		{"A", "D", "G"},
		{"B", "C", "F"},
		{"A", "D"},
		{"B", "G"},
		{"D", "E", "G"},
	}
	for _, r := range rows {
		mustAddRow(t, s, cols, r)
	}

	solutions, _ := s.Solve(nil)
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(solutions))
	}

	got := solutionKeys(t, solutions)
	want := solutionKeys(t, [][][]string{
		{{"A", "D"}, {"B", "G"}, {"C", "E", "F"}},
	})
	if got[0] != want[0] {
		t.Errorf("solution = %v, want %v", got, want)
	}
}

// TestOptionalColumn covers spec scenario 2: an optional column must not
// force the search to include a row that isn't needed.
func TestOptionalColumn(t *testing.T) {
	cols := []string{"X", "Y", "Z"}
	s := New(cols, 1) // Z is optional: min=0, max=1

	mustAddRow(t, s, cols, []string{"X", "Y"})
	mustAddRow(t, s, cols, []string{"Z"})

	solutions, _ := s.Solve(nil)
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(solutions))
	}
	if len(solutions[0]) != 1 || len(solutions[0][0]) != 2 {
		t.Fatalf("expected the single {X,Y} row, got %v", solutions[0])
	}
}

// TestColumnRange covers spec scenario 3: a column with max=2 can be used
// by two different rows in the same solution.
func TestColumnRange(t *testing.T) {
	cols := []string{"X", "Y", "Z"}
	s := New(cols, 0)
	if err := s.SetColumnRange(2, 0, 2); err != nil {
		t.Fatal(err)
	}

	mustAddRow(t, s, cols, []string{"X", "Z"})
	mustAddRow(t, s, cols, []string{"Y", "Z"})

	solutions, _ := s.Solve(nil)
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(solutions))
	}
	if len(solutions[0]) != 2 {
		t.Fatalf("expected both rows chosen, got %v", solutions[0])
	}
}

// TestFourQueens covers spec scenario 4: the 4-queens problem encoded as
// exact cover with required rank/file columns and optional diagonal
// columns has exactly two solutions.
func TestFourQueens(t *testing.T) {
	const n = 4
	var cols []string
	for r := 0; r < n; r++ {
		cols = append(cols, colName("Rank", r))
	}
	for c := 0; c < n; c++ {
		cols = append(cols, colName("File", c))
	}
	nRequired := len(cols)
	for d := 0; d < 2*n-1; d++ {
		cols = append(cols, colName("Diag1", d))
	}
	for d := 0; d < 2*n-1; d++ {
		cols = append(cols, colName("Diag2", d))
	}
	nOptional := len(cols) - nRequired

	s := New(cols, nOptional)

	type queenRow struct{ r, c int }
	var placements []queenRow
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			placements = append(placements, queenRow{r, c})
			mask := make([]bool, len(cols))
			mask[index(cols, colName("Rank", r))] = true
			mask[index(cols, colName("File", c))] = true
			mask[index(cols, colName("Diag1", r+c))] = true
			mask[index(cols, colName("Diag2", r-c+n-1))] = true
			if err := s.AddRow(mask); err != nil {
				t.Fatal(err)
			}
		}
	}

	solutions, _ := s.Solve(nil)
	if len(solutions) != 2 {
		t.Fatalf("expected 2 solutions for 4-queens, got %d", len(solutions))
	}
	for _, sol := range solutions {
		if len(sol) != n {
			t.Errorf("expected %d rows per solution, got %d", n, len(sol))
		}
	}
}

// TestNoDuplicateSolutions exercises the cursorStack duplicate-suppression
// rule directly: three interchangeable rows against a column usable
// exactly twice must yield each 2-combination exactly once, never both
// orderings of the same pair.
func TestNoDuplicateSolutions(t *testing.T) {
	cols := []string{"P"}
	s := New(cols, 0)
	if err := s.SetColumnRange(0, 2, 2); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		mustAddRow(t, s, cols, []string{"P"})
	}

	solutions, _ := s.Solve(nil)
	if len(solutions) != 3 {
		t.Fatalf("expected 3 combinations, got %d", len(solutions))
	}

	seen := map[string]bool{}
	for _, key := range solutionKeys(t, solutions) {
		if seen[key] {
			t.Fatalf("duplicate solution %s", key)
		}
		seen[key] = true
	}
}

// TestCoverUncoverInverse checks that cover(c); uncover(c) restores the
// matrix, observed here through every column's live count, since the
// node arena has no external identity to compare.
func TestCoverUncoverInverse(t *testing.T) {
	cols := []string{"A", "B", "C", "D", "E", "F", "G"}
	s := New(cols, 0)
	rows := [][]string{
		{"C", "E", "F"},
		{"A", "D", "G"},
		{"B", "C", "F"},
		{"A", "D"},
		{"B", "G"},
		{"D", "E", "G"},
	}
	for _, r := range rows {
		mustAddRow(t, s, cols, r)
	}

	before := snapshotCounts(s)
	colIdx := int32(1) // header node for column A
	s.cover(colIdx)
	s.uncover(colIdx)
	after := snapshotCounts(s)

	if len(before) != len(after) {
		t.Fatalf("count snapshot length changed")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("column %d count = %d after cover/uncover, want %d", i, after[i], before[i])
		}
	}
}

func snapshotCounts[D any](s *Solver[D]) []int {
	out := make([]int, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.count
	}
	return out
}

func mustAddRow(t *testing.T, s *Solver[string], cols []string, on []string) {
	t.Helper()
	mask := make([]bool, len(cols))
	for _, name := range on {
		mask[index(cols, name)] = true
	}
	if err := s.AddRow(mask); err != nil {
		t.Fatal(err)
	}
}

func index(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}

func colName(prefix string, i int) string {
	return prefix + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func TestAddRowLengthMismatch(t *testing.T) {
	s := New([]string{"A", "B"}, 0)
	err := s.AddRow([]bool{true})
	if err == nil {
		t.Fatal("expected error for mismatched row length")
	}
}
