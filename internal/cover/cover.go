// Package cover implements a generalized Dancing-Links Algorithm X: exact
// cover extended with per-column minimum/maximum occupancy bounds. The
// generalization subsumes optional columns (min=0,max=1), "use a column up
// to N times" (max>1), and the duplicate-solution problem that multi-use
// columns introduce.
//
// Every node — row node or column header — lives as an index into a single
// growable arena rather than behind a pointer; links are plain ints. This
// is the index-arena replacement for a hand-linked object graph: cycles
// are just numbers, and there is nothing for a GC to chase.
package cover

import "github.com/mbrown1415/polycube/internal/corerr"

// node is either a column header (row == -1) or a data node belonging to
// exactly one row and one column.
type node struct {
	left, right, up, down int32
	col                   int32 // owning column index, -1 for the main header
	row                   int32 // owning row id, -1 for header nodes
}

// column holds the occupancy bounds and live-node count for one column,
// plus the cursor/cursorStack pair used to stop a multi-use column from
// offering the same row twice across repeated selections in one search
// path.
type column[D any] struct {
	min, max, count int
	datum           D
	linked          bool

	// cursor overrides where row iteration starts for this column; -1
	// means "start at the column's true first row". cursorStack saves the
	// previous cursor across a recursive descent into one of the column's
	// rows, so backtracking restores it exactly.
	cursor      int32
	cursorStack []int32
}

// Solver runs generalized exact cover over a matrix with ranged columns.
// D is an opaque column datum the solver never inspects; a caller (such as
// the assembly reducer) instantiates it with whatever it needs to recover
// a row's meaning from a solution.
type Solver[D any] struct {
	nodes   []node
	columns []*column[D]
	rowHead []int32 // rowHead[r] = index of the first node in row r

	solutionRows []int32
	solutions    [][]int32

	solved bool
}

const mainHeader int32 = 0

// New constructs a solver over len(columnData) columns. The last nOptional
// columns start with min=0, max=1 (true optional columns); all others
// start required with min=1, max=1. Use SetColumnRange afterward to widen
// any column's bounds before adding rows.
func New[D any](columnData []D, nOptional int) *Solver[D] {
	n := len(columnData)
	s := &Solver[D]{
		nodes:   make([]node, n+1),
		columns: make([]*column[D], n),
	}
	s.nodes[mainHeader] = node{col: -1, row: -1, left: mainHeader, right: mainHeader}

	for i, datum := range columnData {
		hdr := int32(i + 1)
		s.nodes[hdr] = node{col: int32(i), row: -1, up: hdr, down: hdr}

		min, max := 1, 1
		if i >= n-nOptional {
			min, max = 0, 1
		}
		s.columns[i] = &column[D]{min: min, max: max, datum: datum, cursor: -1}
		if min > 0 {
			s.linkHeader(hdr)
		}
	}
	return s
}

// SetColumnRange sets the occupancy range for column i. Valid only before
// Solve. If min crosses zero upward the column rejoins the live header
// list; if it crosses downward it is unlinked.
func (s *Solver[D]) SetColumnRange(i, min, max int) error {
	if i < 0 || i >= len(s.columns) {
		return corerr.New(corerr.InputShape, "column index %d out of range [0,%d)", i, len(s.columns))
	}
	col := s.columns[i]
	wasLive := col.min > 0
	col.min, col.max = min, max
	nowLive := col.min > 0
	hdr := int32(i + 1)
	if nowLive && !wasLive {
		s.linkHeader(hdr)
	} else if !nowLive && wasLive {
		s.unlinkHeader(hdr)
	}
	return nil
}

// AddRow appends a row. mask must have one entry per column; mask[i] true
// places a 1 in column i.
func (s *Solver[D]) AddRow(mask []bool) error {
	if len(mask) != len(s.columns) {
		return corerr.New(corerr.InputShape, "row length %d does not match column count %d", len(mask), len(s.columns))
	}

	row := int32(len(s.rowHead))
	var first, prev int32 = -1, -1
	for i, on := range mask {
		if !on {
			continue
		}
		idx := int32(len(s.nodes))
		s.nodes = append(s.nodes, node{col: int32(i), row: row})
		s.insertVertical(idx, int32(i+1))
		if first == -1 {
			first = idx
			s.nodes[idx].left = idx
			s.nodes[idx].right = idx
		} else {
			s.nodes[idx].right = s.nodes[prev].right
			s.nodes[idx].left = prev
			s.nodes[s.nodes[prev].right].left = idx
			s.nodes[prev].right = idx
		}
		prev = idx
	}
	s.rowHead = append(s.rowHead, first)
	return nil
}

func (s *Solver[D]) insertVertical(idx, hdr int32) {
	h := &s.nodes[hdr]
	s.nodes[idx].down = hdr
	s.nodes[idx].up = h.up
	s.nodes[h.up].down = idx
	h.up = idx
	s.columns[s.nodes[hdr].col].count++
}

func (s *Solver[D]) linkHeader(hdr int32) {
	c := s.columns[s.nodes[hdr].col]
	if c.linked {
		return
	}
	mh := &s.nodes[mainHeader]
	s.nodes[hdr].left = mh.left
	s.nodes[hdr].right = mainHeader
	s.nodes[mh.left].right = hdr
	mh.left = hdr
	c.linked = true
}

func (s *Solver[D]) unlinkHeader(hdr int32) {
	c := s.columns[s.nodes[hdr].col]
	if !c.linked {
		return
	}
	h := &s.nodes[hdr]
	s.nodes[h.left].right = h.right
	s.nodes[h.right].left = h.left
	c.linked = false
}

// cover removes col's node from the live header list (if its minimum has
// been met) and, once its maximum is exhausted, splices every row passing
// through it out of every OTHER column so those rows can no longer be
// chosen via any other pivot.
func (s *Solver[D]) cover(colIdx int32) {
	c := s.columns[s.nodes[colIdx].col]
	c.min--
	c.max--
	if c.min <= 0 {
		s.unlinkHeader(colIdx)
	}
	if c.max > 0 {
		return
	}
	for i := s.nodes[colIdx].down; i != colIdx; i = s.nodes[i].down {
		for j := s.nodes[i].right; j != i; j = s.nodes[j].right {
			s.unlinkVertical(j)
		}
	}
}

// uncover is the exact inverse of cover.
func (s *Solver[D]) uncover(colIdx int32) {
	c := s.columns[s.nodes[colIdx].col]
	wasExhausted := c.max <= 0
	if wasExhausted {
		for i := s.nodes[colIdx].up; i != colIdx; i = s.nodes[i].up {
			for j := s.nodes[i].left; j != i; j = s.nodes[j].left {
				s.relinkVertical(j)
			}
		}
	}
	c.max++
	c.min++
	if c.min > 0 && !c.linked {
		// Reinsert between the neighbours unlinkHeader left in place, so
		// the live header order (and chooseColumn's tie-breaking) is
		// restored exactly.
		h := &s.nodes[colIdx]
		s.nodes[h.left].right = colIdx
		s.nodes[h.right].left = colIdx
		c.linked = true
	}
}

func (s *Solver[D]) unlinkVertical(idx int32) {
	n := &s.nodes[idx]
	s.nodes[n.up].down = n.down
	s.nodes[n.down].up = n.up
	s.columns[n.col].count--
}

func (s *Solver[D]) relinkVertical(idx int32) {
	n := &s.nodes[idx]
	s.nodes[n.up].down = idx
	s.nodes[n.down].up = idx
	s.columns[n.col].count++
}

// chooseColumn picks the live column with the smallest count, breaking
// ties by first-encountered.
func (s *Solver[D]) chooseColumn() int32 {
	best := s.nodes[mainHeader].right
	if best == mainHeader {
		return -1
	}
	bestCount := s.columns[s.nodes[best].col].count
	for c := s.nodes[best].right; c != mainHeader; c = s.nodes[c].right {
		count := s.columns[s.nodes[c].col].count
		if count < bestCount {
			best, bestCount = c, count
		}
	}
	return best
}

// rowStart returns the node to begin iterating col's rows from: the
// column's cursor override if set, otherwise its true first row.
func (s *Solver[D]) rowStart(colIdx int32) int32 {
	c := s.columns[s.nodes[colIdx].col]
	if c.cursor != -1 {
		return c.cursor
	}
	return s.nodes[colIdx].down
}

func (s *Solver[D]) pushCursor(colIdx, next int32) {
	c := s.columns[s.nodes[colIdx].col]
	c.cursorStack = append(c.cursorStack, c.cursor)
	c.cursor = next
}

func (s *Solver[D]) popCursor(colIdx int32) {
	c := s.columns[s.nodes[colIdx].col]
	n := len(c.cursorStack)
	c.cursor = c.cursorStack[n-1]
	c.cursorStack = c.cursorStack[:n-1]
}

// datumRow converts a chosen row id into the caller-facing list of column
// data it touches.
func (s *Solver[D]) datumRow(row int32) []D {
	first := s.rowHead[row]
	out := []D{s.columns[s.nodes[first].col].datum}
	for j := s.nodes[first].right; j != first; j = s.nodes[j].right {
		out = append(out, s.columns[s.nodes[j].col].datum)
	}
	return out
}

// Solve returns every exact cover of the matrix: a list of solutions,
// each a list of rows, each row reported as the list of its column data.
func (s *Solver[D]) Solve(opts *SolveOptions) ([][][]D, SolveStats) {
	if opts == nil {
		opts = DefaultSolveOptions()
	}
	stats := SolveStats{MatrixSize: s.matrixInfo()}
	s.search(0, opts, &stats)
	out := make([][][]D, len(s.solutions))
	for i, rows := range s.solutions {
		rowsOut := make([][]D, len(rows))
		for j, r := range rows {
			rowsOut[j] = s.datumRow(r)
		}
		out[i] = rowsOut
	}
	return out, stats
}

func (s *Solver[D]) search(depth int, opts *SolveOptions, stats *SolveStats) {
	stats.NodesVisited++

	if opts.MaxSolutions > 0 && len(s.solutions) >= opts.MaxSolutions {
		return
	}

	colIdx := s.chooseColumn()
	if colIdx == -1 {
		// Live header list is empty: every required column is satisfied.
		stats.SolutionsFound++
		solved := make([]int32, len(s.solutionRows))
		copy(solved, s.solutionRows)
		s.solutions = append(s.solutions, solved)
		return
	}

	s.cover(colIdx)

	total := s.columns[s.nodes[colIdx].col].count
	var tried int
	start := s.rowStart(colIdx)
	for r := start; r != colIdx; r = s.nodes[r].down {
		if opts.MaxSolutions > 0 && len(s.solutions) >= opts.MaxSolutions {
			break
		}

		if depth == 0 && opts.ProgressCallback != nil {
			fraction := 0.0
			if total > 0 {
				fraction = float64(tried) / float64(total)
			}
			opts.ProgressCallback(fraction, "")
			tried++
		}

		s.solutionRows = append(s.solutionRows, r)
		for j := s.nodes[r].right; j != r; j = s.nodes[j].right {
			s.cover(colHeaderOf(s, j))
		}

		reusable := s.columns[s.nodes[colIdx].col].max > 0
		if reusable {
			s.pushCursor(colIdx, s.nodes[r].down)
		}
		s.search(depth+1, opts, stats)
		if reusable {
			s.popCursor(colIdx)
		}

		for j := s.nodes[r].left; j != r; j = s.nodes[j].left {
			s.uncover(colHeaderOf(s, j))
		}
		s.solutionRows = s.solutionRows[:len(s.solutionRows)-1]
		stats.BacktrackCount++
	}

	s.uncover(colIdx)
}

// colHeaderOf returns the header node index for the column that node idx
// belongs to.
func colHeaderOf[D any](s *Solver[D], idx int32) int32 {
	return s.nodes[idx].col + 1
}

func (s *Solver[D]) matrixInfo() MatrixInfo {
	info := MatrixInfo{Columns: len(s.columns), Rows: len(s.rowHead)}
	total := 0
	for _, r := range s.rowHead {
		if r == -1 {
			continue
		}
		n := 1
		for j := s.nodes[r].right; j != r; j = s.nodes[j].right {
			n++
		}
		total += n
	}
	info.TotalNodes = total
	if info.Columns > 0 && info.Rows > 0 {
		info.Density = float64(total) / float64(info.Columns*info.Rows) * 100
	}
	return info
}
