// Package disassembler searches the rigid-move state space of a placed
// assembly breadth-first, merging identical sub-assemblies reached by
// different paths into a shared-subtree DAG, then extracts concrete
// disassembly sequences from it.
//
// Movement enumeration is restricted to one piece at a time (see
// movement.go); a rigidly-locked multi-piece subset move is a real
// extension this core does not attempt, since the general subset-move
// search is exponential in piece count and no test scenario in scope
// requires it.
package disassembler

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/mbrown1415/polycube/internal/assembly"
	"github.com/mbrown1415/polycube/internal/corerr"
	"github.com/mbrown1415/polycube/internal/grid"
)

// Step is one move in a concrete disassembly sequence.
type Step struct {
	MovedPieces []string
	Transform   grid.Transform
	Repeat      int
	Separates   bool
}

// Disassembly is an ordered sequence of steps that fully takes an
// assembly apart into singleton pieces.
type Disassembly struct {
	Steps []Step
}

// Options configures a Disassemble call.
type Options struct {
	// FindAll searches for every disassembly instead of stopping at the
	// first one that solves the root.
	FindAll bool
	ProgressCallback func(fraction float64, message string)
	LogCallback      func(message string)
}

// noChild is the empty-string sentinel recorded in a move vertex's
// "children" entry for a leaf: a singleton piece needing no further
// disassembly.
const noChild = ""

// Disassembler runs one breadth-first search over an assembly's rigid
// moves, storing the state/move DAG directly in a lvlath core.Graph:
// every state (an equivalence class of placed sub-assembly) and every
// kept move is a core.Vertex, with the move's Metadata carrying the
// movement and up to two child state IDs, and a plain directed edge
// state->move->child for each. It is single-use: calling Disassemble
// twice fails.
type Disassembler struct {
	g          grid.Grid
	initial    []assembly.Placement
	graph      *core.Graph
	vertexByID map[string]*core.Vertex
	byHash     map[string]string
	stateCount int
	moveCount  int
	opts       Options
	used       bool
}

// New constructs a Disassembler for the given grid and the placements
// making up the assembly to take apart.
func New(g grid.Grid, placements []assembly.Placement, opts Options) *Disassembler {
	return &Disassembler{
		g:          g,
		initial:    placements,
		graph:      core.NewGraph(true, false),
		vertexByID: map[string]*core.Vertex{},
		byHash:     map[string]string{},
		opts:       opts,
	}
}

// Disassemble runs the search and returns every disassembly found (one,
// if Options.FindAll is false and a solution exists). If the assembly
// can never be fully taken apart, it returns an empty list, not an
// error.
func (d *Disassembler) Disassemble() ([]Disassembly, error) {
	if d.used {
		return nil, corerr.New(corerr.Reuse, "disassembler already invoked")
	}
	d.used = true

	rootHash := canonicalHash(d.g, d.initial)
	rootID := d.internNode(rootHash, 0, d.initial)

	queue := []string{rootID}
	processed := 0
	for len(queue) > 0 {
		stateID := queue[0]
		queue = queue[1:]
		state := d.vertexByID[stateID]
		placements := state.Metadata["placements"].([]assembly.Placement)
		depth := state.Metadata["depth"].(int)
		processed++

		if d.opts.ProgressCallback != nil {
			total := processed + len(queue) + 1
			d.opts.ProgressCallback(float64(processed)/float64(total), "")
		}

		moves := legalMovements(d.g, placements)
		kept := applySeparationShortcut(moves)

		for _, mv := range kept {
			parts := splitByMovement(d.g, placements, mv)

			children := [2]string{noChild, noChild}
			for pi, part := range parts {
				if len(part) == 1 {
					continue
				}
				h := canonicalHash(d.g, part)
				if existing, ok := d.byHash[h]; ok {
					children[pi] = existing
					continue
				}
				children[pi] = d.internNode(h, depth+1, part)
				queue = append(queue, children[pi])
			}

			if d.hasMoveEdge(stateID, children) {
				continue
			}
			if d.prunes(depth, children) {
				continue
			}

			moveID := fmt.Sprintf("move-%d", d.moveCount)
			d.moveCount++
			moveVertex := &core.Vertex{ID: moveID, Metadata: map[string]interface{}{
				"movedPieces": mv.MovedPieces,
				"transform":   mv.Transform,
				"repeat":      mv.Repeat,
				"separates":   mv.Separates,
				"children":    children,
				"from":        stateID,
			}}
			d.graph.AddVertex(moveVertex)
			d.vertexByID[moveID] = moveVertex
			d.graph.AddEdge(stateID, moveID, 0)
			for _, c := range children {
				if c != noChild {
					d.graph.AddEdge(moveID, c, 0)
				}
			}

			if d.edgeIsSolving(moveVertex) {
				d.propagateSolved(stateID)
				if d.vertexByID[rootID].Metadata["solved"].(bool) && !d.opts.FindAll {
					queue = nil
					break
				}
			}
		}
	}

	if !d.vertexByID[rootID].Metadata["solved"].(bool) {
		return nil, nil
	}

	var out []Disassembly
	d.extract([]string{rootID}, nil, &out)
	return out, nil
}

// internNode allocates a fresh state vertex for hash/depth/placements
// and returns its ID.
func (d *Disassembler) internNode(hash string, depth int, placements []assembly.Placement) string {
	id := fmt.Sprintf("state-%d", d.stateCount)
	d.stateCount++
	v := &core.Vertex{ID: id, Metadata: map[string]interface{}{
		"depth":      depth,
		"solved":     false,
		"placements": placements,
	}}
	d.graph.AddVertex(v)
	d.vertexByID[id] = v
	d.byHash[hash] = id
	return id
}

// hasMoveEdge reports whether stateID already has an outgoing move
// vertex whose children match, order-independent.
func (d *Disassembler) hasMoveEdge(stateID string, children [2]string) bool {
	for _, mv := range d.graph.Neighbors(stateID) {
		if sameChildren(mv.Metadata["children"].([2]string), children) {
			return true
		}
	}
	return false
}

func sameChildren(a, b [2]string) bool {
	return (a[0] == b[0] && a[1] == b[1]) || (a[0] == b[1] && a[1] == b[0])
}

// prunes reports whether a move to children should be discarded: any
// non-leaf child whose depth is not greater than the parent's own depth
// cannot contribute to a shorter disassembly.
func (d *Disassembler) prunes(depth int, children [2]string) bool {
	for _, c := range children {
		if c != noChild && d.vertexByID[c].Metadata["depth"].(int) <= depth {
			return true
		}
	}
	return false
}

// edgeIsSolving reports whether every non-leaf child of mv is itself
// already solved, making mv a move that fully resolves its parent state.
func (d *Disassembler) edgeIsSolving(mv *core.Vertex) bool {
	children := mv.Metadata["children"].([2]string)
	for _, c := range children {
		if c != noChild && !d.vertexByID[c].Metadata["solved"].(bool) {
			return false
		}
	}
	return true
}

// parentsOf returns the state IDs with a move vertex leading to stateID.
// lvlath's core.Graph exposes only forward neighbors, so finding a
// state's parents means scanning every edge for one landing on it and
// reading the originating move vertex's "from" field, rather than
// looking up a reverse index the library doesn't provide.
func (d *Disassembler) parentsOf(stateID string) []string {
	var parents []string
	for _, e := range d.graph.Edges() {
		if e.To.ID == stateID {
			if from, ok := e.From.Metadata["from"].(string); ok {
				parents = append(parents, from)
			}
		}
	}
	return parents
}

// propagateSolved recomputes the solved flag of stateID and, whenever it
// flips to true, propagates to every parent found via parentsOf. A state
// may have multiple parents since equivalent sub-assemblies reached by
// different paths share one vertex.
func (d *Disassembler) propagateSolved(stateID string) {
	queue := []string{stateID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		v := d.vertexByID[id]
		if v.Metadata["solved"].(bool) {
			continue
		}
		solved := false
		for _, mv := range d.graph.Neighbors(id) {
			if d.edgeIsSolving(mv) {
				solved = true
				break
			}
		}
		if !solved {
			continue
		}
		v.Metadata["solved"] = true
		queue = append(queue, d.parentsOf(id)...)
	}
}

// splitByMovement applies mv's transform to the moved piece and
// partitions the resulting placements into one or two spatially
// independent groups.
func splitByMovement(g grid.Grid, placements []assembly.Placement, mv Movement) [][]assembly.Placement {
	moved := make([]assembly.Placement, len(placements))
	var movedVoxels []grid.Voxel
	for i, p := range placements {
		if p.Instance.ID() == mv.MovedPieces[0] {
			newTransform := composeTranslation(p.Transform, mv.Transform.Translation)
			moved[i] = assembly.Placement{Instance: p.Instance, Transform: newTransform}
			movedVoxels = append(movedVoxels, moved[i].Voxels(g)...)
		} else {
			moved[i] = p
		}
	}

	if !mv.Separates {
		return [][]assembly.Placement{moved}
	}

	var movedGroup, restGroup []assembly.Placement
	for _, p := range moved {
		if p.Instance.ID() == mv.MovedPieces[0] {
			movedGroup = append(movedGroup, p)
			continue
		}
		restGroup = append(restGroup, p)
	}
	var out [][]assembly.Placement
	if len(movedGroup) > 0 {
		out = append(out, movedGroup)
	}
	if len(restGroup) > 0 {
		out = append(out, restGroup)
	}
	return out
}

func composeTranslation(t grid.Transform, delta grid.Voxel) grid.Transform {
	return grid.Transform{Rotation: t.Rotation, Translation: t.Translation.Add(delta)}
}

// canonicalHash computes the canonical placement hash: sort pieces by
// identity, translate all to a canonical origin, serialize piece
// identities paired with their transformed voxel sets.
func canonicalHash(g grid.Grid, placements []assembly.Placement) string {
	if len(placements) == 0 {
		return ""
	}
	var allVoxels []grid.Voxel
	for _, p := range placements {
		allVoxels = append(allVoxels, p.Voxels(g)...)
	}
	originTr := g.OriginTranslation(allVoxels)

	type entry struct {
		id     string
		voxels []grid.Voxel
	}
	entries := make([]entry, len(placements))
	for i, p := range placements {
		entries[i] = entry{id: p.Instance.ID(), voxels: g.Apply(originTr, p.Voxels(g))}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	var b []byte
	for _, e := range entries {
		b = append(b, e.id...)
		b = append(b, ':')
		b = append(b, grid.Key(e.voxels)...)
		b = append(b, '|')
	}
	return string(b)
}
