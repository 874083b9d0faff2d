package searcher

import (
	"github.com/cespare/xxhash"

	"checkers/game"
)

const noParent = -1

// node is one state snapshot in the tree. Children are indices into the owning arena.
type node struct {
	state    game.Board
	action   game.Action // Move that produced state; NoAction for a fresh root
	parent   int
	children []int
	untried  []game.Action // Legal moves of the side to move not yet expanded
	legal    int           // Legal move count when created
	visits   int
	score    float64 // Sum of backed up rollout values
	key      uint64
}

func (n *node) isFullyExpanded() bool {
	return len(n.untried) == 0
}

// tree is an arena of nodes plus a registry from state keys to the nodes holding them
type tree struct {
	nodes    []node
	registry map[uint64][]int
	root     int
}

func newTree() *tree {
	return &tree{registry: map[uint64][]int{}, root: noParent}
}

func (t *tree) size() int {
	return len(t.nodes)
}

// reset drops every node and plants a fresh root for state
func (t *tree) reset(state game.Board) {
	t.nodes = t.nodes[:0]
	clear(t.registry)
	t.root = t.add(state, game.NoAction, noParent)
}

// add appends a node and links it under parent, returning its index
func (t *tree) add(state game.Board, action game.Action, parent int) int {
	untried := state.AllLegalMoves(state.Turn())
	index := len(t.nodes)
	t.nodes = append(t.nodes, node{
		state:   state,
		action:  action,
		parent:  parent,
		untried: untried,
		legal:   len(untried),
		key:     stateKey(state),
	})
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, index)
	}
	t.registry[t.nodes[index].key] = append(t.registry[t.nodes[index].key], index)
	return index
}

// lookup finds a node holding the same grid and side to move. Among transpositions the most
// visited node wins.
func (t *tree) lookup(state game.Board) (int, bool) {
	found := noParent
	for _, index := range t.registry[stateKey(state)] {
		n := &t.nodes[index]
		if n.state.Grid() != state.Grid() || n.state.Turn() != state.Turn() {
			continue
		}
		if found == noParent || n.visits > t.nodes[found].visits {
			found = index
		}
	}
	return found, found != noParent
}

// reroot detaches index from its parent and releases every node it cannot reach
func (t *tree) reroot(index int) {
	t.nodes[index].parent = noParent
	t.compact(index)
}

// compact rebuilds the arena with only the subtree under root, renumbered breadth first
func (t *tree) compact(root int) {
	remap := map[int]int{root: 0}
	order := []int{root}
	for i := 0; i < len(order); i++ {
		for _, child := range t.nodes[order[i]].children {
			remap[child] = len(order)
			order = append(order, child)
		}
	}

	nodes := make([]node, 0, len(order))
	clear(t.registry)
	for _, old := range order {
		n := t.nodes[old]
		if n.parent != noParent {
			n.parent = remap[n.parent]
		}
		children := make([]int, len(n.children))
		for i, child := range n.children {
			children[i] = remap[child]
		}
		n.children = children
		t.registry[n.key] = append(t.registry[n.key], len(nodes))
		nodes = append(nodes, n)
	}
	t.nodes = nodes
	t.root = 0
}

// path lists node indices from index up to and including the root
func (t *tree) path(index int) []int {
	var path []int
	for index != noParent {
		path = append(path, index)
		index = t.nodes[index].parent
	}
	return path
}

// stateKey hashes the grid and the side to move
func stateKey(b game.Board) uint64 {
	var buf [game.Size*game.Size + 1]byte
	grid := b.Grid()
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			buf[row*game.Size+col] = byte(grid[row][col])
		}
	}
	buf[len(buf)-1] = byte(b.Turn())
	return xxhash.Sum64(buf[:])
}
