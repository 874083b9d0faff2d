package searcher

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// Dot renders the tree below the current root, down to depth plies, as a Graphviz digraph
func (m *MCTS) Dot(depth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if m.tree.size() == 0 {
		return g.String(), nil
	}

	type entry struct {
		index, depth int
	}
	queue := []entry{{m.tree.root, 0}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		n := &m.tree.nodes[e.index]
		label := fmt.Sprintf("%s\nn=%d q=%g", n.state.Turn(), n.visits, n.score)
		if !n.action.IsNull() {
			label = fmt.Sprintf("%s %s\n%s", n.action.Piece, n.action.Move.Direction, label)
		}
		err := g.AddNode("mcts", dotName(e.index), map[string]string{
			"label": strconv.Quote(label),
		})
		if err != nil {
			return "", err
		}
		if n.parent != noParent && e.depth > 0 {
			if err := g.AddEdge(dotName(n.parent), dotName(e.index), true, nil); err != nil {
				return "", err
			}
		}

		if e.depth >= depth {
			continue
		}
		for _, child := range n.children {
			queue = append(queue, entry{child, e.depth + 1})
		}
	}
	return g.String(), nil
}

func dotName(index int) string {
	return "n" + strconv.Itoa(index)
}
