package searcher

import (
	"math"

	"checkers/meta"
)

// Hyperparameters for MCTS

const Exploration = 2.0 // Default exploration constant

const RolloutHorizon = meta.HORIZON // Default rollout length in plies

// ucb1 scores a child for selection. Unvisited children score +Inf. The exploitation term is
// the mean score of the child's visited children, or the child's own score when none are.
func (t *tree) ucb1(child int, c float64) float64 {
	n := &t.nodes[child]
	if n.visits == 0 {
		return math.Inf(1)
	}
	if n.parent == noParent {
		panic("cannot compute UCB1: node has no parent")
	}

	parentVisits := float64(t.nodes[n.parent].visits)
	return t.average(child) + c*math.Sqrt(math.Log(parentVisits)/float64(n.visits))
}

func (t *tree) average(index int) float64 {
	sum, count := 0.0, 0
	for _, child := range t.nodes[index].children {
		if t.nodes[child].visits == 0 {
			continue
		}
		sum += t.nodes[child].score
		count++
	}
	if count == 0 {
		return t.nodes[index].score
	}
	return sum / float64(count)
}

// bestChild returns the highest scoring child, the first unvisited one if any, or noParent
// for a childless node. Ties keep the earlier child.
func (t *tree) bestChild(parent int, c float64) int {
	best := noParent
	bestScore := math.Inf(-1)
	for _, child := range t.nodes[parent].children {
		score := t.ucb1(child, c)
		if math.IsInf(score, 1) {
			return child
		}
		if best == noParent || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}
