package searcher

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"checkers/experiments/metrics"
	"checkers/game"
)

type Option func(mcts *MCTS)

// MCTS searches on behalf of one player and keeps its tree between decisions of a game
type MCTS struct {
	exploration float64
	horizon     int
	maxNodes    int // 0 is unbounded
	rng         *rand.Rand
	evaluate    game.Evaluate
	rules       *game.Rules // Overrides the rules of searched states when set
	owner       game.Player
	tree        *tree
	metrics     metrics.Collector
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithHorizon(plies int) Option {
	return func(m *MCTS) {
		if plies > 0 {
			m.horizon = plies
		}
	}
}

func WithMaxNodes(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.maxNodes = n
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithSource(src rand.Source) Option {
	return func(m *MCTS) {
		if src != nil {
			m.rng = rand.New(src)
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(m *MCTS) {
		m.rules = &rules
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: Exploration,
		horizon:     RolloutHorizon,
		evaluate:    game.EvaluateMaterial,
		owner:       game.NoPlayer,
		tree:        newTree(),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search runs iterations select/expand/simulate/backup episodes from state with player to
// move and returns the best root action, or NoAction when player has no legal move.
func (m *MCTS) Search(state game.Board, player game.Player, iterations int) (game.Action, metrics.SearchMetric) {
	if player != game.Agent && player != game.Opponent {
		panic("MCTS must search for the agent or the opponent")
	}
	if m.rules != nil {
		rebuilt, err := game.NewBoardFromGrid(state.Grid(), player, *m.rules)
		if err != nil {
			panic(err)
		}
		state = rebuilt
	}
	state = state.WithTurn(player)

	m.metrics.Start(metrics.AlgorithmMCTS, iterations)
	m.findRoot(state, player)
	for i := 0; i < iterations; i++ {
		m.simulate()
		m.metrics.AddEpisode()
	}
	m.metrics.SetNodes(m.tree.size())
	metric := m.metrics.Complete()

	return m.decide(), metric
}

// Nodes reports the number of nodes currently held by the tree
func (m *MCTS) Nodes() int {
	return m.tree.size()
}

func (m *MCTS) findRoot(state game.Board, player game.Player) {
	if m.owner != player {
		if m.owner != game.NoPlayer {
			log.Debug().Msgf("mcts owner changed from %s to %s, discarding tree", m.owner, player)
		}
		m.owner = player
		m.tree.reset(state)
		m.metrics.SetTreeReset(true)
		return
	}

	index, ok := m.tree.lookup(state)
	if !ok {
		log.Debug().Int("nodes", m.tree.size()).Msg("state not in tree, resetting")
		m.tree.reset(state)
		m.metrics.SetTreeReset(true)
		return
	}

	before := m.tree.size()
	m.tree.reroot(index)
	m.metrics.SetTreeReset(false)
	log.Debug().
		Int("visits", m.tree.nodes[m.tree.root].visits).
		Int("released", before-m.tree.size()).
		Msg("reusing subtree")
}

func (m *MCTS) simulate() {
	leaf := m.selectThenExpand()
	value := m.rollout(m.tree.nodes[leaf].state)
	m.backup(leaf, value)
}

// selectThenExpand descends through fully expanded nodes by UCB1 and expands the first node
// with an untried move. It stops early on terminal states and when the node cap is reached.
func (m *MCTS) selectThenExpand() int {
	index := m.tree.root
	for {
		n := &m.tree.nodes[index]
		if over, _ := n.state.IsTerminal(); over {
			return index
		}
		if !n.isFullyExpanded() {
			if m.maxNodes > 0 && m.tree.size() >= m.maxNodes {
				return index
			}
			return m.expand(index)
		}
		if len(n.children) == 0 {
			return index
		}
		index = m.tree.bestChild(index, m.exploration)
	}
}

// expand materializes one untried move of parent, chosen uniformly
func (m *MCTS) expand(parent int) int {
	untried := m.tree.nodes[parent].untried
	i := m.rng.Intn(len(untried))
	action := untried[i]
	untried[i] = untried[len(untried)-1]
	m.tree.nodes[parent].untried = untried[:len(untried)-1]

	state := play(m.tree.nodes[parent].state, action)
	return m.tree.add(state, action, parent)
}

// rollout plays uniformly random moves for at most horizon plies and scores the result for
// the owner
func (m *MCTS) rollout(state game.Board) float64 {
	for depth := 0; depth < m.horizon; depth++ {
		if over, _ := state.IsTerminal(); over {
			break
		}
		action, ok := state.RandomMove(state.Turn(), m.rng)
		if !ok {
			break
		}
		state = play(state, action)
	}

	if over, _ := state.IsTerminal(); over {
		m.metrics.AddFullPlayout()
	}
	return float64(m.evaluate(state, m.owner))
}

func (m *MCTS) backup(leaf int, value float64) {
	for _, index := range m.tree.path(leaf) {
		m.tree.nodes[index].visits++
		m.tree.nodes[index].score += value
	}
}

func (m *MCTS) decide() game.Action {
	best := m.tree.bestChild(m.tree.root, m.exploration)
	if best == noParent {
		return game.NoAction
	}
	return m.tree.nodes[best].action
}
