package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Grid holds one cell per square: 0 is empty, ±1 a man, ±2 a king. The sign is the owner.
type Grid [Size][Size]int8

const (
	man  = 1
	king = 2
)

// InitialLayout returns the starting position: six men per side on alternating columns
func InitialLayout() Grid {
	var g Grid
	for col := 0; col < Size; col++ {
		if col%2 == 1 {
			g[0][col] = -man
			g[Size-2][col] = man
		} else {
			g[1][col] = -man
			g[Size-1][col] = man
		}
	}
	return g
}

// Board is the full game state. It is a value type: assigning a Board copies it, and only
// Apply mutates one. Search code explores hypothetical lines through CopyWithMove.
type Board struct {
	grid   Grid
	turn   Player // Side to move
	pieces [2]int // Men and kings per player, indexed by Player.index()
	kings  [2]int
	rules  Rules
}

// NewBoard returns the initial position with the agent to move
func NewBoard(rules Rules) Board {
	b, err := NewBoardFromGrid(InitialLayout(), Agent, rules)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromGrid builds an arbitrary position. Counters are derived from the grid.
func NewBoardFromGrid(grid Grid, turn Player, rules Rules) (Board, error) {
	if turn != Agent && turn != Opponent {
		return Board{}, fmt.Errorf("invalid side to move %d", turn)
	}
	b := Board{grid: grid, turn: turn, rules: rules}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			cell := grid[row][col]
			if cell == 0 {
				continue
			}
			if abs(cell) > king {
				return Board{}, fmt.Errorf("invalid cell value %d at (%d,%d)", cell, row, col)
			}
			owner := Player(sign(cell))
			b.pieces[owner.index()]++
			if abs(cell) == king {
				b.kings[owner.index()]++
			}
		}
	}
	return b, nil
}

func (b Board) Grid() Grid {
	return b.grid
}

func (b Board) Turn() Player {
	return b.turn
}

func (b Board) Rules() Rules {
	return b.rules
}

// WithTurn returns a copy of the board with the given side to move
func (b Board) WithTurn(player Player) Board {
	b.turn = player
	return b
}

func (b Board) PieceCount(player Player) int {
	return b.pieces[player.index()]
}

func (b Board) KingCount(player Player) int {
	return b.kings[player.index()]
}

// At returns the raw cell value, or 0 off the board
func (b Board) At(c Coord) int8 {
	if !c.InBounds() {
		return 0
	}
	return b.grid[c.Row][c.Col]
}

func (b Board) IsKing(c Coord) bool {
	return abs(b.At(c)) == king
}

// Owner returns the player whose piece occupies c, or NoPlayer
func (b Board) Owner(c Coord) Player {
	return Player(sign(b.At(c)))
}

// PiecesOf lists the locations of a player's men and kings in row-major order
func (b Board) PiecesOf(player Player) []Coord {
	if player == NoPlayer {
		return nil
	}
	pieces := make([]Coord, 0, b.PieceCount(player))
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if Player(sign(b.grid[row][col])) == player {
				pieces = append(pieces, Coord{row, col})
			}
		}
	}
	return pieces
}

// LegalMoves returns the moves available to the piece at loc. An empty cell has none.
func (b Board) LegalMoves(loc Coord) []Move {
	moves := b.pieceMoves(loc)
	if len(moves) == 0 || b.rules.Capture != CapturesMandatory {
		return moves
	}
	if !b.canCapture(b.Owner(loc)) {
		return moves
	}
	return lo.Filter(moves, func(m Move, _ int) bool { return m.Jump })
}

// AllLegalMoves returns every legal move of the player, paired with its piece
func (b Board) AllLegalMoves(player Player) []Action {
	var actions []Action
	for _, piece := range b.PiecesOf(player) {
		for _, move := range b.pieceMoves(piece) {
			actions = append(actions, Action{Piece: piece, Move: move})
		}
	}
	if b.rules.Capture == CapturesMandatory && lo.SomeBy(actions, isCapture) {
		actions = lo.Filter(actions, func(a Action, _ int) bool { return a.Move.Jump })
	}
	return actions
}

// HasMoves reports whether the player has at least one legal move
func (b Board) HasMoves(player Player) bool {
	for _, piece := range b.PiecesOf(player) {
		if len(b.pieceMoves(piece)) > 0 {
			return true
		}
	}
	return false
}

func isCapture(a Action) bool {
	return a.Move.Jump
}

func (b Board) canCapture(player Player) bool {
	for _, piece := range b.PiecesOf(player) {
		if lo.SomeBy(b.pieceMoves(piece), func(m Move) bool { return m.Jump }) {
			return true
		}
	}
	return false
}

// pieceMoves generates moves for one piece without the mandatory capture filter
func (b Board) pieceMoves(loc Coord) []Move {
	cell := b.At(loc)
	if cell == 0 {
		return nil
	}
	owner := Player(sign(cell))

	var moves []Move
	for _, d := range b.directions(loc) {
		next := loc.step(d)
		if !next.InBounds() {
			continue
		}
		target := b.At(next)
		switch {
		case target == 0:
			moves = append(moves, Move{Direction: d})
		case Player(sign(target)) == owner:
			// Blocked by an allied piece
		default:
			landing := next.step(d)
			if landing.InBounds() && b.At(landing) == 0 {
				moves = append(moves, Move{Direction: d, Jump: true})
			}
		}
	}
	return moves
}

func (b Board) directions(loc Coord) []Direction {
	cell := b.At(loc)
	switch {
	case abs(cell) == king:
		return allwards
	case cell > 0:
		return northward
	default:
		return southward
	}
}

// Apply plays a move for the piece at loc in place. An illegal request returns an error
// wrapping ErrIllegalMove and leaves the board unchanged. On success the mover's opponent
// is to move next.
func (b *Board) Apply(loc Coord, move Move) error {
	if !lo.Contains(b.LegalMoves(loc), move) {
		return fmt.Errorf("%w: %s (jump=%t) from %s", ErrIllegalMove, move.Direction, move.Jump, loc)
	}

	mover := b.Owner(loc)
	enemy := mover.Opponent()
	piece := b.At(loc)
	dest := loc.step(move.Direction)
	if move.Jump {
		if abs(b.At(dest)) == king {
			b.kings[enemy.index()]--
		}
		b.pieces[enemy.index()]--
		b.set(dest, 0)
		dest = dest.step(move.Direction)
	}
	b.set(loc, 0)
	b.set(dest, piece)

	// Promote men reaching the opponent's back row
	if abs(piece) == man && dest.Row == enemy.backRow() {
		b.set(dest, piece*king)
		b.kings[mover.index()]++
	}

	b.turn = enemy
	return nil
}

// CopyWithMove returns an independent board with the move applied. The receiver is never
// modified; on error the returned board equals the receiver.
func (b Board) CopyWithMove(loc Coord, move Move) (Board, error) {
	next := b
	if err := next.Apply(loc, move); err != nil {
		return b, err
	}
	return next, nil
}

// IsTerminal reports whether the game is over and who won. A player without pieces loses,
// as does the side to move when it has no legal move.
func (b Board) IsTerminal() (bool, Player) {
	if b.PieceCount(Agent) == 0 {
		return true, Opponent
	}
	if b.PieceCount(Opponent) == 0 {
		return true, Agent
	}
	if !b.HasMoves(b.turn) {
		return true, b.turn.Opponent()
	}
	return false, NoPlayer
}

// RandomMove picks one of the player's legal moves uniformly. ok is false when none exist.
func (b Board) RandomMove(player Player, rng Rand) (action Action, ok bool) {
	actions := b.AllLegalMoves(player)
	if len(actions) == 0 {
		return NoAction, false
	}
	return actions[rng.Intn(len(actions))], true
}

// FirstMove returns the first legal move in scan order. ok is false when none exist.
func (b Board) FirstMove(player Player) (action Action, ok bool) {
	actions := b.AllLegalMoves(player)
	if len(actions) == 0 {
		return NoAction, false
	}
	return actions[0], true
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d", row)
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(glyph(b.grid[row][col]))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "to move: %s", b.turn)
	return sb.String()
}

func glyph(cell int8) byte {
	switch cell {
	case man:
		return 'a'
	case king:
		return 'A'
	case -man:
		return 'o'
	case -king:
		return 'O'
	}
	return '.'
}

func (b *Board) set(c Coord, value int8) {
	b.grid[c.Row][c.Col] = value
}

func sign(v int8) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}
