package game

import (
	"errors"
	"fmt"
)

// Size is the number of rows and columns of the board
const Size = 6

// Scores saturate at WinScore/LossScore on terminal states
const (
	WinScore  = 100
	LossScore = -WinScore
)

// ErrIllegalMove is returned by Apply (and CopyWithMove) when the requested move is not
// currently legal for the piece. The board is left untouched.
var ErrIllegalMove = errors.New("illegal move")

// Player identifies a side. Its sign matches the sign of that side's pieces on the grid.
type Player int8

const (
	NoPlayer Player = 0
	Agent    Player = 1  // Starts on rows 4-5 and moves north
	Opponent Player = -1 // Starts on rows 0-1 and moves south
)

func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case Agent:
		return "agent"
	case Opponent:
		return "opponent"
	default:
		return "none"
	}
}

func (p Player) index() int {
	if p == Agent {
		return 0
	}
	return 1
}

// backRow is the row a player's men start from; the opponent's back row is where they promote
func (p Player) backRow() int {
	if p == Agent {
		return Size - 1
	}
	return 0
}

// Coord is a (row, col) location on the grid
type Coord struct {
	Row int
	Col int
}

// NoCoord is the null piece location paired with NoMove
var NoCoord = Coord{Row: -1, Col: -1}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Coord) step(d Direction) Coord {
	switch d {
	case NorthEast:
		return Coord{c.Row - 1, c.Col + 1}
	case NorthWest:
		return Coord{c.Row - 1, c.Col - 1}
	case SouthEast:
		return Coord{c.Row + 1, c.Col + 1}
	case SouthWest:
		return Coord{c.Row + 1, c.Col - 1}
	}
	return NoCoord
}

// Direction is one of the four diagonals
type Direction int8

const (
	NoDirection Direction = iota
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var directionNames = [...]string{"none", "northeast", "northwest", "southeast", "southwest"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

var (
	northward = []Direction{NorthEast, NorthWest}
	southward = []Direction{SouthEast, SouthWest}
	allwards  = []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
)

// Move is a direction plus whether it jumps (captures) an enemy piece
type Move struct {
	Direction Direction
	Jump      bool
}

// NoMove is the null move returned when nothing could be selected
var NoMove = Move{}

func (m Move) IsNull() bool {
	return m.Direction == NoDirection
}

// Action pairs a move with the location of the piece making it
type Action struct {
	Piece Coord
	Move  Move
}

// NoAction is the null (move, piece) pair
var NoAction = Action{Piece: NoCoord, Move: NoMove}

func (a Action) IsNull() bool {
	return a.Move.IsNull()
}

// Rand is the randomness source used by the random move helpers
type Rand interface {
	Intn(n int) int
}

// Evaluate scores a board from the given player's perspective
type Evaluate func(b Board, player Player) int
