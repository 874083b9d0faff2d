package game

// Evaluate scores the board from the player's perspective: ±100 once the game is over,
// otherwise material (kings weigh double) plus the player's pieces in enemy territory.
func (b Board) Evaluate(player Player) int {
	if over, winner := b.IsTerminal(); over {
		if winner == player {
			return WinScore
		}
		return LossScore
	}

	enemy := player.Opponent()
	material := b.PieceCount(player) + 2*b.KingCount(player) -
		b.PieceCount(enemy) - 2*b.KingCount(enemy)
	return material + b.TerritoryCount(player)
}

// EvaluateMaterial is Board.Evaluate as an Evaluate function
func EvaluateMaterial(b Board, player Player) int {
	return b.Evaluate(player)
}

// EvaluateAdvancement extends the material evaluation with a bonus for men still guarding
// the home row, which keeps the opponent from promoting cheaply.
func EvaluateAdvancement(b Board, player Player) int {
	score := b.Evaluate(player)
	if score == WinScore || score == LossScore {
		return score
	}
	return score + b.BackRowCount(player) - b.BackRowCount(player.Opponent())
}

// TerritoryCount is the number of the player's pieces strictly on the opponent's half
func (b Board) TerritoryCount(player Player) int {
	count := 0
	for _, piece := range b.PiecesOf(player) {
		if player == Agent && piece.Row < Size/2 {
			count++
		}
		if player == Opponent && piece.Row >= Size/2 {
			count++
		}
	}
	return count
}

// BackRowCount is the number of the player's men still on its own back row
func (b Board) BackRowCount(player Player) int {
	row := player.backRow()
	count := 0
	for col := 0; col < Size; col++ {
		if b.grid[row][col] == int8(player)*man {
			count++
		}
	}
	return count
}
