// meta/meta.go
package meta

// DEPTH defines the default search depth for minimax and alpha-beta.
const DEPTH = 3

// ITERATIONS defines the default number of MCTS iterations per move.
const ITERATIONS = 5

// HORIZON defines the default rollout length in plies.
const HORIZON = 10

// MAX_TURNS defines the number of turns after which a game is a draw.
const MAX_TURNS = 200

// NUM_GAMES defines the number of games per match up.
const NUM_GAMES = 10

// PARALLELISM defines how many games a tournament plays at once.
const PARALLELISM = 4
