// meta/meta.go
package meta

// SearchDepth is the default number of plies searched per move.
const SearchDepth = 4

// MoveLimit is the default number of moves each side may play before the game
// is drawn.
const MoveLimit = 100

// NumGames is the default number of games per matchup.
const NumGames = 10

// OutputDir is where experiment results are written.
const OutputDir = "results"
