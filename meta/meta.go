// meta/meta.go
package meta

// DEPTH defines the default multimax search depth in half-moves.
const DEPTH = 2

// GAMES defines the number of games a run plays.
const GAMES = 10

// PURSUERS defines how many pursuers are placed by default.
const PURSUERS = 1

// MAX_MOVES caps the number of half-moves in one game.
const MAX_MOVES = 1000

// LAYOUT is the built-in layout played by default.
const LAYOUT = "mediumArena"

// ADDR is the default listen address of the agent server.
const ADDR = ":8080"
