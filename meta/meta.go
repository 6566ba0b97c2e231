// meta/meta.go
package meta

// START_SHEEP is the size of the stack each player places in the start phase.
const START_SHEEP = 16

// DEFAULT_DEPTH is the alpha-beta search depth in plies.
const DEFAULT_DEPTH = 4

// MAX_TURNS caps the number of turns in a self-play game.
const MAX_TURNS = 300

// PLAYERS is the number of seats in a game.
const PLAYERS = 2

// MAX_DEPTH bounds the search depth a turn request may ask for.
const MAX_DEPTH = 8
