// meta/meta.go
package meta

// DEFAULT_PITS defines the number of pits per side.
const DEFAULT_PITS = 6

// DEFAULT_STONES defines the number of stones in each pit at the start.
const DEFAULT_STONES = 4

// MAX_TURNS bounds the number of moves in a single game.
const MAX_TURNS = 1000

// SOLVER_NODE_LIMIT caps the positions a single solve may expand, roughly two seconds of search.
const SOLVER_NODE_LIMIT = 2_000_000

// SOLVER_MAX_STONES maps a pit count to the most unbanked stones a solve is attempted for.
// Boards with other pit counts are never solved.
//
// Nodes expanded from uniform starting boards:
//
//	2 pits: 8 stones 5, 16 stones 30
//	3 pits: 18 stones 399, 24 stones 68795
//	4 pits: 8 stones 364, 16 stones 22091, 24 stones over 300000
//	5 pits: 10 stones 10282, 20 stones over 300000
//	6 pits: 12 stones 615247
//	9 pits: 18 stones did not finish in 90s
var SOLVER_MAX_STONES = map[int]int{
	2: 16,
	3: 24,
	4: 16,
	5: 10,
	6: 12,
}
