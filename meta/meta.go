// meta/meta.go
package meta

// GO_ROUTINES is the default number of root actions searched concurrently.
const GO_ROUTINES = 1

// DEFAULT_DEPTH is the default search depth in rounds.
const DEFAULT_DEPTH = 2

// DEFAULT_EVALUATION names the default evaluation function.
const DEFAULT_EVALUATION = "scoreEvaluationFunction"

// DEFAULT_LAYOUT names the built-in layout played when none is given.
const DEFAULT_LAYOUT = "minimaxClassic"

// MAX_MOVES caps the number of agent moves in one game.
const MAX_MOVES = 1000

// OUTPUT_DIR is where experiment results are written.
const OUTPUT_DIR = "results"
