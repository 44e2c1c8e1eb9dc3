package game

import "time"

// Params holds the externally supplied tunables of a session. Loaded
// from config; the engine never hardcodes these.
type Params struct {
	BoardWidth  int
	BoardHeight int

	// LineScores[n] is the base score for clearing n rows at once,
	// n in 1..4. Index 0 is unused.
	LineScores [5]int

	// LinesPerLevel is how many total cleared lines advance the level.
	LinesPerLevel int
	StartLevel    int

	// Drop interval timing: linear decrease per level, clamped at a floor.
	BaseInterval     time.Duration
	MinInterval      time.Duration
	DecreasePerLevel time.Duration
}

// DefaultParams returns the classic ruleset.
func DefaultParams() Params {
	return Params{
		BoardWidth:       10,
		BoardHeight:      20,
		LineScores:       [5]int{0, 100, 300, 500, 800},
		LinesPerLevel:    10,
		StartLevel:       1,
		BaseInterval:     800 * time.Millisecond,
		MinInterval:      100 * time.Millisecond,
		DecreasePerLevel: 50 * time.Millisecond,
	}
}

// ClearResult is the outcome of running line clearing on a board.
type ClearResult struct {
	Board        Board
	LinesCleared int
	ScoreGained  int
}

// ClearLines finds completed rows, removes them and computes the score
// gain as base[n] × level. Zero completed rows is a no-op fast path:
// the input board is returned unchanged with zero gain. Counts outside
// 1..4 score nothing (unreachable with a four-block piece, but handled).
func ClearLines(board Board, level int, params Params) ClearResult {
	rows := board.CompletedRows()
	if len(rows) == 0 {
		return ClearResult{Board: board}
	}

	gain := 0
	if n := len(rows); n >= 1 && n < len(params.LineScores) {
		gain = params.LineScores[n] * level
	}

	return ClearResult{
		Board:        board.ClearRows(rows),
		LinesCleared: len(rows),
		ScoreGained:  gain,
	}
}

// CalculateLevel derives the level from the total lines cleared. The
// level increases exactly at each multiple of the threshold.
func CalculateLevel(totalLines int, params Params) int {
	if params.LinesPerLevel <= 0 {
		return params.StartLevel
	}
	return params.StartLevel + totalLines/params.LinesPerLevel
}

// DropInterval computes the auto-drop interval for a level: a linear
// decrease from the base, clamped at the floor. Recomputed on every
// level change, never memoized.
func DropInterval(level int, params Params) time.Duration {
	interval := params.BaseInterval - time.Duration(level-1)*params.DecreasePerLevel
	if interval < params.MinInterval {
		return params.MinInterval
	}
	return interval
}
