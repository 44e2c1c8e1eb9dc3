package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultConfig returns the classic ruleset used when no config file is
// found and the embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Scoring: ScoringConfig{
			LineScores:    []int{100, 300, 500, 800},
			LinesPerLevel: 10,
			StartLevel:    1,
		},
		Speed: SpeedConfig{
			BaseIntervalMs:     800,
			MinIntervalMs:      100,
			DecreasePerLevelMs: 50,
		},
	}
}
