// Package config provides YAML-based configuration loading for the
// game tunables: board geometry, scoring tables and drop-speed timing.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/game"
)

// Config contains all externally tunable game parameters.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Scoring ScoringConfig `yaml:"scoring"`
	Speed   SpeedConfig   `yaml:"speed"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ScoringConfig defines the scoring and leveling rules.
type ScoringConfig struct {
	// LineScores are the base scores for clearing 1, 2, 3 and 4 rows
	// at once; the gain is multiplied by the current level.
	LineScores    []int `yaml:"line_scores"`
	LinesPerLevel int   `yaml:"lines_per_level"`
	StartLevel    int   `yaml:"start_level"`
}

// SpeedConfig defines the auto-drop timing: a linear decrease per level
// clamped at a floor.
type SpeedConfig struct {
	BaseIntervalMs     int `yaml:"base_interval_ms"`
	MinIntervalMs      int `yaml:"min_interval_ms"`
	DecreasePerLevelMs int `yaml:"decrease_per_level_ms"`
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c Config) Validate() error {
	if c.Board.Width < 4 || c.Board.Height < 4 {
		return fmt.Errorf("config: board must be at least 4x4, got %dx%d",
			c.Board.Width, c.Board.Height)
	}
	if len(c.Scoring.LineScores) != 4 {
		return fmt.Errorf("config: line_scores must have 4 entries, got %d",
			len(c.Scoring.LineScores))
	}
	if c.Scoring.LinesPerLevel <= 0 {
		return fmt.Errorf("config: lines_per_level must be positive, got %d",
			c.Scoring.LinesPerLevel)
	}
	if c.Speed.BaseIntervalMs <= 0 || c.Speed.MinIntervalMs <= 0 {
		return fmt.Errorf("config: drop intervals must be positive")
	}
	if c.Speed.MinIntervalMs > c.Speed.BaseIntervalMs {
		return fmt.Errorf("config: min_interval_ms %d exceeds base_interval_ms %d",
			c.Speed.MinIntervalMs, c.Speed.BaseIntervalMs)
	}
	return nil
}

// Params converts the configuration into the engine's parameter set.
func (c Config) Params() game.Params {
	var scores [5]int
	for i, s := range c.Scoring.LineScores {
		if i < 4 {
			scores[i+1] = s
		}
	}
	return game.Params{
		BoardWidth:       c.Board.Width,
		BoardHeight:      c.Board.Height,
		LineScores:       scores,
		LinesPerLevel:    c.Scoring.LinesPerLevel,
		StartLevel:       c.Scoring.StartLevel,
		BaseInterval:     time.Duration(c.Speed.BaseIntervalMs) * time.Millisecond,
		MinInterval:      time.Duration(c.Speed.MinIntervalMs) * time.Millisecond,
		DecreasePerLevel: time.Duration(c.Speed.DecreasePerLevelMs) * time.Millisecond,
	}
}
